package noise

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	"golang.org/x/exp/slices"
)

// Detector answers questions about the channels of the simulated detector.
type Detector interface {
	HasChannel(stationID int, channelID int) bool
	SamplingRate(stationID int, channelID int) (float64, error)
}

type ChannelConfig struct {
	StationID    int     `db:"StationID"`
	ChannelID    int     `db:"ChannelID"`
	SamplingRate float64 `db:"SamplingRate"`
}

// DBDetector is the channel configuration of one station read from the
// detector database.
type DBDetector struct {
	stationID int
	channels  map[int]ChannelConfig
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

func LoadDetector(db *sqlx.DB, stationID int) (*DBDetector, error) {
	query := "SELECT StationID, ChannelID, SamplingRate FROM ChannelConfig WHERE StationID = ? ORDER BY ChannelID"
	logger.Debug(fmt.Sprintf("Query: %s [%d]", query, stationID), "database")

	rows, err := db.Queryx(query, stationID)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	detector := &DBDetector{
		stationID: stationID,
		channels:  make(map[int]ChannelConfig),
	}
	for rows.Next() {
		result := ChannelConfig{}
		err := rows.StructScan(&result)
		if err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		detector.channels[result.ChannelID] = result
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading channel configuration: %w", err)
	}
	if len(detector.channels) == 0 {
		return nil, fmt.Errorf("no channels configured for station %d", stationID)
	}

	message := fmt.Sprintf("Loaded %d channels for station %d", len(detector.channels), stationID)
	logger.Info(message, "database")
	return detector, nil
}

func (d *DBDetector) StationID() int {
	return d.stationID
}

func (d *DBDetector) ChannelIDs() []int {
	ids := make([]int, 0, len(d.channels))
	for id := range d.channels {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (d *DBDetector) HasChannel(stationID int, channelID int) bool {
	if stationID != d.stationID {
		return false
	}
	_, ok := d.channels[channelID]
	return ok
}

func (d *DBDetector) SamplingRate(stationID int, channelID int) (float64, error) {
	if !d.HasChannel(stationID, channelID) {
		return 0, fmt.Errorf("station %d channel %d: %w", stationID, channelID, ErrUnknownChannel)
	}
	return d.channels[channelID].SamplingRate, nil
}
