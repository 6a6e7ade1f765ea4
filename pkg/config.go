package noise

import (
	"encoding/json"
	"fmt"
	"os"
)

type Configuration struct {
	FilesIn         []string `json:"files_in"`
	ReadTemperature bool     `json:"read_temperature"`
	ReadPower       bool     `json:"read_power"`
	PowerChannel    string   `json:"power_channel"`
	BatchSize       int      `json:"batch_size"`
	Verbosity       int      `json:"verbosity"`
	NoDB            bool     `json:"no_db"`
	Host            string   `json:"host"`
	User            string   `json:"user"`
	Passwd          string   `json:"pass"`
	DBName          string   `json:"dbname"`
	StationID       int      `json:"station_id"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		ReadTemperature: false,
		ReadPower:       false,
		PowerChannel:    DefaultPowerChannel,
		BatchSize:       DefaultBatchSize,
		Verbosity:       0,
		NoDB:            true,
		Host:            "localhost",
		User:            "reader",
		Passwd:          "readonly",
		DBName:          "detector",
		StationID:       0,
	}
}

// LoadConfiguration reads a JSON configuration file on top of the defaults.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, config.Validate()
}

func (c Configuration) Validate() error {
	if c.PowerChannel != "V1" && c.PowerChannel != "V2" {
		return fmt.Errorf("invalid power channel %q, expected V1 or V2", c.PowerChannel)
	}
	return nil
}

func (c Configuration) NewBuilder() *Builder {
	builder := NewBuilder()
	builder.BatchSize = c.BatchSize
	builder.PowerChannel = c.PowerChannel
	return builder
}
