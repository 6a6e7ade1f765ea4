package noise

import (
	"fmt"
	"time"
)

const (
	calibTable       = "CalibTree"
	waveformPath     = "CalibTree/AmpOutData"
	triggerPath      = "CalibTree/EventHeader/trigger"
	eventTimePath    = "CalibTree/EventHeader/time"
	dtMsPath         = "CalibTree/EventHeader/dtms"
	runNumberPath    = "CalibTree/EventMetadata/run"
	stationIDPath    = "CalibTree/EventMetadata/stationId"
	temperatureTable = "TemperatureTree"
	temperatureTime  = "TemperatureTree/time"
	temperaturePath  = "TemperatureTree/temperature"
	voltageTable     = "VoltageTree"
	voltageTime      = "VoltageTree/time"
	voltagePrefix    = "VoltageTree/ave"
)

const DefaultPowerChannel = "V1"

type SlowControl int

const (
	Temperature SlowControl = iota
	PowerVoltage
)

func (s SlowControl) String() string {
	switch s {
	case Temperature:
		return "temperature"
	case PowerVoltage:
		return "power voltage"
	default:
		return "unknown"
	}
}

// Builder imports noise files into a Corpus.
type Builder struct {
	Open Opener
	// Rows read at once from the waveform array, <= 0 reads it whole
	BatchSize int
	// Voltage reading used for the power series, "V1" or "V2"
	PowerChannel string
}

func NewBuilder() *Builder {
	return &Builder{
		Open:         OpenHDF5,
		BatchSize:    DefaultBatchSize,
		PowerChannel: DefaultPowerChannel,
	}
}

type fileData struct {
	waveforms     Array
	triggers      []TriggerMask
	posixTimes    []float64
	runNumbers    []int
	stationIDs    []int
	dtMs          []float64
	temperatures  []float64
	powerVoltages []float64
}

// Build reads every file in order and concatenates their events. Any missing
// field or inconsistent shape aborts the whole build.
func (b *Builder) Build(files []string, readTemperature bool, readPower bool) (*Corpus, error) {
	if len(files) == 0 {
		return nil, ErrNoInputFiles
	}

	chunks := make([]fileData, 0, len(files))
	for _, filename := range files {
		logger.Info(fmt.Sprintf("reading data for file %s", filename), "builder")
		data, err := b.readFile(filename, readTemperature, readPower)
		if err != nil {
			return nil, fmt.Errorf("error importing noise file %q: %w", filename, err)
		}
		chunks = append(chunks, data)
	}

	waveforms := make([]Array, len(chunks))
	for i, chunk := range chunks {
		waveforms[i] = chunk.waveforms
	}
	allWaveforms, err := Concatenate(waveforms...)
	if err != nil {
		return nil, fmt.Errorf("noise files have different channel or sample counts: %w", err)
	}

	corpus := &Corpus{
		waveforms:  allWaveforms,
		triggers:   concat(chunks, func(d fileData) []TriggerMask { return d.triggers }),
		posixTimes: concat(chunks, func(d fileData) []float64 { return d.posixTimes }),
		runNumbers: concat(chunks, func(d fileData) []int { return d.runNumbers }),
		stationIDs: concat(chunks, func(d fileData) []int { return d.stationIDs }),
		dtMs:       concat(chunks, func(d fileData) []float64 { return d.dtMs }),
	}
	if readTemperature {
		corpus.temperatures = concat(chunks, func(d fileData) []float64 { return d.temperatures })
	}
	if readPower {
		corpus.powerVoltages = concat(chunks, func(d fileData) []float64 { return d.powerVoltages })
	}

	corpus.datetimes = make([]time.Time, len(corpus.posixTimes))
	for i, t := range corpus.posixTimes {
		corpus.datetimes[i] = time.Unix(int64(t), 0).UTC()
	}

	message := fmt.Sprintf("imported %d noise events from %d files", corpus.EventCount(), len(files))
	logger.Info(message, "builder")
	return corpus, nil
}

func (b *Builder) open(filename string) (Source, error) {
	if b.Open == nil {
		return OpenHDF5(filename)
	}
	return b.Open(filename)
}

func (b *Builder) readFile(filename string, readTemperature bool, readPower bool) (fileData, error) {
	var data fileData

	src, err := b.open(filename)
	if err != nil {
		return data, err
	}
	defer src.Close()

	if !src.Has(calibTable) {
		return data, &FieldNotFoundError{File: src.Name(), Path: calibTable}
	}

	logger.Debug("reading waveforms", "builder")
	data.waveforms, err = ReadField(src, waveformPath, b.BatchSize, 1)
	if err != nil {
		return data, err
	}
	if shape := data.waveforms.Shape(); len(shape) != 3 {
		return data, &ShapeMismatchError{File: src.Name(), Path: waveformPath, Want: []int{-1, -1, -1}, Got: shape}
	}
	nEvents := data.waveforms.Rows()

	// Only the first byte of the record holds the mask, the rest is padding
	logger.Debug("reading trigger info", "builder")
	triggers, err := readColumn(src, triggerPath, 0, nEvents)
	if err != nil {
		return data, err
	}
	data.triggers = make([]TriggerMask, nEvents)
	for i, v := range triggers {
		data.triggers[i] = TriggerMask(uint8(v))
	}

	logger.Debug("reading times", "builder")
	data.posixTimes, err = readTimestamps(src, eventTimePath, nEvents)
	if err != nil {
		return data, err
	}

	if readTemperature {
		logger.Debug("reading temperature", "builder")
		data.temperatures, err = b.interpolateSlowControl(src, Temperature, data.posixTimes)
		if err != nil {
			return data, err
		}
	}

	runNumbers, err := readColumn(src, runNumberPath, 0, nEvents)
	if err != nil {
		return data, err
	}
	data.runNumbers = toIntSlice(runNumbers)

	stationIDs, err := readColumn(src, stationIDPath, 0, nEvents)
	if err != nil {
		return data, err
	}
	data.stationIDs = toIntSlice(stationIDs)

	data.dtMs, err = readColumn(src, dtMsPath, 0, nEvents)
	if err != nil {
		return data, err
	}

	if readPower {
		logger.Debug("reading station voltages", "builder")
		data.powerVoltages, err = b.interpolateSlowControl(src, PowerVoltage, data.posixTimes)
		if err != nil {
			return data, err
		}
	}
	return data, nil
}

func (b *Builder) interpolateSlowControl(src Source, kind SlowControl, eventTimes []float64) ([]float64, error) {
	powerChannel := b.PowerChannel
	if powerChannel == "" {
		powerChannel = DefaultPowerChannel
	}
	series, err := ReadSlowControl(src, kind, powerChannel)
	if err != nil {
		return nil, err
	}
	values, err := Interpolate(series.Times, series.Values, eventTimes)
	if err != nil {
		return nil, fmt.Errorf("error interpolating %v: %w", kind, err)
	}
	return values, nil
}

// ReadSlowControl returns the temperature or voltage series stored in src as
// is, without aligning it to the events.
func ReadSlowControl(src Source, kind SlowControl, powerChannel string) (Series, error) {
	var table, timePath, valuePath string
	scale := 1.0
	switch kind {
	case Temperature:
		table, timePath, valuePath = temperatureTable, temperatureTime, temperaturePath
	case PowerVoltage:
		table, timePath, valuePath = voltageTable, voltageTime, voltagePrefix+powerChannel
		scale = MilliVolt
	default:
		return Series{}, fmt.Errorf("unknown slow control series %d", kind)
	}

	if !src.Has(table) {
		return Series{}, &FieldNotFoundError{File: src.Name(), Path: table}
	}
	values, err := ReadField(src, valuePath, 0, scale)
	if err != nil {
		return Series{}, err
	}
	times, err := readTimestamps(src, timePath, values.Rows())
	if err != nil {
		return Series{}, err
	}
	column, err := values.Column(0)
	if err != nil {
		return Series{}, err
	}
	return Series{Times: times, Values: column}, nil
}

// readColumn reads a whole per-event field and keeps one value per row.
func readColumn(src Source, path string, column int, nRows int) ([]float64, error) {
	field, err := ReadField(src, path, 0, 1)
	if err != nil {
		return nil, err
	}
	if field.Rows() != nRows || field.RowWidth() <= column {
		want := []int{nRows, column + 1}
		return nil, &ShapeMismatchError{File: src.Name(), Path: path, Want: want, Got: field.Shape()}
	}
	return field.Column(column)
}

// Timestamps are stored as (seconds, nanoseconds) pairs. Anything after the
// first pair in a row is padding.
func readTimestamps(src Source, path string, nRows int) ([]float64, error) {
	field, err := ReadField(src, path, 0, 1)
	if err != nil {
		return nil, err
	}
	if field.Rows() != nRows || field.RowWidth() < 2 {
		return nil, &ShapeMismatchError{File: src.Name(), Path: path, Want: []int{nRows, 2}, Got: field.Shape()}
	}
	seconds, _ := field.Column(0)
	nanoseconds, _ := field.Column(1)
	times := make([]float64, nRows)
	for i := range times {
		times[i] = seconds[i] + nanoseconds[i]*1e-9
	}
	return times, nil
}

func concat[T any](chunks []fileData, field func(fileData) []T) []T {
	size := 0
	for _, c := range chunks {
		size += len(field(c))
	}
	result := make([]T, 0, size)
	for _, c := range chunks {
		result = append(result, field(c)...)
	}
	return result
}

func toIntSlice(values []float64) []int {
	result := make([]int, len(values))
	for i, v := range values {
		result[i] = int(v)
	}
	return result
}
