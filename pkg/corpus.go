package noise

import (
	"time"

	"golang.org/x/exp/slices"
)

// Corpus holds every recorded noise event imported by a Builder. It is never
// modified after Build returns, so it can be shared between goroutines.
type Corpus struct {
	// [event, channel, sample] in millivolts
	waveforms     Array
	triggers      []TriggerMask
	posixTimes    []float64
	datetimes     []time.Time
	runNumbers    []int
	stationIDs    []int
	dtMs          []float64
	temperatures  []float64
	powerVoltages []float64
}

func (c *Corpus) EventCount() int {
	return c.waveforms.Rows()
}

func (c *Corpus) ChannelCount() int {
	if len(c.waveforms.shape) < 3 {
		return 0
	}
	return c.waveforms.shape[1]
}

func (c *Corpus) SampleCount() int {
	if len(c.waveforms.shape) < 3 {
		return 0
	}
	return c.waveforms.shape[2]
}

// Waveform returns a copy of the recorded trace of a channel in millivolts.
func (c *Corpus) Waveform(event int, channel int) []float64 {
	row := c.waveforms.Row(event)
	nSamples := c.SampleCount()
	return slices.Clone(row[channel*nSamples : (channel+1)*nSamples])
}

func (c *Corpus) Waveforms() Array {
	return Array{shape: c.waveforms.Shape(), data: c.waveforms.Values()}
}

func (c *Corpus) Triggers() []TriggerMask {
	return slices.Clone(c.triggers)
}

func (c *Corpus) PosixTimes() []float64 {
	return slices.Clone(c.posixTimes)
}

func (c *Corpus) Datetimes() []time.Time {
	return slices.Clone(c.datetimes)
}

func (c *Corpus) RunNumbers() []int {
	return slices.Clone(c.runNumbers)
}

func (c *Corpus) StationIDs() []int {
	return slices.Clone(c.stationIDs)
}

func (c *Corpus) DtMs() []float64 {
	return slices.Clone(c.dtMs)
}

// Temperatures reports false when the corpus was built without temperatures.
func (c *Corpus) Temperatures() ([]float64, bool) {
	return slices.Clone(c.temperatures), c.temperatures != nil
}

// PowerVoltages reports false when the corpus was built without voltages.
func (c *Corpus) PowerVoltages() ([]float64, bool) {
	return slices.Clone(c.powerVoltages), c.powerVoltages != nil
}

// EventsWithTrigger returns the indices of the events with every bit of flag set.
func (c *Corpus) EventsWithTrigger(flag TriggerMask) []int {
	events := make([]int, 0)
	for i, trg := range c.triggers {
		if trg.Has(flag) {
			events = append(events, i)
		}
	}
	return events
}
