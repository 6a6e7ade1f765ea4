package noise

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"golang.org/x/exp/slices"
)

// memSource is an in-memory Source used to feed synthetic noise files to the
// builder.
type memSource struct {
	name   string
	fields map[string]Array
	reads  map[string][]RowRange
	closed bool
}

func newMemSource(name string) *memSource {
	return &memSource{
		name:   name,
		fields: make(map[string]Array),
		reads:  make(map[string][]RowRange),
	}
}

func (m *memSource) set(path string, a Array) {
	m.fields[path] = a
}

func (m *memSource) Name() string {
	return m.name
}

func (m *memSource) Has(path string) bool {
	if _, ok := m.fields[path]; ok {
		return true
	}
	for field := range m.fields {
		if strings.HasPrefix(field, path+"/") {
			return true
		}
	}
	return false
}

func (m *memSource) Shape(path string) ([]int, error) {
	a, ok := m.fields[path]
	if !ok {
		return nil, &FieldNotFoundError{File: m.name, Path: path}
	}
	return a.Shape(), nil
}

func (m *memSource) ReadRows(path string, start, stop int) (Array, error) {
	a, ok := m.fields[path]
	if !ok {
		return Array{}, &FieldNotFoundError{File: m.name, Path: path}
	}
	if start < 0 || stop > a.Rows() || start > stop {
		return Array{}, fmt.Errorf("rows %d-%d out of range", start, stop)
	}
	m.reads[path] = append(m.reads[path], RowRange{Start: start, Stop: stop})
	width := a.RowWidth()
	shape := append([]int{stop - start}, a.rowShape()...)
	return Array{shape: shape, data: slices.Clone(a.data[start*width : stop*width])}, nil
}

func (m *memSource) Close() error {
	m.closed = true
	return nil
}

func mustArray[T Number](t *testing.T, data []T, shape ...int) Array {
	t.Helper()
	a, err := NewArray(data, shape...)
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	return a
}

const baseTime = 1.6e9

// fileStart is the first event time of the synthetic file with the given tag.
func fileStart(tag int) float64 {
	return baseTime + float64(tag)*1000
}

// noiseValue identifies file, event, channel and sample of a synthetic
// waveform value. It is never zero.
func noiseValue(tag, event, channel, sample int) float64 {
	return float64(100000*(tag+1) + 1000*event + 100*channel + sample%50 + 1)
}

// syntheticFile builds a noise file whose values are tagged with tag. Events
// are 10 s apart, forced triggers on even events and thermal on odd ones.
func syntheticFile(t *testing.T, tag, nEvents, nChannels, nSamples int) *memSource {
	t.Helper()
	src := newMemSource(fmt.Sprintf("noise_%d.h5", tag))

	waveforms := make([]int32, 0, nEvents*nChannels*nSamples)
	triggers := make([]uint8, 0, nEvents*3)
	times := make([]int64, 0, nEvents*2)
	runs := make([]int32, nEvents)
	stations := make([]int32, nEvents)
	dtms := make([]float64, nEvents)
	for e := 0; e < nEvents; e++ {
		for c := 0; c < nChannels; c++ {
			for s := 0; s < nSamples; s++ {
				waveforms = append(waveforms, int32(noiseValue(tag, e, c, s)))
			}
		}
		trg := TriggerThermal
		if e%2 == 0 {
			trg = TriggerForced
		}
		triggers = append(triggers, uint8(trg), 0xff, 0xff)
		times = append(times, int64(fileStart(tag))+int64(10*e), 250000000)
		runs[e] = int32(1000 + tag)
		stations[e] = 51
		dtms[e] = float64(e) * 0.5
	}

	src.set(waveformPath, mustArray(t, waveforms, nEvents, nChannels, nSamples))
	src.set(triggerPath, mustArray(t, triggers, nEvents, 3))
	src.set(eventTimePath, mustArray(t, times, nEvents, 2))
	src.set(runNumberPath, mustArray(t, runs))
	src.set(stationIDPath, mustArray(t, stations))
	src.set(dtMsPath, mustArray(t, dtms))

	start := int64(fileStart(tag))
	src.set(temperatureTime, mustArray(t, []int64{start - 100, 0, start + 50, 0, start + 1000, 0}, 3, 2))
	src.set(temperaturePath, mustArray(t, []float32{-10, -5, 0}))
	src.set(voltageTime, mustArray(t, []int64{start - 10, 0, start + 1000, 0}, 2, 2))
	src.set(voltagePrefix+"V1", mustArray(t, []float64{12000, 13000}))
	src.set(voltagePrefix+"V2", mustArray(t, []float64{24000, 24000}))
	return src
}

// memFiles serves memSources by name and remembers which were opened.
type memFiles struct {
	mu      sync.Mutex
	sources map[string]*memSource
	opened  []string
}

func newMemFiles(sources ...*memSource) *memFiles {
	files := &memFiles{sources: make(map[string]*memSource)}
	for _, src := range sources {
		files.sources[src.name] = src
	}
	return files
}

func (f *memFiles) open(name string) (Source, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	src, ok := f.sources[name]
	if !ok {
		return nil, &ErrOpenFile{Filename: name, Err: fmt.Errorf("no such file")}
	}
	f.opened = append(f.opened, name)
	return src, nil
}

func (f *memFiles) names() []string {
	names := make([]string, 0, len(f.sources))
	for name := range f.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
