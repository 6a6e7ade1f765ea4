package noise

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// RandSource picks noise events. Implementations used with InjectAll must be
// safe for concurrent use.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewSeededSource returns a reproducible source, mostly useful in tests.
func NewSeededSource(seed uint64) RandSource {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Injector adds randomly chosen recorded noise to simulated channel traces.
// The corpus must match the sampling and trace length of the simulation.
type Injector struct {
	corpus *Corpus
	rand   RandSource
	logger Logger
}

type InjectorOption func(*Injector)

func WithRandSource(r RandSource) InjectorOption {
	return func(inj *Injector) {
		inj.rand = r
	}
}

func WithLogger(l Logger) InjectorOption {
	return func(inj *Injector) {
		inj.logger = l
	}
}

func NewInjector(corpus *Corpus, opts ...InjectorOption) *Injector {
	inj := &Injector{corpus: corpus, rand: globalRand{}}
	for _, opt := range opts {
		opt(inj)
	}
	return inj
}

func (inj *Injector) log() Logger {
	if inj.logger != nil {
		return inj.logger
	}
	return logger
}

// InjectNoise adds a random corpus waveform to every channel of station.
// Channels the corpus cannot serve are logged and left untouched.
func (inj *Injector) InjectNoise(event Event, station Station, det Detector) {
	if inj.corpus.EventCount() == 0 || inj.corpus.ChannelCount() == 0 {
		inj.log().Warning("Noise corpus is empty, not adding noise", "injector")
		return
	}
	for _, channel := range station.Channels() {
		inj.injectChannel(event, station.ID(), channel, det)
	}
}

func (inj *Injector) injectChannel(event Event, stationID int, channel Channel, det Detector) {
	nChannels := inj.corpus.ChannelCount()
	channelID := channel.ID()

	noiseEvent := inj.rand.IntN(inj.corpus.EventCount())

	// Detectors with more channels than the noise files reuse noise channels
	noiseChannel := channelID
	if channelID >= nChannels || channelID < 0 {
		noiseChannel = ((channelID % nChannels) + nChannels) % nChannels
		message := fmt.Sprintf("Channel %d not in file (%d channels): Using channel %d",
			channelID, nChannels, noiseChannel)
		inj.log().Warning(message, "injector")
	}

	trace := channel.Trace()
	nSamples := inj.corpus.SampleCount()
	if nSamples != len(trace) {
		message := fmt.Sprintf("Mismatch: Noise has %d and simulation %d samples. Not adding noise!",
			nSamples, len(trace))
		inj.log().Warning(message, "injector")
		return
	}

	if event != nil {
		message := fmt.Sprintf("event %d: adding noise event %d channel %d to station %d channel %d",
			event.ID(), noiseEvent, noiseChannel, stationID, channelID)
		inj.log().Debug(message, "injector")
	}

	noiseTrace := inj.corpus.Waveform(noiseEvent, noiseChannel)
	for i := range noiseTrace {
		noiseTrace[i] = noiseTrace[i]*MilliVolt + trace[i]
	}

	samplingRate := channel.SamplingRate()
	if samplingRate == 0 && det != nil {
		rate, err := det.SamplingRate(stationID, channelID)
		if err != nil {
			inj.log().Debug(err.Error(), "injector")
		} else {
			samplingRate = rate
		}
	}
	channel.SetTrace(noiseTrace, samplingRate)
}
