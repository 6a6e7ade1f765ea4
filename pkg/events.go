package noise

// Event is the simulated event that noise is added to.
type Event interface {
	ID() int
	RunNumber() int
}

type Station interface {
	ID() int
	Channels() []Channel
}

// Channel exposes the simulated trace of a single channel.
type Channel interface {
	ID() int
	Trace() []float64
	SamplingRate() float64
	SetTrace(trace []float64, samplingRate float64)
}
