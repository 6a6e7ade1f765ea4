package noise

import (
	"testing"

	"golang.org/x/exp/slices"
)

type panickingStation struct{}

func (panickingStation) ID() int { return -1 }

func (panickingStation) Channels() []Channel {
	panic("broken station")
}

func TestInjectAll(t *testing.T) {
	corpus := newTestCorpus(t, 10, 3, 16)
	log := &recordingLogger{}
	inj := NewInjector(corpus, WithRandSource(NewSeededSource(7)), WithLogger(log))

	var stations []*fakeStation
	var jobs []InjectionJob
	for i := 0; i < 40; i++ {
		station := &fakeStation{id: i, channels: []*fakeChannel{zeroChannel(0, 16), zeroChannel(1, 16), zeroChannel(2, 16)}}
		stations = append(stations, station)
		jobs = append(jobs, InjectionJob{Event: fakeEvent{id: i}, Station: station})
	}

	if failed := InjectAll(inj, jobs, 4); failed != 0 {
		t.Fatalf("got %d failed jobs", failed)
	}

	for _, station := range stations {
		for _, ch := range station.channels {
			if ch.sets != 1 {
				t.Fatalf("station %d channel %d set %d times", station.id, ch.id, ch.sets)
			}
			found := false
			for e := 0; e < corpus.EventCount(); e++ {
				if slices.Equal(ch.trace, scaled(corpus.Waveform(e, ch.id))) {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("station %d channel %d trace is not a corpus waveform", station.id, ch.id)
			}
		}
	}
}

func TestInjectAllRecoversPanics(t *testing.T) {
	corpus := newTestCorpus(t, 2, 1, 4)
	log := &recordingLogger{}
	inj := NewInjector(corpus, WithLogger(log))

	good := &fakeStation{channels: []*fakeChannel{zeroChannel(0, 4)}}
	jobs := []InjectionJob{
		{Event: fakeEvent{id: 1}, Station: panickingStation{}},
		{Event: fakeEvent{id: 2}, Station: good},
	}

	if failed := InjectAll(inj, jobs, 0); failed != 1 {
		t.Fatalf("got %d failed jobs want 1", failed)
	}
	if good.channels[0].sets != 1 {
		t.Fatalf("job after the failing one was not processed")
	}
	if len(log.errors) != 2 {
		t.Fatalf("got %d errors want 2: %v", len(log.errors), log.errors)
	}
}
