package noise

import (
	"errors"
	"math"
	"testing"
)

func TestInterpolatorBoundaries(t *testing.T) {
	series := []struct {
		name   string
		times  []float64
		values []float64
	}{
		{"two points", []float64{0, 10}, []float64{1, 3}},
		{"irregular", []float64{-5, 0.5, 2, 40}, []float64{7, -1, 4, 4}},
		{"repeated values", []float64{1, 2, 3}, []float64{5, 5, 5}},
		{"decreasing values", []float64{100, 200, 300, 400}, []float64{3, 2, 1, 0}},
	}

	for _, s := range series {
		t.Run(s.name, func(t *testing.T) {
			ip, err := NewInterpolator(s.times, s.values)
			if err != nil {
				t.Fatalf("NewInterpolator: %v", err)
			}
			first, last := s.values[0], s.values[len(s.values)-1]

			if got := ip.At(s.times[0] - 1000); got != first {
				t.Fatalf("before first sample got %v want %v", got, first)
			}
			if got := ip.At(s.times[len(s.times)-1] + 1000); got != last {
				t.Fatalf("after last sample got %v want %v", got, last)
			}
			for i, ts := range s.times {
				if got := ip.At(ts); got != s.values[i] {
					t.Fatalf("at sample %d (t=%v) got %v want %v", i, ts, got, s.values[i])
				}
			}
		})
	}
}

func TestInterpolatorLinear(t *testing.T) {
	got, err := Interpolate([]float64{0, 10, 20}, []float64{0, 100, 50}, []float64{2.5, 10, 15, 19})
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	want := []float64{25, 100, 75, 55}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("query %d got %v want %v", i, got[i], want[i])
		}
	}
}

func TestInterpolatorUnsortedInput(t *testing.T) {
	ip, err := NewInterpolator([]float64{20, 0, 10}, []float64{2, 0, 1})
	if err != nil {
		t.Fatalf("NewInterpolator: %v", err)
	}
	if got := ip.At(15); math.Abs(got-1.5) > 1e-12 {
		t.Fatalf("got %v want 1.5", got)
	}
	if got := ip.At(-1); got != 0 {
		t.Fatalf("got %v want 0", got)
	}
}

func TestInterpolatorDegenerate(t *testing.T) {
	cases := []struct {
		name   string
		times  []float64
		values []float64
		want   int
	}{
		{"empty", nil, nil, 0},
		{"single sample", []float64{1}, []float64{2}, 1},
		{"nan leaves one sample", []float64{1, math.NaN()}, []float64{2, 3}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewInterpolator(c.times, c.values)
			var degenerate *DegenerateSeriesError
			if !errors.As(err, &degenerate) {
				t.Fatalf("got error %v want DegenerateSeriesError", err)
			}
			if degenerate.Samples != c.want {
				t.Fatalf("got %d samples want %d", degenerate.Samples, c.want)
			}
		})
	}
}

func TestInterpolatorLengthMismatch(t *testing.T) {
	_, err := NewInterpolator([]float64{1, 2, 3}, []float64{1, 2})
	if err == nil {
		t.Fatalf("expected an error for series of different lengths")
	}
}

func TestInterpolatorNaNQuery(t *testing.T) {
	ip, err := NewInterpolator([]float64{0, 1}, []float64{0, 1})
	if err != nil {
		t.Fatalf("NewInterpolator: %v", err)
	}
	if got := ip.At(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("got %v want NaN", got)
	}
}
