package noise

import (
	"cmp"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

// Series is a slow-control measurement: values sampled at irregular times.
type Series struct {
	Times  []float64
	Values []float64
}

func (s Series) Len() int {
	return len(s.Times)
}

// Interpolator evaluates a series linearly between samples and clamps
// queries outside the sampled range to the first or last value.
type Interpolator struct {
	times  []float64
	values []float64
}

type seriesPoint struct {
	time  float64
	value float64
}

func NewInterpolator(times, values []float64) (*Interpolator, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("series has %d times and %d values", len(times), len(values))
	}

	points := make([]seriesPoint, 0, len(times))
	for i := range times {
		if math.IsNaN(times[i]) || math.IsNaN(values[i]) {
			continue
		}
		points = append(points, seriesPoint{time: times[i], value: values[i]})
	}
	if len(points) < 2 {
		return nil, &DegenerateSeriesError{Samples: len(points)}
	}

	byTime := func(a, b seriesPoint) int {
		return cmp.Compare(a.time, b.time)
	}
	if !slices.IsSortedFunc(points, byTime) {
		slices.SortStableFunc(points, byTime)
	}

	ip := &Interpolator{
		times:  make([]float64, len(points)),
		values: make([]float64, len(points)),
	}
	for i, p := range points {
		ip.times[i] = p.time
		ip.values[i] = p.value
	}
	return ip, nil
}

func (ip *Interpolator) At(t float64) float64 {
	n := len(ip.times)
	switch {
	case math.IsNaN(t):
		return math.NaN()
	case t <= ip.times[0]:
		return ip.values[0]
	case t >= ip.times[n-1]:
		return ip.values[n-1]
	}

	// times[i-1] < t <= times[i]
	i := sort.SearchFloat64s(ip.times, t)
	if ip.times[i] == t {
		return ip.values[i]
	}
	t0, t1 := ip.times[i-1], ip.times[i]
	v0, v1 := ip.values[i-1], ip.values[i]
	return v0 + (v1-v0)*(t-t0)/(t1-t0)
}

func (ip *Interpolator) Evaluate(queries []float64) []float64 {
	result := make([]float64, len(queries))
	for i, t := range queries {
		result[i] = ip.At(t)
	}
	return result
}

// Interpolate builds an interpolator from times and values and evaluates it at
// every query time.
func Interpolate(times, values, queries []float64) ([]float64, error) {
	ip, err := NewInterpolator(times, values)
	if err != nil {
		return nil, err
	}
	return ip.Evaluate(queries), nil
}
