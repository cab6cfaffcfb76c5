package neat

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// statFuncs summarise a species' member fitnesses.
var statFuncs = map[string]func([]float64) float64{
	"max":    floats.Max,
	"min":    floats.Min,
	"mean":   func(xs []float64) float64 { return stat.Mean(xs, nil) },
	"median": median,
}

// criteria reduce a generation's fitnesses for the termination check.
var criteria = map[string]func([]float64) float64{
	"max":  floats.Max,
	"min":  floats.Min,
	"mean": func(xs []float64) float64 { return stat.Mean(xs, nil) },
}

// median averages the two middle values of an even-length input.
func median(xs []float64) float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
