package rfm

import (
	"math"
	"sort"
)

// QuintileBreakpoints holds the 20th, 40th, 60th and 80th percentile cut
// points of one RFM dimension, in ascending order.
type QuintileBreakpoints [4]float64

var quintileProbs = [4]float64{0.2, 0.4, 0.6, 0.8}

// Quantile Returns the quantile q of sortedValues using linear interpolation
// between the two nearest order statistics. sortedValues must be sorted
// ascending. Returns 0 for an empty slice.
func Quantile(sortedValues []float64, q float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if len(sortedValues) == 1 {
		return sortedValues[0]
	}

	position := q * float64(len(sortedValues)-1)
	lowerIndex := int(math.Floor(position))
	upperIndex := int(math.Ceil(position))
	if lowerIndex == upperIndex {
		return sortedValues[lowerIndex]
	}

	fraction := position - float64(lowerIndex)
	return sortedValues[lowerIndex] + fraction*(sortedValues[upperIndex]-sortedValues[lowerIndex])
}

// GetQuintileBreakpoints Computes the four quintile cut points for values.
// The input is not modified.
func GetQuintileBreakpoints(values []float64) QuintileBreakpoints {
	sortedValues := make([]float64, len(values))
	copy(sortedValues, values)
	sort.Float64s(sortedValues)

	var breakpoints QuintileBreakpoints
	for i, q := range quintileProbs {
		breakpoints[i] = Quantile(sortedValues, q)
	}
	return breakpoints
}

// ValueScore Scores frequency and monetary values on 1 to 5.
// Values on a cut point take the higher score.
func ValueScore(value float64, breakpoints QuintileBreakpoints) int {
	if value >= breakpoints[3] {
		return 5
	} else if value >= breakpoints[2] {
		return 4
	} else if value >= breakpoints[1] {
		return 3
	} else if value >= breakpoints[0] {
		return 2
	}
	return 1
}

// RecencyScore Scores recency in days on 1 to 5 with the scale inverted,
// as fewer days since the last purchase is better.
func RecencyScore(recencyDays float64, breakpoints QuintileBreakpoints) int {
	if recencyDays >= breakpoints[3] {
		return 1
	} else if recencyDays >= breakpoints[2] {
		return 2
	} else if recencyDays >= breakpoints[1] {
		return 3
	} else if recencyDays >= breakpoints[0] {
		return 4
	}
	return 5
}
