package rfm

import (
	"sort"

	U "ecomdash/util"
)

const summaryPrecision = 2

// SegmentSummary aggregates one segment's customers and revenue.
// CumulativePercent is filled only on Pareto sorted summaries.
type SegmentSummary struct {
	Segment              string  `json:"segment"`
	CustomerCount        int     `json:"customer_count"`
	TotalMonetary        float64 `json:"total_monetary"`
	TotalMonetaryPercent float64 `json:"total_monetary_percent"`
	TotalMonetaryScaled  float64 `json:"total_monetary_scaled"`
	CumulativePercent    float64 `json:"cumulative_percent,omitempty"`
}

// BuildSegmentSummaries Groups records by segment and computes count, revenue,
// revenue share and min-max scaled revenue per group. The optional segments
// list restricts the population before grouping. Rows are ordered by segment
// name ascending.
func BuildSegmentSummaries(records []Record, segments []string) []SegmentSummary {
	selected := FilterRecordsBySegments(records, segments)

	groups := make(map[string]*SegmentSummary)
	for i := range selected {
		summary, exists := groups[selected[i].Segment]
		if !exists {
			summary = &SegmentSummary{Segment: selected[i].Segment}
			groups[selected[i].Segment] = summary
		}
		summary.CustomerCount++
		summary.TotalMonetary += selected[i].Monetary
	}

	summaries := make([]SegmentSummary, 0, len(groups))
	for _, summary := range groups {
		summaries = append(summaries, *summary)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Segment < summaries[j].Segment
	})

	var grandTotal float64
	minTotal, maxTotal := 0.0, 0.0
	for i := range summaries {
		grandTotal += summaries[i].TotalMonetary
		if i == 0 {
			minTotal, maxTotal = summaries[i].TotalMonetary, summaries[i].TotalMonetary
			continue
		}
		minTotal = U.MinFloat64(minTotal, summaries[i].TotalMonetary)
		maxTotal = U.MaxFloat64(maxTotal, summaries[i].TotalMonetary)
	}

	for i := range summaries {
		if grandTotal > 0 {
			percent := summaries[i].TotalMonetary / grandTotal * 100
			summaries[i].TotalMonetaryPercent, _ = U.FloatRoundOffWithPrecision(percent, summaryPrecision)
		}
		if maxTotal > minTotal {
			summaries[i].TotalMonetaryScaled = (summaries[i].TotalMonetary - minTotal) / (maxTotal - minTotal)
		}
	}
	return summaries
}

// BuildParetoSummaries Orders segment summaries by revenue descending and adds
// the running share of revenue. The cumulative percent accumulates unrounded
// shares so rounding error does not compound across rows.
func BuildParetoSummaries(records []Record, segments []string) []SegmentSummary {
	summaries := BuildSegmentSummaries(records, segments)

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalMonetary == summaries[j].TotalMonetary {
			return summaries[i].Segment < summaries[j].Segment
		}
		return summaries[i].TotalMonetary > summaries[j].TotalMonetary
	})

	var grandTotal float64
	for i := range summaries {
		grandTotal += summaries[i].TotalMonetary
	}
	if grandTotal <= 0 {
		return summaries
	}

	var runningPercent float64
	for i := range summaries {
		runningPercent += summaries[i].TotalMonetary / grandTotal * 100
		summaries[i].CumulativePercent = runningPercent
	}
	return summaries
}
