package rfm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func summaryFixtureRecords() []Record {
	return []Record{
		{CustomerID: "c1", Segment: SegmentChampions, Monetary: 400},
		{CustomerID: "c2", Segment: SegmentChampions, Monetary: 200},
		{CustomerID: "c3", Segment: SegmentLoyal, Monetary: 300},
		{CustomerID: "c4", Segment: SegmentLostCustomers, Monetary: 100},
	}
}

func TestBuildSegmentSummaries(t *testing.T) {
	summaries := BuildSegmentSummaries(summaryFixtureRecords(), nil)
	assert.Len(t, summaries, 3)

	// Ordered by segment name ascending.
	assert.Equal(t, SegmentChampions, summaries[0].Segment)
	assert.Equal(t, SegmentLostCustomers, summaries[1].Segment)
	assert.Equal(t, SegmentLoyal, summaries[2].Segment)

	assert.Equal(t, 2, summaries[0].CustomerCount)
	assert.Equal(t, 600.0, summaries[0].TotalMonetary)
	assert.Equal(t, 60.0, summaries[0].TotalMonetaryPercent)
	assert.Equal(t, 10.0, summaries[1].TotalMonetaryPercent)
	assert.Equal(t, 30.0, summaries[2].TotalMonetaryPercent)

	// Min-max scaling across the three groups: 100 -> 0, 600 -> 1.
	assert.Equal(t, 1.0, summaries[0].TotalMonetaryScaled)
	assert.Equal(t, 0.0, summaries[1].TotalMonetaryScaled)
	assert.Equal(t, 0.4, summaries[2].TotalMonetaryScaled)

	// The grouped view carries no cumulative percent.
	assert.Equal(t, 0.0, summaries[0].CumulativePercent)
}

func TestBuildSegmentSummariesWithSegmentFilter(t *testing.T) {
	summaries := BuildSegmentSummaries(summaryFixtureRecords(), []string{SegmentChampions})
	assert.Len(t, summaries, 1)

	// Percent is relative to the restricted population.
	assert.Equal(t, 100.0, summaries[0].TotalMonetaryPercent)
	assert.Equal(t, 2, summaries[0].CustomerCount)

	// A single group has max equal to min, scaling falls back to 0.
	assert.Equal(t, 0.0, summaries[0].TotalMonetaryScaled)
}

func TestBuildParetoSummaries(t *testing.T) {
	summaries := BuildParetoSummaries(summaryFixtureRecords(), nil)
	assert.Len(t, summaries, 3)

	// Ordered by revenue descending.
	assert.Equal(t, SegmentChampions, summaries[0].Segment)
	assert.Equal(t, SegmentLoyal, summaries[1].Segment)
	assert.Equal(t, SegmentLostCustomers, summaries[2].Segment)

	assert.InDelta(t, 60.0, summaries[0].CumulativePercent, 1e-9)
	assert.InDelta(t, 90.0, summaries[1].CumulativePercent, 1e-9)
	assert.InDelta(t, 100.0, summaries[2].CumulativePercent, 1e-9)
}

func TestBuildParetoSummariesEqualRevenueTieBreak(t *testing.T) {
	records := []Record{
		{CustomerID: "c1", Segment: SegmentLoyal, Monetary: 100},
		{CustomerID: "c2", Segment: SegmentChampions, Monetary: 100},
	}

	summaries := BuildParetoSummaries(records, nil)
	assert.Equal(t, SegmentChampions, summaries[0].Segment)
	assert.Equal(t, SegmentLoyal, summaries[1].Segment)
}

func TestBuildSummariesZeroRevenue(t *testing.T) {
	records := []Record{
		{CustomerID: "c1", Segment: SegmentChampions, Monetary: 0},
		{CustomerID: "c2", Segment: SegmentLoyal, Monetary: 0},
	}

	summaries := BuildParetoSummaries(records, nil)
	assert.Len(t, summaries, 2)
	for _, summary := range summaries {
		assert.Equal(t, 0.0, summary.TotalMonetaryPercent)
		assert.Equal(t, 0.0, summary.TotalMonetaryScaled)
		assert.Equal(t, 0.0, summary.CumulativePercent)
	}
}

func TestBuildSegmentSummariesEmpty(t *testing.T) {
	summaries := BuildSegmentSummaries(nil, nil)
	assert.NotNil(t, summaries)
	assert.Len(t, summaries, 0)
}
