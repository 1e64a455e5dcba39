package rfm

import (
	"fmt"
	"sort"
	"time"

	"ecomdash/model"
	U "ecomdash/util"
)

// Record is one customer's RFM measures, scores and segment.
type Record struct {
	CustomerID       string    `json:"customer_id"`
	LastPurchaseDate time.Time `json:"last_purchase_date"`
	RecencyDays      int       `json:"recency_days"`
	Frequency        int       `json:"frequency"`
	Monetary         float64   `json:"monetary"`
	RecencyScore     int       `json:"recency_score"`
	FrequencyScore   int       `json:"frequency_score"`
	MonetaryScore    int       `json:"monetary_score"`
	Code             string    `json:"rfm_code"`
	Segment          string    `json:"segment"`
}

// BuildRecords Derives scored RFM records from customer order profiles.
// Recency is measured against an anchor one day after the latest purchase
// in the population, so the most recent buyer has recency 1. Profiles with
// a missing last purchase date get recency 0 and are never dropped.
// Records are ordered by last purchase date ascending.
func BuildRecords(profiles []model.CustomerOrderProfile) []Record {
	records := make([]Record, 0, len(profiles))
	if len(profiles) == 0 {
		return records
	}

	var anchor time.Time
	for i := range profiles {
		if profiles[i].LastPurchaseDate.After(anchor) {
			anchor = profiles[i].LastPurchaseDate
		}
	}
	anchor = anchor.AddDate(0, 0, 1)

	recencyValues := make([]float64, 0, len(profiles))
	frequencyValues := make([]float64, 0, len(profiles))
	monetaryValues := make([]float64, 0, len(profiles))
	for _, profile := range profiles {
		recencyDays := 0
		if !profile.LastPurchaseDate.IsZero() {
			recencyDays = U.GetDaysBetween(profile.LastPurchaseDate, anchor)
		}

		records = append(records, Record{
			CustomerID:       profile.CustomerID,
			LastPurchaseDate: profile.LastPurchaseDate,
			RecencyDays:      recencyDays,
			Frequency:        profile.OrderCount,
			Monetary:         profile.TotalMonetary,
		})
		recencyValues = append(recencyValues, float64(recencyDays))
		frequencyValues = append(frequencyValues, float64(profile.OrderCount))
		monetaryValues = append(monetaryValues, profile.TotalMonetary)
	}

	recencyBreakpoints := GetQuintileBreakpoints(recencyValues)
	frequencyBreakpoints := GetQuintileBreakpoints(frequencyValues)
	monetaryBreakpoints := GetQuintileBreakpoints(monetaryValues)

	for i := range records {
		records[i].RecencyScore = RecencyScore(float64(records[i].RecencyDays), recencyBreakpoints)
		records[i].FrequencyScore = ValueScore(float64(records[i].Frequency), frequencyBreakpoints)
		records[i].MonetaryScore = ValueScore(records[i].Monetary, monetaryBreakpoints)
		records[i].Code = fmt.Sprintf("%d%d%d", records[i].RecencyScore,
			records[i].FrequencyScore, records[i].MonetaryScore)
		records[i].Segment = SegmentForCode(records[i].Code)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].LastPurchaseDate.Equal(records[j].LastPurchaseDate) {
			return records[i].CustomerID < records[j].CustomerID
		}
		return records[i].LastPurchaseDate.Before(records[j].LastPurchaseDate)
	})
	return records
}

// FilterRecordsBySegments Returns records belonging to any of the given
// segments. An empty segment list selects everything.
func FilterRecordsBySegments(records []Record, segments []string) []Record {
	if len(segments) == 0 {
		return records
	}

	filtered := make([]Record, 0, len(records))
	for _, record := range records {
		if U.StringValueIn(record.Segment, segments) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// SegmentsPresent Returns the sorted distinct segment names occurring in records.
func SegmentsPresent(records []Record) []string {
	seen := make(map[string]bool)
	for i := range records {
		seen[records[i].Segment] = true
	}

	segments := make([]string, 0, len(seen))
	for segment := range seen {
		segments = append(segments, segment)
	}
	sort.Strings(segments)
	return segments
}
