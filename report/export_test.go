package report

import (
	"encoding/json"
	"io/ioutil"
	"strings"
	"testing"
	"time"

	"ecomdash/rfm"
	serviceDisk "ecomdash/services/disk"

	"github.com/stretchr/testify/assert"
)

func reportFixture() ([]rfm.Record, []rfm.SegmentSummary, []rfm.SegmentSummary) {
	records := []rfm.Record{
		{
			CustomerID:       "c1",
			LastPurchaseDate: time.Date(2018, 8, 29, 15, 0, 0, 0, time.UTC),
			RecencyDays:      1,
			Frequency:        5,
			Monetary:         600,
			RecencyScore:     5,
			FrequencyScore:   5,
			MonetaryScore:    5,
			Code:             "555",
			Segment:          rfm.SegmentChampions,
		},
		{
			CustomerID:     "c2",
			RecencyDays:    0,
			Frequency:      1,
			Monetary:       100,
			RecencyScore:   1,
			FrequencyScore: 1,
			MonetaryScore:  1,
			Code:           "111",
			Segment:        rfm.SegmentLostCustomers,
		},
	}
	summaries := []rfm.SegmentSummary{
		{Segment: rfm.SegmentChampions, CustomerCount: 1, TotalMonetary: 600,
			TotalMonetaryPercent: 85.71, TotalMonetaryScaled: 1},
		{Segment: rfm.SegmentLostCustomers, CustomerCount: 1, TotalMonetary: 100,
			TotalMonetaryPercent: 14.29, TotalMonetaryScaled: 0},
	}
	pareto := []rfm.SegmentSummary{
		{Segment: rfm.SegmentChampions, CustomerCount: 1, TotalMonetary: 600,
			TotalMonetaryPercent: 85.71, CumulativePercent: 85.71},
		{Segment: rfm.SegmentLostCustomers, CustomerCount: 1, TotalMonetary: 100,
			TotalMonetaryPercent: 14.29, CumulativePercent: 100},
	}
	return records, summaries, pareto
}

func TestBuildRFMWorkbook(t *testing.T) {
	records, summaries, pareto := reportFixture()

	file, err := BuildRFMWorkbook(records, summaries, pareto)
	assert.Nil(t, err)
	assert.Equal(t, []string{"Records", "Summary", "Pareto"}, file.GetSheetList())

	recordRows, err := file.GetRows(sheetRecords)
	assert.Nil(t, err)
	assert.Len(t, recordRows, 3)
	assert.Equal(t, "customer_id", recordRows[0][0])
	assert.Equal(t, []string{"c1", "2018-08-29", "1", "5", "600", "5", "5", "5", "555", "Champions"},
		recordRows[1])
	// A missing last purchase date exports as an empty cell.
	assert.Equal(t, "c2", recordRows[2][0])
	assert.Equal(t, "111", recordRows[2][8])

	summaryRows, err := file.GetRows(sheetSummary)
	assert.Nil(t, err)
	assert.Len(t, summaryRows, 3)
	assert.Equal(t, "total_monetary_scaled", summaryRows[0][4])
	assert.Equal(t, "Champions", summaryRows[1][0])

	paretoRows, err := file.GetRows(sheetPareto)
	assert.Nil(t, err)
	assert.Equal(t, "cumulative_percent", paretoRows[0][4])
	assert.Equal(t, "100", paretoRows[2][4])
}

func TestExportRFMWorkbook(t *testing.T) {
	records, summaries, pareto := reportFixture()
	diskManager := serviceDisk.New(t.TempDir())
	exporter := NewExporter(diskManager)

	path, fileName, err := exporter.ExportRFMWorkbook(records, summaries, pareto)
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(fileName, "rfm_report_"))
	assert.True(t, strings.HasSuffix(fileName, ".xlsx"))

	files := diskManager.ListFiles(diskManager.GetReportsDir())
	assert.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], fileName))

	size, err := diskManager.GetObjectSize(path, fileName)
	assert.Nil(t, err)
	assert.True(t, size > 0)
}

func TestExportRFMJSON(t *testing.T) {
	records, summaries, pareto := reportFixture()
	diskManager := serviceDisk.New(t.TempDir())
	exporter := NewExporter(diskManager)

	path, fileName, err := exporter.ExportRFMJSON(records, summaries, pareto)
	assert.Nil(t, err)
	assert.True(t, strings.HasSuffix(fileName, ".json"))

	reader, err := diskManager.Get(path, fileName)
	assert.Nil(t, err)
	defer reader.Close()
	payload, err := ioutil.ReadAll(reader)
	assert.Nil(t, err)

	var report RFMReport
	assert.Nil(t, json.Unmarshal(payload, &report))
	assert.Len(t, report.Records, 2)
	assert.Len(t, report.Summary, 2)
	assert.Len(t, report.Pareto, 2)
	assert.Equal(t, "555", report.Records[0].Code)
	assert.True(t, report.GeneratedAt > 0)

	// Two exports never share a file name.
	_, secondName, err := exporter.ExportRFMJSON(records, summaries, pareto)
	assert.Nil(t, err)
	assert.NotEqual(t, fileName, secondName)
}
