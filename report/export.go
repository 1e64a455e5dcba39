package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ecomdash/filestore"
	"ecomdash/rfm"
	U "ecomdash/util"

	excelize "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
)

const (
	FormatXLSX = "xlsx"
	FormatJSON = "json"

	reportBaseName = "rfm_report"

	sheetRecords = "Records"
	sheetSummary = "Summary"
	sheetPareto  = "Pareto"
)

var recordsHeader = []interface{}{"customer_id", "last_purchase_date", "recency_days",
	"frequency", "monetary", "recency_score", "frequency_score", "monetary_score",
	"rfm_code", "segment"}
var summaryHeader = []interface{}{"segment", "customer_count", "total_monetary",
	"total_monetary_percent", "total_monetary_scaled"}
var paretoHeader = []interface{}{"segment", "customer_count", "total_monetary",
	"total_monetary_percent", "cumulative_percent"}

// RFMReport Payload of a json format export.
type RFMReport struct {
	Records     []rfm.Record         `json:"records"`
	Summary     []rfm.SegmentSummary `json:"summary"`
	Pareto      []rfm.SegmentSummary `json:"pareto"`
	GeneratedAt int64                `json:"generated_at"`
}

// Exporter Writes RFM reports into the reports directory of a file manager.
type Exporter struct {
	diskManager filestore.FileManager
}

func NewExporter(diskManager filestore.FileManager) *Exporter {
	return &Exporter{diskManager: diskManager}
}

func writeSheet(file *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	file.NewSheet(sheet)
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", sheet)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return errors.Wrapf(err, "failed to write %s row %d", sheet, i)
		}
	}
	return nil
}

func recordRows(records []rfm.Record) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		rows = append(rows, []interface{}{
			record.CustomerID,
			U.GetDateOnlyString(record.LastPurchaseDate),
			record.RecencyDays,
			record.Frequency,
			record.Monetary,
			record.RecencyScore,
			record.FrequencyScore,
			record.MonetaryScore,
			record.Code,
			record.Segment,
		})
	}
	return rows
}

func summaryRows(summaries []rfm.SegmentSummary, withCumulative bool) [][]interface{} {
	rows := make([][]interface{}, 0, len(summaries))
	for _, summary := range summaries {
		row := []interface{}{
			summary.Segment,
			summary.CustomerCount,
			summary.TotalMonetary,
			summary.TotalMonetaryPercent,
		}
		if withCumulative {
			row = append(row, summary.CumulativePercent)
		} else {
			row = append(row, summary.TotalMonetaryScaled)
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildRFMWorkbook Assembles a three sheet workbook with the scored
// records, the per segment summary and the Pareto ordering.
func BuildRFMWorkbook(records []rfm.Record, summaries, pareto []rfm.SegmentSummary) (*excelize.File, error) {
	file := excelize.NewFile()

	if err := writeSheet(file, sheetRecords, recordsHeader, recordRows(records)); err != nil {
		return nil, err
	}
	if err := writeSheet(file, sheetSummary, summaryHeader, summaryRows(summaries, false)); err != nil {
		return nil, err
	}
	if err := writeSheet(file, sheetPareto, paretoHeader, summaryRows(pareto, true)); err != nil {
		return nil, err
	}

	// Drop the implicit default sheet and land on the records.
	file.DeleteSheet(file.GetSheetName(0))
	file.SetActiveSheet(file.GetSheetIndex(sheetRecords))
	return file, nil
}

// reportFileName i.e rfm_report_bq4f8a39ktf0qfqrjvh0.xlsx. The xid keeps
// concurrent exports from clobbering each other.
func reportFileName(format string) string {
	return fmt.Sprintf("%s_%s.%s", reportBaseName, xid.New().String(), format)
}

// ExportRFMWorkbook Writes the workbook to the reports directory and
// returns the directory and file name.
func (exporter *Exporter) ExportRFMWorkbook(records []rfm.Record,
	summaries, pareto []rfm.SegmentSummary) (string, string, error) {
	file, err := BuildRFMWorkbook(records, summaries, pareto)
	if err != nil {
		return "", "", err
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return "", "", errors.Wrap(err, "failed to serialize workbook")
	}

	path, fileName := exporter.diskManager.GetReportFilePathAndName(reportFileName(FormatXLSX))
	if err := exporter.diskManager.Create(path, fileName, buffer); err != nil {
		return "", "", errors.Wrap(err, "failed to store workbook")
	}

	log.WithFields(log.Fields{"path": path, "file": fileName,
		"records": len(records)}).Info("Exported RFM workbook.")
	return path, fileName, nil
}

// ExportRFMJSON Writes the report as indented json and returns the
// directory and file name.
func (exporter *Exporter) ExportRFMJSON(records []rfm.Record,
	summaries, pareto []rfm.SegmentSummary) (string, string, error) {
	report := RFMReport{
		Records:     records,
		Summary:     summaries,
		Pareto:      pareto,
		GeneratedAt: U.TimeNowUnix(),
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", "", errors.Wrap(err, "failed to marshal report")
	}

	path, fileName := exporter.diskManager.GetReportFilePathAndName(reportFileName(FormatJSON))
	if err := exporter.diskManager.Create(path, fileName, bytes.NewReader(payload)); err != nil {
		return "", "", errors.Wrap(err, "failed to store report")
	}

	log.WithFields(log.Fields{"path": path, "file": fileName,
		"records": len(records)}).Info("Exported RFM json report.")
	return path, fileName, nil
}
