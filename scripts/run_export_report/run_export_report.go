package main

// Builds the RFM report for a filter window and writes it under the
// data directory, without running the server.
// go run run_export_report.go --data_dir=/usr/local/var/ecomdash --format=xlsx --states=SP,RJ

import (
	"flag"
	"time"

	"ecomdash/model"
	"ecomdash/report"
	"ecomdash/rfm"
	serviceDisk "ecomdash/services/disk"
	"ecomdash/store"
	U "ecomdash/util"

	log "github.com/sirupsen/logrus"
)

func main() {
	datasetBaseURL := flag.String("dataset_base_url", store.DefaultDatasetBaseURL, "")
	dataDir := flag.String("data_dir", "/usr/local/var/ecomdash", "")
	downloadTimeoutSecs := flag.Int("download_timeout_secs", 300, "")

	from := flag.String("from", "", "Start date as YYYY-MM-DD.")
	to := flag.String("to", "", "End date as YYYY-MM-DD.")
	states := flag.String("states", "", "Comma separated customer states.")
	cities := flag.String("cities", "", "Comma separated customer cities.")
	segments := flag.String("segments", "", "Comma separated segment names.")
	format := flag.String("format", report.FormatXLSX, "Report format as xlsx or json.")
	flag.Parse()

	if *format != report.FormatXLSX && *format != report.FormatJSON {
		log.WithField("format", *format).Fatal("Invalid report format.")
	}

	params := model.FilterParams{
		States:   U.CleanSplitByDelimiter(*states, ","),
		Cities:   U.CleanSplitByDelimiter(*cities, ","),
		Segments: U.CleanSplitByDelimiter(*segments, ","),
	}
	if *from != "" {
		fromDate, err := U.ParseDateOnly(*from)
		if err != nil {
			log.WithError(err).Fatal("Invalid from date.")
		}
		params.From = fromDate
	}
	if *to != "" {
		toDate, err := U.ParseDateOnly(*to)
		if err != nil {
			log.WithError(err).Fatal("Invalid to date.")
		}
		params.To = toDate
	}

	diskManager := serviceDisk.New(*dataDir)
	datasetStore, err := store.NewDatasetStore(*datasetBaseURL,
		time.Duration(*downloadTimeoutSecs)*time.Second, diskManager, 0)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize dataset store.")
	}
	dataset, err := datasetStore.LoadDataset()
	if err != nil {
		log.WithError(err).Fatal("Failed to load dataset.")
	}

	records := rfm.FilterRecordsBySegments(
		rfm.BuildRecords(model.BuildCustomerOrderProfiles(model.ApplyFilters(dataset, params))),
		params.Segments)
	summaries := rfm.BuildSegmentSummaries(records, nil)
	pareto := rfm.BuildParetoSummaries(records, nil)

	exporter := report.NewExporter(diskManager)
	var path, fileName string
	if *format == report.FormatXLSX {
		path, fileName, err = exporter.ExportRFMWorkbook(records, summaries, pareto)
	} else {
		path, fileName, err = exporter.ExportRFMJSON(records, summaries, pareto)
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to export report.")
	}

	log.WithFields(log.Fields{"path": path, "file": fileName,
		"records": len(records), "segments": rfm.SegmentsPresent(records)}).Info("Report exported.")
}
