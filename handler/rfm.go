package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	C "ecomdash/config"
	"ecomdash/report"
	"ecomdash/rfm"
	U "ecomdash/util"

	"github.com/gin-gonic/gin"
)

const defaultRFMRecordsLimit = 100

// RFMRecordsResponse Pages through scored customers. Count is the total
// after the segment filter, before paging.
type RFMRecordsResponse struct {
	Count   int          `json:"count"`
	Records []rfm.Record `json:"records"`
}

// RFMRecordsHandler godoc
// Scored customer records for the filtered window. The segment filtered
// list is cached once per filter set and paged on read.
func RFMRecordsHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseLimitParam(c, defaultRFMRecordsLimit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offset, err := parseOffsetParam(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := rfmQueryDescriptorForParams("rfm_records", params)
	var records []rfm.Record
	found, response := getResponseIfCachedQuery(query, &records)
	if !found {
		records = rfm.FilterRecordsBySegments(
			buildRFMRecordsForParams(dataset, params), params.Segments)
		response = setQueryCacheResult(query, records)
	}

	response.Result = RFMRecordsResponse{
		Count:   len(records),
		Records: pageRFMRecords(records, limit, offset),
	}
	c.JSON(http.StatusOK, response)
}

func pageRFMRecords(records []rfm.Record, limit, offset int) []rfm.Record {
	if offset >= len(records) {
		return []rfm.Record{}
	}
	end := U.MinInt(offset+limit, len(records))
	return records[offset:end]
}

// RFMSummaryHandler godoc
// Per segment customer counts, revenue, revenue share and scaled revenue.
func RFMSummaryHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := rfmQueryDescriptorForParams("rfm_summary", params)
	var cachedSummaries []rfm.SegmentSummary
	if found, response := getResponseIfCachedQuery(query, &cachedSummaries); found {
		c.JSON(http.StatusOK, response)
		return
	}

	summaries := rfm.BuildSegmentSummaries(
		buildRFMRecordsForParams(dataset, params), params.Segments)

	c.JSON(http.StatusOK, setQueryCacheResult(query, summaries))
}

// RFMParetoHandler godoc
// Segment summaries ordered by revenue descending with cumulative revenue
// share, for Pareto charts.
func RFMParetoHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := rfmQueryDescriptorForParams("rfm_pareto", params)
	var cachedSummaries []rfm.SegmentSummary
	if found, response := getResponseIfCachedQuery(query, &cachedSummaries); found {
		c.JSON(http.StatusOK, response)
		return
	}

	summaries := rfm.BuildParetoSummaries(
		buildRFMRecordsForParams(dataset, params), params.Segments)

	c.JSON(http.StatusOK, setQueryCacheResult(query, summaries))
}

// RFMExportHandler godoc
// Builds the full report for the filtered window and serves it as a file
// download. Exports are written fresh on every call, never cached.
func RFMExportHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format := c.DefaultQuery("format", report.FormatXLSX)
	if format != report.FormatXLSX && format != report.FormatJSON {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": fmt.Sprintf("invalid format %s", format)})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	records := rfm.FilterRecordsBySegments(
		buildRFMRecordsForParams(dataset, params), params.Segments)
	summaries := rfm.BuildSegmentSummaries(records, nil)
	pareto := rfm.BuildParetoSummaries(records, nil)

	exporter := report.NewExporter(C.GetServices().DiskManager)
	var path, fileName string
	if format == report.FormatXLSX {
		path, fileName, err = exporter.ExportRFMWorkbook(records, summaries, pareto)
	} else {
		path, fileName, err = exporter.ExportRFMJSON(records, summaries, pareto)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "Failed to export report."})
		return
	}

	c.FileAttachment(filepath.Join(path, fileName), fileName)
}
