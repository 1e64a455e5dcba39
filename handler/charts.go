package handler

import (
	"fmt"
	"net/http"

	"ecomdash/model"
	"ecomdash/quickchart"
	"ecomdash/rfm"
	U "ecomdash/util"

	"github.com/gin-gonic/gin"
)

const (
	ChartOrderStatus     = "order_status"
	ChartOrdersOverTime  = "orders_over_time"
	ChartPaymentTypes    = "payment_types"
	ChartReviewScores    = "review_scores"
	ChartRFMPareto       = "rfm_pareto"
	ChartRFMSummaryTable = "rfm_summary_table"
)

// ChartHandler godoc
// Renders a named dashboard chart through quickchart and returns its
// image url. Charts are rebuilt on every call, the url itself embeds
// the data.
func ChartHandler(c *gin.Context) {
	chartName := c.Param("chart_name")

	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}
	data := model.ApplyFilters(dataset, params)

	var chartURL string
	switch chartName {
	case ChartOrderStatus:
		chartURL, err = quickchart.GetChartImageUrlForConfig(
			buildChartConfigForCounts("bar", "Order Status", model.GetOrderStatusCounts(data)))
	case ChartOrdersOverTime:
		granularity := c.DefaultQuery("granularity", model.GranularityDaily)
		result, errCode := model.GetOrdersOverTime(data, granularity)
		if errCode != http.StatusOK {
			c.AbortWithStatusJSON(errCode, gin.H{"error": fmt.Sprintf("invalid granularity %s", granularity)})
			return
		}
		chartURL, err = quickchart.GetChartImageUrlForConfig(
			buildChartConfigForCounts("line", "Orders Over Time", result))
	case ChartPaymentTypes:
		chartURL, err = quickchart.GetChartImageUrlForConfig(
			buildChartConfigForCounts("pie", "Payment Types", model.GetPaymentTypeCounts(data)))
	case ChartReviewScores:
		chartURL, err = quickchart.GetChartImageUrlForConfig(
			buildChartConfigForCounts("pie", "Review Scores", model.GetReviewScoreCounts(data)))
	case ChartRFMPareto:
		summaries := rfm.BuildParetoSummaries(
			buildRFMRecordsForParams(dataset, params), params.Segments)
		chartURL, err = quickchart.GetChartImageUrlForConfig(
			buildChartConfigForPareto(summaries))
	case ChartRFMSummaryTable:
		summaries := rfm.BuildSegmentSummaries(
			buildRFMRecordsForParams(dataset, params), params.Segments)
		chartURL, err = quickchart.GetTableURLfromTableConfig(
			buildTableConfigForSummaries(summaries))
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": fmt.Sprintf("invalid chart %s", chartName)})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "Failed to build chart url."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chart": chartName, "url": chartURL})
}

func buildChartConfigForCounts(chartType, title string, result model.QueryResult) quickchart.ChartConfig {
	labels := make([]interface{}, 0, len(result.Rows))
	data := make([]interface{}, 0, len(result.Rows))
	for _, row := range result.Rows {
		labels = append(labels, row[0])
		data = append(data, row[1])
	}

	return quickchart.ChartConfig{
		Type: chartType,
		Data: quickchart.ChartData{
			Labels:   labels,
			DataSets: []quickchart.Dataset{{Label: title, Data: data}},
		},
		Options: &quickchart.ChartOptions{
			Title: &quickchart.ChartTitle{Display: true, Text: title},
		},
	}
}

// buildChartConfigForPareto Bar of segment revenue with the cumulative
// share as a line on a separate percent axis.
func buildChartConfigForPareto(summaries []rfm.SegmentSummary) quickchart.ChartConfig {
	labels := make([]interface{}, 0, len(summaries))
	monetary := make([]interface{}, 0, len(summaries))
	cumulative := make([]interface{}, 0, len(summaries))
	for i := range summaries {
		labels = append(labels, summaries[i].Segment)
		monetary = append(monetary, summaries[i].TotalMonetary)
		roundedPercent, _ := U.FloatRoundOffWithPrecision(summaries[i].CumulativePercent, 2)
		cumulative = append(cumulative, roundedPercent)
	}

	return quickchart.ChartConfig{
		Type: "bar",
		Data: quickchart.ChartData{
			Labels: labels,
			DataSets: []quickchart.Dataset{
				{Label: "Total Monetary", Data: monetary, YAxisID: "monetary"},
				{Type: "line", Label: "Cumulative %", Data: cumulative, YAxisID: "percent"},
			},
		},
		Options: &quickchart.ChartOptions{
			Title: &quickchart.ChartTitle{Display: true, Text: "RFM Revenue Pareto"},
			Scales: &quickchart.ChartScales{
				YAxes: []quickchart.YAxis{
					{ID: "monetary", Position: "left", Ticks: &quickchart.AxisTicks{BeginAtZero: true}},
					{ID: "percent", Position: "right", Ticks: &quickchart.AxisTicks{BeginAtZero: true, Max: 100}},
				},
			},
		},
	}
}

func buildTableConfigForSummaries(summaries []rfm.SegmentSummary) quickchart.TableConfig {
	columns := make([]quickchart.Column, 0, 4)
	for _, column := range []struct {
		title string
		index string
	}{
		{"Segment", "segment"},
		{"Customers", "customers"},
		{"Total Monetary", "total_monetary"},
		{"Revenue Share %", "revenue_share"},
	} {
		columns = append(columns, quickchart.Column{
			Width:     len(column.title) * 10,
			Title:     column.title,
			DataIndex: column.index,
		})
	}

	rows := make([]interface{}, 0, len(summaries))
	for i := range summaries {
		rows = append(rows, map[string]interface{}{
			"segment":        summaries[i].Segment,
			"customers":      summaries[i].CustomerCount,
			"total_monetary": summaries[i].TotalMonetary,
			"revenue_share":  summaries[i].TotalMonetaryPercent,
		})
	}

	return quickchart.TableConfig{Title: "RFM Summary", Columns: columns, DataSource: rows}
}
