package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ecomdash/cache"
	C "ecomdash/config"
	"ecomdash/metrics"
	"ecomdash/model"
	"ecomdash/rfm"
	U "ecomdash/util"

	"github.com/gin-gonic/gin"
)

// DashboardQueryResponsePayload Query response with cache and refreshed_at.
type DashboardQueryResponsePayload struct {
	Result      interface{} `json:"result"`
	Cache       bool        `json:"cache"`
	RefreshedAt int64       `json:"refreshed_at"`
}

// parseFilterParams Reads the shared dashboard filters from the request.
// from/to are dates as 2006-01-02, list filters are comma separated.
func parseFilterParams(c *gin.Context) (model.FilterParams, error) {
	var params model.FilterParams

	if fromParam := c.Query("from"); fromParam != "" {
		from, err := U.ParseDateOnly(fromParam)
		if err != nil {
			return params, fmt.Errorf("invalid from date %s", fromParam)
		}
		params.From = from
	}
	if toParam := c.Query("to"); toParam != "" {
		to, err := U.ParseDateOnly(toParam)
		if err != nil {
			return params, fmt.Errorf("invalid to date %s", toParam)
		}
		params.To = to
	}
	if !params.From.IsZero() && !params.To.IsZero() && params.From.After(params.To) {
		return params, fmt.Errorf("from date is after to date")
	}

	params.States = U.CleanSplitByDelimiter(c.Query("states"), ",")
	params.Cities = U.CleanSplitByDelimiter(c.Query("cities"), ",")
	params.Segments = U.CleanSplitByDelimiter(c.Query("segments"), ",")
	return params, nil
}

func parseLimitParam(c *gin.Context, defaultLimit int) (int, error) {
	limitParam := c.Query("limit")
	if limitParam == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %s", limitParam)
	}
	return limit, nil
}

func parseOffsetParam(c *gin.Context) (int, error) {
	offsetParam := c.Query("offset")
	if offsetParam == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(offsetParam)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid offset %s", offsetParam)
	}
	return offset, nil
}

// getDatasetForRequest Returns the assembled dataset, responding 503 while
// it is still loading.
func getDatasetForRequest(c *gin.Context) (*model.Dataset, bool) {
	if !C.IsDatasetReady() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			gin.H{"error": "Dataset not loaded yet."})
		return nil, false
	}

	dataset, err := C.GetServices().DatasetStore.GetDataset()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "Failed to get dataset."})
		return nil, false
	}
	return dataset, true
}

func queryDescriptorForParams(name string, params model.FilterParams) *cache.QueryDescriptor {
	descriptor := &cache.QueryDescriptor{
		Name:   name,
		States: params.States,
		Cities: params.Cities,
	}
	if !params.From.IsZero() {
		descriptor.From = params.From.Unix()
	}
	if !params.To.IsZero() {
		descriptor.To = params.To.Unix()
	}
	return descriptor
}

// rfmQueryDescriptorForParams Descriptor carrying the segment filter, which
// only the RFM queries honor.
func rfmQueryDescriptorForParams(name string, params model.FilterParams) *cache.QueryDescriptor {
	descriptor := queryDescriptorForParams(name, params)
	descriptor.Segments = params.Segments
	return descriptor
}

// getResponseIfCachedQuery Returns the cached response payload for the
// query when present.
func getResponseIfCachedQuery(query *cache.QueryDescriptor, resultContainer interface{}) (bool, DashboardQueryResponsePayload) {
	refreshedAt, found := C.GetServices().QueryCache.Get(query, resultContainer)
	if !found {
		return false, DashboardQueryResponsePayload{}
	}
	return true, DashboardQueryResponsePayload{Result: resultContainer, Cache: true, RefreshedAt: refreshedAt}
}

// setQueryCacheResult Caches a computed result and wraps it for response.
func setQueryCacheResult(query *cache.QueryDescriptor, result interface{}) DashboardQueryResponsePayload {
	C.GetServices().QueryCache.Put(query, result)
	return DashboardQueryResponsePayload{Result: result, Cache: false, RefreshedAt: U.TimeNowUnix()}
}

// buildRFMRecordsForParams Runs the full segmentation over the filtered
// orders. Recomputed per request, quantile breakpoints shift with every
// filter change.
func buildRFMRecordsForParams(dataset *model.Dataset, params model.FilterParams) []rfm.Record {
	startTime := time.Now()
	data := model.ApplyFilters(dataset, params)
	profiles := model.BuildCustomerOrderProfiles(data)
	records := rfm.BuildRecords(profiles)
	metrics.RecordLatency(metrics.LatencyRFMCompute, float64(time.Since(startTime).Milliseconds()))
	return records
}
