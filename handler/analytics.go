package handler

import (
	"fmt"
	"net/http"
	"time"

	"ecomdash/metrics"
	"ecomdash/model"
	U "ecomdash/util"

	"github.com/gin-gonic/gin"
)

const (
	defaultTopCategoriesLimit    = 15
	defaultTopSellersLimit       = 15
	defaultTopGeolocationsLimit  = 10
	defaultCustomerProfilesLimit = 100
)

// OrderStatusHandler godoc
// Distribution of order statuses for the filtered window.
func OrderStatusHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("order_status", params)
	var cachedResult model.QueryResult
	if found, response := getResponseIfCachedQuery(query, &cachedResult); found {
		c.JSON(http.StatusOK, response)
		return
	}

	startTime := time.Now()
	result := model.GetOrderStatusCounts(model.ApplyFilters(dataset, params))
	metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))

	c.JSON(http.StatusOK, setQueryCacheResult(query, result))
}

// OrdersOverTimeHandler godoc
// Order counts bucketed by day, week or month of purchase.
func OrdersOverTimeHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	granularity := c.DefaultQuery("granularity", model.GranularityDaily)

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("orders_over_time", params)
	query.Granularity = granularity
	var cachedResult model.QueryResult
	if found, response := getResponseIfCachedQuery(query, &cachedResult); found {
		c.JSON(http.StatusOK, response)
		return
	}

	startTime := time.Now()
	result, errCode := model.GetOrdersOverTime(model.ApplyFilters(dataset, params), granularity)
	if errCode != http.StatusOK {
		c.AbortWithStatusJSON(errCode, gin.H{"error": fmt.Sprintf("invalid granularity %s", granularity)})
		return
	}
	metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))

	c.JSON(http.StatusOK, setQueryCacheResult(query, result))
}

// PaymentTypesHandler godoc
// Distribution of payment types over payment rows of filtered orders.
func PaymentTypesHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("payment_types", params)
	var cachedResult model.QueryResult
	if found, response := getResponseIfCachedQuery(query, &cachedResult); found {
		c.JSON(http.StatusOK, response)
		return
	}

	startTime := time.Now()
	result := model.GetPaymentTypeCounts(model.ApplyFilters(dataset, params))
	metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))

	c.JSON(http.StatusOK, setQueryCacheResult(query, result))
}

// ReviewScoresHandler godoc
// Distribution of review scores over reviews of filtered orders.
func ReviewScoresHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("review_scores", params)
	var cachedResult model.QueryResult
	if found, response := getResponseIfCachedQuery(query, &cachedResult); found {
		c.JSON(http.StatusOK, response)
		return
	}

	startTime := time.Now()
	result := model.GetReviewScoreCounts(model.ApplyFilters(dataset, params))
	metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))

	c.JSON(http.StatusOK, setQueryCacheResult(query, result))
}

// TopCategoriesHandler godoc
// Product categories ranked by item count with revenue share.
func TopCategoriesHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseLimitParam(c, defaultTopCategoriesLimit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("top_categories", params)
	query.Limit = limit
	var cachedResult model.QueryResult
	if found, response := getResponseIfCachedQuery(query, &cachedResult); found {
		c.JSON(http.StatusOK, response)
		return
	}

	startTime := time.Now()
	result := model.GetTopProductCategories(dataset, model.ApplyFilters(dataset, params), limit)
	metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))

	c.JSON(http.StatusOK, setQueryCacheResult(query, result))
}

// TopSellersHandler godoc
// Sellers ranked by items sold with revenue totals.
func TopSellersHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseLimitParam(c, defaultTopSellersLimit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("top_sellers", params)
	query.Limit = limit
	var cachedResult model.QueryResult
	if found, response := getResponseIfCachedQuery(query, &cachedResult); found {
		c.JSON(http.StatusOK, response)
		return
	}

	startTime := time.Now()
	result := model.GetTopSellers(model.ApplyFilters(dataset, params), limit)
	metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))

	c.JSON(http.StatusOK, setQueryCacheResult(query, result))
}

// TopGeolocationHandler godoc
// Customer city and state pairs ranked by delivered revenue, annotated
// with representative coordinates for map rendering.
func TopGeolocationHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseLimitParam(c, defaultTopGeolocationsLimit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("top_geolocation", params)
	query.Limit = limit
	var cachedResult model.QueryResult
	if found, response := getResponseIfCachedQuery(query, &cachedResult); found {
		c.JSON(http.StatusOK, response)
		return
	}

	startTime := time.Now()
	result := model.GetTopGeolocationSales(dataset, model.ApplyFilters(dataset, params), limit)
	metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))

	c.JSON(http.StatusOK, setQueryCacheResult(query, result))
}

// CustomerProfilesResponse Pages through per customer purchase aggregates.
// Count is the total before paging.
type CustomerProfilesResponse struct {
	Count    int                          `json:"count"`
	Profiles []model.CustomerOrderProfile `json:"profiles"`
}

// CustomerProfilesHandler godoc
// Per customer order aggregates, ordered by order count descending. The
// full list is cached once per filter set and paged on read, so every
// page of the same filters reuses one cache entry.
func CustomerProfilesHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseLimitParam(c, defaultCustomerProfilesLimit)
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

	query := queryDescriptorForParams("customer_profiles", params)
	var profiles []model.CustomerOrderProfile
	found, response := getResponseIfCachedQuery(query, &profiles)
	if !found {
		startTime := time.Now()
		profiles = model.BuildCustomerOrderProfiles(model.ApplyFilters(dataset, params))
		metrics.RecordLatency(metrics.LatencyDashboardQuery, float64(time.Since(startTime).Milliseconds()))
		response = setQueryCacheResult(query, profiles)
	}

	response.Result = CustomerProfilesResponse{
		Count:    len(profiles),
		Profiles: pageCustomerProfiles(profiles, limit, offset),
	}
	c.JSON(http.StatusOK, response)
}

func pageCustomerProfiles(profiles []model.CustomerOrderProfile, limit, offset int) []model.CustomerOrderProfile {
	if offset >= len(profiles) {
		return []model.CustomerOrderProfile{}
	}
	end := U.MinInt(offset+limit, len(profiles))
	return profiles[offset:end]
}
