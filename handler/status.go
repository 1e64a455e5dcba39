package handler

import (
	C "ecomdash/config"
	"ecomdash/model"
	"ecomdash/rfm"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusHandler godoc
// Reports environment and dataset readiness. Row counts are included
// only once the dataset has finished loading.
func StatusHandler(c *gin.Context) {
	status := gin.H{
		"env":            C.GetConfig().Env,
		"dataset_loaded": C.IsDatasetReady(),
	}

	if C.IsDatasetReady() {
		dataset, err := C.GetServices().DatasetStore.GetDataset()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Failed to get dataset."})
			return
		}
		status["row_counts"] = dataset.RowCounts()
	}

	c.JSON(http.StatusOK, status)
}

// DatasetsHandler godoc
// Returns a head sample of every loaded table. Not cached, previews
// are cheap to build.
func DatasetsHandler(c *gin.Context) {
	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"datasets": model.GetDatasetOverview(dataset)})
}

// FilterOptionsHandler godoc
// Returns the selectable filter values for the dashboard. Cities are
// restricted to the selected states when the states param is given.
func FilterOptionsHandler(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataset, ok := getDatasetForRequest(c)
	if !ok {
		return
	}

	query := queryDescriptorForParams("filter_options", params)
	var cachedOptions model.FilterOptions
	if found, response := getResponseIfCachedQuery(query, &cachedOptions); found {
		c.JSON(http.StatusOK, response)
		return
	}

	options := model.GetFilterOptions(dataset, params.States)
	options.Segments = rfm.SegmentsPresent(buildRFMRecordsForParams(dataset, params))

	c.JSON(http.StatusOK, setQueryCacheResult(query, options))
}
