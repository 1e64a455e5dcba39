package handler

import (
	"github.com/gin-gonic/gin"
)

// InitAppRoutes Registers all dashboard routes on the given engine.
func InitAppRoutes(r *gin.Engine) {
	r.GET("/status", StatusHandler)
	r.GET("/datasets", DatasetsHandler)
	r.GET("/filters/options", FilterOptionsHandler)

	r.GET("/analytics/orders/status", OrderStatusHandler)
	r.GET("/analytics/orders/over_time", OrdersOverTimeHandler)
	r.GET("/analytics/payments/types", PaymentTypesHandler)
	r.GET("/analytics/reviews/scores", ReviewScoresHandler)
	r.GET("/analytics/products/top_categories", TopCategoriesHandler)
	r.GET("/analytics/sellers/top", TopSellersHandler)
	r.GET("/analytics/geolocation/top", TopGeolocationHandler)
	r.GET("/analytics/customers/profiles", CustomerProfilesHandler)

	r.GET("/analytics/rfm/records", RFMRecordsHandler)
	r.GET("/analytics/rfm/summary", RFMSummaryHandler)
	r.GET("/analytics/rfm/pareto", RFMParetoHandler)
	r.GET("/analytics/rfm/export", RFMExportHandler)

	r.GET("/charts/:chart_name", ChartHandler)
}
