package main

import (
	"flag"
	"strconv"

	C "ecomdash/config"
	H "ecomdash/handler"
	"ecomdash/metrics"
	mid "ecomdash/middleware"
	"ecomdash/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ./app --env=development --port=8080 --data_dir=/usr/local/var/ecomdash --lazy_dataset_load
func main() {

	env := flag.String("env", C.DEVELOPMENT, "")
	port := flag.Int("port", 8080, "")

	datasetBaseURL := flag.String("dataset_base_url", store.DefaultDatasetBaseURL,
		"Base url of the dataset archive.")
	dataDir := flag.String("data_dir", "/usr/local/var/ecomdash",
		"Directory for downloaded datasets and exported reports.")
	downloadTimeoutSecs := flag.Int("download_timeout_secs", 300, "")

	tableCacheSize := flag.Int("table_cache_size", 16,
		"Number of parsed raw tables held in memory.")
	queryCacheSize := flag.Int("query_cache_size", 512,
		"Number of dashboard query results held in memory.")
	lazyDatasetLoad := flag.Bool("lazy_dataset_load", false,
		"Load the dataset in the background instead of blocking startup.")

	sentryDSN := flag.String("sentry_dsn", "", "Sentry DSN")
	flag.Parse()

	config := &C.Configuration{
		AppName:             "dashboard_server",
		Env:                 *env,
		Port:                *port,
		DatasetBaseURL:      *datasetBaseURL,
		DataDir:             *dataDir,
		DownloadTimeoutSecs: *downloadTimeoutSecs,
		TableCacheSize:      *tableCacheSize,
		QueryCacheSize:      *queryCacheSize,
		LazyDatasetLoad:     *lazyDatasetLoad,
		SentryDSN:           *sentryDSN,
	}

	// Initialize configs and services.
	err := C.Init(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize.")
		return
	}
	defer C.SafeFlushSentryHook()

	metrics.InitMetrics(C.GetConfig().Env, C.GetConfig().AppName)

	if !C.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mid.AddSecurityHeadersForAppRoutes())
	// Root middleware for cors.
	r.Use(mid.CustomCors())
	r.Use(mid.RequestIdGenerator())
	r.Use(mid.Logger())
	r.Use(mid.Recovery())

	// Initialize routes.
	H.InitAppRoutes(r)
	r.Run(":" + strconv.Itoa(C.GetConfig().Port))
}
