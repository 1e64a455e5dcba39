package config

import (
	json "encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"ecomdash/cache"
	"ecomdash/filestore"
	serviceDisk "ecomdash/services/disk"
	"ecomdash/store"

	"github.com/evalphobia/logrus_sentry"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var configFilePath = flag.String("config_filepath", "", "Optional json file overriding flag configuration.")
var initiated bool = false

const DEVELOPMENT = "development"

// Prefix for environment overrides, i.e ECOMDASH_PORT=8090.
const envConfigPrefix = "ecomdash"

type Configuration struct {
	AppName             string `json:"-" ignored:"true"`
	Env                 string `json:"env" envconfig:"env"`
	Port                int    `json:"port" envconfig:"port"`
	DatasetBaseURL      string `json:"dataset_base_url" envconfig:"dataset_base_url"`
	DataDir             string `json:"data_dir" envconfig:"data_dir"`
	DownloadTimeoutSecs int    `json:"download_timeout_secs" envconfig:"download_timeout_secs"`
	TableCacheSize      int    `json:"table_cache_size" envconfig:"table_cache_size"`
	QueryCacheSize      int    `json:"query_cache_size" envconfig:"query_cache_size"`
	LazyDatasetLoad     bool   `json:"lazy_dataset_load" envconfig:"lazy_dataset_load"`
	SentryDSN           string `json:"sentry_dsn" envconfig:"sentry_dsn"`
}

type Services struct {
	DiskManager  filestore.FileManager
	DatasetStore *store.DatasetStore
	QueryCache   *cache.QueryCache
}

var configuration *Configuration = nil
var services *Services = nil
var sentryHook *logrus_sentry.SentryHook = nil

func initLogging() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}
}

func initConfigFromFile() error {
	configFileAbsPath, _ := filepath.Abs(*configFilePath)

	logCtx := log.WithFields(log.Fields{
		"file": configFileAbsPath,
	})

	raw, err := ioutil.ReadFile(configFileAbsPath)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load config")
		return err
	}

	if err := json.Unmarshal(raw, &configuration); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal json")
		return err
	}
	logCtx.WithFields(log.Fields{"config": configuration}).Info("Config File Loaded")
	return nil
}

func initSentryLogging() {
	if configuration.SentryDSN == "" {
		log.Info("Sentry logging is disabled. No DSN provided.")
		return
	}

	levels := []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel}
	hook, err := logrus_sentry.NewAsyncSentryHook(configuration.SentryDSN, levels)
	if err != nil {
		log.WithError(err).Error("Failed to initialize sentry hook")
		return
	}

	hook.Timeout = 5 * time.Second
	hook.StacktraceConfiguration.Enable = true
	hook.SetEnvironment(configuration.Env)
	log.AddHook(hook)
	sentryHook = hook
}

// SafeFlushSentryHook Flushes queued sentry events before shutdown.
func SafeFlushSentryHook() {
	if sentryHook != nil {
		sentryHook.Flush()
	}
}

func applyDefaults() {
	if configuration.AppName == "" {
		configuration.AppName = "dashboard_server"
	}
	if configuration.Env == "" {
		configuration.Env = DEVELOPMENT
	}
	if configuration.DatasetBaseURL == "" {
		configuration.DatasetBaseURL = store.DefaultDatasetBaseURL
	}
	if configuration.DataDir == "" {
		configuration.DataDir = "/tmp/ecomdash"
	}
	if configuration.DownloadTimeoutSecs <= 0 {
		configuration.DownloadTimeoutSecs = 300
	}
}

func initServices() error {
	diskManager := serviceDisk.New(configuration.DataDir)

	datasetStore, err := store.NewDatasetStore(configuration.DatasetBaseURL,
		time.Duration(configuration.DownloadTimeoutSecs)*time.Second,
		diskManager, configuration.TableCacheSize)
	if err != nil {
		log.WithError(err).Error("Failed dataset store initialization")
		return err
	}
	log.Info("Dataset store initialized")

	queryCache, err := cache.NewQueryCache(configuration.QueryCacheSize)
	if err != nil {
		log.WithError(err).Error("Failed query cache initialization")
		return err
	}

	services = &Services{
		DiskManager:  diskManager,
		DatasetStore: datasetStore,
		QueryCache:   queryCache,
	}

	if configuration.LazyDatasetLoad {
		// Serve requests immediately and let the dataset assemble in the
		// background. Handlers respond 503 until it is ready.
		go warmDatasetStore(datasetStore)
		return nil
	}

	if _, err := datasetStore.LoadDataset(); err != nil {
		log.WithError(err).Error("Failed to load dataset")
		return err
	}
	return nil
}

func warmDatasetStore(datasetStore *store.DatasetStore) {
	if _, err := datasetStore.LoadDataset(); err != nil {
		log.WithError(err).Error("Failed to load dataset in background")
	}
}

// Init Applies configuration from the given struct, an optional json file
// and environment overrides in that order, then initializes logging and
// the dataset services.
func Init(config *Configuration) error {
	if initiated {
		return fmt.Errorf("Config already initialized")
	}

	configuration = config
	if *configFilePath != "" {
		if err := initConfigFromFile(); err != nil {
			return err
		}
	}
	if err := envconfig.Process(envConfigPrefix, configuration); err != nil {
		log.WithError(err).Error("Failed to apply environment overrides")
		return err
	}
	applyDefaults()

	initLogging()
	initSentryLogging()

	if err := initServices(); err != nil {
		return err
	}

	initiated = true
	return nil
}

func GetConfig() *Configuration {
	return configuration
}

func GetServices() *Services {
	return services
}

func IsDevelopment() bool {
	return (strings.Compare(configuration.Env, DEVELOPMENT) == 0)
}

// IsDatasetReady Whether the dataset finished assembling and dashboard
// queries can be served.
func IsDatasetReady() bool {
	return services != nil && services.DatasetStore.IsLoaded()
}
