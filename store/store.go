package store

import (
	"sync"
	"time"

	"ecomdash/filestore"
	"ecomdash/metrics"
	"ecomdash/model"

	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"
)

const DefaultTableCacheSize = 16

// DatasetStore parses dataset CSVs into in memory tables and serves the
// assembled cleaned dataset. The dataset is assembled once and then
// reused. Parsed tables are cached individually so an assembly that fails
// midway resumes without re-reading every file.
type DatasetStore struct {
	loader     *DatasetLoader
	tableCache *lru.Cache

	mu      sync.RWMutex
	dataset *model.Dataset
}

func NewDatasetStore(baseURL string, downloadTimeout time.Duration,
	diskManager filestore.FileManager, tableCacheSize int) (*DatasetStore, error) {
	if tableCacheSize <= 0 {
		tableCacheSize = DefaultTableCacheSize
	}
	tableCache, err := lru.New(tableCacheSize)
	if err != nil {
		return nil, err
	}

	return &DatasetStore{
		loader:     NewDatasetLoader(baseURL, downloadTimeout, diskManager),
		tableCache: tableCache,
	}, nil
}

// IsLoaded Whether the assembled dataset is ready to serve queries.
func (store *DatasetStore) IsLoaded() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.dataset != nil
}

// GetDataset Returns the assembled dataset, loading it on first use.
func (store *DatasetStore) GetDataset() (*model.Dataset, error) {
	store.mu.RLock()
	dataset := store.dataset
	store.mu.RUnlock()
	if dataset != nil {
		return dataset, nil
	}
	return store.LoadDataset()
}

// LoadDataset Parses all dataset tables, cleans them and memoizes the
// result. Concurrent callers share one load.
func (store *DatasetStore) LoadDataset() (*model.Dataset, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.dataset != nil {
		return store.dataset, nil
	}

	startTime := time.Now()
	dataset := &model.Dataset{}
	for _, name := range model.DatasetNames {
		if err := store.loadTable(dataset, name); err != nil {
			return nil, err
		}
	}
	dataset.Clean()

	totalRows := 0
	for _, count := range dataset.RowCounts() {
		totalRows += count
	}
	metrics.RecordLatency(metrics.LatencyDatasetLoad, float64(time.Since(startTime).Milliseconds()))
	metrics.CountInt(metrics.CountDatasetRows, int64(totalRows))
	log.WithFields(log.Fields{
		"rows":           totalRows,
		"duration_in_ms": time.Since(startTime).Milliseconds(),
	}).Info("Loaded dataset.")

	store.dataset = dataset
	return dataset, nil
}

func (store *DatasetStore) loadTable(dataset *model.Dataset, name string) error {
	if rows, exists := store.getTableFromCache(name); exists {
		if dataset.SetTable(name, rows) {
			return nil
		}
	}

	reader, err := store.loader.Open(name)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := dataset.ParseTable(name, reader); err != nil {
		return err
	}
	store.putTableInCache(name, dataset)
	return nil
}

func (store *DatasetStore) getTableFromCache(name string) (interface{}, bool) {
	return store.tableCache.Get(name)
}

func (store *DatasetStore) putTableInCache(name string, dataset *model.Dataset) {
	rows, exists := dataset.Table(name)
	if !exists {
		return
	}
	store.tableCache.Add(name, rows)
}
