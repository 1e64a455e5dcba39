package cache

import (
	"fmt"
	"sort"

	"ecomdash/metrics"
	U "ecomdash/util"

	lru "github.com/hashicorp/golang-lru"
	"github.com/jinzhu/copier"
	log "github.com/sirupsen/logrus"
)

const queryCacheKeyPrefix = "dashboard:query"

// QueryDescriptor identifies a dashboard query for caching. Two requests
// that produce the same descriptor share one cached result.
type QueryDescriptor struct {
	Name        string   `json:"name"`
	From        int64    `json:"from"`
	To          int64    `json:"to"`
	States      []string `json:"states"`
	Cities      []string `json:"cities"`
	Segments    []string `json:"segments"`
	Granularity string   `json:"granularity,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}

// cacheKey builds key as prefix:name:hash, i.e dashboard:query:order_status:XK92....
// Filter lists are sorted first so that equivalent filters hash alike.
func (query *QueryDescriptor) cacheKey() (string, error) {
	canonical := *query
	canonical.States = sortedCopy(query.States)
	canonical.Cities = sortedCopy(query.Cities)
	canonical.Segments = sortedCopy(query.Segments)

	hashString, err := U.GenerateHashStringForStruct(canonical)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%s", queryCacheKeyPrefix, query.Name, hashString), nil
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	copied := append([]string(nil), values...)
	sort.Strings(copied)
	return copied
}

// cachedResult Container to save a query result along with refresh timestamp.
type cachedResult struct {
	Result      interface{}
	RefreshedAt int64
}

// QueryCache Bounded in-process cache for computed dashboard query results.
// The dataset is immutable, so entries never expire and only LRU pressure
// evicts them.
type QueryCache struct {
	results *lru.Cache
}

// NewQueryCache Returns a query cache holding up to size results.
// A size of zero or below disables caching.
func NewQueryCache(size int) (*QueryCache, error) {
	if size <= 0 {
		return &QueryCache{}, nil
	}

	results, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &QueryCache{results: results}, nil
}

// Get Copies the cached result for the query into resultContainer and
// returns the refreshed_at timestamp. Second return is false on a miss.
func (qc *QueryCache) Get(query *QueryDescriptor, resultContainer interface{}) (int64, bool) {
	if qc == nil || qc.results == nil {
		return 0, false
	}

	key, err := query.cacheKey()
	if err != nil {
		log.WithError(err).WithField("query", query.Name).
			Error("Failed to build query cache key.")
		return 0, false
	}

	value, exists := qc.results.Get(key)
	if !exists {
		metrics.Increment(metrics.IncrQueryCacheMiss)
		return 0, false
	}

	cached := value.(cachedResult)
	if err := copier.Copy(resultContainer, cached.Result); err != nil {
		log.WithError(err).WithField("query", query.Name).
			Error("Failed to copy cached query result to result container.")
		metrics.Increment(metrics.IncrQueryCacheMiss)
		return 0, false
	}

	metrics.Increment(metrics.IncrQueryCacheHit)
	return cached.RefreshedAt, true
}

// Put Stores a computed query result. No-op when the cache is disabled.
func (qc *QueryCache) Put(query *QueryDescriptor, result interface{}) {
	if qc == nil || qc.results == nil {
		return
	}

	key, err := query.cacheKey()
	if err != nil {
		log.WithError(err).WithField("query", query.Name).
			Error("Failed to build query cache key.")
		return
	}
	qc.results.Add(key, cachedResult{Result: result, RefreshedAt: U.TimeNowUnix()})
}

// Len Number of query results currently cached.
func (qc *QueryCache) Len() int {
	if qc == nil || qc.results == nil {
		return 0
	}
	return qc.results.Len()
}
