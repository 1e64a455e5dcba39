package config

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testDatasetHeaders = map[string]string{
	"olist_customers_dataset.csv":           "customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state",
	"olist_geolocation_dataset.csv":         "geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state",
	"olist_order_items_dataset.csv":         "order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value",
	"olist_order_payments_dataset.csv":      "order_id,payment_sequential,payment_type,payment_installments,payment_value",
	"olist_order_reviews_dataset.csv":       "review_id,order_id,review_score,review_comment_title,review_comment_message",
	"olist_orders_dataset.csv":              "order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date",
	"olist_products_dataset.csv":            "product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty,product_weight_g,product_length_cm,product_height_cm,product_width_cm",
	"olist_sellers_dataset.csv":             "seller_id,seller_zip_code_prefix,seller_city,seller_state",
	"product_category_name_translation.csv": "product_category_name,product_category_name_english",
}

// One Init integration covering flag struct, file overlay, environment
// override precedence and service assembly. Init is once per process, so
// the layers share a single test.
func TestInitAppliesOverridesAndStartsServices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header, exists := testDatasetHeaders[strings.TrimPrefix(r.URL.Path, "/")]
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(header + "\n"))
	}))
	defer server.Close()

	overlayPath := filepath.Join(t.TempDir(), "config.json")
	overlay := []byte(`{"port": 8095, "query_cache_size": 8}`)
	assert.Nil(t, ioutil.WriteFile(overlayPath, overlay, 0644))
	*configFilePath = overlayPath
	defer func() { *configFilePath = "" }()

	os.Setenv("ECOMDASH_PORT", "9999")
	defer os.Unsetenv("ECOMDASH_PORT")

	config := &Configuration{
		AppName:             "dashboard_server_test",
		Env:                 DEVELOPMENT,
		Port:                8090,
		DatasetBaseURL:      server.URL,
		DataDir:             t.TempDir(),
		DownloadTimeoutSecs: 5,
		TableCacheSize:      4,
		QueryCacheSize:      4,
	}
	err := Init(config)
	assert.Nil(t, err)

	// Environment beats the file overlay, the overlay beats the struct.
	assert.Equal(t, 9999, GetConfig().Port)
	assert.Equal(t, 8, GetConfig().QueryCacheSize)
	assert.Equal(t, "dashboard_server_test", GetConfig().AppName)

	assert.True(t, IsDevelopment())
	assert.NotNil(t, GetServices().DiskManager)
	assert.NotNil(t, GetServices().DatasetStore)
	assert.NotNil(t, GetServices().QueryCache)
	assert.True(t, IsDatasetReady())

	// Repeated initialization is rejected.
	assert.NotNil(t, Init(config))
}
