package model

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetOrderStatusCounts(t *testing.T) {
	ds := testDataset()
	result := GetOrderStatusCounts(ApplyFilters(ds, FilterParams{}))

	assert.Equal(t, []string{"order_status", "total"}, result.Headers)
	assert.Equal(t, [][]interface{}{
		{"delivered", 3},
		{"canceled", 1},
		{"shipped", 1},
	}, result.Rows)
}

func TestGetOrdersOverTime(t *testing.T) {
	ds := testDataset()
	filtered := ApplyFilters(ds, FilterParams{})

	daily, errCode := GetOrdersOverTime(filtered, GranularityDaily)
	assert.Equal(t, http.StatusOK, errCode)
	assert.Equal(t, []string{"period", "total"}, daily.Headers)
	assert.Equal(t, [][]interface{}{
		{"2017-10-02", 1},
		{"2017-11-15", 1},
		{"2018-01-10", 1},
		{"2018-02-05", 1},
		{"2018-03-01", 1},
	}, daily.Rows)

	weekly, errCode := GetOrdersOverTime(filtered, GranularityWeekly)
	assert.Equal(t, http.StatusOK, errCode)
	// Weeks are labelled by their Monday.
	assert.Equal(t, [][]interface{}{
		{"2017-10-02", 1},
		{"2017-11-13", 1},
		{"2018-01-08", 1},
		{"2018-02-05", 1},
		{"2018-02-26", 1},
	}, weekly.Rows)

	monthly, errCode := GetOrdersOverTime(filtered, GranularityMonthly)
	assert.Equal(t, http.StatusOK, errCode)
	assert.Equal(t, [][]interface{}{
		{"2017-10", 1},
		{"2017-11", 1},
		{"2018-01", 1},
		{"2018-02", 1},
		{"2018-03", 1},
	}, monthly.Rows)

	_, errCode = GetOrdersOverTime(filtered, "hourly")
	assert.Equal(t, http.StatusBadRequest, errCode)
}

func TestGetPaymentTypeCounts(t *testing.T) {
	ds := testDataset()
	result := GetPaymentTypeCounts(ApplyFilters(ds, FilterParams{}))

	assert.Equal(t, [][]interface{}{
		{"credit_card", 3},
		{"boleto", 1},
		{"voucher", 1},
	}, result.Rows)
}

func TestGetReviewScoreCounts(t *testing.T) {
	ds := testDataset()
	result := GetReviewScoreCounts(ApplyFilters(ds, FilterParams{}))

	assert.Equal(t, []string{"review_score", "total"}, result.Headers)
	// Ordered by score ascending, not by count.
	assert.Equal(t, [][]interface{}{
		{1, 1},
		{4, 1},
		{5, 2},
	}, result.Rows)
}

func TestGetTopProductCategories(t *testing.T) {
	ds := testDataset()
	filtered := ApplyFilters(ds, FilterParams{})

	result := GetTopProductCategories(ds, filtered, 0)
	// p3 has no product row so its item counts under the unknown fill.
	assert.Equal(t, [][]interface{}{
		{"esporte_lazer", 2},
		{"perfumaria", 2},
		{"unknown", 1},
	}, result.Rows)

	capped := GetTopProductCategories(ds, filtered, 1)
	assert.Len(t, capped.Rows, 1)
	assert.Equal(t, "esporte_lazer", capped.Rows[0][0])
}

func TestGetTopSellers(t *testing.T) {
	ds := testDataset()
	result := GetTopSellers(ApplyFilters(ds, FilterParams{}), 10)

	assert.Equal(t, [][]interface{}{
		{"s2", 3},
		{"s1", 2},
	}, result.Rows)
}

func TestGetTopGeolocationSales(t *testing.T) {
	ds := testDataset()
	result := GetTopGeolocationSales(ds, ApplyFilters(ds, FilterParams{}), 10)

	assert.Equal(t, []string{"location", "orders_count", "total_value", "lat", "lng"}, result.Headers)
	assert.Len(t, result.Rows, 2)

	// Two delivered orders for sao paulo worth 140, one for rio worth 120.
	// The sao paulo representative is the lowest zip prefix row.
	assert.Equal(t, []interface{}{"Sao Paulo, SP", 2, 140.0, -23.55, -46.64}, result.Rows[0])
	assert.Equal(t, []interface{}{"Rio De Janeiro, RJ", 1, 120.0, -22.90, -43.20}, result.Rows[1])
}

func TestGetTopGeolocationSalesDropsUnknownLocations(t *testing.T) {
	ds := testDataset()
	// A delivered campinas order with an item, but campinas has no
	// geolocation row.
	ds.Orders = append(ds.Orders, Order{ID: "o7", CustomerID: "c3", Status: "delivered",
		PurchaseTimestamp: testTime(2018, time.April, 2, 12, 0)})
	ds.OrderItems = append(ds.OrderItems, OrderItem{OrderID: "o7", ItemID: 1, ProductID: "p1",
		SellerID: "s1", Price: 10, FreightValue: 2})
	ds.Clean()

	result := GetTopGeolocationSales(ds, ApplyFilters(ds, FilterParams{}), 10)
	for _, row := range result.Rows {
		assert.NotContains(t, row[0], "Campinas")
	}
	assert.Len(t, result.Rows, 2)
}

func TestGetTopGeolocationSalesExcludesUndelivered(t *testing.T) {
	ds := testDataset()
	// Restricting to c3 leaves only the shipped order o4.
	result := GetTopGeolocationSales(ds, ApplyFilters(ds, FilterParams{Cities: []string{"campinas"}}), 10)
	assert.Len(t, result.Rows, 0)
}

func TestGetFilterOptions(t *testing.T) {
	ds := testDataset()

	options := GetFilterOptions(ds, nil)
	assert.Equal(t, "2017-10-02", options.MinDate)
	assert.Equal(t, "2018-03-01", options.MaxDate)
	assert.Equal(t, []string{"RJ", "SP"}, options.States)
	assert.Equal(t, []string{"campinas", "rio de janeiro", "sao paulo"}, options.Cities)

	// The city list follows the selected states.
	spOptions := GetFilterOptions(ds, []string{"SP"})
	assert.Equal(t, []string{"RJ", "SP"}, spOptions.States)
	assert.Equal(t, []string{"campinas", "sao paulo"}, spOptions.Cities)
}

func TestGetDatasetOverview(t *testing.T) {
	ds := testDataset()
	previews := GetDatasetOverview(ds)

	assert.Len(t, previews, len(DatasetNames))
	assert.Equal(t, DatasetCustomers, previews[0].Name)
	assert.Equal(t, 3, previews[0].RowCount)
	assert.Len(t, previews[0].Sample, 3)
	assert.Equal(t, []string{"customer_id", "customer_unique_id", "customer_zip_code_prefix",
		"customer_city", "customer_state"}, previews[0].Columns)

	// Samples never exceed five rows.
	for _, preview := range previews {
		assert.LessOrEqual(t, len(preview.Sample), previewSampleSize)
	}
}
