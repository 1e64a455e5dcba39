package model

import (
	"net/http"
	"sort"

	U "ecomdash/util"
)

const defaultPrecision = 2

// Granularities for orders over time.
const (
	GranularityDaily   = "daily"
	GranularityWeekly  = "weekly"
	GranularityMonthly = "monthly"
)

// QueryResult - Generic headers and rows container for dashboard queries.
type QueryResult struct {
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}

// FilterOptions enumerates the values selectable on dashboard filters.
type FilterOptions struct {
	MinDate  string   `json:"min_date"`
	MaxDate  string   `json:"max_date"`
	States   []string `json:"states"`
	Cities   []string `json:"cities"`
	Segments []string `json:"segments"`
}

// DatasetPreview is the head of one raw table with its column names.
type DatasetPreview struct {
	Name     string          `json:"name"`
	RowCount int             `json:"row_count"`
	Columns  []string        `json:"columns"`
	Sample   [][]interface{} `json:"sample"`
}

const previewSampleSize = 5

// valueCountsResult Builds a two column result from counts, ordered by
// count descending with the value as tie break.
func valueCountsResult(headers []string, counts map[string]int) QueryResult {
	rows := make([][]interface{}, 0, len(counts))
	for value, count := range counts {
		rows = append(rows, []interface{}{value, count})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][1].(int) == rows[j][1].(int) {
			return rows[i][0].(string) < rows[j][0].(string)
		}
		return rows[i][1].(int) > rows[j][1].(int)
	})
	return QueryResult{Headers: headers, Rows: rows}
}

func capRows(result QueryResult, limit int) QueryResult {
	if limit > 0 && len(result.Rows) > limit {
		result.Rows = result.Rows[:limit]
	}
	return result
}

// GetOrderStatusCounts Distribution of order statuses on the filtered orders.
func GetOrderStatusCounts(data *FilteredData) QueryResult {
	counts := make(map[string]int)
	for i := range data.Orders {
		counts[data.Orders[i].Status]++
	}
	return valueCountsResult([]string{"order_status", "total"}, counts)
}

// GetOrdersOverTime Count of filtered orders bucketed by purchase period.
// Periods are labelled by their first day, monthly buckets by year-month.
// Orders without a purchase date are left out.
func GetOrdersOverTime(data *FilteredData, granularity string) (QueryResult, int) {
	switch granularity {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
	default:
		return QueryResult{}, http.StatusBadRequest
	}

	counts := make(map[string]int)
	for i := range data.Orders {
		purchaseTime := data.Orders[i].PurchaseTimestamp
		if purchaseTime.IsZero() {
			continue
		}

		var period string
		switch granularity {
		case GranularityDaily:
			period = U.GetDateOnlyString(U.GetBeginningOfDay(purchaseTime))
		case GranularityWeekly:
			period = U.GetDateOnlyString(U.GetBeginningOfWeek(purchaseTime))
		case GranularityMonthly:
			period = U.GetMonthOnlyString(U.GetBeginningOfMonth(purchaseTime))
		}
		counts[period]++
	}

	rows := make([][]interface{}, 0, len(counts))
	for period, count := range counts {
		rows = append(rows, []interface{}{period, count})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][0].(string) < rows[j][0].(string)
	})
	return QueryResult{Headers: []string{"period", "total"}, Rows: rows}, http.StatusOK
}

// GetPaymentTypeCounts Distribution of payment types on the filtered payments.
func GetPaymentTypeCounts(data *FilteredData) QueryResult {
	counts := make(map[string]int)
	for i := range data.Payments {
		counts[data.Payments[i].Type]++
	}
	return valueCountsResult([]string{"payment_type", "total"}, counts)
}

// GetReviewScoreCounts Distribution of review scores on the filtered
// reviews, ordered by score ascending.
func GetReviewScoreCounts(data *FilteredData) QueryResult {
	counts := make(map[int]int)
	for i := range data.Reviews {
		counts[data.Reviews[i].Score]++
	}

	rows := make([][]interface{}, 0, len(counts))
	for score, count := range counts {
		rows = append(rows, []interface{}{score, count})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][0].(int) < rows[j][0].(int)
	})
	return QueryResult{Headers: []string{"review_score", "total"}, Rows: rows}
}

// GetTopProductCategories Items sold per product category on the filtered
// items. Items whose product row is missing count under the unknown fill.
func GetTopProductCategories(ds *Dataset, data *FilteredData, limit int) QueryResult {
	categoryByProduct := make(map[string]string, len(ds.Products))
	for i := range ds.Products {
		categoryByProduct[ds.Products[i].ID] = ds.Products[i].CategoryName
	}

	counts := make(map[string]int)
	for i := range data.Items {
		category, exists := categoryByProduct[data.Items[i].ProductID]
		if !exists {
			category = missingCategoryFill
		}
		counts[category]++
	}
	return capRows(valueCountsResult([]string{"product_category", "total"}, counts), limit)
}

// GetTopSellers Items sold per seller on the filtered items.
func GetTopSellers(data *FilteredData, limit int) QueryResult {
	counts := make(map[string]int)
	for i := range data.Items {
		counts[data.Items[i].SellerID]++
	}
	return capRows(valueCountsResult([]string{"seller_id", "total"}, counts), limit)
}

type locationKey struct {
	city  string
	state string
}

type locationAggregate struct {
	orderIDs   map[string]bool
	totalValue float64
}

// GetTopGeolocationSales Delivered order count and revenue per customer
// location, joined to the representative geolocation row per city and
// state. The representative is the row with the lowest zip code prefix.
// Locations without a geolocation row are dropped.
func GetTopGeolocationSales(ds *Dataset, data *FilteredData, limit int) QueryResult {
	representatives := make(map[locationKey]*Geolocation)
	for i := range ds.Geolocations {
		geolocation := &ds.Geolocations[i]
		key := locationKey{city: geolocation.City, state: geolocation.State}
		existing, exists := representatives[key]
		if !exists || geolocation.ZipCodePrefix < existing.ZipCodePrefix {
			representatives[key] = geolocation
		}
	}

	deliveredOrders := make(map[string]*Order, len(data.Orders))
	for i := range data.Orders {
		if data.Orders[i].Status == OrderStatusDelivered {
			deliveredOrders[data.Orders[i].ID] = &data.Orders[i]
		}
	}

	aggregates := make(map[locationKey]*locationAggregate)
	for i := range data.Items {
		order, exists := deliveredOrders[data.Items[i].OrderID]
		if !exists {
			continue
		}

		key := locationKey{city: order.CustomerCity, state: order.CustomerState}
		aggregate, exists := aggregates[key]
		if !exists {
			aggregate = &locationAggregate{orderIDs: make(map[string]bool)}
			aggregates[key] = aggregate
		}
		aggregate.orderIDs[order.ID] = true
		aggregate.totalValue += data.Items[i].TotalValue
	}

	rows := make([][]interface{}, 0, len(aggregates))
	for key, aggregate := range aggregates {
		geolocation, exists := representatives[key]
		if !exists {
			continue
		}

		location := U.CapitalizeFirstLetter(key.city) + ", " + key.state
		totalValue, _ := U.FloatRoundOffWithPrecision(aggregate.totalValue, defaultPrecision)
		rows = append(rows, []interface{}{location, len(aggregate.orderIDs),
			totalValue, geolocation.Lat, geolocation.Lng})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][1].(int) == rows[j][1].(int) {
			return rows[i][0].(string) < rows[j][0].(string)
		}
		return rows[i][1].(int) > rows[j][1].(int)
	})

	result := QueryResult{
		Headers: []string{"location", "orders_count", "total_value", "lat", "lng"},
		Rows:    rows,
	}
	return capRows(result, limit)
}

// GetFilterOptions Selectable filter values on the raw dataset. The city
// list is restricted to the given states when any are selected. Segment
// options are filled by the caller from the current RFM records.
func GetFilterOptions(ds *Dataset, selectedStates []string) FilterOptions {
	var minDate, maxDate string
	stateSet := make(map[string]bool)
	citySet := make(map[string]bool)

	for i := range ds.Orders {
		purchaseTime := ds.Orders[i].PurchaseTimestamp
		if purchaseTime.IsZero() {
			continue
		}
		date := U.GetDateOnlyString(purchaseTime)
		if minDate == "" || date < minDate {
			minDate = date
		}
		if date > maxDate {
			maxDate = date
		}
	}

	for i := range ds.Customers {
		customer := &ds.Customers[i]
		stateSet[customer.State] = true
		if len(selectedStates) > 0 && !U.StringValueIn(customer.State, selectedStates) {
			continue
		}
		citySet[customer.City] = true
	}

	options := FilterOptions{
		MinDate:  minDate,
		MaxDate:  maxDate,
		States:   make([]string, 0, len(stateSet)),
		Cities:   make([]string, 0, len(citySet)),
		Segments: make([]string, 0),
	}
	for state := range stateSet {
		options.States = append(options.States, state)
	}
	for city := range citySet {
		options.Cities = append(options.Cities, city)
	}
	sort.Strings(options.States)
	sort.Strings(options.Cities)
	return options
}

// GetDatasetOverview Head sample of every loaded table, in load order.
func GetDatasetOverview(ds *Dataset) []DatasetPreview {
	previews := make([]DatasetPreview, 0, len(DatasetNames))
	for _, name := range DatasetNames {
		previews = append(previews, ds.previewTable(name))
	}
	return previews
}

func (ds *Dataset) previewTable(name string) DatasetPreview {
	preview := DatasetPreview{Name: name, Sample: make([][]interface{}, 0, previewSampleSize)}

	switch name {
	case DatasetCustomers:
		preview.RowCount = len(ds.Customers)
		preview.Columns = []string{"customer_id", "customer_unique_id",
			"customer_zip_code_prefix", "customer_city", "customer_state"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.Customers)); i++ {
			row := &ds.Customers[i]
			preview.Sample = append(preview.Sample, []interface{}{row.ID, row.UniqueID,
				row.ZipCodePrefix, row.City, row.State})
		}
	case DatasetGeolocation:
		preview.RowCount = len(ds.Geolocations)
		preview.Columns = []string{"geolocation_zip_code_prefix", "geolocation_lat",
			"geolocation_lng", "geolocation_city", "geolocation_state"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.Geolocations)); i++ {
			row := &ds.Geolocations[i]
			preview.Sample = append(preview.Sample, []interface{}{row.ZipCodePrefix,
				row.Lat, row.Lng, row.City, row.State})
		}
	case DatasetOrderItems:
		preview.RowCount = len(ds.OrderItems)
		preview.Columns = []string{"order_id", "order_item_id", "product_id", "seller_id",
			"shipping_limit_date", "price", "freight_value", "total_value"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.OrderItems)); i++ {
			row := &ds.OrderItems[i]
			preview.Sample = append(preview.Sample, []interface{}{row.OrderID, row.ItemID,
				row.ProductID, row.SellerID, U.GetDateOnlyString(row.ShippingLimitDate),
				row.Price, row.FreightValue, row.TotalValue})
		}
	case DatasetOrderPayments:
		preview.RowCount = len(ds.Payments)
		preview.Columns = []string{"order_id", "payment_sequential", "payment_type",
			"payment_installments", "payment_value"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.Payments)); i++ {
			row := &ds.Payments[i]
			preview.Sample = append(preview.Sample, []interface{}{row.OrderID, row.Sequential,
				row.Type, row.Installments, row.Value})
		}
	case DatasetOrderReviews:
		preview.RowCount = len(ds.Reviews)
		preview.Columns = []string{"review_id", "order_id", "review_score",
			"review_comment_title", "review_comment_message"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.Reviews)); i++ {
			row := &ds.Reviews[i]
			preview.Sample = append(preview.Sample, []interface{}{row.ID, row.OrderID,
				row.Score, row.CommentTitle, row.CommentMessage})
		}
	case DatasetOrders:
		preview.RowCount = len(ds.Orders)
		preview.Columns = []string{"order_id", "customer_id", "order_status",
			"order_purchase_timestamp", "order_delivered_customer_date"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.Orders)); i++ {
			row := &ds.Orders[i]
			preview.Sample = append(preview.Sample, []interface{}{row.ID, row.CustomerID,
				row.Status, U.GetDateOnlyString(row.PurchaseTimestamp),
				U.GetDateOnlyString(row.DeliveredCustomerDate)})
		}
	case DatasetProducts:
		preview.RowCount = len(ds.Products)
		preview.Columns = []string{"product_id", "product_category_name", "product_photos_qty",
			"product_weight_g"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.Products)); i++ {
			row := &ds.Products[i]
			preview.Sample = append(preview.Sample, []interface{}{row.ID, row.CategoryName,
				row.PhotosQty, row.WeightG})
		}
	case DatasetSellers:
		preview.RowCount = len(ds.Sellers)
		preview.Columns = []string{"seller_id", "seller_zip_code_prefix", "seller_city",
			"seller_state"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.Sellers)); i++ {
			row := &ds.Sellers[i]
			preview.Sample = append(preview.Sample, []interface{}{row.ID, row.ZipCodePrefix,
				row.City, row.State})
		}
	case DatasetCategoryTranslation:
		preview.RowCount = len(ds.CategoryTranslations)
		preview.Columns = []string{"product_category_name", "product_category_name_english"}
		for i := 0; i < U.MinInt(previewSampleSize, len(ds.CategoryTranslations)); i++ {
			row := &ds.CategoryTranslations[i]
			preview.Sample = append(preview.Sample, []interface{}{row.CategoryName,
				row.CategoryNameEnglish})
		}
	}
	return preview
}
