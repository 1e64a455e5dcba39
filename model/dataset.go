package model

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Dataset names as published by the Olist archive.
const (
	DatasetCustomers           = "customers"
	DatasetGeolocation         = "geolocation"
	DatasetOrderItems          = "order_items"
	DatasetOrderPayments       = "order_payments"
	DatasetOrderReviews        = "order_reviews"
	DatasetOrders              = "orders"
	DatasetProducts            = "products"
	DatasetSellers             = "sellers"
	DatasetCategoryTranslation = "product_category_translation"
)

// DatasetFiles Maps dataset name to its CSV file on the archive.
var DatasetFiles = map[string]string{
	DatasetCustomers:           "olist_customers_dataset.csv",
	DatasetGeolocation:         "olist_geolocation_dataset.csv",
	DatasetOrderItems:          "olist_order_items_dataset.csv",
	DatasetOrderPayments:       "olist_order_payments_dataset.csv",
	DatasetOrderReviews:        "olist_order_reviews_dataset.csv",
	DatasetOrders:              "olist_orders_dataset.csv",
	DatasetProducts:            "olist_products_dataset.csv",
	DatasetSellers:             "olist_sellers_dataset.csv",
	DatasetCategoryTranslation: "product_category_name_translation.csv",
}

// DatasetNames All dataset names in load order.
var DatasetNames = []string{
	DatasetCustomers,
	DatasetGeolocation,
	DatasetOrderItems,
	DatasetOrderPayments,
	DatasetOrderReviews,
	DatasetOrders,
	DatasetProducts,
	DatasetSellers,
	DatasetCategoryTranslation,
}

const OrderStatusDelivered = "delivered"

const timestampLayout = "2006-01-02 15:04:05"

type Customer struct {
	ID            string `json:"customer_id"`
	UniqueID      string `json:"customer_unique_id"`
	ZipCodePrefix int    `json:"customer_zip_code_prefix"`
	City          string `json:"customer_city"`
	State         string `json:"customer_state"`
}

type Geolocation struct {
	ZipCodePrefix int     `json:"geolocation_zip_code_prefix"`
	Lat           float64 `json:"geolocation_lat"`
	Lng           float64 `json:"geolocation_lng"`
	City          string  `json:"geolocation_city"`
	State         string  `json:"geolocation_state"`
}

type OrderItem struct {
	OrderID           string    `json:"order_id"`
	ItemID            int       `json:"order_item_id"`
	ProductID         string    `json:"product_id"`
	SellerID          string    `json:"seller_id"`
	ShippingLimitDate time.Time `json:"shipping_limit_date"`
	Price             float64   `json:"price"`
	FreightValue      float64   `json:"freight_value"`
	TotalValue        float64   `json:"total_value"`
}

type Payment struct {
	OrderID      string  `json:"order_id"`
	Sequential   int     `json:"payment_sequential"`
	Type         string  `json:"payment_type"`
	Installments int     `json:"payment_installments"`
	Value        float64 `json:"payment_value"`
}

type Review struct {
	ID              string    `json:"review_id"`
	OrderID         string    `json:"order_id"`
	Score           int       `json:"review_score"`
	CommentTitle    string    `json:"review_comment_title"`
	CommentMessage  string    `json:"review_comment_message"`
	CreationDate    time.Time `json:"review_creation_date"`
	AnswerTimestamp time.Time `json:"review_answer_timestamp"`
}

type Order struct {
	ID                    string    `json:"order_id"`
	CustomerID            string    `json:"customer_id"`
	Status                string    `json:"order_status"`
	PurchaseTimestamp     time.Time `json:"order_purchase_timestamp"`
	ApprovedAt            time.Time `json:"order_approved_at"`
	DeliveredCarrierDate  time.Time `json:"order_delivered_carrier_date"`
	DeliveredCustomerDate time.Time `json:"order_delivered_customer_date"`
	EstimatedDeliveryDate time.Time `json:"order_estimated_delivery_date"`

	// Filled from the customer row when filters join orders to customers.
	CustomerCity  string `json:"customer_city,omitempty"`
	CustomerState string `json:"customer_state,omitempty"`
}

// Product dimensional columns default to NaN when missing on the CSV and
// are filled with the column median on Clean. The archive spells the
// length columns as "lenght".
type Product struct {
	ID                string  `json:"product_id"`
	CategoryName      string  `json:"product_category_name"`
	NameLength        float64 `json:"product_name_lenght"`
	DescriptionLength float64 `json:"product_description_lenght"`
	PhotosQty         float64 `json:"product_photos_qty"`
	WeightG           float64 `json:"product_weight_g"`
	LengthCm          float64 `json:"product_length_cm"`
	HeightCm          float64 `json:"product_height_cm"`
	WidthCm           float64 `json:"product_width_cm"`
}

type Seller struct {
	ID            string `json:"seller_id"`
	ZipCodePrefix int    `json:"seller_zip_code_prefix"`
	City          string `json:"seller_city"`
	State         string `json:"seller_state"`
}

type CategoryTranslation struct {
	CategoryName        string `json:"product_category_name"`
	CategoryNameEnglish string `json:"product_category_name_english"`
}

// Dataset holds all raw tables. Treat it as immutable once Clean has run;
// queries work on filtered per-request copies.
type Dataset struct {
	Customers            []Customer
	Geolocations         []Geolocation
	OrderItems           []OrderItem
	Payments             []Payment
	Reviews              []Review
	Orders               []Order
	Products             []Product
	Sellers              []Seller
	CategoryTranslations []CategoryTranslation
}

// ParseTable Parses the CSV for the named dataset into the matching table.
func (ds *Dataset) ParseTable(name string, reader io.Reader) error {
	switch name {
	case DatasetCustomers:
		rows, err := parseCustomers(reader)
		if err != nil {
			return err
		}
		ds.Customers = rows
	case DatasetGeolocation:
		rows, err := parseGeolocations(reader)
		if err != nil {
			return err
		}
		ds.Geolocations = rows
	case DatasetOrderItems:
		rows, err := parseOrderItems(reader)
		if err != nil {
			return err
		}
		ds.OrderItems = rows
	case DatasetOrderPayments:
		rows, err := parsePayments(reader)
		if err != nil {
			return err
		}
		ds.Payments = rows
	case DatasetOrderReviews:
		rows, err := parseReviews(reader)
		if err != nil {
			return err
		}
		ds.Reviews = rows
	case DatasetOrders:
		rows, err := parseOrders(reader)
		if err != nil {
			return err
		}
		ds.Orders = rows
	case DatasetProducts:
		rows, err := parseProducts(reader)
		if err != nil {
			return err
		}
		ds.Products = rows
	case DatasetSellers:
		rows, err := parseSellers(reader)
		if err != nil {
			return err
		}
		ds.Sellers = rows
	case DatasetCategoryTranslation:
		rows, err := parseCategoryTranslations(reader)
		if err != nil {
			return err
		}
		ds.CategoryTranslations = rows
	default:
		return errors.Errorf("unknown dataset %s", name)
	}
	return nil
}

// Table Returns the parsed rows of the named dataset.
func (ds *Dataset) Table(name string) (interface{}, bool) {
	switch name {
	case DatasetCustomers:
		return ds.Customers, true
	case DatasetGeolocation:
		return ds.Geolocations, true
	case DatasetOrderItems:
		return ds.OrderItems, true
	case DatasetOrderPayments:
		return ds.Payments, true
	case DatasetOrderReviews:
		return ds.Reviews, true
	case DatasetOrders:
		return ds.Orders, true
	case DatasetProducts:
		return ds.Products, true
	case DatasetSellers:
		return ds.Sellers, true
	case DatasetCategoryTranslation:
		return ds.CategoryTranslations, true
	}
	return nil, false
}

// SetTable Installs previously parsed rows for the named dataset.
func (ds *Dataset) SetTable(name string, rows interface{}) bool {
	switch name {
	case DatasetCustomers:
		typed, ok := rows.([]Customer)
		if !ok {
			return false
		}
		ds.Customers = typed
	case DatasetGeolocation:
		typed, ok := rows.([]Geolocation)
		if !ok {
			return false
		}
		ds.Geolocations = typed
	case DatasetOrderItems:
		typed, ok := rows.([]OrderItem)
		if !ok {
			return false
		}
		ds.OrderItems = typed
	case DatasetOrderPayments:
		typed, ok := rows.([]Payment)
		if !ok {
			return false
		}
		ds.Payments = typed
	case DatasetOrderReviews:
		typed, ok := rows.([]Review)
		if !ok {
			return false
		}
		ds.Reviews = typed
	case DatasetOrders:
		typed, ok := rows.([]Order)
		if !ok {
			return false
		}
		ds.Orders = typed
	case DatasetProducts:
		typed, ok := rows.([]Product)
		if !ok {
			return false
		}
		ds.Products = typed
	case DatasetSellers:
		typed, ok := rows.([]Seller)
		if !ok {
			return false
		}
		ds.Sellers = typed
	case DatasetCategoryTranslation:
		typed, ok := rows.([]CategoryTranslation)
		if !ok {
			return false
		}
		ds.CategoryTranslations = typed
	default:
		return false
	}
	return true
}

// RowCounts Returns row count by dataset name for loaded tables.
func (ds *Dataset) RowCounts() map[string]int {
	return map[string]int{
		DatasetCustomers:           len(ds.Customers),
		DatasetGeolocation:         len(ds.Geolocations),
		DatasetOrderItems:          len(ds.OrderItems),
		DatasetOrderPayments:       len(ds.Payments),
		DatasetOrderReviews:        len(ds.Reviews),
		DatasetOrders:              len(ds.Orders),
		DatasetProducts:            len(ds.Products),
		DatasetSellers:             len(ds.Sellers),
		DatasetCategoryTranslation: len(ds.CategoryTranslations),
	}
}

type csvTable struct {
	reader  *csv.Reader
	columns map[string]int
}

// newCSVTable Wraps a CSV stream, skipping the UTF-8 BOM if present and
// indexing the header row.
func newCSVTable(reader io.Reader, requiredColumns ...string) (*csvTable, error) {
	buffered := bufio.NewReader(reader)
	leading, err := buffered.Peek(3)
	if err == nil && leading[0] == 0xEF && leading[1] == 0xBB && leading[2] == 0xBF {
		if _, err := buffered.Discard(3); err != nil {
			return nil, errors.Wrap(err, "failed to skip byte order mark")
		}
	}

	csvReader := csv.NewReader(buffered)
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}

	columns := make(map[string]int, len(header))
	for index, column := range header {
		columns[strings.TrimSpace(column)] = index
	}
	for _, column := range requiredColumns {
		if _, exists := columns[column]; !exists {
			return nil, errors.Errorf("missing column %s on csv header", column)
		}
	}
	return &csvTable{reader: csvReader, columns: columns}, nil
}

// next Returns the next record or nil at the end of the stream.
func (t *csvTable) next() ([]string, error) {
	record, err := t.reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv record")
	}
	return record, nil
}

func (t *csvTable) stringValue(record []string, column string) string {
	index, exists := t.columns[column]
	if !exists || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func (t *csvTable) floatValue(record []string, column string) float64 {
	value, err := strconv.ParseFloat(t.stringValue(record, column), 64)
	if err != nil {
		return 0
	}
	return value
}

// nullableFloatValue Returns NaN for missing or malformed values so callers
// can distinguish them from real zeroes.
func (t *csvTable) nullableFloatValue(record []string, column string) float64 {
	raw := t.stringValue(record, column)
	if raw == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

func (t *csvTable) intValue(record []string, column string) int {
	raw := t.stringValue(record, column)
	value, err := strconv.Atoi(raw)
	if err != nil {
		// Some numeric columns surface as floats, e.g. "1.0".
		floatValue, floatErr := strconv.ParseFloat(raw, 64)
		if floatErr != nil {
			return 0
		}
		return int(floatValue)
	}
	return value
}

// timeValue Parses a timestamp column, coercing malformed or empty values
// to the zero time.
func (t *csvTable) timeValue(record []string, column string) time.Time {
	raw := t.stringValue(record, column)
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(timestampLayout, raw)
	if err == nil {
		return parsed
	}
	parsed, err = time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parseCustomers(reader io.Reader) ([]Customer, error) {
	table, err := newCSVTable(reader, "customer_id", "customer_city", "customer_state")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse customers")
	}

	rows := make([]Customer, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, Customer{
			ID:            table.stringValue(record, "customer_id"),
			UniqueID:      table.stringValue(record, "customer_unique_id"),
			ZipCodePrefix: table.intValue(record, "customer_zip_code_prefix"),
			City:          table.stringValue(record, "customer_city"),
			State:         table.stringValue(record, "customer_state"),
		})
	}
	return rows, nil
}

func parseGeolocations(reader io.Reader) ([]Geolocation, error) {
	table, err := newCSVTable(reader, "geolocation_zip_code_prefix", "geolocation_city", "geolocation_state")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse geolocation")
	}

	rows := make([]Geolocation, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, Geolocation{
			ZipCodePrefix: table.intValue(record, "geolocation_zip_code_prefix"),
			Lat:           table.floatValue(record, "geolocation_lat"),
			Lng:           table.floatValue(record, "geolocation_lng"),
			City:          table.stringValue(record, "geolocation_city"),
			State:         table.stringValue(record, "geolocation_state"),
		})
	}
	return rows, nil
}

func parseOrderItems(reader io.Reader) ([]OrderItem, error) {
	table, err := newCSVTable(reader, "order_id", "product_id", "price", "freight_value")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse order items")
	}

	rows := make([]OrderItem, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, OrderItem{
			OrderID:           table.stringValue(record, "order_id"),
			ItemID:            table.intValue(record, "order_item_id"),
			ProductID:         table.stringValue(record, "product_id"),
			SellerID:          table.stringValue(record, "seller_id"),
			ShippingLimitDate: table.timeValue(record, "shipping_limit_date"),
			Price:             table.floatValue(record, "price"),
			FreightValue:      table.floatValue(record, "freight_value"),
		})
	}
	return rows, nil
}

func parsePayments(reader io.Reader) ([]Payment, error) {
	table, err := newCSVTable(reader, "order_id", "payment_type", "payment_value")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse order payments")
	}

	rows := make([]Payment, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, Payment{
			OrderID:      table.stringValue(record, "order_id"),
			Sequential:   table.intValue(record, "payment_sequential"),
			Type:         table.stringValue(record, "payment_type"),
			Installments: table.intValue(record, "payment_installments"),
			Value:        table.floatValue(record, "payment_value"),
		})
	}
	return rows, nil
}

func parseReviews(reader io.Reader) ([]Review, error) {
	table, err := newCSVTable(reader, "review_id", "order_id", "review_score")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse order reviews")
	}

	rows := make([]Review, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, Review{
			ID:              table.stringValue(record, "review_id"),
			OrderID:         table.stringValue(record, "order_id"),
			Score:           table.intValue(record, "review_score"),
			CommentTitle:    table.stringValue(record, "review_comment_title"),
			CommentMessage:  table.stringValue(record, "review_comment_message"),
			CreationDate:    table.timeValue(record, "review_creation_date"),
			AnswerTimestamp: table.timeValue(record, "review_answer_timestamp"),
		})
	}
	return rows, nil
}

func parseOrders(reader io.Reader) ([]Order, error) {
	table, err := newCSVTable(reader, "order_id", "customer_id", "order_status", "order_purchase_timestamp")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse orders")
	}

	rows := make([]Order, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, Order{
			ID:                    table.stringValue(record, "order_id"),
			CustomerID:            table.stringValue(record, "customer_id"),
			Status:                table.stringValue(record, "order_status"),
			PurchaseTimestamp:     table.timeValue(record, "order_purchase_timestamp"),
			ApprovedAt:            table.timeValue(record, "order_approved_at"),
			DeliveredCarrierDate:  table.timeValue(record, "order_delivered_carrier_date"),
			DeliveredCustomerDate: table.timeValue(record, "order_delivered_customer_date"),
			EstimatedDeliveryDate: table.timeValue(record, "order_estimated_delivery_date"),
		})
	}
	return rows, nil
}

func parseProducts(reader io.Reader) ([]Product, error) {
	table, err := newCSVTable(reader, "product_id")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse products")
	}

	rows := make([]Product, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, Product{
			ID:                table.stringValue(record, "product_id"),
			CategoryName:      table.stringValue(record, "product_category_name"),
			NameLength:        table.nullableFloatValue(record, "product_name_lenght"),
			DescriptionLength: table.nullableFloatValue(record, "product_description_lenght"),
			PhotosQty:         table.nullableFloatValue(record, "product_photos_qty"),
			WeightG:           table.nullableFloatValue(record, "product_weight_g"),
			LengthCm:          table.nullableFloatValue(record, "product_length_cm"),
			HeightCm:          table.nullableFloatValue(record, "product_height_cm"),
			WidthCm:           table.nullableFloatValue(record, "product_width_cm"),
		})
	}
	return rows, nil
}

func parseSellers(reader io.Reader) ([]Seller, error) {
	table, err := newCSVTable(reader, "seller_id")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse sellers")
	}

	rows := make([]Seller, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, Seller{
			ID:            table.stringValue(record, "seller_id"),
			ZipCodePrefix: table.intValue(record, "seller_zip_code_prefix"),
			City:          table.stringValue(record, "seller_city"),
			State:         table.stringValue(record, "seller_state"),
		})
	}
	return rows, nil
}

func parseCategoryTranslations(reader io.Reader) ([]CategoryTranslation, error) {
	table, err := newCSVTable(reader, "product_category_name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse category translations")
	}

	rows := make([]CategoryTranslation, 0)
	for {
		record, err := table.next()
		if err != nil {
			return nil, err
		}
		if record == nil {
			break
		}
		rows = append(rows, CategoryTranslation{
			CategoryName:        table.stringValue(record, "product_category_name"),
			CategoryNameEnglish: table.stringValue(record, "product_category_name_english"),
		})
	}
	return rows, nil
}
