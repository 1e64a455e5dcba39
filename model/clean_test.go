package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCleanOrdersCascade(t *testing.T) {
	purchase := time.Date(2017, time.October, 2, 10, 0, 0, 0, time.UTC)
	approved := time.Date(2017, time.October, 2, 11, 0, 0, 0, time.UTC)
	carrier := time.Date(2017, time.October, 4, 9, 0, 0, 0, time.UTC)

	ds := &Dataset{Orders: []Order{
		// Only the purchase timestamp known, everything cascades from it.
		{ID: "o1", PurchaseTimestamp: purchase},
		// Approval known, carrier and delivery fall back to it.
		{ID: "o2", PurchaseTimestamp: purchase, ApprovedAt: approved},
		// Complete lifecycle stays untouched.
		{ID: "o3", PurchaseTimestamp: purchase, ApprovedAt: approved,
			DeliveredCarrierDate: carrier, DeliveredCustomerDate: carrier.AddDate(0, 0, 3)},
	}}
	ds.Clean()

	assert.Equal(t, purchase, ds.Orders[0].ApprovedAt)
	assert.Equal(t, purchase, ds.Orders[0].DeliveredCarrierDate)
	assert.Equal(t, purchase, ds.Orders[0].DeliveredCustomerDate)

	assert.Equal(t, approved, ds.Orders[1].DeliveredCarrierDate)
	assert.Equal(t, approved, ds.Orders[1].DeliveredCustomerDate)

	assert.Equal(t, carrier, ds.Orders[2].DeliveredCarrierDate)
	assert.Equal(t, carrier.AddDate(0, 0, 3), ds.Orders[2].DeliveredCustomerDate)
}

func TestCleanReviews(t *testing.T) {
	ds := &Dataset{Reviews: []Review{
		{ID: "r1", Score: 5},
		{ID: "r2", Score: 4, CommentTitle: "recomendo", CommentMessage: "chegou antes do prazo"},
	}}
	ds.Clean()

	assert.Equal(t, "no comment", ds.Reviews[0].CommentTitle)
	assert.Equal(t, "no comment", ds.Reviews[0].CommentMessage)
	assert.Equal(t, "recomendo", ds.Reviews[1].CommentTitle)
	assert.Equal(t, "chegou antes do prazo", ds.Reviews[1].CommentMessage)
}

func TestCleanProducts(t *testing.T) {
	ds := &Dataset{Products: []Product{
		{ID: "p1", CategoryName: "perfumaria", WeightG: 100, PhotosQty: 1,
			NameLength: 40, DescriptionLength: 280, LengthCm: 16, HeightCm: 10, WidthCm: 14},
		{ID: "p2", CategoryName: "", WeightG: math.NaN(), PhotosQty: 3,
			NameLength: 50, DescriptionLength: 300, LengthCm: 20, HeightCm: 12, WidthCm: 15},
		{ID: "p3", CategoryName: "esporte_lazer", WeightG: 300, PhotosQty: 2,
			NameLength: 45, DescriptionLength: 290, LengthCm: 18, HeightCm: 11, WidthCm: 16},
	}}
	ds.Clean()

	// Missing category becomes "unknown", missing weight becomes the
	// median of the present values.
	assert.Equal(t, "unknown", ds.Products[1].CategoryName)
	assert.Equal(t, 200.0, ds.Products[1].WeightG)
	assert.Equal(t, 100.0, ds.Products[0].WeightG)
	assert.Equal(t, 300.0, ds.Products[2].WeightG)
}

func TestCleanComputesItemTotals(t *testing.T) {
	ds := &Dataset{OrderItems: []OrderItem{
		{OrderID: "o1", Price: 58.90, FreightValue: 13.29},
		{OrderID: "o2", Price: 10, FreightValue: 0},
	}}
	ds.Clean()

	assert.InDelta(t, 72.19, ds.OrderItems[0].TotalValue, 1e-9)
	assert.Equal(t, 10.0, ds.OrderItems[1].TotalValue)
}

func TestCleanIsIdempotent(t *testing.T) {
	ds := &Dataset{
		Orders:   []Order{{ID: "o1", PurchaseTimestamp: time.Date(2017, time.October, 2, 10, 0, 0, 0, time.UTC)}},
		Reviews:  []Review{{ID: "r1"}},
		Products: []Product{{ID: "p1", WeightG: math.NaN()}, {ID: "p2", WeightG: 100}},
	}
	ds.Clean()
	firstOrders := append([]Order(nil), ds.Orders...)
	firstReviews := append([]Review(nil), ds.Reviews...)
	firstProducts := append([]Product(nil), ds.Products...)
	ds.Clean()

	assert.Equal(t, firstOrders, ds.Orders)
	assert.Equal(t, firstReviews, ds.Reviews)
	assert.Equal(t, firstProducts, ds.Products)
}
