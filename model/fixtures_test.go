package model

import (
	"time"
)

func testTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

// testDataset Builds a small cleaned dataset spanning two states, five
// orders and two sellers. Product p3 has no product row and campinas has
// no geolocation row.
func testDataset() *Dataset {
	ds := &Dataset{
		Customers: []Customer{
			{ID: "c1", UniqueID: "u1", ZipCodePrefix: 1037, City: "sao paulo", State: "SP"},
			{ID: "c2", UniqueID: "u2", ZipCodePrefix: 20000, City: "rio de janeiro", State: "RJ"},
			{ID: "c3", UniqueID: "u3", ZipCodePrefix: 13000, City: "campinas", State: "SP"},
		},
		Geolocations: []Geolocation{
			{ZipCodePrefix: 1040, Lat: -23.54, Lng: -46.63, City: "sao paulo", State: "SP"},
			{ZipCodePrefix: 1037, Lat: -23.55, Lng: -46.64, City: "sao paulo", State: "SP"},
			{ZipCodePrefix: 20000, Lat: -22.90, Lng: -43.20, City: "rio de janeiro", State: "RJ"},
		},
		Orders: []Order{
			{ID: "o1", CustomerID: "c1", Status: "delivered", PurchaseTimestamp: testTime(2017, time.October, 2, 10, 0)},
			{ID: "o2", CustomerID: "c2", Status: "delivered", PurchaseTimestamp: testTime(2017, time.November, 15, 14, 30)},
			{ID: "o3", CustomerID: "c1", Status: "delivered", PurchaseTimestamp: testTime(2018, time.January, 10, 9, 0)},
			{ID: "o4", CustomerID: "c3", Status: "shipped", PurchaseTimestamp: testTime(2018, time.February, 5, 20, 0)},
			{ID: "o5", CustomerID: "c2", Status: "canceled", PurchaseTimestamp: testTime(2018, time.March, 1, 8, 0)},
		},
		OrderItems: []OrderItem{
			{OrderID: "o1", ItemID: 1, ProductID: "p1", SellerID: "s1", Price: 50, FreightValue: 10},
			{OrderID: "o2", ItemID: 1, ProductID: "p2", SellerID: "s2", Price: 100, FreightValue: 20},
			{OrderID: "o3", ItemID: 1, ProductID: "p1", SellerID: "s1", Price: 30, FreightValue: 5},
			{OrderID: "o3", ItemID: 2, ProductID: "p3", SellerID: "s2", Price: 40, FreightValue: 5},
			{OrderID: "o4", ItemID: 1, ProductID: "p2", SellerID: "s2", Price: 70, FreightValue: 10},
		},
		Payments: []Payment{
			{OrderID: "o1", Sequential: 1, Type: "credit_card", Installments: 2, Value: 60},
			{OrderID: "o2", Sequential: 1, Type: "boleto", Installments: 1, Value: 120},
			{OrderID: "o3", Sequential: 1, Type: "credit_card", Installments: 1, Value: 80},
			{OrderID: "o4", Sequential: 1, Type: "credit_card", Installments: 3, Value: 80},
			{OrderID: "o5", Sequential: 1, Type: "voucher", Installments: 1, Value: 10},
		},
		Reviews: []Review{
			{ID: "r1", OrderID: "o1", Score: 5},
			{ID: "r2", OrderID: "o2", Score: 4},
			{ID: "r3", OrderID: "o3", Score: 5},
			{ID: "r4", OrderID: "o4", Score: 1},
		},
		Products: []Product{
			{ID: "p1", CategoryName: "perfumaria", NameLength: 40, DescriptionLength: 280,
				PhotosQty: 1, WeightG: 225, LengthCm: 16, HeightCm: 10, WidthCm: 14},
			{ID: "p2", CategoryName: "esporte_lazer", NameLength: 50, DescriptionLength: 300,
				PhotosQty: 2, WeightG: 900, LengthCm: 40, HeightCm: 15, WidthCm: 30},
		},
		Sellers: []Seller{
			{ID: "s1", ZipCodePrefix: 13023, City: "campinas", State: "SP"},
			{ID: "s2", ZipCodePrefix: 20031, City: "rio de janeiro", State: "RJ"},
		},
		CategoryTranslations: []CategoryTranslation{
			{CategoryName: "perfumaria", CategoryNameEnglish: "perfumery"},
			{CategoryName: "esporte_lazer", CategoryNameEnglish: "sports_leisure"},
		},
	}
	ds.Clean()
	return ds
}
