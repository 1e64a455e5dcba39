package model

import (
	"sort"
	"time"
)

// CustomerOrderProfile is one customer's delivered purchase history.
type CustomerOrderProfile struct {
	CustomerID       string    `json:"customer_id"`
	LastPurchaseDate time.Time `json:"last_purchase_date"`
	OrderCount       int       `json:"order_count"`
	TotalMonetary    float64   `json:"total_monetary"`
}

// BuildCustomerOrderProfiles Folds delivered orders and their items into per
// customer aggregates. Monetary is the sum of price plus freight over the
// customer's delivered orders. Orders without item rows still count toward
// frequency and recency with zero monetary contribution. Profiles are
// ordered by order count descending.
func BuildCustomerOrderProfiles(data *FilteredData) []CustomerOrderProfile {
	orderTotals := make(map[string]float64, len(data.Orders))
	for i := range data.Items {
		orderTotals[data.Items[i].OrderID] += data.Items[i].TotalValue
	}

	profilesByCustomer := make(map[string]*CustomerOrderProfile)
	countedOrderIDs := make(map[string]bool, len(data.Orders))
	for i := range data.Orders {
		order := &data.Orders[i]
		if order.Status != OrderStatusDelivered {
			continue
		}

		profile, exists := profilesByCustomer[order.CustomerID]
		if !exists {
			profile = &CustomerOrderProfile{CustomerID: order.CustomerID}
			profilesByCustomer[order.CustomerID] = profile
		}
		if order.PurchaseTimestamp.After(profile.LastPurchaseDate) {
			profile.LastPurchaseDate = order.PurchaseTimestamp
		}
		if !countedOrderIDs[order.ID] {
			countedOrderIDs[order.ID] = true
			profile.OrderCount++
			profile.TotalMonetary += orderTotals[order.ID]
		}
	}

	profiles := make([]CustomerOrderProfile, 0, len(profilesByCustomer))
	for _, profile := range profilesByCustomer {
		profiles = append(profiles, *profile)
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].OrderCount == profiles[j].OrderCount {
			return profiles[i].CustomerID < profiles[j].CustomerID
		}
		return profiles[i].OrderCount > profiles[j].OrderCount
	})
	return profiles
}
