package model

import (
	"time"

	U "ecomdash/util"
)

// FilterParams scopes a dashboard query. Zero time bounds are open ended
// and empty slices select everything.
type FilterParams struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	States   []string  `json:"states"`
	Cities   []string  `json:"cities"`
	Segments []string  `json:"segments"`
}

// FilteredData is the per request working set derived from the dataset.
// Orders carry the customer city and state from the join.
type FilteredData struct {
	Orders   []Order
	Items    []OrderItem
	Payments []Payment
	Reviews  []Review
}

// ApplyFilters Restricts orders by purchase date and customer location,
// then restricts items, payments and reviews to the surviving orders.
// Both date bounds are inclusive at day precision.
func ApplyFilters(ds *Dataset, params FilterParams) *FilteredData {
	selectedCustomers := make(map[string]*Customer, len(ds.Customers))
	for i := range ds.Customers {
		customer := &ds.Customers[i]
		if len(params.States) > 0 && !U.StringValueIn(customer.State, params.States) {
			continue
		}
		if len(params.Cities) > 0 && !U.StringValueIn(customer.City, params.Cities) {
			continue
		}
		selectedCustomers[customer.ID] = customer
	}

	var fromBound, toBound time.Time
	if !params.From.IsZero() {
		fromBound = U.GetBeginningOfDay(params.From)
	}
	if !params.To.IsZero() {
		toBound = U.GetBeginningOfDay(params.To).AddDate(0, 0, 1)
	}

	filtered := &FilteredData{
		Orders:   make([]Order, 0),
		Items:    make([]OrderItem, 0),
		Payments: make([]Payment, 0),
		Reviews:  make([]Review, 0),
	}

	hasDateBound := !fromBound.IsZero() || !toBound.IsZero()

	selectedOrderIDs := make(map[string]bool)
	for _, order := range ds.Orders {
		// An order without a purchase date fails any date bound.
		if order.PurchaseTimestamp.IsZero() {
			if hasDateBound {
				continue
			}
		} else {
			if !fromBound.IsZero() && order.PurchaseTimestamp.Before(fromBound) {
				continue
			}
			if !toBound.IsZero() && !order.PurchaseTimestamp.Before(toBound) {
				continue
			}
		}
		customer, exists := selectedCustomers[order.CustomerID]
		if !exists {
			continue
		}

		order.CustomerCity = customer.City
		order.CustomerState = customer.State
		filtered.Orders = append(filtered.Orders, order)
		selectedOrderIDs[order.ID] = true
	}

	for _, item := range ds.OrderItems {
		if selectedOrderIDs[item.OrderID] {
			filtered.Items = append(filtered.Items, item)
		}
	}
	for _, payment := range ds.Payments {
		if selectedOrderIDs[payment.OrderID] {
			filtered.Payments = append(filtered.Payments, payment)
		}
	}
	for _, review := range ds.Reviews {
		if selectedOrderIDs[review.OrderID] {
			filtered.Reviews = append(filtered.Reviews, review)
		}
	}
	return filtered
}
