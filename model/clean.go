package model

import (
	"math"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
)

const missingCommentFill = "no comment"
const missingCategoryFill = "unknown"

// Clean Applies the fill rules the dashboard depends on. Call once after
// all tables are parsed. Calling it again is a no-op on already clean data.
func (ds *Dataset) Clean() {
	ds.cleanOrders()
	ds.cleanReviews()
	ds.cleanProducts()
	ds.computeOrderItemTotals()
}

// cleanOrders Fills missing lifecycle timestamps by cascading from the
// previous stage: approval falls back to purchase, carrier handover to
// approval and customer delivery to carrier handover.
func (ds *Dataset) cleanOrders() {
	for i := range ds.Orders {
		if ds.Orders[i].ApprovedAt.IsZero() {
			ds.Orders[i].ApprovedAt = ds.Orders[i].PurchaseTimestamp
		}
		if ds.Orders[i].DeliveredCarrierDate.IsZero() {
			ds.Orders[i].DeliveredCarrierDate = ds.Orders[i].ApprovedAt
		}
		if ds.Orders[i].DeliveredCustomerDate.IsZero() {
			ds.Orders[i].DeliveredCustomerDate = ds.Orders[i].DeliveredCarrierDate
		}
	}
}

func (ds *Dataset) cleanReviews() {
	for i := range ds.Reviews {
		if ds.Reviews[i].CommentTitle == "" {
			ds.Reviews[i].CommentTitle = missingCommentFill
		}
		if ds.Reviews[i].CommentMessage == "" {
			ds.Reviews[i].CommentMessage = missingCommentFill
		}
	}
}

// cleanProducts Fills a missing category with "unknown" and missing
// dimensional values with the column median.
func (ds *Dataset) cleanProducts() {
	fillColumnWithMedian := func(column string, value func(p *Product) *float64) {
		presentValues := make([]float64, 0, len(ds.Products))
		for i := range ds.Products {
			if v := *value(&ds.Products[i]); !math.IsNaN(v) {
				presentValues = append(presentValues, v)
			}
		}

		median := 0.0
		if len(presentValues) > 0 {
			computed, err := stats.Median(presentValues)
			if err != nil {
				log.WithError(err).WithField("column", column).
					Error("Failed to compute median for product column.")
			} else {
				median = computed
			}
		}

		for i := range ds.Products {
			if v := value(&ds.Products[i]); math.IsNaN(*v) {
				*v = median
			}
		}
	}

	for i := range ds.Products {
		if ds.Products[i].CategoryName == "" {
			ds.Products[i].CategoryName = missingCategoryFill
		}
	}

	fillColumnWithMedian("product_name_lenght", func(p *Product) *float64 { return &p.NameLength })
	fillColumnWithMedian("product_description_lenght", func(p *Product) *float64 { return &p.DescriptionLength })
	fillColumnWithMedian("product_photos_qty", func(p *Product) *float64 { return &p.PhotosQty })
	fillColumnWithMedian("product_weight_g", func(p *Product) *float64 { return &p.WeightG })
	fillColumnWithMedian("product_length_cm", func(p *Product) *float64 { return &p.LengthCm })
	fillColumnWithMedian("product_height_cm", func(p *Product) *float64 { return &p.HeightCm })
	fillColumnWithMedian("product_width_cm", func(p *Product) *float64 { return &p.WidthCm })
}

// computeOrderItemTotals Derives the item total as price plus freight.
func (ds *Dataset) computeOrderItemTotals() {
	for i := range ds.OrderItems {
		ds.OrderItems[i].TotalValue = ds.OrderItems[i].Price + ds.OrderItems[i].FreightValue
	}
}
