package segmentation

import (
	"time"

	"zid-retention-server/zid"
)

// OrderSummary is one order as it appears inside a customer rollup.
type OrderSummary struct {
	ID       int64
	Date     time.Time
	Amount   float64
	Products []zid.OrderProduct
}

// CustomerRollup accumulates a single customer's order history.
type CustomerRollup struct {
	ZidCustomerID  int64
	Name           string
	Phone          string
	Email          string
	TotalSpent     float64
	FirstOrderDate time.Time
	LastOrderDate  time.Time
	Orders         []OrderSummary
}

// TotalOrders is the number of orders folded into the rollup.
func (r *CustomerRollup) TotalOrders() int {
	return len(r.Orders)
}

// AggregateOrders folds a flat order list into per-customer rollups keyed by
// the Zid customer id. Orders without a customer reference are skipped. The
// fold is order-independent: totals are sums and the first/last dates are
// running min/max, so input ordering does not matter.
func AggregateOrders(orders []zid.Order) map[int64]*CustomerRollup {
	rollups := make(map[int64]*CustomerRollup)

	for _, order := range orders {
		if order.Customer == nil || order.Customer.ID == 0 {
			continue
		}

		orderDate := order.CreatedAt.Time
		amount := float64(order.TransactionAmount)

		rollup, ok := rollups[order.Customer.ID]
		if !ok {
			rollup = &CustomerRollup{
				ZidCustomerID:  order.Customer.ID,
				Name:           order.Customer.Name,
				Phone:          order.Customer.Mobile,
				Email:          order.Customer.Email,
				FirstOrderDate: orderDate,
				LastOrderDate:  orderDate,
			}
			rollups[order.Customer.ID] = rollup
		}

		rollup.Orders = append(rollup.Orders, OrderSummary{
			ID:       order.ID,
			Date:     orderDate,
			Amount:   amount,
			Products: order.Products,
		})
		rollup.TotalSpent += amount

		if orderDate.Before(rollup.FirstOrderDate) {
			rollup.FirstOrderDate = orderDate
		}
		if orderDate.After(rollup.LastOrderDate) {
			rollup.LastOrderDate = orderDate
		}
	}

	return rollups
}
