package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusPending:   "Pendente",
	StatusPreparing: "Preparando",
	StatusReady:     "Pronto",
	StatusDelivered: "Entregue",
	StatusCancelled: "Cancelado",
}

// Statuses lists every valid status in workflow order.
func Statuses() []Status {
	return []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the display text of s, or the raw value for an unknown status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

type Order struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurant_id"`
	CustomerName *string         `json:"customer_name"`
	TableNumber  *int            `json:"table_number"`
	Status       Status          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Notes        *string         `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// orderView is the wire shape of an order on the orders page.
type orderView struct {
	Order
	StatusLabel string `json:"status_label"`
}

func toViews(list []Order) []orderView {
	views := make([]orderView, 0, len(list))
	for _, o := range list {
		views = append(views, orderView{Order: o, StatusLabel: o.Status.Label()})
	}
	return views
}
