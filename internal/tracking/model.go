package tracking

import (
	"time"

	"github.com/gofrs/uuid"

	"github.com/shopcore/attribution-service/internal/utmify"
)

// OrderEvent is the internal order representation supplied by the
// order-processing system. Status and payment method arrive as the upstream
// provider's raw vocabulary; normalization happens in the service.
type OrderEvent struct {
	OrderID       string        `json:"order_id" validate:"required"`
	Status        string        `json:"status" validate:"required"`
	PaymentMethod string        `json:"payment_method" validate:"required"`
	Currency      string        `json:"currency"`
	CreatedAt     time.Time     `json:"created_at" validate:"required"`
	ApprovedAt    *time.Time    `json:"approved_at"`
	RefundedAt    *time.Time    `json:"refunded_at"`
	Customer      EventCustomer `json:"customer" validate:"required"`
	Items         []EventItem   `json:"items" validate:"min=1,dive"`
	Tracking      EventTracking `json:"tracking"`
	TotalCents    int64         `json:"total_cents" validate:"gte=0"`
	GatewayCents  int64         `json:"gateway_fee_cents" validate:"gte=0"`
	NetCents      int64         `json:"net_cents" validate:"gte=0"`
	IsTest        bool          `json:"is_test"`
}

type EventCustomer struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Document *string `json:"document"`
	Country  *string `json:"country"`
	IP       *string `json:"ip"`
}

type EventItem struct {
	ProductID  string  `json:"product_id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	PlanID     *string `json:"plan_id"`
	PlanName   *string `json:"plan_name"`
	Quantity   int     `json:"quantity" validate:"gte=0"`
	PriceCents int64   `json:"price_cents" validate:"gte=0"`
}

type EventTracking struct {
	Src         *string `json:"src"`
	Sck         *string `json:"sck"`
	UtmSource   *string `json:"utm_source"`
	UtmCampaign *string `json:"utm_campaign"`
	UtmMedium   *string `json:"utm_medium"`
	UtmContent  *string `json:"utm_content"`
	UtmTerm     *string `json:"utm_term"`
}

// Delivery records one forwarding attempt and its outcome.
type Delivery struct {
	ID        uuid.UUID          `json:"id" db:"id"`
	OrderID   string             `json:"order_id" db:"order_id"`
	Status    utmify.OrderStatus `json:"status" db:"status"`
	Success   bool               `json:"success" db:"success"`
	Response  string             `json:"response,omitempty" db:"response"`
	Error     string             `json:"error,omitempty" db:"error"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
}
