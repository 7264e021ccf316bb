package utmify

import (
	"errors"
	"fmt"
)

// Payload types for the Utmify tracking API.
// Docs: https://api.utmify.com.br
//
// Nullable fields are pointers without omitempty so they serialize as
// explicit nulls, which is what the API expects.

type OrderStatus string

const (
	StatusWaitingPayment OrderStatus = "waiting_payment"
	StatusPaid           OrderStatus = "paid"
	StatusRefused        OrderStatus = "refused"
	StatusRefunded       OrderStatus = "refunded"
	StatusChargedback    OrderStatus = "chargedback"
)

func (s OrderStatus) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentBoleto     PaymentMethod = "boleto"
	PaymentPix        PaymentMethod = "pix"
	PaymentPaypal     PaymentMethod = "paypal"
	PaymentFreePrice  PaymentMethod = "free_price"
)

func (m PaymentMethod) String() string {
	return string(m)
}

type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyARS Currency = "ARS"
	CurrencyCAD Currency = "CAD"
	CurrencyCOP Currency = "COP"
	CurrencyMXN Currency = "MXN"
	CurrencyPYG Currency = "PYG"
	CurrencyCLP Currency = "CLP"
	CurrencyPEN Currency = "PEN"
	CurrencyPLN Currency = "PLN"
)

func (c Currency) String() string {
	return string(c)
}

var (
	ErrInvalidPaymentMethod = errors.New("utmify: invalid payment method")
	ErrInvalidCurrency      = errors.New("utmify: invalid currency")
)

// ParsePaymentMethod converts upstream payment method text into the closed
// enum, rejecting anything outside the five supported values.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCreditCard, PaymentBoleto, PaymentPix, PaymentPaypal, PaymentFreePrice:
		return PaymentMethod(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
}

// ParseCurrency validates a currency code against the twelve codes the
// tracking API supports. Empty input is allowed and means "unset".
func ParseCurrency(s string) (Currency, error) {
	if s == "" {
		return "", nil
	}
	switch Currency(s) {
	case CurrencyBRL, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyARS, CurrencyCAD,
		CurrencyCOP, CurrencyMXN, CurrencyPYG, CurrencyCLP, CurrencyPEN, CurrencyPLN:
		return Currency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
}

type Customer struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Document *string `json:"document"`
	Country  *string `json:"country,omitempty"` // ISO 3166-1 alpha-2
	IP       *string `json:"ip,omitempty"`
}

type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PlanID       *string `json:"planId"`
	PlanName     *string `json:"planName"`
	Quantity     int     `json:"quantity"`
	PriceInCents int64   `json:"priceInCents"`
}

type TrackingParameters struct {
	Src         *string `json:"src"`
	Sck         *string `json:"sck"`
	UtmSource   *string `json:"utm_source"`
	UtmCampaign *string `json:"utm_campaign"`
	UtmMedium   *string `json:"utm_medium"`
	UtmContent  *string `json:"utm_content"`
	UtmTerm     *string `json:"utm_term"`
}

type Commission struct {
	TotalPriceInCents     int64    `json:"totalPriceInCents"`
	GatewayFeeInCents     int64    `json:"gatewayFeeInCents"`
	UserCommissionInCents int64    `json:"userCommissionInCents"`
	Currency              Currency `json:"currency,omitempty"`
}

// OrderRequest is the root payload sent to the tracking API. Timestamp
// fields carry pre-formatted "YYYY-MM-DD HH:MM:SS" UTC strings produced
// by FormatDate.
type OrderRequest struct {
	OrderID            string             `json:"orderId"`
	Platform           string             `json:"platform"`
	PaymentMethod      PaymentMethod      `json:"paymentMethod"`
	Status             OrderStatus        `json:"status"`
	CreatedAt          string             `json:"createdAt"`
	ApprovedDate       *string            `json:"approvedDate"`
	RefundedAt         *string            `json:"refundedAt"`
	Customer           Customer           `json:"customer"`
	Products           []Product          `json:"products"`
	TrackingParameters TrackingParameters `json:"trackingParameters"`
	Commission         Commission         `json:"commission"`
	IsTest             bool               `json:"isTest,omitempty"`
}
