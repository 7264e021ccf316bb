package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shopcore/attribution-service/internal/utmify"
)

// Sender posts one order payload to the tracking provider. Satisfied by
// *utmify.Client.
type Sender interface {
	SendOrder(ctx context.Context, order *utmify.OrderRequest) utmify.SendResult
}

type Service interface {
	ForwardOrder(ctx context.Context, event *OrderEvent) (*Delivery, error)
	GetDeliveriesByOrderID(ctx context.Context, orderID string) ([]Delivery, error)
	GetDeliveryByID(ctx context.Context, id uuid.UUID) (*Delivery, error)
}

type service struct {
	repo     Repository
	sender   Sender
	platform string
}

func NewService(repo Repository, sender Sender, platform string) Service {
	return &service{
		repo:     repo,
		sender:   sender,
		platform: platform,
	}
}

// ForwardOrder normalizes the event, sends it to the tracking provider and
// records the attempt. A provider rejection or transport failure is NOT an
// error return: the outcome lands in the stored Delivery so the caller's
// order flow is never blocked by attribution problems. Errors are reserved
// for local faults — invalid input or a failed delivery record.
func (s *service) ForwardOrder(ctx context.Context, event *OrderEvent) (*Delivery, error) {
	order, err := s.buildOrderRequest(event)
	if err != nil {
		log.Warn().Err(err).Str("order_id", event.OrderID).Msg("service: rejected order event")
		return nil, err
	}

	res := s.sender.SendOrder(ctx, order)

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate delivery id: %w", err)
	}

	delivery := &Delivery{
		ID:        id,
		OrderID:   event.OrderID,
		Status:    order.Status,
		Success:   res.Success,
		Response:  res.Response,
		Error:     res.Err,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateDelivery(ctx, delivery); err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID).Msg("service: failed to record delivery attempt")
		return nil, fmt.Errorf("service: failed to record delivery: %w", err)
	}

	log.Info().
		Stringer("delivery_id", delivery.ID).
		Str("order_id", delivery.OrderID).
		Stringer("status", delivery.Status).
		Bool("success", delivery.Success).
		Msg("service: delivery attempt recorded")

	return delivery, nil
}

func (s *service) buildOrderRequest(event *OrderEvent) (*utmify.OrderRequest, error) {
	method, err := utmify.ParsePaymentMethod(event.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("service: order %s: %w", event.OrderID, err)
	}

	currency, err := utmify.ParseCurrency(event.Currency)
	if err != nil {
		return nil, fmt.Errorf("service: order %s: %w", event.OrderID, err)
	}

	products := make([]utmify.Product, 0, len(event.Items))
	for _, item := range event.Items {
		products = append(products, utmify.Product{
			ID:           item.ProductID,
			Name:         item.Name,
			PlanID:       item.PlanID,
			PlanName:     item.PlanName,
			Quantity:     item.Quantity,
			PriceInCents: item.PriceCents,
		})
	}

	createdAt := event.CreatedAt

	return &utmify.OrderRequest{
		OrderID:       event.OrderID,
		Platform:      s.platform,
		PaymentMethod: method,
		Status:        utmify.MapStatus(event.Status),
		CreatedAt:     *utmify.FormatDate(&createdAt),
		ApprovedDate:  utmify.FormatDate(event.ApprovedAt),
		RefundedAt:    utmify.FormatDate(event.RefundedAt),
		Customer: utmify.Customer{
			Name:     event.Customer.Name,
			Email:    event.Customer.Email,
			Phone:    event.Customer.Phone,
			Document: event.Customer.Document,
			Country:  event.Customer.Country,
			IP:       event.Customer.IP,
		},
		Products: products,
		TrackingParameters: utmify.TrackingParameters{
			Src:         event.Tracking.Src,
			Sck:         event.Tracking.Sck,
			UtmSource:   event.Tracking.UtmSource,
			UtmCampaign: event.Tracking.UtmCampaign,
			UtmMedium:   event.Tracking.UtmMedium,
			UtmContent:  event.Tracking.UtmContent,
			UtmTerm:     event.Tracking.UtmTerm,
		},
		Commission: utmify.Commission{
			TotalPriceInCents:     event.TotalCents,
			GatewayFeeInCents:     event.GatewayCents,
			UserCommissionInCents: event.NetCents,
			Currency:              currency,
		},
		IsTest: event.IsTest,
	}, nil
}

func (s *service) GetDeliveriesByOrderID(ctx context.Context, orderID string) ([]Delivery, error) {
	deliveries, err := s.repo.GetDeliveriesByOrderID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("service: failed to fetch deliveries")
		return nil, fmt.Errorf("service: failed to fetch deliveries: %w", err)
	}
	return deliveries, nil
}

func (s *service) GetDeliveryByID(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	delivery, err := s.repo.GetDeliveryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return delivery, nil
}
