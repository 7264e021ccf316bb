package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shopcore/attribution-service/internal/handler"
	"github.com/shopcore/attribution-service/internal/tracking"
	"github.com/shopcore/attribution-service/internal/utmify"
)

type mockTrackingService struct {
	forwardOrderFunc   func(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error)
	getByOrderIDFunc   func(ctx context.Context, orderID string) ([]tracking.Delivery, error)
	getDeliveryByIDFun func(ctx context.Context, id uuid.UUID) (*tracking.Delivery, error)
}

func (m *mockTrackingService) ForwardOrder(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error) {
	return m.forwardOrderFunc(ctx, event)
}

func (m *mockTrackingService) GetDeliveriesByOrderID(ctx context.Context, orderID string) ([]tracking.Delivery, error) {
	return m.getByOrderIDFunc(ctx, orderID)
}

func (m *mockTrackingService) GetDeliveryByID(ctx context.Context, id uuid.UUID) (*tracking.Delivery, error) {
	return m.getDeliveryByIDFun(ctx, id)
}

func validEventBody() string {
	return `{
		"order_id": "ord_1",
		"status": "paid",
		"payment_method": "pix",
		"created_at": "2024-03-10T12:00:00Z",
		"customer": {"name": "Maria Silva", "email": "maria@example.com"},
		"items": [{"product_id": "p1", "name": "Course", "quantity": 1, "price_cents": 9900}],
		"total_cents": 9900,
		"gateway_fee_cents": 300,
		"net_cents": 9600
	}`
}

func TestTrackingHandler_ForwardOrder(t *testing.T) {
	deliveryID := uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440000"))

	tests := []struct {
		name           string
		body           string
		forwardOrder   func(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error)
		expectedStatus int
	}{
		{
			name: "success",
			body: validEventBody(),
			forwardOrder: func(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error) {
				return &tracking.Delivery{
					ID:        deliveryID,
					OrderID:   event.OrderID,
					Status:    utmify.StatusPaid,
					Success:   true,
					Response:  `{"id":"abc"}`,
					CreatedAt: time.Date(2024, 3, 10, 12, 0, 1, 0, time.UTC),
				}, nil
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name: "provider_rejection_still_accepted",
			body: validEventBody(),
			forwardOrder: func(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error) {
				return &tracking.Delivery{
					ID:      deliveryID,
					OrderID: event.OrderID,
					Status:  utmify.StatusPaid,
					Success: false,
					Error:   "unauthorized",
				}, nil
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "invalid_json",
			body:           `{not json`,
			forwardOrder:   nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing_required_fields",
			body: `{"order_id": "ord_1"}`,
			forwardOrder: func(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error) {
				t.Fatal("service must not be called when validation fails")
				return nil, nil
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid_payment_method",
			body: validEventBody(),
			forwardOrder: func(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error) {
				return nil, fmt.Errorf("service: order ord_1: %w", utmify.ErrInvalidPaymentMethod)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "internal_error",
			body: validEventBody(),
			forwardOrder: func(ctx context.Context, event *tracking.OrderEvent) (*tracking.Delivery, error) {
				return nil, errors.New("service: failed to record delivery: db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTrackingService{forwardOrderFunc: tt.forwardOrder}
			h := handler.NewTrackingHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/track/orders", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.ForwardOrder(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusAccepted {
				var delivery tracking.Delivery
				err := json.NewDecoder(rec.Body).Decode(&delivery)
				assert.NoError(t, err)
				assert.Equal(t, "ord_1", delivery.OrderID)
			}
		})
	}
}

func TestTrackingHandler_GetDeliveriesByOrderID(t *testing.T) {
	svc := &mockTrackingService{
		getByOrderIDFunc: func(ctx context.Context, orderID string) ([]tracking.Delivery, error) {
			assert.Equal(t, "ord_1", orderID)
			return []tracking.Delivery{{OrderID: "ord_1", Success: true}}, nil
		},
	}
	h := handler.NewTrackingHandler(svc)

	r := chi.NewRouter()
	r.Get("/track/orders/{orderID}/deliveries", h.GetDeliveriesByOrderID)

	req := httptest.NewRequest(http.MethodGet, "/track/orders/ord_1/deliveries", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var deliveries []tracking.Delivery
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&deliveries))
	assert.Len(t, deliveries, 1)
}

func TestTrackingHandler_GetDeliveriesByOrderID_Empty(t *testing.T) {
	svc := &mockTrackingService{
		getByOrderIDFunc: func(ctx context.Context, orderID string) ([]tracking.Delivery, error) {
			return nil, nil
		},
	}
	h := handler.NewTrackingHandler(svc)

	r := chi.NewRouter()
	r.Get("/track/orders/{orderID}/deliveries", h.GetDeliveriesByOrderID)

	req := httptest.NewRequest(http.MethodGet, "/track/orders/ord_2/deliveries", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestTrackingHandler_GetDeliveryByID(t *testing.T) {
	known := uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440000"))

	svc := &mockTrackingService{
		getDeliveryByIDFun: func(ctx context.Context, id uuid.UUID) (*tracking.Delivery, error) {
			if id == known {
				return &tracking.Delivery{ID: id, OrderID: "ord_1"}, nil
			}
			return nil, tracking.ErrDeliveryNotFound
		},
	}
	h := handler.NewTrackingHandler(svc)

	r := chi.NewRouter()
	r.Get("/track/deliveries/{id}", h.GetDeliveryByID)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"found", "/track/deliveries/" + known.String(), http.StatusOK},
		{"not_found", "/track/deliveries/650e8400-e29b-41d4-a716-446655440000", http.StatusNotFound},
		{"bad_id", "/track/deliveries/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
