package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shopcore/attribution-service/internal/tracking"
	"github.com/shopcore/attribution-service/internal/utmify"
)

// TrackingHandler handles HTTP requests from the order-processing system.
type TrackingHandler struct {
	svc      tracking.Service
	validate *validator.Validate
}

func NewTrackingHandler(svc tracking.Service) *TrackingHandler {
	return &TrackingHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// ForwardOrder accepts an internal order event and forwards it to the
// tracking provider. Responds 202 whether or not the provider accepted the
// order: delivery is best-effort and the body carries the attempt outcome.
func (h *TrackingHandler) ForwardOrder(w http.ResponseWriter, r *http.Request) {
	var event tracking.OrderEvent

	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	delivery, err := h.svc.ForwardOrder(ctx, &event)
	if err != nil {
		if errors.Is(err, utmify.ErrInvalidPaymentMethod) || errors.Is(err, utmify.ErrInvalidCurrency) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Info().Msgf("Failed to forward order: %v", err)
		http.Error(w, "failed to forward order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(delivery); err != nil {
		log.Info().Msgf("Failed to encode response: %v", err)
	}
}

// GetDeliveriesByOrderID lists the recorded delivery attempts for one order.
func (h *TrackingHandler) GetDeliveriesByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	if orderID == "" {
		http.Error(w, "order id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	deliveries, err := h.svc.GetDeliveriesByOrderID(ctx, orderID)
	if err != nil {
		log.Info().Msgf("Failed to get deliveries: %v", err)
		http.Error(w, "failed to get deliveries", http.StatusInternalServerError)
		return
	}
	if deliveries == nil {
		deliveries = []tracking.Delivery{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(deliveries); err != nil {
		log.Info().Msgf("Failed to encode response: %v", err)
	}
}

// GetDeliveryByID returns one delivery attempt.
func (h *TrackingHandler) GetDeliveryByID(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")

	id, err := uuid.FromString(idParam)
	if err != nil {
		http.Error(w, "invalid delivery id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	delivery, err := h.svc.GetDeliveryByID(ctx, id)
	if err != nil {
		if errors.Is(err, tracking.ErrDeliveryNotFound) {
			http.Error(w, "delivery not found", http.StatusNotFound)
			return
		}
		log.Info().Msgf("Failed to get delivery: %v", err)
		http.Error(w, "failed to get delivery", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(delivery); err != nil {
		log.Info().Msgf("Failed to encode response: %v", err)
	}
}
