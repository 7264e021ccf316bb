package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/attribution-service/internal/handler"
	"github.com/shopcore/attribution-service/internal/tracking"
	"github.com/shopcore/attribution-service/internal/utmify"
)

func NewRouter(db *pgxpool.Pool, client *utmify.Client, platform string) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	repo := tracking.NewRepository(db)
	svc := tracking.NewService(repo, client, platform)
	h := handler.NewTrackingHandler(svc)

	r.Post("/track/orders", h.ForwardOrder)
	r.Get("/track/orders/{orderID}/deliveries", h.GetDeliveriesByOrderID)
	r.Get("/track/deliveries/{id}", h.GetDeliveryByID)

	return r
}
