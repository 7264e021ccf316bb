package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/attribution-service/internal/utmify"
)

var (
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrDuplicateDelivery = errors.New("delivery with this ID already exists")
)

type Repository interface {
	CreateDelivery(ctx context.Context, delivery *Delivery) error
	GetDeliveriesByOrderID(ctx context.Context, orderID string) ([]Delivery, error)
	GetDeliveryByID(ctx context.Context, id uuid.UUID) (*Delivery, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateDelivery(ctx context.Context, delivery *Delivery) error {
	query := `
		INSERT INTO deliveries (id, order_id, status, success, response, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		delivery.ID,
		delivery.OrderID,
		string(delivery.Status),
		delivery.Success,
		delivery.Response,
		delivery.Error,
		delivery.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateDelivery
		}
		return fmt.Errorf("repository: failed to insert delivery: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetDeliveriesByOrderID(ctx context.Context, orderID string) ([]Delivery, error) {
	query := `
		SELECT id, order_id, status, success, response, error, created_at
		FROM deliveries
		WHERE order_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []Delivery
	for rows.Next() {
		var d Delivery
		var status string
		if err := rows.Scan(&d.ID, &d.OrderID, &status, &d.Success, &d.Response, &d.Error, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan delivery: %w", err)
		}
		d.Status = utmify.OrderStatus(status)
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed to iterate deliveries: %w", err)
	}
	return deliveries, nil
}

func (r *postgresRepository) GetDeliveryByID(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	query := `
		SELECT id, order_id, status, success, response, error, created_at
		FROM deliveries
		WHERE id = $1
	`
	var d Delivery
	var status string
	err := r.db.QueryRow(ctx, query, id).
		Scan(&d.ID, &d.OrderID, &status, &d.Success, &d.Response, &d.Error, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("repository: failed to fetch delivery: %w", err)
	}
	d.Status = utmify.OrderStatus(status)
	return &d, nil
}
