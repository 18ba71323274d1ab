package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// pgxQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const orderColumns = `id, order_number, user_id, specification, customer, special_requests,
	pricing, pricing_version, amount_minor, currency, payment_status, payment_reference,
	external_payment_reference, payment_method, paid_at, failure_reason, admin_notes,
	history, created_at, updated_at`

// OrderPostgresRepository persists Order entities in PostgreSQL.
// Schema lives in migrations/; uniqueness comes from unique indexes, including
// the one that binds a settled provider transaction to a single order.
type OrderPostgresRepository struct {
	db pgxQuerier
}

var _ interfaces.IOrderRepository = (*OrderPostgresRepository)(nil)

func NewOrderPostgresRepository(db pgxQuerier) *OrderPostgresRepository {
	return &OrderPostgresRepository{db: db}
}

func (r *OrderPostgresRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	spec, err := json.Marshal(o.Specification)
	if err != nil {
		return entities.Order{}, err
	}
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return entities.Order{}, err
	}
	snapshot, err := json.Marshal(o.Pricing)
	if err != nil {
		return entities.Order{}, err
	}
	history := o.History
	if history == nil {
		history = []entities.StatusChange{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		o.ID,
		o.OrderNumber,
		o.UserID,
		spec,
		customer,
		o.SpecialRequests,
		snapshot,
		string(o.PricingVersion),
		o.AmountMinor,
		o.Currency,
		string(o.PaymentStatus),
		o.PaymentReference,
		o.ExternalPaymentReference,
		o.PaymentMethod,
		o.PaidAt,
		o.FailureReason,
		o.AdminNotes,
		historyJSON,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Order{}, fmt.Errorf("%w: %v", interfaces.ErrDuplicateKey, err)
		}
		return entities.Order{}, err
	}
	return o, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *OrderPostgresRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
}

func (r *OrderPostgresRepository) GetByPaymentReference(ctx context.Context, paymentReference string) (entities.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_reference=$1`, paymentReference)
}

func (r *OrderPostgresRepository) getOne(ctx context.Context, query string, arg string) (entities.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderPostgresRepository) ListByUserID(ctx context.Context, userID string, status entities.PaymentStatus) ([]entities.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id=$1 AND ($2 = '' OR payment_status = $2)
		ORDER BY created_at DESC
	`, userID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderPostgresRepository) TransitionStatus(ctx context.Context, id string, t entities.StatusTransition) (entities.Order, error) {
	change, err := json.Marshal([]entities.StatusChange{t.Change})
	if err != nil {
		return entities.Order{}, err
	}

	row := r.db.QueryRow(ctx, `
		UPDATE orders SET
			payment_status = $3,
			history = history || $4::jsonb,
			external_payment_reference = COALESCE(NULLIF($5, ''), external_payment_reference),
			payment_method = COALESCE(NULLIF($6, ''), payment_method),
			failure_reason = COALESCE(NULLIF($7, ''), failure_reason),
			admin_notes = COALESCE(NULLIF($8, ''), admin_notes),
			paid_at = COALESCE($9::timestamptz, paid_at),
			updated_at = $10,
			settled_transaction_id = COALESCE(NULLIF($11, ''), settled_transaction_id)
		WHERE id=$1 AND payment_status=$2
		RETURNING `+orderColumns,
		id,
		string(t.From),
		string(t.To),
		change,
		t.ExternalPaymentReference,
		t.PaymentMethod,
		t.FailureReason,
		t.AdminNotes,
		t.PaidAt,
		t.UpdatedAt,
		t.SettledTransaction(),
	)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Order{}, nil
		}
		if isUniqueViolation(err) {
			return entities.Order{}, fmt.Errorf("%w: %s", interfaces.ErrTransactionAlreadySettled, t.SettledTransaction())
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderPostgresRepository) Stats(ctx context.Context, since time.Time) (entities.OrderStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT payment_status,
			COUNT(*),
			COALESCE(SUM(amount_minor), 0)::bigint,
			COALESCE(SUM(amount_minor) FILTER (WHERE created_at >= $1), 0)::bigint
		FROM orders
		GROUP BY payment_status
	`, since)
	if err != nil {
		return entities.OrderStats{}, err
	}
	defer rows.Close()

	stats := entities.NewOrderStats(since)
	for rows.Next() {
		var (
			status        string
			count         int64
			revenue       int64
			recentRevenue int64
		)
		if err := rows.Scan(&status, &count, &revenue, &recentRevenue); err != nil {
			return entities.OrderStats{}, err
		}
		s := entities.PaymentStatus(status)
		stats.TotalOrders += count
		stats.ByStatus[s] = count
		if s == entities.PaymentStatusPaid {
			stats.TotalRevenueMinor = revenue
			stats.RecentRevenueMinor = recentRevenue
		}
	}
	return stats, rows.Err()
}

func scanOrder(row pgx.Row) (entities.Order, error) {
	var (
		o                                 entities.Order
		spec, customer, snapshot, history []byte
		pricingVersion, paymentStatus     string
		paidAt                            sql.NullTime
	)
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&spec,
		&customer,
		&o.SpecialRequests,
		&snapshot,
		&pricingVersion,
		&o.AmountMinor,
		&o.Currency,
		&paymentStatus,
		&o.PaymentReference,
		&o.ExternalPaymentReference,
		&o.PaymentMethod,
		&paidAt,
		&o.FailureReason,
		&o.AdminNotes,
		&history,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return entities.Order{}, err
	}

	if err := json.Unmarshal(spec, &o.Specification); err != nil {
		return entities.Order{}, fmt.Errorf("order %s: decode specification: %w", o.ID, err)
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return entities.Order{}, fmt.Errorf("order %s: decode customer: %w", o.ID, err)
	}
	if err := json.Unmarshal(snapshot, &o.Pricing); err != nil {
		return entities.Order{}, fmt.Errorf("order %s: decode pricing: %w", o.ID, err)
	}
	if err := json.Unmarshal(history, &o.History); err != nil {
		return entities.Order{}, fmt.Errorf("order %s: decode history: %w", o.ID, err)
	}
	o.PricingVersion = pricing.Version(pricingVersion)
	o.PaymentStatus = entities.PaymentStatus(paymentStatus)
	if paidAt.Valid {
		t := paidAt.Time.UTC()
		o.PaidAt = &t
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}
