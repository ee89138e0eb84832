package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mimo/internal/domain"
	"mimo/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Create writes the snapshot once. There is no dedup on the
// human-readable orderId; the auto-increment id is the unique key.
func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (
			orderId, origin, customerName, customerEmail, customerPhone,
			contentFrom, contentTo, contentText, formatSlug, deliveryDate,
			audioRef, videoRef,
			deliveryKind, address, postalCode, digitalMethod, physicalMethod,
			totalCents, method, externalPaymentId, paymentStatus, shippingPending,
			createdAt
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.OrderID, string(order.Origin),
		order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.Content.From, order.Content.To, order.Content.Text,
		string(order.Content.FormatSlug), order.Content.DeliveryDate,
		order.Content.AudioRef, order.Content.VideoRef,
		string(order.Logistics.Kind), order.Logistics.Address, order.Logistics.PostalCode,
		methodPtr(order.Logistics.DigitalMethod), physicalPtr(order.Logistics.PhysicalMethod),
		order.Financial.TotalCents, string(order.Financial.Method),
		order.Financial.ExternalPaymentID, string(order.Financial.PaymentStatus),
		order.Financial.ShippingPending,
		order.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted order id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrders+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	return &orders[0], nil
}

// FindByExternalPaymentID returns every snapshot carrying the payment
// id. The reconciler needs the full list to detect ambiguity.
func (r *MySQLOrderRepository) FindByExternalPaymentID(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrders+` WHERE externalPaymentId = ?`, externalPaymentID)
	if err != nil {
		return nil, fmt.Errorf("querying orders by payment id: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// MarkPaid transitions pending → paid. The status guard in the WHERE
// clause makes redelivered confirmations a no-op; the returned bool
// reports whether this call performed the transition.
func (r *MySQLOrderRepository) MarkPaid(ctx context.Context, id uint, confirmedMethod string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE Orders
		SET paymentStatus = ?, confirmedMethod = ?, paidAt = ?
		WHERE id = ? AND paymentStatus = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		string(domain.PaymentStatusPaid), confirmedMethod, paidAt, id, string(domain.PaymentStatusPending))
	if err != nil {
		return false, fmt.Errorf("marking order paid: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return affected > 0, nil
}

const selectOrders = `
	SELECT id, orderId, origin, customerName, customerEmail, customerPhone,
	       contentFrom, contentTo, contentText, formatSlug, deliveryDate,
	       audioRef, videoRef,
	       deliveryKind, address, postalCode, digitalMethod, physicalMethod,
	       totalCents, method, externalPaymentId, paymentStatus, shippingPending,
	       confirmedMethod, paidAt, createdAt
	FROM Orders
`

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var (
			o               domain.Order
			origin          string
			formatSlug      string
			deliveryKind    string
			method          string
			paymentStatus   string
			deliveryDate    sql.NullTime
			audioRef        sql.NullString
			videoRef        sql.NullString
			address         sql.NullString
			postalCode      sql.NullString
			digitalMethod   sql.NullString
			physicalMethod  sql.NullString
			externalID      sql.NullString
			confirmedMethod sql.NullString
			paidAt          sql.NullTime
		)

		err := rows.Scan(
			&o.StoreID, &o.OrderID, &origin,
			&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
			&o.Content.From, &o.Content.To, &o.Content.Text, &formatSlug, &deliveryDate,
			&audioRef, &videoRef,
			&deliveryKind, &address, &postalCode, &digitalMethod, &physicalMethod,
			&o.Financial.TotalCents, &method, &externalID, &paymentStatus, &o.Financial.ShippingPending,
			&confirmedMethod, &paidAt, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		o.Origin = domain.OrderOrigin(origin)
		o.Content.FormatSlug = domain.FormatSlug(formatSlug)
		o.Logistics.Kind = domain.DeliveryKind(deliveryKind)
		o.Financial.Method = domain.PaymentMethod(method)
		o.Financial.PaymentStatus = domain.PaymentStatus(paymentStatus)

		if deliveryDate.Valid {
			t := deliveryDate.Time
			o.Content.DeliveryDate = &t
		}
		if audioRef.Valid {
			o.Content.AudioRef = &audioRef.String
		}
		if videoRef.Valid {
			o.Content.VideoRef = &videoRef.String
		}
		if address.Valid {
			o.Logistics.Address = &address.String
		}
		if postalCode.Valid {
			o.Logistics.PostalCode = &postalCode.String
		}
		if digitalMethod.Valid {
			m := domain.DigitalMethod(digitalMethod.String)
			o.Logistics.DigitalMethod = &m
		}
		if physicalMethod.Valid {
			m := domain.PhysicalMethod(physicalMethod.String)
			o.Logistics.PhysicalMethod = &m
		}
		if externalID.Valid {
			o.Financial.ExternalPaymentID = &externalID.String
		}
		if confirmedMethod.Valid {
			o.ConfirmedMethod = &confirmedMethod.String
		}
		if paidAt.Valid {
			t := paidAt.Time
			o.PaidAt = &t
		}

		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func methodPtr(m *domain.DigitalMethod) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

func physicalPtr(m *domain.PhysicalMethod) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}
