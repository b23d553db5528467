package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// PGStore is the Postgres-backed Store implementation.
type PGStore struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

// NewPGStore creates a Postgres store over an existing connection pool.
func NewPGStore(db *sqlx.DB) *PGStore {
	return &PGStore{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id", "order_number", "user_id", "items",
	"subtotal", "tax", "total", "status",
	"ship_name", "ship_street", "ship_city", "ship_state", "ship_country", "ship_zip", "ship_phone",
	"payment_provider", "payment_transaction_id", "payment_status", "payment_amount", "payment_currency",
	"shipping_carrier", "shipping_tracking_number", "shipping_tracking_url", "shipping_cost",
	"notes", "created_at", "updated_at",
}

type orderRow struct {
	ID          string          `db:"id"`
	OrderNumber string          `db:"order_number"`
	UserID      string          `db:"user_id"`
	Items       json.RawMessage `db:"items"`
	Subtotal    float64         `db:"subtotal"`
	Tax         float64         `db:"tax"`
	Total       float64         `db:"total"`
	Status      string          `db:"status"`

	ShipName    string `db:"ship_name"`
	ShipStreet  string `db:"ship_street"`
	ShipCity    string `db:"ship_city"`
	ShipState   string `db:"ship_state"`
	ShipCountry string `db:"ship_country"`
	ShipZip     string `db:"ship_zip"`
	ShipPhone   string `db:"ship_phone"`

	PaymentProvider      string  `db:"payment_provider"`
	PaymentTransactionID string  `db:"payment_transaction_id"`
	PaymentStatus        string  `db:"payment_status"`
	PaymentAmount        float64 `db:"payment_amount"`
	PaymentCurrency      string  `db:"payment_currency"`

	ShippingCarrier        sql.NullString  `db:"shipping_carrier"`
	ShippingTrackingNumber sql.NullString  `db:"shipping_tracking_number"`
	ShippingTrackingURL    sql.NullString  `db:"shipping_tracking_url"`
	ShippingCost           sql.NullFloat64 `db:"shipping_cost"`

	Notes     sql.NullString `db:"notes"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type itemRow struct {
	ProductID       string   `json:"product_id"`
	Name            string   `json:"name"`
	SKU             string   `json:"sku,omitempty"`
	HSN             string   `json:"hsn,omitempty"`
	Quantity        int      `json:"quantity"`
	Price           float64  `json:"price"`
	Weight          float64  `json:"weight,omitempty"`
	SelectedOptions []string `json:"selected_options,omitempty"`
}

// GetByID returns the order with the given id.
func (s *PGStore) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.get(ctx, sq.Eq{"id": id}, id)
}

// GetByNumber returns the order with the given order number.
func (s *PGStore) GetByNumber(ctx context.Context, number string) (*Order, error) {
	return s.get(ctx, sq.Eq{"order_number": number}, number)
}

func (s *PGStore) get(ctx context.Context, where sq.Eq, key string) (*Order, error) {
	query, args, err := s.qb.Select(orderColumns...).From("orders").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}

	var row orderRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return rowToOrder(&row)
}

// Patch applies a partial update to the order with the given id.
func (s *PGStore) Patch(ctx context.Context, id string, patch Patch) (*Order, error) {
	return s.patch(ctx, sq.Eq{"id": id}, id, patch)
}

// PatchByNumber applies a partial update keyed by order number.
func (s *PGStore) PatchByNumber(ctx context.Context, number string, patch Patch) (*Order, error) {
	return s.patch(ctx, sq.Eq{"order_number": number}, number, patch)
}

// patch only updates the columns present in the patch so writers touching
// unrelated fields are never clobbered. The status transition check and the
// UPDATE run inside one transaction.
func (s *PGStore) patch(ctx context.Context, where sq.Eq, key string, patch Patch) (*Order, error) {
	if patch.IsZero() {
		return s.get(ctx, where, key)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if patch.Status != nil {
		query, args, err := s.qb.Select("status").From("orders").Where(where).Suffix("FOR UPDATE").ToSql()
		if err != nil {
			return nil, fmt.Errorf("build status query: %w", err)
		}
		var current string
		if err := tx.GetContext(ctx, &current, query, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
			}
			return nil, fmt.Errorf("select order status: %w", err)
		}
		if err := CheckTransition(Status(current), *patch.Status); err != nil {
			return nil, err
		}
	}

	set := map[string]interface{}{"updated_at": time.Now()}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.PaymentProvider != nil {
		set["payment_provider"] = *patch.PaymentProvider
	}
	if patch.PaymentTransactionID != nil {
		set["payment_transaction_id"] = *patch.PaymentTransactionID
	}
	if patch.PaymentStatus != nil {
		set["payment_status"] = string(*patch.PaymentStatus)
	}
	if patch.ShippingCarrier != nil {
		set["shipping_carrier"] = *patch.ShippingCarrier
	}
	if patch.TrackingNumber != nil {
		set["shipping_tracking_number"] = *patch.TrackingNumber
	}
	if patch.TrackingURL != nil {
		set["shipping_tracking_url"] = *patch.TrackingURL
	}
	if patch.ShippingCost != nil {
		set["shipping_cost"] = *patch.ShippingCost
	}

	query, args, err := s.qb.Update("orders").SetMap(set).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order update: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	query, args, err = s.qb.Select(orderColumns...).From("orders").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}
	var row orderRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return nil, fmt.Errorf("select updated order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order patch: %w", err)
	}
	return rowToOrder(&row)
}

func rowToOrder(row *orderRow) (*Order, error) {
	var items []itemRow
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}

	o := &Order{
		ID:          row.ID,
		OrderNumber: row.OrderNumber,
		UserID:      row.UserID,
		Items:       make([]Item, len(items)),
		Subtotal:    row.Subtotal,
		Tax:         row.Tax,
		Total:       row.Total,
		Status:      Status(row.Status),
		ShippingAddress: ShippingAddress{
			Name:    row.ShipName,
			Street:  row.ShipStreet,
			City:    row.ShipCity,
			State:   row.ShipState,
			Country: row.ShipCountry,
			ZipCode: row.ShipZip,
			Phone:   row.ShipPhone,
		},
		PaymentInfo: PaymentInfo{
			Provider:      row.PaymentProvider,
			TransactionID: row.PaymentTransactionID,
			Status:        PaymentStatus(row.PaymentStatus),
			Amount:        row.PaymentAmount,
			Currency:      row.PaymentCurrency,
		},
		Notes:     row.Notes.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for i, it := range items {
		o.Items[i] = Item{
			ProductID:       it.ProductID,
			Name:            it.Name,
			SKU:             it.SKU,
			HSN:             it.HSN,
			Quantity:        it.Quantity,
			Price:           it.Price,
			Weight:          it.Weight,
			SelectedOptions: it.SelectedOptions,
		}
	}
	if row.ShippingCarrier.Valid || row.ShippingTrackingNumber.Valid || row.ShippingTrackingURL.Valid || row.ShippingCost.Valid {
		o.ShippingInfo = &ShippingInfo{
			Carrier:        row.ShippingCarrier.String,
			TrackingNumber: row.ShippingTrackingNumber.String,
			TrackingURL:    row.ShippingTrackingURL.String,
			Cost:           row.ShippingCost.Float64,
		}
	}
	return o, nil
}

var _ Store = (*PGStore)(nil)
