package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool used by the storage. Declared as an
// interface so tests can substitute a pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type documentRepository struct {
	storage *Storage
}

type receiptRepository struct {
	storage *Storage
}

type messageRepository struct {
	storage *Storage
}

// newPgxPool is swapped in tests to substitute a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Documents() repository.DocumentRepository {
	return &documentRepository{storage: s}
}

func (s *Storage) Receipts() repository.ReceiptRepository {
	return &receiptRepository{storage: s}
}

func (s *Storage) Messages() repository.MessageRepository {
	return &messageRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            full_name TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            owner_id BIGINT NOT NULL REFERENCES users(id),
            vehicle_id TEXT NOT NULL,
            vehicle_name TEXT NOT NULL,
            vehicle_color TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            deposit_paid DOUBLE PRECISION NOT NULL,
            estimated_arrival TIMESTAMPTZ,
            version BIGINT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_status_history (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            stage TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            actor TEXT NOT NULL DEFAULT '',
            occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_documents (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            content_type TEXT NOT NULL DEFAULT '',
            url TEXT NOT NULL,
            uploaded_by TEXT NOT NULL,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS bank_receipts (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            file_name TEXT NOT NULL,
            url TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            verified_at TIMESTAMPTZ,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_messages (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            sender_id BIGINT NOT NULL,
            sender_role TEXT NOT NULL,
            content TEXT NOT NULL,
            read BOOLEAN NOT NULL DEFAULT FALSE,
            sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE SEQUENCE IF NOT EXISTS order_number_seq START 100`,
		`CREATE INDEX IF NOT EXISTS idx_orders_owner ON orders(owner_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_history_order ON order_status_history(order_id, occurred_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, fullName string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, full_name, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, fullName, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.FullName = fullName
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, full_name, role, created_at FROM users WHERE login=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, full_name, role, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, order_number, owner_id, vehicle_id, vehicle_name, vehicle_color,
                      status, total_amount, deposit_paid, estimated_arrival, version, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.OwnerID,
		&o.Vehicle.VehicleID, &o.Vehicle.Name, &o.Vehicle.Color,
		&o.Status, &o.TotalAmount, &o.DepositPaid,
		&o.EstimatedArrival, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (id, order_number, owner_id, vehicle_id, vehicle_name, vehicle_color,
             status, total_amount, deposit_paid, estimated_arrival, version, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		_, err := tx.Exec(ctx, insertOrder,
			order.ID, order.OrderNumber, order.OwnerID,
			order.Vehicle.VehicleID, order.Vehicle.Name, order.Vehicle.Color,
			order.Status, order.TotalAmount, order.DepositPaid,
			order.EstimatedArrival, order.Version, order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, stage, note, actor, occurred_at)
                               VALUES ($1, $2, $3, $4, $5)`
		for _, entry := range order.StatusHistory {
			if _, err := tx.Exec(ctx, insertHistory, order.ID, entry.Stage, entry.Note, entry.Actor, entry.OccurredAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	history, err := r.historyOf(ctx, id)
	if err != nil {
		return nil, err
	}
	order.StatusHistory = history
	return order, nil
}

func (r *orderRepository) historyOf(ctx context.Context, orderID string) ([]model.StatusUpdate, error) {
	const query = `SELECT stage, note, actor, occurred_at FROM order_status_history
                   WHERE order_id=$1 ORDER BY occurred_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []model.StatusUpdate
	for rows.Next() {
		var entry model.StatusUpdate
		if err := rows.Scan(&entry.Stage, &entry.Note, &entry.Actor, &entry.OccurredAt); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	return r.List(ctx, model.OrderFilter{OwnerID: &ownerID})
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var (
		conds []string
		args  []any
	)
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(id ILIKE $%d OR order_number ILIKE $%d OR vehicle_name ILIKE $%d)", n, n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) AppendTransition(ctx context.Context, orderID string, fromVersion int64, update model.StatusUpdate) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateOrder = `UPDATE orders SET status=$1, version=version+1, updated_at=NOW()
                             WHERE id=$2 AND version=$3`
		tag, err := tx.Exec(ctx, updateOrder, update.Stage, orderID, fromVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, orderID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domainErrors.ErrNotFound
			}
			return domainErrors.ErrStaleWrite
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, stage, note, actor, occurred_at)
                               VALUES ($1, $2, $3, $4, $5)`
		_, err = tx.Exec(ctx, insertHistory, orderID, update.Stage, update.Note, update.Actor, update.OccurredAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) CountByStage(ctx context.Context) (map[model.Stage]int64, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.Stage]int64)
	for rows.Next() {
		var (
			stage model.Stage
			n     int64
		)
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[stage] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *orderRepository) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// --- DocumentRepository implementation ---

func (r *documentRepository) Add(ctx context.Context, doc *model.Document) error {
	const query = `INSERT INTO order_documents (id, order_id, name, content_type, url, uploaded_by, uploaded_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.storage.pool.Exec(ctx, query,
		doc.ID, doc.OrderID, doc.Name, doc.ContentType, doc.URL, doc.UploadedBy, doc.UploadedAt)
	return err
}

func (r *documentRepository) ListByOrder(ctx context.Context, orderID string) ([]model.Document, error) {
	const query = `SELECT id, order_id, name, content_type, url, uploaded_by, uploaded_at
                   FROM order_documents WHERE order_id=$1 ORDER BY uploaded_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.OrderID, &d.Name, &d.ContentType, &d.URL, &d.UploadedBy, &d.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ReceiptRepository implementation ---

func (r *receiptRepository) Add(ctx context.Context, receipt *model.BankReceipt) error {
	const query = `INSERT INTO bank_receipts (id, order_id, file_name, url, amount, verified, uploaded_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.storage.pool.Exec(ctx, query,
		receipt.ID, receipt.OrderID, receipt.FileName, receipt.URL, receipt.Amount, receipt.Verified, receipt.UploadedAt)
	return err
}

func (r *receiptRepository) ListByOrder(ctx context.Context, orderID string) ([]model.BankReceipt, error) {
	const query = `SELECT id, order_id, file_name, url, amount, verified, verified_at, uploaded_at
                   FROM bank_receipts WHERE order_id=$1 ORDER BY uploaded_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.BankReceipt
	for rows.Next() {
		var b model.BankReceipt
		if err := rows.Scan(&b.ID, &b.OrderID, &b.FileName, &b.URL, &b.Amount, &b.Verified, &b.VerifiedAt, &b.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *receiptRepository) Verify(ctx context.Context, orderID, receiptID string) (*model.BankReceipt, error) {
	const query = `UPDATE bank_receipts SET verified=TRUE, verified_at=NOW()
                   WHERE id=$1 AND order_id=$2
                   RETURNING id, order_id, file_name, url, amount, verified, verified_at, uploaded_at`
	var b model.BankReceipt
	err := r.storage.pool.QueryRow(ctx, query, receiptID, orderID).Scan(
		&b.ID, &b.OrderID, &b.FileName, &b.URL, &b.Amount, &b.Verified, &b.VerifiedAt, &b.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// --- MessageRepository implementation ---

func (r *messageRepository) Add(ctx context.Context, msg *model.Message) error {
	const query = `INSERT INTO order_messages (id, order_id, sender_id, sender_role, content, read, sent_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.storage.pool.Exec(ctx, query,
		msg.ID, msg.OrderID, msg.SenderID, msg.SenderRole, msg.Content, msg.Read, msg.SentAt)
	return err
}

func (r *messageRepository) ListByOrder(ctx context.Context, orderID string) ([]model.Message, error) {
	const query = `SELECT id, order_id, sender_id, sender_role, content, read, sent_at
                   FROM order_messages WHERE order_id=$1 ORDER BY sent_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.OrderID, &m.SenderID, &m.SenderRole, &m.Content, &m.Read, &m.SentAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
