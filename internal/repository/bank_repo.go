package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/travesia/voucher-admin/internal/domain/entity"
	"go.uber.org/zap"
)

// BankRepository handles bank database operations
type BankRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *sql.DB, logger *zap.Logger) *BankRepository {
	return &BankRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all banks ordered by name
func (r *BankRepository) List(ctx context.Context) ([]entity.Bank, error) {
	query := `SELECT id, name, bank_code FROM banks ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list banks", zap.Error(err))
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	defer rows.Close()

	banks := make([]entity.Bank, 0)
	for rows.Next() {
		var b entity.Bank
		if err := rows.Scan(&b.ID, &b.Name, &b.BankCode); err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		banks = append(banks, b)
	}

	return banks, rows.Err()
}

// GetByID returns the bank with the given id, or nil when not found
func (r *BankRepository) GetByID(ctx context.Context, id int64) (*entity.Bank, error) {
	query := `SELECT id, name, bank_code FROM banks WHERE id = ?`

	var b entity.Bank
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.BankCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get bank", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get bank: %w", err)
	}

	return &b, nil
}

// Create inserts a new bank and adopts the assigned id.
// When tx is non-nil the insert joins the caller's transaction.
func (r *BankRepository) Create(ctx context.Context, tx *sql.Tx, bank *entity.Bank) error {
	query := `INSERT INTO banks (name, bank_code) VALUES (?, ?)`

	var result sql.Result
	var err error

	if tx != nil {
		result, err = tx.ExecContext(ctx, query, bank.Name, bank.BankCode)
	} else {
		result, err = r.db.ExecContext(ctx, query, bank.Name, bank.BankCode)
	}
	if err != nil {
		r.logger.Error("Failed to create bank", zap.String("name", bank.Name), zap.Error(err))
		return fmt.Errorf("failed to create bank: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	bank.ID = id
	return nil
}
