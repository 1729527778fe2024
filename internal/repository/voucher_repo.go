package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/travesia/voucher-admin/internal/domain/entity"
	"go.uber.org/zap"
)

// VoucherRepository handles voucher database operations. Reads join the
// owning bank and affiliate so list payloads carry the nested objects.
type VoucherRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *sql.DB, logger *zap.Logger) *VoucherRepository {
	return &VoucherRepository{
		db:     db,
		logger: logger,
	}
}

const voucherSelect = `
	SELECT v.id, v.deposit_number, v.deposit_date, v.registration_date,
		v.amount, v.period,
		b.id, b.name, b.bank_code,
		a.id, a.full_name, a.first_name, a.second_name,
		a.paternal_surname, a.maternal_surname, a.identity_card
	FROM vouchers v
	JOIN banks b ON b.id = v.bank_id
	JOIN affiliates a ON a.id = v.affiliate_id
`

// List returns all vouchers, newest registration first
func (r *VoucherRepository) List(ctx context.Context) ([]entity.Voucher, error) {
	query := voucherSelect + ` ORDER BY v.registration_date DESC, v.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list vouchers", zap.Error(err))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	vouchers := make([]entity.Voucher, 0)
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, *v)
	}

	return vouchers, rows.Err()
}

// GetByID returns the voucher with the given id, or nil when not found
func (r *VoucherRepository) GetByID(ctx context.Context, id int64) (*entity.Voucher, error) {
	query := voucherSelect + ` WHERE v.id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	v, err := scanVoucher(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get voucher", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return v, nil
}

// Create inserts a new voucher row with pre-resolved bank and affiliate ids
// and adopts the assigned id and registration timestamp.
// When tx is non-nil the insert joins the caller's transaction.
func (r *VoucherRepository) Create(ctx context.Context, tx *sql.Tx, voucher *entity.Voucher) error {
	query := `
		INSERT INTO vouchers (
			deposit_number, deposit_date, registration_date, amount, period,
			bank_id, affiliate_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	voucher.RegistrationDate = entity.NewDateTime(time.Now())

	args := []interface{}{
		voucher.DepositNumber,
		voucher.DepositDate.Format(entity.DateTimeLayout),
		voucher.RegistrationDate.Format(entity.DateTimeLayout),
		voucher.Amount,
		voucher.Period.Format(entity.DateLayout),
		voucher.Bank.ID,
		voucher.Affiliate.ID,
	}

	var result sql.Result
	var err error

	if tx != nil {
		result, err = tx.ExecContext(ctx, query, args...)
	} else {
		result, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		r.logger.Error("Failed to create voucher",
			zap.Int64("deposit_number", voucher.DepositNumber),
			zap.Error(err))
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	voucher.ID = id
	return nil
}

// Update performs a full-record update of the scalar fields and ownership
// references. The registration date is never touched.
func (r *VoucherRepository) Update(ctx context.Context, voucher *entity.Voucher) error {
	query := `
		UPDATE vouchers
		SET deposit_number = ?, deposit_date = ?, amount = ?, period = ?,
			bank_id = ?, affiliate_id = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		voucher.DepositNumber,
		voucher.DepositDate.Format(entity.DateTimeLayout),
		voucher.Amount,
		voucher.Period.Format(entity.DateLayout),
		voucher.Bank.ID,
		voucher.Affiliate.ID,
		voucher.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update voucher", zap.Int64("id", voucher.ID), zap.Error(err))
		return fmt.Errorf("failed to update voucher: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes the voucher with the given id
func (r *VoucherRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vouchers WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete voucher", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanVoucher(row rowScanner) (*entity.Voucher, error) {
	var v entity.Voucher
	var depositDate, registrationDate, period string

	err := row.Scan(
		&v.ID,
		&v.DepositNumber,
		&depositDate,
		&registrationDate,
		&v.Amount,
		&period,
		&v.Bank.ID,
		&v.Bank.Name,
		&v.Bank.BankCode,
		&v.Affiliate.ID,
		&v.Affiliate.FullName,
		&v.Affiliate.FirstName,
		&v.Affiliate.SecondName,
		&v.Affiliate.PaternalSurname,
		&v.Affiliate.MaternalSurname,
		&v.Affiliate.IdentityCard,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan voucher: %w", err)
	}

	dd, err := time.Parse(entity.DateTimeLayout, depositDate)
	if err != nil {
		return nil, fmt.Errorf("invalid deposit date %q: %w", depositDate, err)
	}
	rd, err := time.Parse(entity.DateTimeLayout, registrationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid registration date %q: %w", registrationDate, err)
	}
	p, err := time.Parse(entity.DateLayout, period)
	if err != nil {
		return nil, fmt.Errorf("invalid period %q: %w", period, err)
	}

	v.DepositDate = entity.NewDateTime(dd)
	v.RegistrationDate = entity.NewDateTime(rd)
	v.Period = entity.NewDate(p)

	return &v, nil
}
