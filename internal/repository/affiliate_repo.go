package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/travesia/voucher-admin/internal/domain/entity"
	"go.uber.org/zap"
)

// AffiliateRepository handles affiliate database operations
type AffiliateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAffiliateRepository creates a new affiliate repository
func NewAffiliateRepository(db *sql.DB, logger *zap.Logger) *AffiliateRepository {
	return &AffiliateRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all affiliates ordered by full name
func (r *AffiliateRepository) List(ctx context.Context) ([]entity.Affiliate, error) {
	query := `
		SELECT id, full_name, first_name, second_name, paternal_surname,
			maternal_surname, identity_card, affiliate_code, admission_date, status
		FROM affiliates
		ORDER BY full_name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list affiliates", zap.Error(err))
		return nil, fmt.Errorf("failed to list affiliates: %w", err)
	}
	defer rows.Close()

	affiliates := make([]entity.Affiliate, 0)
	for rows.Next() {
		a, err := scanAffiliate(rows)
		if err != nil {
			return nil, err
		}
		affiliates = append(affiliates, *a)
	}

	return affiliates, rows.Err()
}

// GetByID returns the affiliate with the given id, or nil when not found
func (r *AffiliateRepository) GetByID(ctx context.Context, id int64) (*entity.Affiliate, error) {
	query := `
		SELECT id, full_name, first_name, second_name, paternal_surname,
			maternal_surname, identity_card, affiliate_code, admission_date, status
		FROM affiliates
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	a, err := scanAffiliate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get affiliate", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return a, nil
}

// Create inserts a new affiliate and adopts the assigned id.
// When tx is non-nil the insert joins the caller's transaction.
func (r *AffiliateRepository) Create(ctx context.Context, tx *sql.Tx, affiliate *entity.Affiliate) error {
	query := `
		INSERT INTO affiliates (
			full_name, first_name, second_name, paternal_surname,
			maternal_surname, identity_card, affiliate_code, admission_date, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var admission interface{}
	if affiliate.AdmissionDate != nil {
		admission = affiliate.AdmissionDate.Format(entity.DateTimeLayout)
	}

	args := []interface{}{
		affiliate.FullName,
		affiliate.FirstName,
		affiliate.SecondName,
		affiliate.PaternalSurname,
		affiliate.MaternalSurname,
		affiliate.IdentityCard,
		affiliate.AffiliateCode,
		admission,
		affiliate.Status,
	}

	var result sql.Result
	var err error

	if tx != nil {
		result, err = tx.ExecContext(ctx, query, args...)
	} else {
		result, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		r.logger.Error("Failed to create affiliate",
			zap.String("identity_card", affiliate.IdentityCard),
			zap.Error(err))
		return fmt.Errorf("failed to create affiliate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	affiliate.ID = id
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAffiliate(row rowScanner) (*entity.Affiliate, error) {
	var a entity.Affiliate
	var admission sql.NullString

	err := row.Scan(
		&a.ID,
		&a.FullName,
		&a.FirstName,
		&a.SecondName,
		&a.PaternalSurname,
		&a.MaternalSurname,
		&a.IdentityCard,
		&a.AffiliateCode,
		&admission,
		&a.Status,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan affiliate: %w", err)
	}

	if admission.Valid && admission.String != "" {
		t, err := time.Parse(entity.DateTimeLayout, admission.String)
		if err != nil {
			return nil, fmt.Errorf("invalid admission date %q: %w", admission.String, err)
		}
		a.AdmissionDate = &t
	}

	return &a, nil
}
