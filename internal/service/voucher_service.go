package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/travesia/voucher-admin/internal/repository"
	"github.com/travesia/voucher-admin/pkg/database"
	"github.com/travesia/voucher-admin/pkg/utils"
	"go.uber.org/zap"
)

var (
	// ErrValidation marks client-supplied payload problems (HTTP 400)
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks references to missing records (HTTP 404)
	ErrNotFound = errors.New("not found")
)

// BankInput is the nested bank payload on the voucher create path.
// A nil ID means "register this bank inline".
type BankInput struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	BankCode string `json:"bankCode"`
}

// AffiliateInput is the nested affiliate payload on the voucher create path.
// A nil ID means "register this affiliate inline".
type AffiliateInput struct {
	ID              *int64 `json:"id"`
	FirstName       string `json:"firstName"`
	SecondName      string `json:"secondName"`
	PaternalSurname string `json:"paternalSurname"`
	MaternalSurname string `json:"maternalSurname"`
	IdentityCard    string `json:"identityCard"`
}

// CreateVoucherInput is the legacy nested-object create payload. The
// update path uses the flat resolved-ids shape instead; both are kept
// because the backend contract differs between the two operations.
type CreateVoucherInput struct {
	DepositNumber int64          `json:"depositNumber"`
	DepositDate   string         `json:"depositDate"`
	Amount        float64        `json:"amount"`
	Period        string         `json:"period"`
	Bank          BankInput      `json:"bank"`
	Affiliate     AffiliateInput `json:"affiliate"`
}

// UpdateVoucherInput is the flat update payload with pre-resolved ids
type UpdateVoucherInput struct {
	DepositNumber int64   `json:"depositNumber"`
	DepositDate   string  `json:"depositDate"`
	Amount        float64 `json:"amount"`
	Period        string  `json:"period"`
	BankID        int64   `json:"bankId"`
	PersonID      int64   `json:"personId"`
}

// VoucherService implements the finance API's business rules: field
// normalization, dependent-entity resolution and full-record updates.
type VoucherService struct {
	db            *database.DB
	voucherRepo   *repository.VoucherRepository
	bankRepo      *repository.BankRepository
	affiliateRepo *repository.AffiliateRepository
	logger        *zap.Logger
}

// NewVoucherService creates a new voucher service
func NewVoucherService(
	db *database.DB,
	voucherRepo *repository.VoucherRepository,
	bankRepo *repository.BankRepository,
	affiliateRepo *repository.AffiliateRepository,
	logger *zap.Logger,
) *VoucherService {
	return &VoucherService{
		db:            db,
		voucherRepo:   voucherRepo,
		bankRepo:      bankRepo,
		affiliateRepo: affiliateRepo,
		logger:        logger,
	}
}

// ListVouchers returns all vouchers with their nested bank and affiliate
func (s *VoucherService) ListVouchers(ctx context.Context) ([]entity.Voucher, error) {
	return s.voucherRepo.List(ctx)
}

// ListBanks returns all banks
func (s *VoucherService) ListBanks(ctx context.Context) ([]entity.Bank, error) {
	return s.bankRepo.List(ctx)
}

// ListAffiliates returns all affiliates
func (s *VoucherService) ListAffiliates(ctx context.Context) ([]entity.Affiliate, error) {
	return s.affiliateRepo.List(ctx)
}

// CreateBank registers a bank, normalizing its free-text fields
func (s *VoucherService) CreateBank(ctx context.Context, input BankInput) (*entity.Bank, error) {
	bank := entity.Bank{
		Name:     utils.ToUpperClean(input.Name),
		BankCode: utils.ToUpperClean(input.BankCode),
	}
	if bank.Name == "" || bank.BankCode == "" {
		return nil, fmt.Errorf("%w: bank name and code are required", ErrValidation)
	}

	if err := s.bankRepo.Create(ctx, nil, &bank); err != nil {
		return nil, err
	}

	s.logger.Info("Bank registered", zap.Int64("id", bank.ID), zap.String("name", bank.Name))
	return &bank, nil
}

// CreateAffiliate registers an affiliate. The full name is composed from
// the normalized name parts, the provisional affiliate code is derived
// from the identity card, and admission is stamped now with ACTIVE status.
func (s *VoucherService) CreateAffiliate(ctx context.Context, input AffiliateInput) (*entity.Affiliate, error) {
	affiliate, err := s.buildAffiliate(input)
	if err != nil {
		return nil, err
	}

	if err := s.affiliateRepo.Create(ctx, nil, affiliate); err != nil {
		return nil, err
	}

	s.logger.Info("Affiliate registered",
		zap.Int64("id", affiliate.ID),
		zap.String("identity_card", affiliate.IdentityCard))
	return affiliate, nil
}

// CreateVoucher handles the nested-object create path. Inline bank and
// affiliate payloads (id null) are persisted in the same transaction as
// the voucher, so a failing voucher insert leaves no orphaned entities.
func (s *VoucherService) CreateVoucher(ctx context.Context, input CreateVoucherInput) (*entity.Voucher, error) {
	voucher, err := s.buildVoucherScalars(input.DepositNumber, input.DepositDate, input.Amount, input.Period)
	if err != nil {
		return nil, err
	}

	// Existing references are checked up front so a bad id reads as 404,
	// not as an FK failure
	if input.Bank.ID != nil {
		bank, err := s.bankRepo.GetByID(ctx, *input.Bank.ID)
		if err != nil {
			return nil, err
		}
		if bank == nil {
			return nil, fmt.Errorf("%w: bank %d", ErrNotFound, *input.Bank.ID)
		}
		voucher.Bank = *bank
	}

	if input.Affiliate.ID != nil {
		affiliate, err := s.affiliateRepo.GetByID(ctx, *input.Affiliate.ID)
		if err != nil {
			return nil, err
		}
		if affiliate == nil {
			return nil, fmt.Errorf("%w: affiliate %d", ErrNotFound, *input.Affiliate.ID)
		}
		voucher.Affiliate = *affiliate
	}

	var inlineAffiliate *entity.Affiliate
	if input.Affiliate.ID == nil {
		inlineAffiliate, err = s.buildAffiliate(input.Affiliate)
		if err != nil {
			return nil, err
		}
	}

	var inlineBank *entity.Bank
	if input.Bank.ID == nil {
		name := utils.ToUpperClean(input.Bank.Name)
		code := utils.ToUpperClean(input.Bank.BankCode)
		if name == "" || code == "" {
			return nil, fmt.Errorf("%w: bank name and code are required", ErrValidation)
		}
		inlineBank = &entity.Bank{Name: name, BankCode: code}
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		if inlineBank != nil {
			if err := s.bankRepo.Create(ctx, tx, inlineBank); err != nil {
				return err
			}
			voucher.Bank = *inlineBank
		}
		if inlineAffiliate != nil {
			if err := s.affiliateRepo.Create(ctx, tx, inlineAffiliate); err != nil {
				return err
			}
			voucher.Affiliate = *inlineAffiliate
		}
		return s.voucherRepo.Create(ctx, tx, voucher)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Voucher created",
		zap.Int64("id", voucher.ID),
		zap.Int64("deposit_number", voucher.DepositNumber),
		zap.Int64("bank_id", voucher.Bank.ID),
		zap.Int64("affiliate_id", voucher.Affiliate.ID))
	return voucher, nil
}

// UpdateVoucher handles the flat resolved-ids update path. Both references
// must already exist; this path never creates dependent entities.
func (s *VoucherService) UpdateVoucher(ctx context.Context, id int64, input UpdateVoucherInput) (*entity.Voucher, error) {
	voucher, err := s.buildVoucherScalars(input.DepositNumber, input.DepositDate, input.Amount, input.Period)
	if err != nil {
		return nil, err
	}
	voucher.ID = id

	if input.BankID <= 0 || input.PersonID <= 0 {
		return nil, fmt.Errorf("%w: bankId and personId must be resolved ids", ErrValidation)
	}

	bank, err := s.bankRepo.GetByID(ctx, input.BankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: bank %d", ErrNotFound, input.BankID)
	}
	voucher.Bank = *bank

	affiliate, err := s.affiliateRepo.GetByID(ctx, input.PersonID)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: affiliate %d", ErrNotFound, input.PersonID)
	}
	voucher.Affiliate = *affiliate

	if err := s.voucherRepo.Update(ctx, voucher); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: voucher %d", ErrNotFound, id)
		}
		return nil, err
	}

	updated, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Voucher updated", zap.Int64("id", id))
	return updated, nil
}

// DeleteVoucher removes a voucher by id
func (s *VoucherService) DeleteVoucher(ctx context.Context, id int64) error {
	if err := s.voucherRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: voucher %d", ErrNotFound, id)
		}
		return err
	}

	s.logger.Info("Voucher deleted", zap.Int64("id", id))
	return nil
}

// buildVoucherScalars validates and normalizes the scalar voucher fields
// shared by the create and update paths
func (s *VoucherService) buildVoucherScalars(depositNumber int64, depositDate string, amount float64, period string) (*entity.Voucher, error) {
	if depositNumber <= 0 {
		return nil, fmt.Errorf("%w: deposit number is required", ErrValidation)
	}
	if err := utils.ValidateAmount(amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	dd, err := time.Parse(entity.DateTimeLayout, depositDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid deposit date %q", ErrValidation, depositDate)
	}

	p, err := time.Parse(entity.DateLayout, period)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid period %q", ErrValidation, period)
	}
	// Only month and year are user-meaningful; the day is pinned to 01
	p = time.Date(p.Year(), p.Month(), 1, 0, 0, 0, 0, time.UTC)

	return &entity.Voucher{
		DepositNumber: depositNumber,
		DepositDate:   entity.NewDateTime(dd),
		Amount:        amount,
		Period:        entity.NewDate(p),
	}, nil
}

// buildAffiliate normalizes and validates an inline affiliate payload
func (s *VoucherService) buildAffiliate(input AffiliateInput) (*entity.Affiliate, error) {
	first := utils.ToUpperClean(input.FirstName)
	second := utils.ToUpperClean(input.SecondName)
	paternal := utils.ToUpperClean(input.PaternalSurname)
	maternal := utils.ToUpperClean(input.MaternalSurname)
	identityCard := utils.ToUpperClean(input.IdentityCard)

	if first == "" || identityCard == "" {
		return nil, fmt.Errorf("%w: first name and identity card are required", ErrValidation)
	}

	now := time.Now()
	return &entity.Affiliate{
		FullName:        entity.ComposeFullName(first, second, paternal, maternal),
		FirstName:       first,
		SecondName:      second,
		PaternalSurname: paternal,
		MaternalSurname: maternal,
		IdentityCard:    identityCard,
		AffiliateCode:   entity.AffiliateCodePrefix + identityCard,
		AdmissionDate:   &now,
		Status:          entity.AffiliateStatusActive,
	}, nil
}
