// Package form implements the three-step voucher registration wizard:
// deposit data, bank selection, affiliate selection. Step transitions run
// through an explicit state machine; validation failures hold the current
// step and bump a shake counter the presentation layer animates on.
package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/travesia/voucher-admin/internal/cache"
	"github.com/travesia/voucher-admin/internal/client"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/travesia/voucher-admin/internal/domain/wizard"
	"go.uber.org/zap"
)

// API is the slice of the finance client the wizard submits through
type API interface {
	CreateVoucher(ctx context.Context, req client.CreateVoucherRequest) (*entity.Voucher, error)
	UpdateVoucher(ctx context.Context, id int64, req client.UpdateVoucherRequest) (*entity.Voucher, error)
	CreateBank(ctx context.Context, req client.CreateBankRequest) (*entity.Bank, error)
	CreateAffiliate(ctx context.Context, req client.CreateAffiliateRequest) (*entity.Affiliate, error)
}

// Notifier surfaces user-facing notifications; the toast plumbing itself
// is an external collaborator
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// DepositFields holds the step-1 values exactly as entered
type DepositFields struct {
	DepositNumber string
	DepositDate   string // YYYY-MM-DD
	Amount        string
	PeriodMonth   string // "01".."12"
	PeriodYear    string // e.g. "2026"
}

// Form is one wizard instance. Not safe for concurrent use; the UI event
// loop drives it from a single goroutine.
type Form struct {
	machine *wizard.Machine

	deposit   DepositFields
	bank      BankSelection
	affiliate AffiliateSelection

	// editing is the record being edited, nil in create mode
	editing *entity.Voucher

	shake       int
	fieldErrors map[string]string
	submitting  bool

	api        API
	vouchers   *cache.VoucherCache
	banks      *cache.BankCache
	affiliates *cache.AffiliateCache
	notifier   Notifier
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a wizard wired to the finance API, the list caches and the
// notification surface
func New(api API, vouchers *cache.VoucherCache, banks *cache.BankCache, affiliates *cache.AffiliateCache, notifier Notifier, logger *zap.Logger) *Form {
	f := &Form{
		api:         api,
		vouchers:    vouchers,
		banks:       banks,
		affiliates:  affiliates,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
		fieldErrors: make(map[string]string),
	}

	f.machine = wizard.NewBuilder().
		PermitIf(wizard.StateDeposit, wizard.TriggerNext, wizard.StateBank, f.depositGuard).
		Permit(wizard.StateDeposit, wizard.TriggerCancel, wizard.StateClosed).
		PermitIf(wizard.StateBank, wizard.TriggerNext, wizard.StateAffiliate, f.bankGuard).
		Permit(wizard.StateBank, wizard.TriggerBack, wizard.StateDeposit).
		Permit(wizard.StateBank, wizard.TriggerCancel, wizard.StateClosed).
		PermitIf(wizard.StateAffiliate, wizard.TriggerSubmit, wizard.StateSubmitting, f.affiliateGuard).
		Permit(wizard.StateAffiliate, wizard.TriggerBack, wizard.StateBank).
		Permit(wizard.StateAffiliate, wizard.TriggerCancel, wizard.StateClosed).
		Permit(wizard.StateSubmitting, wizard.TriggerSucceed, wizard.StateClosed).
		Permit(wizard.StateSubmitting, wizard.TriggerFail, wizard.StateAffiliate).
		Build(wizard.StateClosed)

	return f
}

// OpenCreate resets the wizard for a fresh voucher: deposit date today,
// period defaulted to the current month and year, both selections back to
// empty "existing" mode, step 1.
func (f *Form) OpenCreate() {
	now := f.now()
	f.editing = nil
	f.deposit = DepositFields{
		DepositDate: now.Format(entity.DateLayout),
		PeriodMonth: fmt.Sprintf("%02d", int(now.Month())),
		PeriodYear:  fmt.Sprintf("%d", now.Year()),
	}
	f.bank = ExistingBank(0)
	f.affiliate = ExistingAffiliate(0)
	f.reopen()
}

// OpenEdit resets the wizard populated from an existing record. Both
// selections default to "existing" with the record's linked ids; the
// "new" sub-forms start empty.
func (f *Form) OpenEdit(v entity.Voucher) {
	f.editing = &v
	f.deposit = DepositFields{
		DepositNumber: fmt.Sprintf("%d", v.DepositNumber),
		DepositDate:   v.DepositDate.Format(entity.DateLayout),
		Amount:        fmt.Sprintf("%g", v.Amount),
		PeriodMonth:   v.Period.Format("01"),
		PeriodYear:    v.Period.Format("2006"),
	}
	f.bank = ExistingBank(v.Bank.ID)
	f.affiliate = ExistingAffiliate(v.Affiliate.ID)
	f.reopen()
}

func (f *Form) reopen() {
	f.shake = 0
	f.submitting = false
	f.fieldErrors = make(map[string]string)
	f.machine.Reset(wizard.StateDeposit)
}

// Step returns the current wizard state
func (f *Form) Step() wizard.State {
	return f.machine.State()
}

// Editing reports whether the wizard was opened on an existing record
func (f *Form) Editing() bool {
	return f.editing != nil
}

// ShakeCount is the monotonically increasing validation-failure counter
func (f *Form) ShakeCount() int {
	return f.shake
}

// FieldErrors returns the per-field messages from the last validation
func (f *Form) FieldErrors() map[string]string {
	return f.fieldErrors
}

// SetDeposit replaces the step-1 field values
func (f *Form) SetDeposit(fields DepositFields) {
	f.deposit = fields
}

// Deposit returns the current step-1 field values
func (f *Form) Deposit() DepositFields {
	return f.deposit
}

// SelectBank replaces the bank selection
func (f *Form) SelectBank(sel BankSelection) {
	f.bank = sel
}

// SelectAffiliate replaces the affiliate selection
func (f *Form) SelectAffiliate(sel AffiliateSelection) {
	f.affiliate = sel
}

// Next advances to the following step when the current step validates.
// A validation failure holds the step and increments the shake counter.
func (f *Form) Next(ctx context.Context) bool {
	err := f.machine.Fire(ctx, wizard.TriggerNext)
	if err != nil {
		if errors.Is(err, wizard.ErrGuardFailed) {
			f.shake++
		}
		return false
	}
	return true
}

// Back moves one step back. It never validates and never fails on the
// bank and affiliate steps.
func (f *Form) Back(ctx context.Context) bool {
	return f.machine.Fire(ctx, wizard.TriggerBack) == nil
}

// Cancel exits the wizard without persisting anything
func (f *Form) Cancel(ctx context.Context) bool {
	// The cancel action is disabled while a submission is in flight
	if f.submitting {
		return false
	}
	return f.machine.Fire(ctx, wizard.TriggerCancel) == nil
}
