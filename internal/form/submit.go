package form

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/travesia/voucher-admin/internal/client"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/travesia/voucher-admin/internal/domain/wizard"
	"github.com/travesia/voucher-admin/pkg/utils"
	"go.uber.org/zap"
)

const (
	successMsg = "Voucher registrado exitosamente."
	failureMsg = "Error al registrar el voucher."
)

// Submit runs the submission from the affiliate step. It re-validates the
// step-3 requireds, derives the persisted fields, issues the network calls
// and on success invalidates the affected caches and closes the wizard.
//
// In edit mode dependent entities are created sequentially before the
// voucher update; a failure at any call aborts the remaining ones. Earlier
// dependent creates are not rolled back. In create mode a single nested
// payload carries any inline entities and the server resolves them
// atomically.
func (f *Form) Submit(ctx context.Context) bool {
	// One submission in flight per form instance
	if f.submitting {
		return false
	}

	if err := f.machine.Fire(ctx, wizard.TriggerSubmit); err != nil {
		if errors.Is(err, wizard.ErrGuardFailed) {
			f.shake++
		}
		return false
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	ok := f.submit(ctx)
	if ok {
		f.notifier.Success(successMsg)
		_ = f.machine.Fire(ctx, wizard.TriggerSucceed)
	} else {
		f.notifier.Error(failureMsg)
		_ = f.machine.Fire(ctx, wizard.TriggerFail)
	}
	return ok
}

func (f *Form) submit(ctx context.Context) bool {
	depositNumber, err := strconv.ParseInt(strings.TrimSpace(f.deposit.DepositNumber), 10, 64)
	if err != nil {
		f.logger.Error("Invalid deposit number at submission", zap.Error(err))
		return false
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.deposit.Amount), 64)
	if err != nil {
		f.logger.Error("Invalid amount at submission", zap.Error(err))
		return false
	}

	// The persisted timestamp mixes the user-picked date with the
	// wall-clock time of submission, not the actual moment of deposit
	now := f.now()
	depositDateTime := f.deposit.DepositDate + "T" + now.Format("15:04:05")
	period := f.deposit.PeriodYear + "-" + f.deposit.PeriodMonth + "-01"

	if f.editing != nil {
		return f.submitUpdate(ctx, depositNumber, depositDateTime, amount, period)
	}
	return f.submitCreate(ctx, depositNumber, depositDateTime, amount, period)
}

// submitUpdate is the edit path: dependent creates first, then a flat
// update with pre-resolved ids
func (f *Form) submitUpdate(ctx context.Context, depositNumber int64, depositDateTime string, amount float64, period string) bool {
	bankID := f.bank.ExistingID()
	newBankCreated := false
	if f.bank.IsNew() {
		draft := f.bank.Draft()
		bank, err := f.api.CreateBank(ctx, client.CreateBankRequest{
			Name:     utils.ToUpperClean(draft.Name),
			BankCode: utils.ToUpperClean(draft.BankCode),
		})
		if err != nil {
			f.logger.Error("Bank create failed, aborting voucher update", zap.Error(err))
			return false
		}
		bankID = bank.ID
		newBankCreated = true
	}

	personID := f.affiliate.ExistingID()
	newAffiliateCreated := false
	if f.affiliate.IsNew() {
		draft := f.affiliate.Draft()
		identityCard := utils.ToUpperClean(draft.IdentityCard)
		affiliate, err := f.api.CreateAffiliate(ctx, client.CreateAffiliateRequest{
			FirstName:       utils.ToUpperClean(draft.FirstName),
			SecondName:      utils.ToUpperClean(draft.SecondName),
			PaternalSurname: utils.ToUpperClean(draft.PaternalSurname),
			MaternalSurname: utils.ToUpperClean(draft.MaternalSurname),
			IdentityCard:    identityCard,
			AffiliateCode:   entity.AffiliateCodePrefix + identityCard,
			AdmissionDate:   f.now().Format(entity.DateTimeLayout),
			Status:          entity.AffiliateStatusActive,
		})
		if err != nil {
			f.logger.Error("Affiliate create failed, aborting voucher update", zap.Error(err))
			return false
		}
		personID = affiliate.ID
		newAffiliateCreated = true
	}

	_, err := f.api.UpdateVoucher(ctx, f.editing.ID, client.UpdateVoucherRequest{
		DepositNumber: depositNumber,
		DepositDate:   depositDateTime,
		Amount:        amount,
		Period:        period,
		BankID:        bankID,
		PersonID:      personID,
	})
	if err != nil {
		// A bank or affiliate created above stays persisted; accepted
		// inconsistency, the client does not compensate
		f.logger.Error("Voucher update failed", zap.Int64("id", f.editing.ID), zap.Error(err))
		return false
	}

	f.invalidate(newBankCreated, newAffiliateCreated)
	return true
}

// submitCreate is the create path: one call with nested entity payloads
func (f *Form) submitCreate(ctx context.Context, depositNumber int64, depositDateTime string, amount float64, period string) bool {
	req := client.CreateVoucherRequest{
		DepositNumber: depositNumber,
		DepositDate:   depositDateTime,
		Amount:        amount,
		Period:        period,
	}

	if f.bank.IsNew() {
		draft := f.bank.Draft()
		req.Bank = client.BankPayload{
			ID:       nil,
			Name:     utils.ToUpperClean(draft.Name),
			BankCode: utils.ToUpperClean(draft.BankCode),
		}
	} else {
		id := f.bank.ExistingID()
		req.Bank = client.BankPayload{ID: &id}
	}

	if f.affiliate.IsNew() {
		draft := f.affiliate.Draft()
		req.Affiliate = client.AffiliatePayload{
			ID:              nil,
			FirstName:       utils.ToUpperClean(draft.FirstName),
			SecondName:      utils.ToUpperClean(draft.SecondName),
			PaternalSurname: utils.ToUpperClean(draft.PaternalSurname),
			MaternalSurname: utils.ToUpperClean(draft.MaternalSurname),
			IdentityCard:    utils.ToUpperClean(draft.IdentityCard),
		}
	} else {
		id := f.affiliate.ExistingID()
		req.Affiliate = client.AffiliatePayload{ID: &id}
	}

	if _, err := f.api.CreateVoucher(ctx, req); err != nil {
		f.logger.Error("Voucher create failed", zap.Error(err))
		return false
	}

	f.invalidate(f.bank.IsNew(), f.affiliate.IsNew())
	return true
}

func (f *Form) invalidate(newBank, newAffiliate bool) {
	f.vouchers.Invalidate()
	if newBank {
		f.banks.Invalidate()
	}
	if newAffiliate {
		f.affiliates.Invalidate()
	}
}
