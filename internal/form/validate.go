package form

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/travesia/voucher-admin/internal/domain/entity"
)

const requiredMsg = "Requerido"

// depositGuard validates the step-1 required fields and the amount threshold
func (f *Form) depositGuard(ctx context.Context) bool {
	errs := make(map[string]string)

	if strings.TrimSpace(f.deposit.DepositNumber) == "" {
		errs["depositNumber"] = requiredMsg
	} else if n, err := strconv.ParseInt(strings.TrimSpace(f.deposit.DepositNumber), 10, 64); err != nil || n <= 0 {
		errs["depositNumber"] = "Número inválido"
	}

	if f.deposit.DepositDate == "" {
		errs["depositDate"] = requiredMsg
	} else if _, err := time.Parse(entity.DateLayout, f.deposit.DepositDate); err != nil {
		errs["depositDate"] = "Fecha inválida"
	}

	if strings.TrimSpace(f.deposit.Amount) == "" {
		errs["amount"] = requiredMsg
	} else if amount, err := strconv.ParseFloat(strings.TrimSpace(f.deposit.Amount), 64); err != nil || amount <= 0 {
		errs["amount"] = "Debe ser mayor a 0"
	}

	if f.deposit.PeriodMonth == "" {
		errs["periodMonth"] = requiredMsg
	}
	if f.deposit.PeriodYear == "" {
		errs["periodYear"] = requiredMsg
	}

	f.fieldErrors = errs
	return len(errs) == 0
}

// bankGuard validates step 2: either a complete new-bank draft or a
// non-empty existing selection
func (f *Form) bankGuard(ctx context.Context) bool {
	errs := make(map[string]string)

	if f.bank.IsNew() {
		draft := f.bank.Draft()
		if strings.TrimSpace(draft.Name) == "" {
			errs["newBankName"] = requiredMsg
		}
		if strings.TrimSpace(draft.BankCode) == "" {
			errs["newBankCode"] = requiredMsg
		}
	} else if f.bank.ExistingID() <= 0 {
		errs["bankId"] = "Seleccione un banco"
	}

	f.fieldErrors = errs
	return len(errs) == 0
}

// affiliateGuard validates step 3: first name and identity card for a new
// affiliate, or a non-empty existing selection. Re-run on final submit.
func (f *Form) affiliateGuard(ctx context.Context) bool {
	errs := make(map[string]string)

	if f.affiliate.IsNew() {
		draft := f.affiliate.Draft()
		if strings.TrimSpace(draft.FirstName) == "" {
			errs["affFirstName"] = requiredMsg
		}
		if strings.TrimSpace(draft.IdentityCard) == "" {
			errs["affIdentityCard"] = requiredMsg
		}
	} else if f.affiliate.ExistingID() <= 0 {
		errs["affiliateId"] = "Seleccione una persona"
	}

	f.fieldErrors = errs
	return len(errs) == 0
}
