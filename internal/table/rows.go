// Package table builds the presentation rows of the vouchers screen from
// the cached voucher list and the active filter criteria, and hosts the
// two-phase delete confirmation flow.
package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/travesia/voucher-admin/internal/cache"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/travesia/voucher-admin/internal/filter"
	"go.uber.org/zap"
)

// Spanish month names for the period column, lowercase as rendered
var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Row is the view-model of one table line, with every column pre-formatted
type Row struct {
	ID            int64
	DepositNumber int64
	AffiliateName string
	IdentityCard  string
	BankName      string
	BankCode      string
	PeriodLabel   string
	DepositDate   string
	Amount        string
}

// FormatAmount renders a bolivianos amount with thousands dots and a
// decimal comma, e.g. 1234.56 -> "Bs 1.234,56"
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return "Bs " + sign + b.String() + "," + decPart
}

// FormatPeriod renders a period as its Spanish month name plus the year,
// e.g. "febrero 2026"
func FormatPeriod(p entity.Date) string {
	return fmt.Sprintf("%s %d", spanishMonths[p.Month()-1], p.Year())
}

// FormatDepositDate renders a deposit timestamp as dd/MM/yyyy HH:mm
func FormatDepositDate(d entity.DateTime) string {
	return d.Format("02/01/2006 15:04")
}

func buildRow(v entity.Voucher) Row {
	return Row{
		ID:            v.ID,
		DepositNumber: v.DepositNumber,
		AffiliateName: v.Affiliate.FullName,
		IdentityCard:  v.Affiliate.IdentityCard,
		BankName:      v.Bank.Name,
		BankCode:      v.Bank.BankCode,
		PeriodLabel:   FormatPeriod(v.Period),
		DepositDate:   FormatDepositDate(v.DepositDate),
		Amount:        FormatAmount(v.Amount),
	}
}

// Table serves the visible rows of the vouchers screen. It reads through
// the voucher cache, applies the active criteria and dispatches the
// per-row edit and delete actions to the registered handlers.
type Table struct {
	vouchers *cache.VoucherCache
	criteria filter.Criteria

	onEdit   func(entity.Voucher)
	onDelete func(entity.Voucher)

	logger *zap.Logger
}

// New creates a table over the voucher cache with empty criteria
func New(vouchers *cache.VoucherCache, logger *zap.Logger) *Table {
	return &Table{vouchers: vouchers, logger: logger}
}

// SetHandlers registers the edit and delete row actions
func (t *Table) SetHandlers(onEdit, onDelete func(entity.Voucher)) {
	t.onEdit = onEdit
	t.onDelete = onDelete
}

// SetCriteria replaces the active filter criteria
func (t *Table) SetCriteria(c filter.Criteria) {
	t.criteria = c
}

// Criteria returns the active filter criteria
func (t *Table) Criteria() filter.Criteria {
	return t.criteria
}

// Rows returns the formatted rows for the current criteria, newest first
// as served by the backend
func (t *Table) Rows(ctx context.Context) ([]Row, error) {
	visible, err := t.Visible(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(visible))
	for _, v := range visible {
		rows = append(rows, buildRow(v))
	}
	return rows, nil
}

// Visible returns the filtered voucher records backing the rows
func (t *Table) Visible(ctx context.Context) ([]entity.Voucher, error) {
	vouchers, err := t.vouchers.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vouchers: %w", err)
	}
	return filter.Apply(vouchers, t.criteria), nil
}

// Edit dispatches the row with the given id to the edit handler
func (t *Table) Edit(ctx context.Context, id int64) error {
	v, err := t.find(ctx, id)
	if err != nil {
		return err
	}
	if t.onEdit != nil {
		t.onEdit(*v)
	}
	return nil
}

// Delete dispatches the row with the given id to the delete handler
func (t *Table) Delete(ctx context.Context, id int64) error {
	v, err := t.find(ctx, id)
	if err != nil {
		return err
	}
	if t.onDelete != nil {
		t.onDelete(*v)
	}
	return nil
}

func (t *Table) find(ctx context.Context, id int64) (*entity.Voucher, error) {
	vouchers, err := t.vouchers.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vouchers: %w", err)
	}
	for i := range vouchers {
		if vouchers[i].ID == id {
			return &vouchers[i], nil
		}
	}
	return nil, fmt.Errorf("voucher %d not in the current list", id)
}
