// Package filter computes the visible subset of the voucher list from the
// search criteria of the vouchers screen. It is pure: no side effects, and
// the relative order of the input is preserved.
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/travesia/voucher-admin/internal/domain/entity"
)

// Criteria holds the independently optional filters, combined with AND
type Criteria struct {
	// Text is matched case-insensitively as a substring of the affiliate
	// full name, the identity card, the deposit number's decimal rendering
	// and the bank name
	Text string

	// PeriodMonth is the 2-digit month component of the period, e.g. "02"
	PeriodMonth string

	// PeriodYear is the 4-digit year component of the period, e.g. "2026"
	PeriodYear string

	// DepositDate matches the calendar day of the deposit, ignoring the
	// time of day
	DepositDate *time.Time
}

// IsEmpty reports whether no criterion is set
func (c Criteria) IsEmpty() bool {
	return c.Text == "" && c.PeriodMonth == "" && c.PeriodYear == "" && c.DepositDate == nil
}

// Apply returns the vouchers satisfying every supplied criterion, in input
// order. With empty criteria it returns the input unchanged.
func Apply(vouchers []entity.Voucher, c Criteria) []entity.Voucher {
	if c.IsEmpty() {
		return vouchers
	}

	out := make([]entity.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		if matches(v, c) {
			out = append(out, v)
		}
	}
	return out
}

func matches(v entity.Voucher, c Criteria) bool {
	if !matchesText(v, c.Text) {
		return false
	}

	if c.PeriodMonth != "" && v.Period.Format("01") != c.PeriodMonth {
		return false
	}
	if c.PeriodYear != "" && v.Period.Format("2006") != c.PeriodYear {
		return false
	}

	if c.DepositDate != nil && !sameCalendarDay(v.DepositDate.Time, *c.DepositDate) {
		return false
	}

	return true
}

func matchesText(v entity.Voucher, text string) bool {
	if text == "" {
		return true
	}

	q := strings.ToLower(text)
	return strings.Contains(strings.ToLower(v.Affiliate.FullName), q) ||
		strings.Contains(strings.ToLower(v.Affiliate.IdentityCard), q) ||
		strings.Contains(strconv.FormatInt(v.DepositNumber, 10), q) ||
		strings.Contains(strings.ToLower(v.Bank.Name), q)
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
