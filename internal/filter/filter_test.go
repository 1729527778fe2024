package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travesia/voucher-admin/internal/domain/entity"
)

func makeVoucher(id, depositNumber int64, fullName, identityCard, bankName, period string, depositDate time.Time) entity.Voucher {
	p, _ := time.Parse(entity.DateLayout, period)
	return entity.Voucher{
		ID:            id,
		DepositNumber: depositNumber,
		DepositDate:   entity.NewDateTime(depositDate),
		Amount:        350.50,
		Period:        entity.NewDate(p),
		Bank:          entity.Bank{ID: 1, Name: bankName, BankCode: "BG"},
		Affiliate:     entity.Affiliate{ID: 1, FullName: fullName, IdentityCard: identityCard},
	}
}

func testVouchers() []entity.Voucher {
	return []entity.Voucher{
		makeVoucher(1, 12345, "JUAN PEREZ MAMANI", "4839201", "BANCO GANADERO",
			"2026-02-01", time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)),
		makeVoucher(2, 99887, "MARIA LOPEZ QUISPE", "7712345", "BANCO UNION",
			"2026-03-01", time.Date(2026, 3, 2, 16, 45, 0, 0, time.UTC)),
		makeVoucher(3, 55001, "CARLOS MAMANI FLORES", "9900112", "BANCO GANADERO",
			"2025-02-01", time.Date(2025, 2, 10, 11, 0, 0, 0, time.UTC)),
	}
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	vouchers := testVouchers()
	got := Apply(vouchers, Criteria{})

	require.Len(t, got, len(vouchers))
	for i := range vouchers {
		assert.Equal(t, vouchers[i].ID, got[i].ID)
	}
}

func TestApply_FreeText(t *testing.T) {
	vouchers := testVouchers()

	tests := []struct {
		name     string
		text     string
		wantIDs  []int64
	}{
		{"affiliate name, case-insensitive", "maria", []int64{2}},
		{"identity card exact substring", "4839201", []int64{1}},
		{"identity card partial", "839", []int64{1}},
		{"deposit number substring", "234", []int64{1, 2}},
		{"bank name", "ganadero", []int64{1, 3}},
		{"no match", "zzz", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(vouchers, Criteria{Text: tt.text})
			ids := make([]int64, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApply_PeriodMonthAndYear(t *testing.T) {
	vouchers := testVouchers()

	got := Apply(vouchers, Criteria{PeriodMonth: "02", PeriodYear: "2026"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// 2026-03 and 2025-02 vouchers must be excluded by a 02/2026 filter
	for _, v := range got {
		assert.Equal(t, "2026-02-01", v.Period.Format(entity.DateLayout))
	}
}

func TestApply_PeriodSingleComponent(t *testing.T) {
	vouchers := testVouchers()

	byMonth := Apply(vouchers, Criteria{PeriodMonth: "02"})
	assert.Len(t, byMonth, 2)

	byYear := Apply(vouchers, Criteria{PeriodYear: "2026"})
	assert.Len(t, byYear, 2)
}

func TestApply_DepositDateIgnoresTimeOfDay(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	vouchers := []entity.Voucher{
		makeVoucher(1, 100, "A", "1", "B", "2026-02-01",
			time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)),
		makeVoucher(2, 200, "C", "2", "D", "2026-02-01",
			time.Date(2026, 2, 10, 23, 59, 59, 0, time.UTC)),
		makeVoucher(3, 300, "E", "3", "F", "2026-02-01",
			time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC)),
	}

	got := Apply(vouchers, Criteria{DepositDate: &day})
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestApply_CombinedCriteriaAreANDed(t *testing.T) {
	vouchers := testVouchers()

	got := Apply(vouchers, Criteria{Text: "ganadero", PeriodYear: "2025"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestApply_PreservesInputOrder(t *testing.T) {
	vouchers := testVouchers()

	got := Apply(vouchers, Criteria{Text: "banco"})
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)
}
