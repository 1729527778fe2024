package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func reportVouchers(t *testing.T) []entity.Voucher {
	t.Helper()

	dd, err := time.Parse(entity.DateTimeLayout, "2026-02-10T14:30:00")
	require.NoError(t, err)
	p, err := time.Parse(entity.DateLayout, "2026-02-01")
	require.NoError(t, err)

	return []entity.Voucher{
		{
			ID:            1,
			DepositNumber: 445566,
			DepositDate:   entity.NewDateTime(dd),
			Amount:        1234.56,
			Period:        entity.NewDate(p),
			Bank:          entity.Bank{Name: "BANCO GANADERO", BankCode: "BGA"},
			Affiliate:     entity.Affiliate{FullName: "MARIA QUISPE", IdentityCard: "1234567"},
		},
	}
}

func TestReportWriter_Write(t *testing.T) {
	writer := NewReportWriter(zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, writer.Write(reportVouchers(t), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, reportHeader, rows[0])

	got := rows[1]
	require.Len(t, got, 8)
	assert.Equal(t, "445566", got[0])
	assert.Equal(t, "MARIA QUISPE", got[1])
	assert.Equal(t, "1234567", got[2])
	assert.Equal(t, "BANCO GANADERO", got[3])
	assert.Equal(t, "BGA", got[4])
	assert.Equal(t, "febrero 2026", got[5])
	assert.Equal(t, "10/02/2026 14:30", got[6])
	assert.Equal(t, "1234.56", got[7])
}

func TestReportWriter_WriteFile(t *testing.T) {
	writer := NewReportWriter(zap.NewNop())

	path := filepath.Join(t.TempDir(), "vouchers.xlsx")
	require.NoError(t, writer.WriteFile(reportVouchers(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReportWriter_EmptyListHasHeaderOnly(t *testing.T) {
	writer := NewReportWriter(zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, writer.Write(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reportHeader, rows[0])
}
