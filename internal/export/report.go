// Package export writes voucher listings as .xlsx workbooks, for the CLI
// export command and the HTTP download endpoint.
package export

import (
	"fmt"
	"io"

	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/travesia/voucher-admin/internal/table"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetName is the single sheet of a voucher report
const SheetName = "Vouchers"

var reportHeader = []string{
	"Nº Depósito",
	"Afiliado",
	"CI",
	"Banco",
	"Código",
	"Periodo",
	"Fecha de Depósito",
	"Monto (Bs)",
}

// ReportWriter builds voucher report workbooks
type ReportWriter struct {
	logger *zap.Logger
}

// NewReportWriter creates a report writer
func NewReportWriter(logger *zap.Logger) *ReportWriter {
	return &ReportWriter{logger: logger}
}

// WriteFile writes the voucher report to outputPath
func (w *ReportWriter) WriteFile(vouchers []entity.Voucher, outputPath string) error {
	f, err := w.build(vouchers)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	w.logger.Info("Voucher report written",
		zap.String("path", outputPath),
		zap.Int("vouchers", len(vouchers)))
	return nil
}

// Write streams the voucher report workbook to out
func (w *ReportWriter) Write(vouchers []entity.Voucher, out io.Writer) error {
	f, err := w.build(vouchers)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func (w *ReportWriter) build(vouchers []entity.Voucher) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("creating report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		w.logger.Warn("Failed to drop default sheet", zap.Error(err))
	}

	for col, title := range reportHeader {
		w.setCell(f, cellName(col, 1), title)
	}

	for i, v := range vouchers {
		rowNum := i + 2
		w.setCell(f, cellName(0, rowNum), v.DepositNumber)
		w.setCell(f, cellName(1, rowNum), v.Affiliate.FullName)
		w.setCell(f, cellName(2, rowNum), v.Affiliate.IdentityCard)
		w.setCell(f, cellName(3, rowNum), v.Bank.Name)
		w.setCell(f, cellName(4, rowNum), v.Bank.BankCode)
		w.setCell(f, cellName(5, rowNum), table.FormatPeriod(v.Period))
		w.setCell(f, cellName(6, rowNum), table.FormatDepositDate(v.DepositDate))
		w.setCell(f, cellName(7, rowNum), v.Amount)
	}

	return f, nil
}

func (w *ReportWriter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return ""
	}
	return name
}
