// voucherctl is a small operator CLI over the finance API: it lists the
// voucher table with the same filters the admin screen offers and exports
// the listing as an .xlsx report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"github.com/travesia/voucher-admin/internal/cache"
	"github.com/travesia/voucher-admin/internal/client"
	"github.com/travesia/voucher-admin/internal/config"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/travesia/voucher-admin/internal/export"
	"github.com/travesia/voucher-admin/internal/filter"
	"github.com/travesia/voucher-admin/internal/table"
	"github.com/travesia/voucher-admin/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	_ = gotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "list":
		runList(args)
	case "export":
		runExport(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: voucherctl <list|export> [flags]")
	fmt.Fprintln(os.Stderr, "  list   -config <path> -q <text> -month <MM> -year <YYYY> -date <YYYY-MM-DD>")
	fmt.Fprintln(os.Stderr, "  export -config <path> -q <text> -month <MM> -year <YYYY> -date <YYYY-MM-DD> -o <file.xlsx>")
}

type listFlags struct {
	configPath string
	text       string
	month      string
	year       string
	date       string
}

func bindListFlags(fs *flag.FlagSet) *listFlags {
	f := &listFlags{}
	fs.StringVar(&f.configPath, "config", "configs/config.yaml", "configuration file")
	fs.StringVar(&f.text, "q", "", "free-text search over name, identity card, deposit number and bank")
	fs.StringVar(&f.month, "month", "", "period month filter, 2 digits")
	fs.StringVar(&f.year, "year", "", "period year filter, 4 digits")
	fs.StringVar(&f.date, "date", "", "deposit calendar day filter, YYYY-MM-DD")
	return f
}

func (f *listFlags) criteria() (filter.Criteria, error) {
	c := filter.Criteria{
		Text:        f.text,
		PeriodMonth: f.month,
		PeriodYear:  f.year,
	}
	if f.date != "" {
		day, err := time.Parse(entity.DateLayout, f.date)
		if err != nil {
			return c, fmt.Errorf("invalid -date %q, expected YYYY-MM-DD", f.date)
		}
		c.DepositDate = &day
	}
	return c, nil
}

func newTable(configPath string) (*table.Table, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      "warn",
		OutputPath: "stderr",
		Format:     "console",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	apiClient := client.New(cfg.API.BaseURL, cfg.API.Timeout, logger)

	store := cache.NewStore(logger)
	vouchers := cache.NewVoucherCache(store, cfg.Cache.VoucherTTL, apiClient.ListVouchers)

	return table.New(vouchers, logger), logger, nil
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	flags := bindListFlags(fs)
	_ = fs.Parse(args)

	criteria, err := flags.criteria()
	if err != nil {
		log.Fatal(err)
	}

	tbl, _, err := newTable(flags.configPath)
	if err != nil {
		log.Fatal(err)
	}
	tbl.SetCriteria(criteria)

	rows, err := tbl.Rows(context.Background())
	if err != nil {
		log.Fatalf("Failed to load vouchers: %v", err)
	}

	fmt.Printf("%-10s  %-30s  %-10s  %-20s  %-16s  %-18s  %s\n",
		"Nº DEP.", "AFILIADO", "CI", "BANCO", "PERIODO", "FECHA", "MONTO")
	for _, row := range rows {
		fmt.Printf("%-10d  %-30s  %-10s  %-20s  %-16s  %-18s  %s\n",
			row.DepositNumber, row.AffiliateName, row.IdentityCard,
			row.BankName, row.PeriodLabel, row.DepositDate, row.Amount)
	}
	fmt.Printf("\n%d voucher(s)\n", len(rows))
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	flags := bindListFlags(fs)
	output := fs.String("o", "vouchers.xlsx", "output .xlsx path")
	_ = fs.Parse(args)

	criteria, err := flags.criteria()
	if err != nil {
		log.Fatal(err)
	}

	tbl, logger, err := newTable(flags.configPath)
	if err != nil {
		log.Fatal(err)
	}
	tbl.SetCriteria(criteria)

	vouchers, err := tbl.Visible(context.Background())
	if err != nil {
		log.Fatalf("Failed to load vouchers: %v", err)
	}

	writer := export.NewReportWriter(logger)
	if err := writer.WriteFile(vouchers, *output); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Printf("Wrote %d voucher(s) to %s\n", len(vouchers), *output)
}
