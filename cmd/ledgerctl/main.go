package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rafaelleal24/stockledger/internal/adapters/memory"
	"github.com/rafaelleal24/stockledger/internal/adapters/seed"
	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/dto"
	"github.com/rafaelleal24/stockledger/internal/core/export"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/service"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl: "+err.Error())
		os.Exit(1)
	}
}

type ledger struct {
	queries   *service.QueryService
	dashboard *service.DashboardService
}

// loadLedger seeds a fresh in-memory ledger from path, or the built-in data when path is empty.
func loadLedger(ctx context.Context, path string) (*ledger, error) {
	data, err := seed.Load(path)
	if err != nil {
		return nil, err
	}

	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	if err := seed.Apply(ctx, data, seed.Targets{
		Products: products,
		Orders:   orders,
		Users:    memory.NewUserRepository(),
	}); err != nil {
		return nil, err
	}

	return &ledger{
		queries:   service.NewQueryService(products, orders),
		dashboard: service.NewDashboardService(products, orders),
	}, nil
}

var (
	seedFlag = &cli.StringFlag{
		Name:    "seed",
		Usage:   "YAML seed file; the built-in data set when omitted",
		EnvVars: []string{"SEED_FILE"},
	}
	searchFlag = &cli.StringFlag{Name: "search", Usage: "case-insensitive text search"}
	statusFlag = &cli.StringFlag{Name: "status", Usage: "status filter, \"all\" for none"}
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "ledgerctl",
		Usage:     "inspect and export the stock ledger",
		Writer:    out,
		ErrWriter: os.Stderr,
		Before: func(*cli.Context) error {
			// keep stdout clean for the CSV
			logger.SetLogger(logger.NewStdoutLogger(os.Stderr, "ledgerctl", logger.LogLevelWarn))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "print a CSV export to stdout",
				Subcommands: []*cli.Command{
					{
						Name:  "products",
						Usage: "export the product catalog",
						Flags: []cli.Flag{seedFlag, searchFlag, statusFlag, &cli.StringFlag{Name: "category", Usage: "category filter, \"all\" for none"}},
						Action: func(c *cli.Context) error {
							l, err := loadLedger(c.Context, c.String(seedFlag.Name))
							if err != nil {
								return err
							}
							products, err := l.queries.Products(c.Context, dto.ProductQuery{
								Search:   c.String("search"),
								Category: c.String("category"),
								Status:   c.String("status"),
							})
							if err != nil {
								return err
							}
							_, err = fmt.Fprintln(c.App.Writer, export.Products(products))
							return err
						},
					},
					{
						Name:  "sales",
						Usage: "export sales",
						Flags: []cli.Flag{seedFlag, searchFlag, statusFlag},
						Action: func(c *cli.Context) error {
							l, err := loadLedger(c.Context, c.String(seedFlag.Name))
							if err != nil {
								return err
							}
							sales, err := l.queries.Sales(c.Context, listQuery(c))
							if err != nil {
								return err
							}
							_, err = fmt.Fprintln(c.App.Writer, export.Sales(sales))
							return err
						},
					},
					{
						Name:  "purchase-orders",
						Usage: "export purchase orders",
						Flags: []cli.Flag{seedFlag, searchFlag, statusFlag},
						Action: func(c *cli.Context) error {
							l, err := loadLedger(c.Context, c.String(seedFlag.Name))
							if err != nil {
								return err
							}
							orders, err := l.queries.PurchaseOrders(c.Context, listQuery(c))
							if err != nil {
								return err
							}
							_, err = fmt.Fprintln(c.App.Writer, export.PurchaseOrders(orders))
							return err
						},
					},
				},
			},
			{
				Name:  "low-stock",
				Usage: "list products at or below their minimum stock",
				Flags: []cli.Flag{seedFlag},
				Action: func(c *cli.Context) error {
					l, err := loadLedger(c.Context, c.String(seedFlag.Name))
					if err != nil {
						return err
					}
					summary, err := l.dashboard.Summary(c.Context)
					if err != nil {
						return err
					}
					_, err = io.WriteString(c.App.Writer, lowStockReport(summary.LowStock))
					return err
				},
			},
		},
	}
}

func listQuery(c *cli.Context) dto.ListQuery {
	return dto.ListQuery{Search: c.String("search"), Status: c.String("status")}
}

func lowStockReport(products []*domain.Product) string {
	if len(products) == 0 {
		return "no low stock products\n"
	}
	var b strings.Builder
	for _, p := range products {
		b.WriteString(p.SKU + "\t" + p.Name + "\t" + strconv.Itoa(p.Stock) + "/" + strconv.Itoa(p.MinStock) + "\n")
	}
	return b.String()
}
