package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/autoorder/internal/catalog"
	"github.com/andresuchdata/autoorder/internal/config"
	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/andresuchdata/autoorder/internal/repository"
	"github.com/andresuchdata/autoorder/internal/repository/postgres"
	"github.com/andresuchdata/autoorder/internal/service"
	"github.com/andresuchdata/autoorder/internal/storage"
	"github.com/andresuchdata/autoorder/pkg/logger"
)

const defaultExportName = "pending_orders.csv"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func catalogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "catalog",
			Aliases: []string{"c"},
			Usage:   "Catalog file (CSV or XLSX); repeat to combine several",
			EnvVars: []string{"CATALOG_PATHS"},
		},
		&cli.BoolFlag{
			Name:  "sample",
			Usage: "Use the built-in sample catalog",
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "category", Value: domain.AllFilterValue, Usage: "Only products in this category"},
		&cli.StringFlag{Name: "supplier", Value: domain.AllFilterValue, Usage: "Only products from this supplier"},
		&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Case-insensitive text search"},
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "replenish",
		Usage:     "Evaluate product catalogs and size replenishment orders",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "evaluate",
				Usage: "Classify a catalog and list pending orders",
				Flags: append(append(catalogFlags(), filterFlags()...),
					&cli.StringFlag{Name: "format", Value: "table", Usage: "Output format: table or json"},
				),
				Action: runEvaluate,
			},
			{
				Name:  "export",
				Usage: "Write pending orders to a CSV or XLSX file",
				Flags: append(append(catalogFlags(), filterFlags()...),
					&cli.StringFlag{Name: "out", Usage: "Output file (.csv or .xlsx); defaults to pending_orders.csv in APP_EXPORT_DIR"},
					&cli.StringFlag{Name: "upload-key", Usage: "Also upload the export to object storage under this key"},
					&cli.StringFlag{Name: "s3-endpoint", EnvVars: []string{"S3_ENDPOINT"}},
					&cli.StringFlag{Name: "s3-access-key", EnvVars: []string{"S3_ACCESS_KEY"}},
					&cli.StringFlag{Name: "s3-secret-key", EnvVars: []string{"S3_SECRET_KEY"}},
					&cli.StringFlag{Name: "s3-bucket", EnvVars: []string{"S3_BUCKET"}},
					&cli.StringFlag{Name: "s3-region", Value: "us-east-1", EnvVars: []string{"S3_REGION"}},
					&cli.BoolFlag{Name: "s3-use-ssl", Value: true, EnvVars: []string{"S3_USE_SSL"}},
				),
				Action: runExport,
			},
			{
				Name:   "migrate",
				Usage:  "Create the products table",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runMigrate,
			},
			{
				Name:   "seed",
				Usage:  "Load catalog files into the database",
				Flags:  append(catalogFlags(), newDBURLFlag()),
				Action: runSeed,
			},
		},
	}
}

// loadProvider builds the provider for --catalog/--sample.
func loadProvider(c *cli.Context) (catalog.Provider, error) {
	paths := c.StringSlice("catalog")
	if c.Bool("sample") {
		return catalog.NewStaticProvider("sample", catalog.SampleProducts()), nil
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one --catalog file or --sample is required")
	}

	providers := make([]catalog.Provider, 0, len(paths))
	for _, path := range paths {
		providers = append(providers, catalog.NewFileProvider(path))
	}
	if len(providers) == 1 {
		return providers[0], nil
	}
	return catalog.NewMultiProvider(providers...), nil
}

func filterFromFlags(c *cli.Context) domain.FilterCriteria {
	return domain.FilterCriteria{
		Category:   c.String("category"),
		Supplier:   c.String("supplier"),
		SearchText: c.String("search"),
	}.Normalize()
}

func runEvaluate(c *cli.Context) error {
	provider, err := loadProvider(c)
	if err != nil {
		return err
	}

	svc := service.NewReplenishmentService(provider, nil)
	report, err := svc.GetReport(c.Context, filterFromFlags(c))
	if err != nil {
		return err
	}

	switch strings.ToLower(c.String("format")) {
	case "json":
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "table":
		return writeReportTable(c.App.Writer, report)
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}

func writeReportTable(w io.Writer, report *domain.ReplenishmentReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSUPPLIER\tSTOCK\tREORDER\tPAR\tSTATUS\tAUTO")
	for _, p := range report.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%g\t%g\t%s\t%t\n",
			p.ID, p.Name, p.Category, p.Supplier,
			p.CurrentStock, p.ReorderPoint, p.ParLevel,
			domain.StockStatusLabel(p.Status), p.AutoOrderEnabled)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PENDING ORDER\tSUPPLIER\tQUANTITY\tUNIT\tESTIMATED COST")
	for _, o := range report.Candidates {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%s\n",
			o.ID, o.Supplier, o.OrderQuantity, o.UnitOfMeasure, o.EstimatedCost.StringFixed(2))
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Products: %d\tBelow par: %d\tPending orders: %d\tEstimated value: %s\n",
		report.Totals.Products,
		report.Totals.ByStatus[domain.StockStatusBelowPar],
		report.Totals.PendingOrders,
		report.Totals.EstimatedOrderValue.StringFixed(2))

	return tw.Flush()
}

func runExport(c *cli.Context) error {
	provider, err := loadProvider(c)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = filepath.Join(config.Load().App.ExportDir, defaultExportName)
	}
	svc := service.NewReplenishmentService(provider, nil)

	var (
		buf         bytes.Buffer
		n           int
		contentType string
	)
	switch strings.ToLower(filepath.Ext(out)) {
	case ".csv":
		n, err = svc.ExportCandidatesCSV(c.Context, filterFromFlags(c), &buf)
		contentType = "text/csv"
	case ".xlsx":
		n, err = svc.ExportCandidatesXLSX(c.Context, filterFromFlags(c), &buf)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return fmt.Errorf("%w: %s", catalog.ErrUnsupportedFormat, out)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	logger.Log.Info().Str("file", out).Int("orders", n).Msg("pending orders exported")

	key := c.String("upload-key")
	if key == "" {
		return nil
	}

	client, err := storage.NewMinioClient(storage.Config{
		Endpoint:  c.String("s3-endpoint"),
		AccessKey: c.String("s3-access-key"),
		SecretKey: c.String("s3-secret-key"),
		Bucket:    c.String("s3-bucket"),
		Region:    c.String("s3-region"),
		UseSSL:    c.Bool("s3-use-ssl"),
	})
	if err != nil {
		return err
	}
	if err := client.UploadObject(c.Context, key, buf.Bytes(), contentType); err != nil {
		return err
	}
	logger.Log.Info().Str("key", key).Msg("export uploaded")
	return nil
}

func openRepository(c *cli.Context) (repository.CatalogRepository, func(), error) {
	db, err := postgres.Open(c.Context, c.String("db-url"))
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewCatalogRepository(db)
	if err := repo.EnsureSchema(c.Context); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, func() { db.Close() }, nil
}

func runMigrate(c *cli.Context) error {
	_, closeDB, err := openRepository(c)
	if err != nil {
		return err
	}
	defer closeDB()

	logger.Log.Info().Msg("products schema is up to date")
	return nil
}

func runSeed(c *cli.Context) error {
	provider, err := loadProvider(c)
	if err != nil {
		return err
	}
	products, err := provider.Products(c.Context)
	if err != nil {
		return err
	}

	repo, closeDB, err := openRepository(c)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.UpsertProducts(c.Context, products); err != nil {
		return err
	}

	logger.Log.Info().
		Str("source", provider.Name()).
		Int("products", len(products)).
		Msg("catalog seeded")
	return nil
}
