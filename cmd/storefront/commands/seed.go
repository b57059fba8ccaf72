package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/console"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/internal/importer"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	assumeYes bool
	batchSize int
)

// seedCmd imports users, stores, products and warehouses from a workbook
var seedCmd = &cobra.Command{
	Use:   "seed <xlsx_file_path>",
	Short: "Import users, stores, products and warehouses from an XLSX workbook",
	Long: `Import rows from the sheets users, stores, products and warehouses.
Each sheet starts with a header row. Missing sheets are skipped and invalid
rows are reported and left out. Everything is inserted in one transaction.

Examples:
  storefront seed data/seed.xlsx
  storefront seed data/seed.xlsx --yes --batch-size 500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(args[0])
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Import without asking for confirmation")
	seedCmd.Flags().IntVar(&batchSize, "batch-size", 1000, "Rows per insert statement")
}

func runSeed(filePath string) error {
	if _, err := bootstrap(); err != nil {
		return err
	}
	defer closeDB()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	port := console.New(os.Stdin, os.Stdout)
	port.Printf("Reading XLSX file: %s\n", filePath)
	data, err := importer.ReadFile(filePath)
	if err != nil {
		return err
	}

	port.Println()
	port.Println("Summary:")
	port.Table([]string{"  sheet", "rows", "skipped"}, [][]string{
		{"  " + importer.SheetUsers, fmt.Sprint(len(data.Users)), fmt.Sprint(data.Skipped[importer.SheetUsers])},
		{"  " + importer.SheetStores, fmt.Sprint(len(data.Stores)), fmt.Sprint(data.Skipped[importer.SheetStores])},
		{"  " + importer.SheetProducts, fmt.Sprint(len(data.Products)), fmt.Sprint(data.Skipped[importer.SheetProducts])},
		{"  " + importer.SheetWarehouses, fmt.Sprint(len(data.Warehouses)), fmt.Sprint(data.Skipped[importer.SheetWarehouses])},
	})

	if data.Total() == 0 {
		port.Warn("Nothing to import.")
		return nil
	}

	if !assumeYes {
		answer, err := port.Prompt("Do you want to proceed with the import? [y/N]: ")
		if err != nil {
			return err
		}
		if r := validation.YesNo(answer); !r.OK() || !r.Value {
			port.Println("Import cancelled.")
			return nil
		}
	}

	if err := data.Load(repository.NewRepositories(db.GetDB()), batchSize); err != nil {
		return fmt.Errorf("failed to import workbook: %w", err)
	}
	if err := db.ResetSequences(db.GetDB()); err != nil {
		return err
	}

	logger.Info("Workbook imported", map[string]interface{}{
		"file":    filePath,
		"rows":    data.Total(),
		"skipped": skippedSheets(data.Skipped),
	})
	port.Success(fmt.Sprintf("Import completed successfully! %d rows imported.", data.Total()))
	return nil
}

func skippedSheets(skipped map[string]int) []string {
	var sheets []string
	for sheet, n := range skipped {
		if n > 0 {
			sheets = append(sheets, fmt.Sprintf("%s=%d", sheet, n))
		}
	}
	sort.Strings(sheets)
	return sheets
}
