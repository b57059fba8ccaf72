package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/internal/report"
	"github.com/ikkim/storefront/internal/storage"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// Report flags
	managerID  uint
	outPath    string
	upload     bool
	uploadWait time.Duration
)

// reportCmd writes a manager's analytics workbook
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a manager's popular items, customers and recent updates to XLSX",
	Long: `Write the five most popular items, the five most popular customers and the
five most recent product updates across a manager's stores to an XLSX workbook.
With --upload the workbook is also stored in the configured S3 bucket.

Examples:
  storefront report --manager 3
  storefront report --manager 3 --out march.xlsx --upload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().UintVar(&managerID, "manager", 0, "ID of the manager to report on")
	reportCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default REPORT_DIR/manager-<id>-report-<time>.xlsx)")
	reportCmd.Flags().BoolVar(&upload, "upload", false, "Upload the workbook to S3 (requires AWS_S3_BUCKET)")
	reportCmd.Flags().DurationVar(&uploadWait, "upload-timeout", 30*time.Second, "Time limit for the upload")
	_ = reportCmd.MarkFlagRequired("manager")
}

func runReport() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB()

	services := service.New(repository.NewRepositories(db.GetDB()))
	data, err := services.Analytics.Report(managerID)
	if err != nil {
		return fmt.Errorf("failed to assemble report: %w", err)
	}

	generatedAt := time.Now()
	path := outPath
	if path == "" {
		path = filepath.Join(cfg.Report.Dir, report.FileName(managerID, generatedAt))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.Write(f, data, generatedAt); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)

	if !upload {
		return nil
	}
	if !cfg.S3.Enabled() {
		return fmt.Errorf("--upload needs AWS_S3_BUCKET to be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadWait)
	defer cancel()
	result, err := uploadReport(ctx, storage.NewS3Storage(cfg.S3), path)
	if err != nil {
		return err
	}
	fmt.Printf("Report uploaded to %s\n", result.FileURL)
	return nil
}

func uploadReport(ctx context.Context, uploader storage.Uploader, path string) (*storage.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := uploader.Upload(ctx, storage.ReportsFolder, filepath.Base(path), storage.XLSXContentType, f)
	if err != nil {
		return nil, err
	}
	logger.Info("Report uploaded", map[string]interface{}{
		"manager_id": managerID,
		"key":        result.Key,
	})
	return result, nil
}
