package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"vault-reconciler/core/config"
	"vault-reconciler/core/logger"
	"vault-reconciler/core/storage"
	"vault-reconciler/core/warehouse"
	"vault-reconciler/feature/report"
	"vault-reconciler/feature/vault"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run one validation pass and print the results",
	Long:  `Validates every configured entity against the warehouse and prints a per-table summary. Use --json or --excel to save the full report, --upload to push it to object storage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		excelOutput, _ := cmd.Flags().GetBool("excel")
		upload, _ := cmd.Flags().GetBool("upload")
		outputDir, _ := cmd.Flags().GetString("output")
		entitiesFile, _ := cmd.Flags().GetString("entities")
		sampleSize, _ := cmd.Flags().GetInt("sample-size")
		parallelism, _ := cmd.Flags().GetInt("parallelism")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if sampleSize > 0 {
			cfg.Recon.SampleSize = sampleSize
		}
		if parallelism > 0 {
			cfg.Recon.Parallelism = parallelism
		}
		if entitiesFile != "" {
			cfg.Recon.EntitiesFile = entitiesFile
			cfg.Recon.EntitiesObject = ""
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		executor, err := warehouse.NewExecutor(ctx, cfg.Warehouse)
		if err != nil {
			return fmt.Errorf("failed to connect to warehouse: %w", err)
		}
		defer executor.Close()

		var store storage.Client
		if cfg.Recon.EntitiesObject != "" || upload {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		entities, err := loadEntities(ctx, cfg, store)
		if err != nil {
			return fmt.Errorf("failed to load entities: %w", err)
		}

		logg.Info("Validating entities (this might take a while)...", zap.Int("entities", len(entities)))

		engine := vault.NewEngine(executor, logg, vault.Options{
			SampleSize:   cfg.Recon.SampleSize,
			Parallelism:  cfg.Recon.Parallelism,
			QueryTimeout: time.Duration(cfg.Recon.QueryTimeoutSeconds) * time.Second,
		})
		svc := vault.NewService(engine, entities, 0, logg)

		rep, err := svc.Run(ctx, "cli", true)
		if err != nil {
			return fmt.Errorf("validation run failed: %w", err)
		}

		printReport(rep)

		if jsonOutput {
			path, err := report.SaveJSON(rep, outputDir)
			if err != nil {
				return fmt.Errorf("failed to save JSON report: %w", err)
			}
			fmt.Printf("\nJSON report saved to: %s\n", path)
		}
		if excelOutput {
			path, err := report.SaveExcel(rep, outputDir)
			if err != nil {
				return fmt.Errorf("failed to save Excel report: %w", err)
			}
			fmt.Printf("\nExcel report saved to: %s\n", path)
		}
		if upload {
			uploader := report.NewUploader(store, cfg.Storage.Bucket, cfg.Recon.ReportPrefix, cfg.Storage.ReportRetention, logg)
			if err := uploader.Upload(ctx, rep); err != nil {
				return fmt.Errorf("failed to upload report: %w", err)
			}
		}

		logg.Info("Validation completed",
			zap.String("run_id", rep.RunID),
			zap.Int("entities", rep.Summary.Entities),
			zap.Int("validated", rep.Summary.Validated),
			zap.Int("failed", rep.Summary.Failed),
			zap.Int64("total_rows_lost", rep.Summary.TotalRowsLost),
			zap.Duration("execution_time", time.Since(startTime)),
		)

		if rep.Summary.Failed > 0 {
			return fmt.Errorf("%d of %d entities failed validation", rep.Summary.Failed, rep.Summary.Entities)
		}
		return nil
	},
}

// printReport writes the per-table results and the run summary to stdout.
func printReport(rep *vault.Report) {
	fmt.Println("\n=== Validation Results ===")
	for i := range rep.Results {
		r := &rep.Results[i]
		fmt.Printf("Table: %s\n", r.TableName)
		fmt.Printf("  Status: %s\n", r.Status)
		if r.Status == vault.StatusFailed {
			fmt.Printf("  Error: %s\n", r.ErrorMessage)
			fmt.Println("  ---")
			continue
		}
		fmt.Printf("  Source Count: %s\n", fmtCount(r.SourceCount))
		fmt.Printf("  Hub Count: %s\n", fmtCount(r.HubCount))
		if r.LinkCount != nil {
			fmt.Printf("  Link Count: %s\n", fmtCount(r.LinkCount))
		}
		fmt.Printf("  Satellite Count: %s\n", fmtCount(r.CurrentSatelliteCount))
		fmt.Printf("  Bizview Count: %s\n", fmtCount(r.BizviewCount))
		fmt.Printf("  Total Rows Lost: %s\n", fmtCount(r.TotalRowsLost))
		fmt.Printf("  Deleted Records: %s\n", fmtCount(r.DeletedRecords))
		if sampled, total := missingAtHub(r.LostRecordsDetails); total > 0 {
			fmt.Printf("  Missing at hub: %d rows (%d sampled)\n", total, sampled)
		}
		fmt.Println("  ---")
	}

	s := rep.Summary
	fmt.Println("\n=== Validation Summary ===")
	fmt.Printf("Entities: %d\n", s.Entities)
	fmt.Printf("Validated: %d\n", s.Validated)
	fmt.Printf("Failed: %d\n", s.Failed)
	fmt.Printf("Total Rows Lost: %d\n", s.TotalRowsLost)
	fmt.Printf("Deleted Records: %d\n", s.DeletedRecords)
}

// fmtCount renders a nullable count. Failed rows carry no numbers.
func fmtCount(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// missingAtHub pulls the source-to-hub total and sample size out of the
// details blob. Only sample records carry the separator marker, so the
// truncation note does not inflate the sampled count.
func missingAtHub(details string) (sampled int, total int64) {
	var d struct {
		SourceToHub  []map[string]json.RawMessage `json:"source_to_hub"`
		MissingCount int64                        `json:"missing_count"`
	}
	if err := json.Unmarshal([]byte(details), &d); err != nil {
		return 0, 0
	}
	for _, rec := range d.SourceToHub {
		if _, ok := rec["__record_separator"]; ok {
			sampled++
		}
	}
	return sampled, d.MissingCount
}

func init() {
	RootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Save the full report as JSON")
	validateCmd.Flags().Bool("excel", false, "Save the full report as an Excel workbook")
	validateCmd.Flags().Bool("upload", false, "Upload the report to object storage")
	validateCmd.Flags().String("output", ".", "Directory for saved reports")
	validateCmd.Flags().String("entities", "", "Entity configuration file (overrides the configured source)")
	validateCmd.Flags().Int("sample-size", 0, "Missing record sample size (overrides configuration)")
	validateCmd.Flags().Int("parallelism", 0, "Entities validated concurrently (overrides configuration)")
}
