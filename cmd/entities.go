package cmd

import (
	"context"
	"fmt"

	"vault-reconciler/core/config"
	"vault-reconciler/core/storage"
	"vault-reconciler/feature/vault"

	"github.com/spf13/cobra"
)

// entitiesCmd represents the entities command
var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Inspect the entity configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// entitiesListCmd represents the entities list command
var entitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured entities",
	RunE: func(cmd *cobra.Command, args []string) error {
		entities, err := loadEntitiesFromConfig(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%d entities configured\n\n", len(entities))
		for i := range entities {
			e := &entities[i]
			kind := e.Kind
			if kind == "" {
				kind = vault.KindHub
			}
			fmt.Printf("%s (%s)\n", e.DisplayName(), kind)
			fmt.Printf("  Source: %s\n", e.SourceTable)
			fmt.Printf("  Hub: %s\n", e.HubTableLabel())
			fmt.Printf("  Satellite: %s\n", e.SatelliteTable)
			fmt.Printf("  Bizview: %s\n", e.BizviewTable)
		}
		return nil
	},
}

// entitiesCheckCmd represents the entities check command
var entitiesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the entity configuration without touching the warehouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		entities, err := loadEntitiesFromConfig(cmd.Context())
		if err != nil {
			return err
		}

		invalid := 0
		for i := range entities {
			e := &entities[i]
			if err := e.Validate(); err != nil {
				invalid++
				fmt.Printf("INVALID  %s: %v\n", e.DisplayName(), err)
				continue
			}
			fmt.Printf("OK       %s\n", e.DisplayName())
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d entities are invalid", invalid, len(entities))
		}
		fmt.Printf("\nAll %d entities are valid\n", len(entities))
		return nil
	},
}

// loadEntities reads the entity configuration from the source the config
// points at. An object key takes precedence over the local file; the storage
// client may be nil when only the file is used.
func loadEntities(ctx context.Context, cfg *config.Config, store storage.Client) ([]vault.EntityConfig, error) {
	if cfg.Recon.EntitiesObject != "" {
		if store == nil {
			return nil, fmt.Errorf("entities object %q configured but storage is not", cfg.Recon.EntitiesObject)
		}
		return vault.LoadEntitiesObject(ctx, store, cfg.Storage.Bucket, cfg.Recon.EntitiesObject)
	}
	return vault.LoadEntitiesFile(cfg.Recon.EntitiesFile)
}

// loadEntitiesFromConfig is the standalone-command variant: it loads the
// config itself and builds a storage client only when one is needed.
func loadEntitiesFromConfig(ctx context.Context) ([]vault.EntityConfig, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var store storage.Client
	if cfg.Recon.EntitiesObject != "" {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	entities, err := loadEntities(ctx, cfg, store)
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}
	return entities, nil
}

func init() {
	RootCmd.AddCommand(entitiesCmd)
	entitiesCmd.AddCommand(entitiesListCmd, entitiesCheckCmd)
}
