package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/hairizuanbinnoorazman/script-tracker/storage"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Store a JSON snapshot of every script in the configured archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd.Context(), func(ctx context.Context, store script.Store, archive storage.Archive, log logger.Logger) error {
			name, count, err := snapshotScripts(ctx, store, archive, time.Now())
			if err != nil {
				return err
			}
			log.Info(ctx, "snapshot stored", map[string]interface{}{
				"name":    name,
				"scripts": count,
			})
			fmt.Printf("Stored %d scripts in %s\n", count, name)
			return nil
		})
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd.Context(), func(ctx context.Context, _ script.Store, archive storage.Archive, _ logger.Logger) error {
			snapshots, err := archive.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list snapshots: %w", err)
			}
			if len(snapshots) == 0 {
				fmt.Println("No snapshots found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tCREATED")
			for _, s := range snapshots {
				fmt.Fprintf(w, "%s\t%d\t%s\n", s.Name, s.Size, s.CreatedAt.UTC().Format(time.RFC3339))
			}
			return w.Flush()
		})
	},
}

var archiveRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Import a stored snapshot, updating scripts with the same name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd.Context(), func(ctx context.Context, store script.Store, archive storage.Archive, _ logger.Logger) error {
			result, err := restoreSnapshot(ctx, store, archive, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%d scripts importados exitosamente\n", result.Imported)
			for _, e := range result.Errors {
				fmt.Fprintln(os.Stderr, e)
			}
			return nil
		})
	},
}

func withArchive(ctx context.Context, fn func(context.Context, script.Store, storage.Archive, logger.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewLogrusLoggerWithOptions(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	archive, err := storage.NewArchive(ctx, cfg.Storage.archiveOptions())
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	return fn(ctx, script.NewMySQLStore(db, log), archive, log)
}

// snapshotScripts writes every script to the archive as a JSON array that
// restoreSnapshot and the import endpoint both accept.
func snapshotScripts(ctx context.Context, store script.Store, archive storage.Archive, now time.Time) (string, int, error) {
	scripts, err := store.List(ctx, script.ListFilter{})
	if err != nil {
		return "", 0, fmt.Errorf("failed to list scripts: %w", err)
	}
	if scripts == nil {
		scripts = []*script.Script{}
	}

	data, err := json.MarshalIndent(scripts, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := storage.SnapshotName(now)
	if err := archive.Put(ctx, name, bytes.NewReader(data)); err != nil {
		return "", 0, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return name, len(scripts), nil
}

func restoreSnapshot(ctx context.Context, store script.Store, archive storage.Archive, name string) (*script.ImportResult, error) {
	rc, err := archive.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", name, err)
	}
	defer rc.Close()

	var scripts []script.Script
	if err := json.NewDecoder(rc).Decode(&scripts); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}

	result, err := store.Import(ctx, scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to import snapshot %s: %w", name, err)
	}
	return result, nil
}

func init() {
	archiveCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveRestoreCmd)
	rootCmd.AddCommand(archiveCmd)
}
