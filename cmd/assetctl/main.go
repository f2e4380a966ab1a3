package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qtts/assetdesk/internal/config"
	"github.com/qtts/assetdesk/internal/db"
	"github.com/qtts/assetdesk/internal/export"
	"github.com/qtts/assetdesk/internal/report"
	"github.com/qtts/assetdesk/internal/state"
	"github.com/qtts/assetdesk/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Settings come from ASSETDESK_* variables
// and .env; the persistent flags override them.
func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "assetctl",
		Short:         "Offline import, export and reports for an assetdesk database",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(".env")
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("db") {
				cfg.DB = loaded.DB
			}
			if !flags.Changed("key") {
				cfg.StorageKey = loaded.StorageKey
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfg.DB, "db", "", "SQLite database path (default $ASSETDESK_DB or assetdesk.db)")
	root.PersistentFlags().StringVar(&cfg.StorageKey, "key", "", "storage key for the state blob (default qtts-asset-storage)")

	root.AddCommand(
		&cobra.Command{
			Use:   "import <file.json>",
			Short: "Add assets from a JSON list (all or nothing)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImport(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
			},
		},
		newExportCmd(&cfg),
		newReportCmd(&cfg),
	)
	return root
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "export <assets|categories|suppliers|locations>",
		Short:     "Write a collection as an .xlsx spreadsheet",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"assets", "categories", "suppliers", "locations"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), *cfg, args[0], out, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <collection>.xlsx)")
	return cmd
}

func newReportCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:       "report <summary|managers|statuses|locations>",
		Short:     "Print a derived view",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"summary", "managers", "statuses", "locations"},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, closeDB, err := openStore(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer closeDB()
			return writeReport(cmd.OutOrStdout(), args[0], st.State(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// openStore opens the database and loads the stored state.
func openStore(ctx context.Context, cfg config.Config) (*state.Store, *store.Persister, func(), error) {
	database, err := db.Open(cfg.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("ensuring schema: %w", err)
	}

	st, err := store.OpenState(ctx, database, cfg.StorageKey)
	if err != nil {
		database.Close()
		return nil, nil, nil, err
	}
	return st, &store.Persister{DB: database, Key: cfg.StorageKey}, func() { database.Close() }, nil
}

func runImport(ctx context.Context, cfg config.Config, path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}
	batch, err := state.ParseImport(data)
	if err != nil {
		return err
	}

	st, persister, closeDB, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := st.Dispatch(state.ImportAssets(batch)); err != nil {
		return err
	}
	if err := store.SaveState(ctx, persister.DB, persister.Key, st.State().Persisted()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Imported %d assets into %s\n", len(batch), cfg.DB)
	return nil
}

func runExport(ctx context.Context, cfg config.Config, name, path string, w io.Writer) error {
	build, ok := export.ByName(name)
	if !ok {
		return fmt.Errorf("unknown collection %q", name)
	}
	if path == "" {
		path = name + ".xlsx"
	}

	st, _, closeDB, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	table := build(st.State())
	if err := table.WriteXLSX(f, name); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	fmt.Fprintf(w, "Wrote %d rows to %s\n", len(table.Rows), path)
	return nil
}

// writeReport renders one derived view of s.
func writeReport(w io.Writer, name string, s state.State, asJSON bool) error {
	var data any
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch name {
	case "summary":
		sum := report.Summarize(s)
		data = sum
		fmt.Fprintf(tw, "Total assets\t%d\n", sum.TotalAssets)
		fmt.Fprintf(tw, "Total value\t%s\n", sum.TotalValue.StringFixed(2))
		for _, c := range sum.ByStatus {
			fmt.Fprintf(tw, "%s\t%d\n", c.Label, c.Count)
		}
	case "managers":
		rows := report.ByManager(s)
		data = rows
		fmt.Fprintln(tw, "MANAGER\tASSETS\tVALUE")
		for _, m := range rows {
			label := m.ManagerName
			if label == "" {
				label = m.ManagerID
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\n", label, m.Count, m.Total.StringFixed(2))
		}
	case "statuses":
		rows := report.ByStatus(s)
		data = rows
		fmt.Fprintln(tw, "STATUS\tASSETS\tVALUE")
		for _, c := range rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Label, c.Count, c.Total.StringFixed(2))
		}
	case "locations":
		rows := report.ByLocation(s)
		data = rows
		fmt.Fprintln(tw, "LOCATION\tASSETS\tVALUE")
		for _, l := range rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", l.Location, l.Count, l.Total.StringFixed(2))
		}
	default:
		return fmt.Errorf("unknown report %q", name)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return tw.Flush()
}
