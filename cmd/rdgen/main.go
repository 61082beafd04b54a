package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/mmrzaf/rdgen/internal/app"
	"github.com/mmrzaf/rdgen/internal/config"
	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/fields"
	"github.com/mmrzaf/rdgen/internal/infra/repos/runs"
	"github.com/mmrzaf/rdgen/internal/infra/repos/schemas"
	"github.com/mmrzaf/rdgen/internal/logging"
	"github.com/mmrzaf/rdgen/internal/registry"
	"github.com/mmrzaf/rdgen/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfg        *config.Config
	schemasDir string
	runsDBPath string
	logLevel   string
)

func main() {
	var err error
	if cfg, err = config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:          "rdgen",
		Short:        "Random test data generator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&schemasDir, "schemas-dir", cfg.SchemasDir, "Schemas directory")
	rootCmd.PersistentFlags().StringVar(&runsDBPath, "runs-db", cfg.RunsDBPath, "Runs database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")

	rootCmd.AddCommand(fieldsCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(targetCmd())
	rootCmd.AddCommand(runsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newService wires the generation service against the on-disk schemas and
// run history. The returned func closes the history DB.
func newService() (*app.GenerateService, func(), error) {
	runRepo := runs.NewSQLiteRepository(runsDBPath)
	if err := runRepo.Init(); err != nil {
		return nil, nil, err
	}
	svc := app.NewGenerateService(
		schemas.NewFileRepository(schemasDir),
		runRepo,
		registry.DefaultFieldRegistry(),
		app.Defaults{
			Count:     cfg.DefaultCount,
			Format:    cfg.DefaultFormat,
			BatchSize: cfg.BatchSize,
			TableMode: cfg.TableMode,
		},
		logging.NewLoggerWithWriter(logLevel, os.Stderr),
	)
	return svc, func() { _ = runRepo.Close() }, nil
}

func looksLikePath(s string) bool {
	return strings.ContainsRune(s, filepath.Separator) || strings.Contains(s, "/") ||
		strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml") || strings.HasSuffix(s, ".json")
}

func loadSchema(ref string) (*domain.Schema, error) {
	repo := schemas.NewFileRepository(schemasDir)
	if looksLikePath(ref) {
		return repo.GetByPath(ref)
	}
	return repo.Get(ref)
}

func fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List field types usable in schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tPARAMS")
			for _, name := range registry.DefaultFieldRegistry().List() {
				fmt.Fprintf(w, "%s\t%s\n", name, fieldParams(name))
			}
			w.Flush()

			fmt.Printf("\nfaker kinds: %s\n", strings.Join(fields.FakerKinds(), ", "))
			return nil
		},
	}
}

func fieldParams(name string) string {
	if _, err := fields.ParseCharset(name); err == nil {
		return "min_length, max_length"
	}
	switch name {
	case "ranged":
		return "chars, min_length, max_length"
	case "integer":
		return "min, max"
	case "double":
		return "min, max, precision"
	case "set":
		return "values"
	case "faker":
		return "kind"
	default:
		return "-"
	}
}

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect schemas",
	}

	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := schemas.NewFileRepository(schemasDir).List()
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tFIELDS\tDESCRIPTION")
			for _, s := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, len(s.Fields), s.Description)
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <id|path>",
		Short: "Show schema details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}
			data, _ := yaml.Marshal(schema)
			fmt.Println(string(data))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <id|path>",
		Short: "Validate a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}

			validator := validation.NewValidator(registry.DefaultFieldRegistry())
			if err := validator.ValidateSchema(schema); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}

			fmt.Printf("Schema '%s' is valid\n", schema.Name)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, validateCmd)
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		count       int
		format      string
		seed        int64
		hasSeed     bool
		targetKind  string
		targetDSN   string
		targetTable string
		targetPGSch string
		mode        string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "generate <schema id|path>",
		Short: "Generate rows from a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}

			svc, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			req := &domain.GenerateRequest{Schema: schema, Count: count, Format: format}
			if hasSeed {
				req.Seed = &seed
			}
			if targetDSN != "" {
				if targetKind == "" {
					return fmt.Errorf("--target-kind required when using --target")
				}
				if targetTable == "" {
					targetTable = schema.ID
				}
				req.Target = &domain.TargetConfig{
					Kind:   targetKind,
					DSN:    targetDSN,
					Table:  targetTable,
					Schema: targetPGSch,
					Mode:   mode,
				}
			}

			res, err := svc.Generate(req)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if res.JSON != "" {
				fmt.Fprintln(out, res.JSON)
			} else {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				names := make([]string, len(schema.Fields))
				for i, f := range schema.Fields {
					names[i] = f.Name
				}
				fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t")))
				for _, row := range res.Rows {
					vals := make([]string, len(names))
					for i, n := range names {
						vals[i] = fmt.Sprint(row[n])
					}
					fmt.Fprintln(w, strings.Join(vals, "\t"))
				}
				w.Flush()
			}

			fmt.Fprintf(os.Stderr, "run %s: %d rows (seed %d)\n", res.Run.ID, res.Run.RowsTotal, res.Run.Seed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Rows to generate (clamped to 10..200)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (array|json)")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Seed for RNG")
	cmd.Flags().StringVar(&targetKind, "target-kind", "", "Target kind (sqlite|postgres|elasticsearch)")
	cmd.Flags().StringVar(&targetDSN, "target", "", "Target DSN; rows are also written there")
	cmd.Flags().StringVar(&targetTable, "table", "", "Target table (defaults to schema id)")
	cmd.Flags().StringVar(&targetPGSch, "pg-schema", "", "Postgres schema")
	cmd.Flags().StringVar(&mode, "mode", "", "Table mode (create|truncate|append)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write rows to this file instead of stdout")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSeed = cmd.Flags().Changed("seed")
	}
	return cmd
}

func targetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Probe row sinks",
	}

	var kind, schema string

	checkCmd := &cobra.Command{
		Use:   "check <dsn>",
		Short: "Check connectivity and permissions of a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := newService()
			if err != nil {
				return err
			}
			defer closeFn()

			check, err := svc.CheckTarget(&domain.TargetConfig{Kind: kind, DSN: args[0], Schema: schema})
			data, _ := yaml.Marshal(check)
			fmt.Println(string(data))
			return err
		},
	}
	checkCmd.Flags().StringVar(&kind, "kind", "", "Target kind (sqlite|postgres|elasticsearch)")
	checkCmd.Flags().StringVar(&schema, "pg-schema", "", "Postgres schema")
	_ = checkCmd.MarkFlagRequired("kind")

	cmd.AddCommand(checkCmd)
	return cmd
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect run history",
	}

	var limit int
	var status string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			list, err := runRepo.List(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCHEMA\tROWS\tTARGET\tSTATUS\tSTARTED")
			for _, r := range list {
				target := "-"
				if r.TargetKind != "" {
					target = r.TargetKind + ":" + r.TargetTable
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					r.ID[:8], r.SchemaName, r.RowsTotal, target, r.Status, r.StartedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			run, err := runRepo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(run)
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
