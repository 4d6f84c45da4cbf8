package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hairizuanbinnoorazman/script-tracker/apiclient"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScriptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scripts",
		Aliases: []string{"s"},
		Short:   "Manage database scripts",
	}

	cmd.AddCommand(newScriptsListCmd())
	cmd.AddCommand(newScriptsGetCmd())
	cmd.AddCommand(newScriptsCreateCmd())
	cmd.AddCommand(newScriptsUpdateCmd())
	cmd.AddCommand(newScriptsDeleteCmd())
	cmd.AddCommand(newScriptsApplyCmd())
	cmd.AddCommand(newScriptsSampleDataCmd())
	cmd.AddCommand(newScriptsStatsCmd())
	cmd.AddCommand(newScriptsCategoriesCmd())
	cmd.AddCommand(newScriptsExportCmd())
	cmd.AddCommand(newScriptsImportCmd())
	return cmd
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid script id %q", arg)
	}
	return uint(id), nil
}

func newScriptsListCmd() *cobra.Command {
	var criteria dashboard.Criteria
	var serverSide bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scripts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getClient()

			params := apiclient.ListParams{}
			if serverSide {
				params = apiclient.ListParams(criteria)
			}
			env, err := result(client.ListScripts(cmd.Context(), params))
			if err != nil {
				return err
			}

			// The same rules as the dashboard grid, so both show identical results.
			scripts := dashboard.Filter(env.Data, criteria)

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, scripts)
			}
			if len(scripts) == 0 {
				printMessage(out, "No se encontraron scripts")
				return nil
			}
			printScriptTable(out, scripts)
			printMessage(out, fmt.Sprintf("\nShowing %d of %d scripts", len(scripts), len(env.Data)))
			return nil
		},
	}

	cmd.Flags().StringVar(&criteria.Search, "search", "", "Match name or notes (case-insensitive)")
	cmd.Flags().StringVar(&criteria.Status, "status", "", "Filter by status (pending, applied, error)")
	cmd.Flags().StringVar(&criteria.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&criteria.Priority, "priority", "", "Filter by priority (high, medium, low)")
	cmd.Flags().BoolVar(&serverSide, "server", false, "Let the backend apply the filters")
	return cmd
}

func newScriptsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			env, err := result(getClient().GetScript(cmd.Context(), id))
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), env.Data)
			}
			printScriptDetail(cmd.OutOrStdout(), env.Data)
			return nil
		},
	}
}

// scriptFlags binds the editable fields of a script to command flags.
type scriptFlags struct {
	input script.Input
}

func (f *scriptFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input.Name, "name", "", "Script name")
	cmd.Flags().StringVar(&f.input.Path, "path", "", "Path of the SQL file")
	cmd.Flags().StringVar(&f.input.Category, "category", "", "Category (BD, Alters, Updates, Vistas, Permisos, Scripts ID, ...)")
	cmd.Flags().StringVar((*string)(&f.input.Priority), "priority", string(script.PriorityMedium), "Priority (high, medium, low)")
	cmd.Flags().StringVar((*string)(&f.input.Status), "status", string(script.StatusPending), "Status (pending, applied, error)")
	cmd.Flags().StringVar(&f.input.Responsible, "responsible", dashboard.FormResponsible, "Responsible team or person")
	cmd.Flags().StringVar(&f.input.Notes, "notes", "", "Free-form notes")
}

var scriptFieldFlags = []string{"name", "path", "category", "priority", "status", "responsible", "notes"}

func (f *scriptFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range scriptFieldFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// overlay copies the flags the user actually set onto in.
func (f *scriptFlags) overlay(cmd *cobra.Command, in script.Input) script.Input {
	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = f.input.Name
	}
	if changed("path") {
		in.Path = f.input.Path
	}
	if changed("category") {
		in.Category = f.input.Category
	}
	if changed("priority") {
		in.Priority = f.input.Priority
	}
	if changed("status") {
		in.Status = f.input.Status
	}
	if changed("responsible") {
		in.Responsible = f.input.Responsible
	}
	if changed("notes") {
		in.Notes = f.input.Notes
	}
	return in
}

func newScriptsCreateCmd() *cobra.Command {
	var flags scriptFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new script",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := result(getClient().CreateScript(cmd.Context(), flags.input))
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), env.Data)
			}
			printMessage(cmd.OutOrStdout(), fmt.Sprintf("%s: %s (%d)", env.Message, env.Data.Name, env.Data.ID))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newScriptsUpdateCmd() *cobra.Command {
	var flags scriptFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !flags.anyChanged(cmd) {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			client := getClient()
			current, err := result(client.GetScript(cmd.Context(), id))
			if err != nil {
				return err
			}

			in := flags.overlay(cmd, script.InputFrom(current.Data))
			env, err := result(client.UpdateScript(cmd.Context(), id, in))
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), env.Data)
			}
			printMessage(cmd.OutOrStdout(), fmt.Sprintf("%s: %s (%d)", env.Message, env.Data.Name, env.Data.ID))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newScriptsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout(), dashboard.DeletePrompt, yes) {
				printMessage(cmd.OutOrStdout(), "Cancelled")
				return nil
			}

			env, err := result(getClient().DeleteScript(cmd.Context(), id))
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), env.Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newScriptsApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <id>",
		Short: "Mark a script as applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			env, err := result(getClient().ApplyScript(cmd.Context(), id))
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(cmd.OutOrStdout(), env.Data)
			}
			printMessage(cmd.OutOrStdout(), fmt.Sprintf("%s: %s", env.Message, env.Data.Name))
			return nil
		},
	}
}

func newScriptsSampleDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-data",
		Short: "Load the sample scripts into the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := result(getClient().LoadSampleData(cmd.Context()))
			if err != nil {
				return err
			}
			printImportResult(cmd, env)
			return nil
		},
	}
}

func newScriptsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show script counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := result(getClient().Stats(cmd.Context()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, env.Data)
			}
			printTable(out, []string{"TOTAL", "PENDING", "APPLIED", "ERROR"}, [][]string{{
				strconv.Itoa(env.Data.Total),
				strconv.Itoa(env.Data.Pending),
				strconv.Itoa(env.Data.Applied),
				strconv.Itoa(env.Data.Error),
			}})
			return nil
		},
	}
}

func newScriptsCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := result(getClient().Categories(cmd.Context()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				return printJSON(out, env.Data)
			}
			for _, c := range env.Data {
				printMessage(out, c)
			}
			return nil
		},
	}
}

func newScriptsExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every script as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q: use json or yaml", format)
			}

			env, err := result(getClient().Export(cmd.Context()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			if format == "yaml" {
				generic, err := jsonShaped(env.Data)
				if err != nil {
					return err
				}
				err = printYAML(out, generic)
				if err != nil {
					return err
				}
			} else if err := printJSON(out, env.Data); err != nil {
				return err
			}

			if output != "" {
				printMessage(cmd.ErrOrStderr(), fmt.Sprintf("Exported %d scripts to %s", env.Count, output))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newScriptsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import scripts from a JSON or YAML export, updating scripts with the same name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scripts, err := readScriptsFile(args[0])
			if err != nil {
				return err
			}

			env, err := result(getClient().Import(cmd.Context(), scripts))
			if err != nil {
				return err
			}
			printImportResult(cmd, env)
			return nil
		},
	}
}

func printImportResult(cmd *cobra.Command, env *apiclient.Envelope[struct{}]) {
	if flagJSON {
		printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"imported_count": env.ImportedCount,
			"errors":         env.Errors,
		})
		return
	}
	printMessage(cmd.OutOrStdout(), env.Message)
	for _, e := range env.Errors {
		printMessage(cmd.ErrOrStderr(), e)
	}
}

// readScriptsFile reads an array of scripts. YAML files use the same keys
// as the JSON export.
func readScriptsFile(path string) ([]script.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if data, err = json.Marshal(generic); err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", path, err)
		}
	}

	var scripts []script.Script
	if err := json.Unmarshal(data, &scripts); err != nil {
		return nil, fmt.Errorf("failed to parse %s: expected an array of scripts: %w", path, err)
	}
	return scripts, nil
}

// jsonShaped converts v to maps and slices keyed by its JSON field names so
// the YAML export can be imported back.
func jsonShaped(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to convert export: %w", err)
	}
	return generic, nil
}
