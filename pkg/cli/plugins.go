package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/extension/memory"
	"github.com/platinummonkey/folio/pkg/plugins"
)

func newPluginsCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugins",
		Aliases: []string{"plugin"},
		Short:   "Inspect plugin manifests",
	}

	cmd.AddCommand(newPluginsValidateCommand(st))
	cmd.AddCommand(newPluginsListCommand(st))

	return cmd
}

// ValidationResult is the outcome of validating one manifest
type ValidationResult struct {
	Path   string                    `json:"path"`
	Name   string                    `json:"name,omitempty"`
	Valid  bool                      `json:"valid"`
	Errors []plugins.ValidationError `json:"errors,omitempty"`
}

func newPluginsValidateCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Validate plugin manifests (a plugin.yaml or its directory)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]ValidationResult, 0, len(args))
			failed := 0
			for _, path := range args {
				result := validateManifest(path)
				if !result.Valid {
					failed++
				}
				results = append(results, result)
			}

			if st.json() {
				if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if r.Valid {
						writeLine(cmd.OutOrStdout(), "%s: ok (%s)", r.Path, r.Name)
						continue
					}
					writeLine(cmd.OutOrStdout(), "%s: invalid", r.Path)
					for _, e := range r.Errors {
						writeLine(cmd.OutOrStdout(), "  - %s: %s", e.Field, e.Message)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d manifests are invalid", failed, len(results))
			}
			return nil
		},
	}
}

func validateManifest(path string) ValidationResult {
	result := ValidationResult{Path: path}

	manifest := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		manifest = filepath.Join(path, plugins.ManifestFile)
	}

	plugin, err := plugins.LoadManifest(manifest)
	if err != nil {
		result.Errors = []plugins.ValidationError{{Field: "manifest", Message: err.Error()}}
		return result
	}

	result.Name = plugin.Metadata.Name
	result.Errors = plugins.ValidateManifest(plugin)
	result.Valid = len(result.Errors) == 0
	return result
}

func newPluginsListCommand(st *state) *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Discover plugins and show their phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(dirs) == 0 {
				dirs = st.cfg.Plugins.Dirs
			}

			store := memory.NewStore(plugins.PluginType)
			loader := plugins.NewLoader(dirs, store, st.log)
			loader.SetRuntimeVersion(st.cfg.Plugins.RuntimeVersion)
			if _, err := loader.DiscoverPlugins(cmd.Context()); err != nil {
				return err
			}

			found, err := store.ListAll(cmd.Context(), extension.ListOptions{}, extension.SortBy(extension.Asc(extension.FieldName)))
			if err != nil {
				return err
			}
			if st.json() {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			if len(found) == 0 {
				writeLine(cmd.OutOrStdout(), "no plugins found")
				return nil
			}
			writeLine(cmd.OutOrStdout(), "%s", pluginTable(found))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "plugin directories (defaults to FOLIO_PLUGIN_DIRS)")
	return cmd
}

func pluginTable(found []*plugins.Plugin) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "VERSION", "ENABLED", "PHASE", "MESSAGE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, p := range found {
		t.Row(
			p.Metadata.Name,
			p.Spec.GetVersion(),
			fmt.Sprintf("%t", p.Spec.GetEnabled()),
			string(p.Status.Phase),
			p.Status.Message,
		)
	}
	return t.String()
}
