// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the export-pdf CLI, which converts
// the project's README.md into README.pdf. All rendering is delegated to
// the conversion backend in internal/render.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/export-pdf/internal/browser"
	"github.com/pdiddy/export-pdf/internal/export"
	"github.com/pdiddy/export-pdf/internal/render"
	"github.com/pdiddy/export-pdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd performs the export directly; there are no subcommands for the
// export itself.
var rootCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Export the project README.md to PDF",
	Long: `export-pdf converts the project's README.md into README.pdf, rendering
embedded mermaid diagrams along the way. Input and output paths are fixed:
the README.md next to the tool's installation root, and a sibling
README.pdf.

Conversion is delegated to a headless Chromium/Chrome binary, which must be
installed. Run "export-pdf doctor" to check the environment.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().Int("scale", 0, "diagram scale (default 3, recommended 2-4)")
	rootCmd.Flags().String("orientation", "", "page orientation: portrait or landscape (default landscape)")
	rootCmd.Flags().String("report", "", "write a YAML run report to this path after a successful export")
}

func initConfig() {
	viper.SetConfigName("export-pdf")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "export-pdf"))
	}

	viper.SetEnvPrefix("EXPORT_PDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	defaults := types.DefaultOptions()
	viper.SetDefault("scale", defaults.Scale)
	viper.SetDefault("orientation", string(defaults.Orientation))
	viper.SetDefault("page_size", string(defaults.PageSize))
	viper.SetDefault("title", defaults.Title)
	viper.SetDefault("page_numbers", defaults.PageNumbers)
	viper.SetDefault("diagrams.enabled", defaults.DiagramsEnabled)
	viper.SetDefault("diagrams.theme", defaults.DiagramTheme)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveOptions layers the option record: defaults, then config file and
// environment, then flags. Validation happens before any file I/O.
func resolveOptions(cmd *cobra.Command) (types.Options, error) {
	opts := types.Options{
		Scale:           viper.GetInt("scale"),
		Orientation:     types.Orientation(viper.GetString("orientation")),
		PageSize:        types.PageSize(viper.GetString("page_size")),
		Title:           viper.GetString("title"),
		PageNumbers:     viper.GetBool("page_numbers"),
		DiagramsEnabled: viper.GetBool("diagrams.enabled"),
		DiagramTheme:    viper.GetString("diagrams.theme"),
	}

	if cmd.Flags().Changed("scale") {
		opts.Scale, _ = cmd.Flags().GetInt("scale")
	}
	if cmd.Flags().Changed("orientation") {
		raw, _ := cmd.Flags().GetString("orientation")
		opts.Orientation = types.Orientation(raw)
	}

	orientation, err := types.ParseOrientation(string(opts.Orientation))
	if err != nil {
		return types.Options{}, err
	}
	opts.Orientation = orientation

	pageSize, err := types.ParsePageSize(string(opts.PageSize))
	if err != nil {
		return types.Options{}, err
	}
	opts.PageSize = pageSize

	if err := opts.Validate(); err != nil {
		return types.Options{}, err
	}
	return opts, nil
}

// projectRoot derives the conventional project root from the executable's
// location: the parent of a bin/ directory, otherwise the executable's own
// directory.
func projectRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	if filepath.Base(dir) == "bin" {
		return filepath.Dir(dir), nil
	}
	return dir, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	root, err := projectRoot()
	if err != nil {
		return err
	}
	reportPath, _ := cmd.Flags().GetString("report")

	b, err := browser.Detect()
	if err != nil {
		return &export.DependencyMissingError{
			Dep:      "headless browser",
			Guidance: browser.InstallGuidance,
			Err:      err,
		}
	}

	params := export.RunParams{
		InputPath:  filepath.Join(root, "README.md"),
		OutputPath: filepath.Join(root, "README.pdf"),
		Options:    opts,
		ReportPath: reportPath,
		Version:    version,
	}

	_, err = export.Run(context.Background(), render.NewChromiumConverter(b), params, cmd.OutOrStdout())
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var depErr *export.DependencyMissingError
		if errors.As(err, &depErr) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, depErr.Guidance)
		}
		os.Exit(1)
	}
}
