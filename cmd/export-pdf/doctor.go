// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/export-pdf/internal/browser"
	"github.com/pdiddy/export-pdf/internal/export"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the rendering environment is usable",
	Long: `Doctor verifies that a headless Chromium/Chrome binary is installed and
reports which one the exporter would use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := browser.Detect()
		if err != nil {
			return &export.DependencyMissingError{
				Dep:      "headless browser",
				Guidance: browser.InstallGuidance,
				Err:      err,
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "browser: %s (%s)\n", b.Name, b.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
