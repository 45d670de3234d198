// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/export-pdf/pkg/types"
)

// Report is the on-disk record of one successful export run. It is written
// only when the operator asks for it; failed runs never produce one.
type Report struct {
	Tool       string        `yaml:"tool"`
	Version    string        `yaml:"version"`
	InputPath  string        `yaml:"input_path"`
	OutputPath string        `yaml:"output_path"`
	Options    types.Options `yaml:"options"`
	Result     types.Result  `yaml:"result"`
	StartedAt  string        `yaml:"started_at"`
	FinishedAt string        `yaml:"finished_at"`
}

// NewReport assembles a Report from the run parameters and outcome.
func NewReport(p RunParams, result types.Result, started, finished time.Time) Report {
	return Report{
		Tool:       "export-pdf",
		Version:    p.Version,
		InputPath:  p.InputPath,
		OutputPath: result.OutputPath,
		Options:    p.Options,
		Result:     result,
		StartedAt:  started.Format(time.RFC3339),
		FinishedAt: finished.Format(time.RFC3339),
	}
}

// WriteReport marshals the report to YAML at path.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
