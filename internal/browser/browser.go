// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser locates the headless Chromium/Chrome binary the rendering
// backend drives. Detection probes a fixed candidate list on PATH, with a
// CHROME_PATH environment override for unusual installs.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// candidates lists browser binaries in preference order.
var candidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
}

// envChromePath overrides candidate probing when set.
const envChromePath = "CHROME_PATH"

// InstallGuidance is printed when no browser is found so the operator can
// self-diagnose without reading source.
const InstallGuidance = `Install Google Chrome or Chromium:
  Debian/Ubuntu: apt install chromium
  Fedora:        dnf install chromium
  macOS:         brew install --cask google-chrome
Or point CHROME_PATH at an existing browser binary.`

// Browser identifies a usable browser binary.
type Browser struct {
	// Name is the candidate name that resolved ("google-chrome", ...),
	// or "custom" for a CHROME_PATH override.
	Name string

	// Path is the absolute path to the binary.
	Path string
}

// executor abstracts binary lookup and probing for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

var defaultExec executor = &osExecutor{}

// Detect returns the first usable browser binary: the CHROME_PATH override
// when set, otherwise the first candidate on PATH that answers --version.
// Returns an error naming every candidate tried when nothing is usable.
func Detect() (Browser, error) {
	return detect(defaultExec, os.Getenv)
}

func detect(exec executor, getenv func(string) string) (Browser, error) {
	if custom := getenv(envChromePath); custom != "" {
		if err := exec.RunSilent(custom, "--version"); err != nil {
			return Browser{}, fmt.Errorf("%s=%s is not a usable browser binary: %w", envChromePath, custom, err)
		}
		return Browser{Name: "custom", Path: custom}, nil
	}

	for _, name := range candidates {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		if err := exec.RunSilent(path, "--version"); err != nil {
			continue
		}
		return Browser{Name: name, Path: path}, nil
	}

	return Browser{}, fmt.Errorf(
		"no headless browser available: none of %s found or operational",
		strings.Join(candidates, ", "),
	)
}
