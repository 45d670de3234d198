// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"errors"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	workingBins   map[string]bool // binary or path -> whether --version succeeds
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	base := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		base = name[i+1:]
	}
	if m.workingBins[name] || m.workingBins[base] {
		return nil
	}
	return errors.New("command failed: " + name)
}

func noEnv(string) string { return "" }

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		getenv   func(string) string
		wantName string
		wantPath string
		wantErr  string
	}{
		{
			name: "google-chrome preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"google-chrome": true, "chromium": true},
				workingBins:   map[string]bool{"google-chrome": true, "chromium": true},
			},
			getenv:   noEnv,
			wantName: "google-chrome",
			wantPath: "/usr/bin/google-chrome",
		},
		{
			name: "falls back to chromium",
			exec: &mockExecutor{
				availableBins: map[string]bool{"chromium": true},
				workingBins:   map[string]bool{"chromium": true},
			},
			getenv:   noEnv,
			wantName: "chromium",
			wantPath: "/usr/bin/chromium",
		},
		{
			name: "on PATH but broken binary is skipped",
			exec: &mockExecutor{
				availableBins: map[string]bool{"google-chrome": true, "chromium-browser": true},
				workingBins:   map[string]bool{"chromium-browser": true},
			},
			getenv:   noEnv,
			wantName: "chromium-browser",
			wantPath: "/usr/bin/chromium-browser",
		},
		{
			name: "nothing available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				workingBins:   map[string]bool{},
			},
			getenv:  noEnv,
			wantErr: "no headless browser available",
		},
		{
			name: "CHROME_PATH override wins",
			exec: &mockExecutor{
				availableBins: map[string]bool{"google-chrome": true},
				workingBins:   map[string]bool{"google-chrome": true, "/opt/thorium/thorium": true},
			},
			getenv: func(key string) string {
				if key == envChromePath {
					return "/opt/thorium/thorium"
				}
				return ""
			},
			wantName: "custom",
			wantPath: "/opt/thorium/thorium",
		},
		{
			name: "broken CHROME_PATH is an error, not a fallback",
			exec: &mockExecutor{
				availableBins: map[string]bool{"google-chrome": true},
				workingBins:   map[string]bool{"google-chrome": true},
			},
			getenv: func(key string) string {
				if key == envChromePath {
					return "/nonexistent/chrome"
				}
				return ""
			},
			wantErr: "CHROME_PATH=/nonexistent/chrome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detect(tt.exec, tt.getenv)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("want error containing %q, got %+v", tt.wantErr, got)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", got.Path, tt.wantPath)
			}
		})
	}
}
