package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitbox/internal/analysis"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/spf13/cobra"
)

func runCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd, _, err := newRootCmd().Find([]string{"run"})
	if err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cmd := runCommand(t)
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != config.DefaultScene || cfg.Dt != config.DefaultDt || cfg.G != config.DefaultG {
		t.Errorf("got %+v", cfg)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	cmd := runCommand(t)
	preset = "solar"

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "solar" || cfg.Dt != 0.002 {
		t.Errorf("preset not applied: %+v", cfg)
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("scene: cluster\ndt: 0.02\n"), 0644); err != nil {
		t.Fatal(err)
	}
	configFile = path
	cfg, err = resolveConfig(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "cluster" || cfg.Dt != 0.02 {
		t.Errorf("config did not override preset: %+v", cfg)
	}

	if err := cmd.Flags().Set("dt", "0.005"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("every", "3"); err != nil {
		t.Fatal(err)
	}
	cfg, err = resolveConfig(cmd, []string{"headon"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "headon" || cfg.Dt != 0.005 || cfg.SampleEvery != 3 {
		t.Errorf("flags did not override config: %+v", cfg)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	cmd := runCommand(t)
	preset = "nope"
	if _, err := resolveConfig(cmd, nil); err == nil {
		t.Error("unknown preset accepted")
	}

	cmd = runCommand(t)
	if err := cmd.Flags().Set("dt", "-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, nil); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestParsePlane(t *testing.T) {
	tests := []struct {
		in   string
		want analysis.Plane
		ok   bool
	}{
		{"xy", analysis.PlaneXY, true},
		{"xz", analysis.PlaneXZ, true},
		{"yz", analysis.PlaneYZ, true},
		{"zz", 0, false},
	}
	for _, tt := range tests {
		got, err := parsePlane(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("parsePlane(%q) = %v, %v", tt.in, got, err)
		}
	}
}
