// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/taxon/taxon/internal/issue"
	"github.com/taxon/taxon/internal/testutil"
	"github.com/taxon/taxon/pkg/cueutil"
	"github.com/taxon/taxon/pkg/types"
)

// loadFromDir loads configuration with dir as the config directory.
func loadFromDir(t *testing.T, dir string) (*Config, string, error) {
	t.Helper()
	return loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.DataDir != "data" {
		t.Errorf("expected default data dir to be data, got %s", cfg.DataDir)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("expected default output dir to be dist, got %s", cfg.OutputDir)
	}
	if cfg.Version != DefaultVersion {
		t.Errorf("expected default version %q, got %q", DefaultVersion, cfg.Version)
	}
	if want := []OutputFormat{FormatJSON, FormatText, FormatMarkdown}; !slices.Equal(cfg.Formats, want) {
		t.Errorf("expected default formats %v, got %v", want, cfg.Formats)
	}
	if !cfg.Sort.OtherLast {
		t.Error("expected other_last to be true by default")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("expected default log level to be info, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must be valid, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG lookup does not apply on Windows")
	}

	testXDGPath := filepath.Join(t.TempDir(), "xdg")
	t.Cleanup(testutil.SetConfigHome(t, testXDGPath))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if expected := filepath.Join(testXDGPath, AppName); dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() returned error: %v", err)
	}
	if expected := filepath.Join(testXDGPath, AppName, "config.cue"); path != expected {
		t.Errorf("ConfigFilePath() = %s, want %s", path, expected)
	}
}

func TestConfigDir_Override(t *testing.T) {
	override := t.TempDir()
	SetConfigDirOverride(override)
	t.Cleanup(Reset)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != override {
		t.Errorf("ConfigDir() = %s, want %s", dir, override)
	}

	Reset()
	if dir, _ := ConfigDir(); dir == override {
		t.Error("Reset() should clear the override")
	}
}

func TestConfigDir_HomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("~/.config fallback is Linux only")
	}

	home := t.TempDir()
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))
	t.Cleanup(testutil.MustSetenv(t, "HOME", home))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if expected := filepath.Join(home, ".config", AppName); dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestLoad_WorkingDirectoryFallback(t *testing.T) {
	work := t.TempDir()
	local := testutil.WriteFile(t, work, "config.cue", "version: \"local\"\n")
	t.Cleanup(testutil.MustChdir(t, work))

	cfg, path, err := loadFromDir(t, t.TempDir())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Version != "local" {
		t.Errorf("Version = %q, want local", cfg.Version)
	}
	if filepath.Base(path) != filepath.Base(local) {
		t.Errorf("resolved path = %q, want the working directory config.cue", path)
	}

	// The user config directory wins over the working directory.
	cfgDir := t.TempDir()
	testutil.WriteFile(t, cfgDir, "config.cue", "version: \"user\"\n")
	cfg, _, err = loadFromDir(t, cfgDir)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Version != "user" {
		t.Errorf("Version = %q, want user", cfg.Version)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, path, err := loadFromDir(t, t.TempDir())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config file, got %q", path)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := testutil.WriteFile(t, dir, "config.cue", `
version: "2025-01"
formats: ["json"]
sort: other_last: false
ui: {
	verbose:      true
	color_scheme: "dark"
}
`)

	cfg, path, err := loadFromDir(t, dir)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if path != cfgPath {
		t.Errorf("resolved path = %q, want %q", path, cfgPath)
	}

	if cfg.Version != "2025-01" {
		t.Errorf("Version = %q, want 2025-01", cfg.Version)
	}
	if !slices.Equal(cfg.Formats, []OutputFormat{FormatJSON}) {
		t.Errorf("Formats = %v, want [json]", cfg.Formats)
	}
	if cfg.Sort.OtherLast {
		t.Error("other_last should be overridden to false")
	}
	if !cfg.UI.Verbose || cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("UI = %+v, want verbose dark", cfg.UI)
	}
	// Fields absent from the file keep their defaults.
	if cfg.DataDir != "data" || cfg.Log.Level != LogLevelInfo {
		t.Errorf("defaults lost: data_dir=%q log.level=%q", cfg.DataDir, cfg.Log.Level)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	dir := t.TempDir()
	custom := testutil.WriteFile(t, dir, "custom/taxon.cue", "data_dir: \"/srv/taxonomy\"\n")

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(custom),
		// The directory lookup must be ignored when an explicit file is given.
		ConfigDirPath: types.FilesystemPath(dir),
	})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if path != custom {
		t.Errorf("resolved path = %q, want %q", path, custom)
	}
	if cfg.DataDir != "/srv/taxonomy" {
		t.Errorf("DataDir = %q, want /srv/taxonomy", cfg.DataDir)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.cue")

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(missing)})
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Errorf("expected ErrConfigFileNotFound, got %v", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown format", `formats: ["pdf"]`, "formats"},
		{"unknown field", `colour: "red"`, "colour"},
		{"wrong type", `ui: verbose: "yes"`, "ui.verbose"},
		{"blank data dir", `data_dir: "  "`, "data_dir"},
		{"bad color scheme", `ui: color_scheme: "neon"`, "ui.color_scheme"},
		{"syntax error", `version: "2025`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteFile(t, dir, "config.cue", tt.content+"\n")

			_, _, err := loadFromDir(t, dir)
			if err == nil {
				t.Fatal("expected schema error")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
			}
			if ae.Operation != "load configuration" {
				t.Errorf("Operation = %q", ae.Operation)
			}
			var ve *cueutil.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *cueutil.ValidationError in chain, got %v", err)
			}
			if !strings.Contains(ve.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", ve.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "config.cue", "version: \"from-file\"\n")

	t.Setenv("TAXON_VERSION", "from-env")
	t.Setenv("TAXON_UI_VERBOSE", "true")
	t.Setenv("TAXON_SORT_OTHER_LAST", "false")
	t.Setenv("TAXON_FORMATS", "txt,md")

	cfg, _, err := loadFromDir(t, dir)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Version != "from-env" {
		t.Errorf("Version = %q, environment should win over the file", cfg.Version)
	}
	if !cfg.UI.Verbose {
		t.Error("TAXON_UI_VERBOSE should enable verbose")
	}
	if cfg.Sort.OtherLast {
		t.Error("TAXON_SORT_OTHER_LAST should disable other_last")
	}
	if want := []OutputFormat{FormatText, FormatMarkdown}; !slices.Equal(cfg.Formats, want) {
		t.Errorf("Formats = %v, want %v", cfg.Formats, want)
	}
}

func TestLoad_InvalidEnvironmentValue(t *testing.T) {
	t.Setenv("TAXON_LOG_LEVEL", "loud")

	_, _, err := loadFromDir(t, t.TempDir())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "taxon")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if !created {
		t.Error("expected the file to be created")
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	// The generated file loads back to the defaults.
	cfg, _, err := loadFromDir(t, dir)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("generated config = %+v, want defaults", cfg)
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte("version: \"mine\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, created, err := CreateDefaultConfig(); err != nil || created {
		t.Errorf("CreateDefaultConfig() on existing file = created %v, err %v", created, err)
	}
	if got := testutil.MustReadFile(t, path); got != "version: \"mine\"\n" {
		t.Errorf("existing file was overwritten: %q", got)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	want := &Config{
		DataDir:   "/srv/data",
		OutputDir: "out",
		Version:   "2025-02",
		Formats:   []OutputFormat{FormatMarkdown},
		Sort:      SortConfig{OtherLast: false},
		UI:        UIConfig{ColorScheme: ColorSchemeLight, Verbose: true},
		Log:       LogConfig{Level: LogLevelDebug},
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	got, _, err := loadFromDir(t, dir)
	if err != nil {
		t.Fatalf("saved config does not load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestGenerateCUE_ValidatesAgainstSchema(t *testing.T) {
	t.Parallel()

	src := GenerateCUE(DefaultConfig())
	if _, err := cueutil.ParseAndDecode[map[string]any](configSchema, []byte(src), "#Config"); err != nil {
		t.Errorf("generated CUE does not validate: %v\n%s", err, src)
	}
	for _, field := range []string{"data_dir", "output_dir", "version", "formats", "other_last", "color_scheme", "verbose", "level"} {
		if !strings.Contains(src, field+":") {
			t.Errorf("generated CUE is missing %s", field)
		}
	}
}
