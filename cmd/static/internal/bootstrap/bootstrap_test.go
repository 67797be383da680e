package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildModuleEnablesGenerator(t *testing.T) {
	resources, err := BuildModule(Options{Environ: []string{}})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module == nil {
		t.Fatal("expected module to be initialised")
	}
	container := resources.Module.Container()
	if container.GeneratorService() == nil {
		t.Fatal("expected generator service to be configured")
	}
	if resources.Logger == nil {
		t.Fatal("expected watch logger")
	}
}

func TestBuildModuleVerboseForcesDebug(t *testing.T) {
	resources, err := BuildModule(Options{Verbose: true, Environ: []string{}})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Config.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", resources.Config.Logging.Level)
	}
}

func TestBuildModuleAppliesConfigFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	content := "site:\n  domain: https://example.com\ngenerator:\n  output_dir: public\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	resources, err := BuildModule(Options{
		ConfigPath: path,
		Environ:    []string{"SEOGEN_GENERATOR_OUTPUT_DIR=" + filepath.Join(dir, "out")},
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Config.Site.Domain != "https://example.com" {
		t.Fatalf("expected domain from file, got %q", resources.Config.Site.Domain)
	}
	if resources.Config.Generator.OutputDir != filepath.Join(dir, "out") {
		t.Fatalf("expected environment override, got %q", resources.Config.Generator.OutputDir)
	}
}

func TestBuildModuleRejectsMissingConfigFile(t *testing.T) {
	if _, err := BuildModule(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
