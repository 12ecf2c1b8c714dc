package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLambdaRequiresDataBucket(t *testing.T) {
	t.Setenv("DATA_BUCKET_NAME", "")
	t.Setenv("SNS_TOPIC_ARN", "")
	if _, err := LoadLambda(); err == nil {
		t.Fatalf("expected error without DATA_BUCKET_NAME")
	}
}

func TestLoadLambdaTopicIsOptional(t *testing.T) {
	t.Setenv("DATA_BUCKET_NAME", "fitlog-data")
	t.Setenv("SNS_TOPIC_ARN", "")
	cfg, err := LoadLambda()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataBucket != "fitlog-data" || cfg.TopicARN != "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("FITLOG_ADDR", "")
	t.Setenv("FITLOG_DATA_DIR", "")
	t.Setenv("FITLOG_CONFIG", "")
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8087" || cfg.DataDir != "data/workouts" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadServerYAMLOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitlog.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9000\"\ndataDir: /tmp/workouts\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FITLOG_ADDR", ":8087")
	t.Setenv("FITLOG_CONFIG", path)

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.DataDir != "/tmp/workouts" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadServerMissingConfigFileFails(t *testing.T) {
	t.Setenv("FITLOG_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadServer(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
