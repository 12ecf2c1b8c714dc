package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lambda holds the environment injected by the stack into the workout
// handler function.
type Lambda struct {
	DataBucket string
	TopicARN   string
}

// LoadLambda reads the function environment. The topic ARN is
// optional: without it the handler runs with notifications disabled.
func LoadLambda() (Lambda, error) {
	cfg := Lambda{
		DataBucket: env("DATA_BUCKET_NAME", ""),
		TopicARN:   env("SNS_TOPIC_ARN", ""),
	}
	if cfg.DataBucket == "" {
		return Lambda{}, errors.New("missing DATA_BUCKET_NAME")
	}
	return cfg, nil
}

// Server configures the local development server.
type Server struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"dataDir"`
}

// LoadServer reads the dev server config from the environment, with an
// optional YAML file (FITLOG_CONFIG) taking precedence.
func LoadServer() (Server, error) {
	cfg := Server{
		Addr:    env("FITLOG_ADDR", ":8087"),
		DataDir: env("FITLOG_DATA_DIR", "data/workouts"),
	}

	if path := env("FITLOG_CONFIG", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Server{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var file Server
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Server{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if file.Addr != "" {
			cfg.Addr = file.Addr
		}
		if file.DataDir != "" {
			cfg.DataDir = file.DataDir
		}
	}

	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
