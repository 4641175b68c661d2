package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BlueprintPath string // hcl blueprint file or directory
	ModulesPath   string // generator manifests + templates

	OutputDir     string // materialize the project here
	ArchivePath   string // optional zip archive target
	ExportDotPath string // optional graph export, no execution

	LogFormat   string
	LogLevel    string
	WorkerCount int
	NodeTimeout time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.BlueprintPath == "" {
		return nil, errors.New("BlueprintPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" && cfg.ArchivePath == "" && cfg.ExportDotPath == "" {
		return nil, errors.New("at least one of OutputDir, ArchivePath, or ExportDotPath must be set")
	}

	return &cfg, nil
}
