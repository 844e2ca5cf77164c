package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tradescope/internal/app"
	tscfg "tradescope/internal/config"
	"tradescope/internal/logger"
)

func main() {
	ctx := context.Background()
	cfgPath := os.Getenv("TRADESCOPE_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}
	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("initializing log file failed: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)
	logger.Infof("✓ config loaded (env=%s, store=%s)", cfg.App.Env, cfg.Store.Path)

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("initializing app failed: %v", err)
	}
	if err := application.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

// loadConfig falls back to built-in defaults when the default config
// file is absent, so the binary runs with zero setup.
func loadConfig(path string) (*tscfg.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && os.Getenv("TRADESCOPE_CONFIG") == "" {
		return tscfg.Default(), nil
	}
	return tscfg.Load(path)
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
