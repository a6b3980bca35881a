package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"infocanvas/internal/document"
	"infocanvas/internal/logx"
	"infocanvas/internal/raster"
)

const configFileName = ".infocanvas.toml"

type Config struct {
	SaveDirectory  string  `toml:"save_directory"`
	CanvasWidth    float64 `toml:"canvas_width"`
	CanvasHeight   float64 `toml:"canvas_height"`
	Background     string  `toml:"background"`
	ExportFormat   string  `toml:"export_format"`
	ExportScale    float64 `toml:"export_scale"`
	ExportQuality  float64 `toml:"export_quality"`
	HistoryLimit   int     `toml:"history_limit"`
	SaveThumbnails bool    `toml:"save_thumbnails"`
	LogFile        string  `toml:"log_file"`
	LogLevel       string  `toml:"log_level"`
	Confirmations  bool    `toml:"confirmations"`
}

func defaultConfig() *Config {
	return &Config{
		CanvasWidth:   document.DefaultCanvasWidth,
		CanvasHeight:  document.DefaultCanvasHeight,
		Background:    document.DefaultBackground,
		ExportFormat:  string(raster.FormatPNG),
		ExportScale:   1,
		ExportQuality: raster.DefaultQuality,
		HistoryLimit:  document.DefaultHistoryLimit,
		LogLevel:      "info",
		Confirmations: true,
	}
}

// loadConfig reads ~/.infocanvas.toml over the defaults. A missing or
// unreadable file leaves the defaults in place.
func loadConfig() *Config {
	config := defaultConfig()
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}
	if err := config.loadFile(filepath.Join(homeDir, configFileName)); err != nil {
		fmt.Fprintf(os.Stderr, "infocanvas: ignoring config: %v\n", err)
		return defaultConfig()
	}
	return config
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logx.Logger().Warn("unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
	}
	c.SaveDirectory = expandPath(c.SaveDirectory)
	c.LogFile = expandPath(c.LogFile)
	return c.validate()
}

func (c *Config) validate() error {
	if _, err := raster.ParseFormat(c.ExportFormat); err != nil {
		return err
	}
	if c.CanvasWidth < 1 || c.CanvasHeight < 1 {
		return fmt.Errorf("canvas size %gx%g is too small", c.CanvasWidth, c.CanvasHeight)
	}
	if c.ExportScale <= 0 || c.ExportScale > raster.MaxScale {
		return fmt.Errorf("export_scale %g out of range (0, %d]", c.ExportScale, raster.MaxScale)
	}
	if c.ExportQuality < 0 || c.ExportQuality > 1 {
		return fmt.Errorf("export_quality %g out of range [0, 1]", c.ExportQuality)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

func (c *Config) exportOptions(format raster.Format) raster.Options {
	return raster.Options{Format: format, Quality: c.ExportQuality, Scale: c.ExportScale}
}

func (c *Config) newStore() *document.Store {
	return document.New(
		document.WithCanvasSize(c.CanvasWidth, c.CanvasHeight),
		document.WithBackground(c.Background),
		document.WithHistoryLimit(c.HistoryLimit),
	)
}

// setupLogging sends logs to the configured file. The terminal belongs to
// the UI, so without a log file nothing is logged.
func setupLogging(c *Config) (func(), error) {
	if c.LogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return func() {}, err
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		lvl = slog.LevelInfo
	}
	logx.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})))
	return func() {
		logx.SetLogger(nil)
		f.Close()
	}, nil
}
