// Package main is the entry point for candymon, the metrics feed behind the
// desktop system-monitor widget. It samples the system on a fixed interval
// and writes every snapshot to stdout for the widget to read.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"

	"github.com/silent-IM/private-dots/internal/config"
	"github.com/silent-IM/private-dots/internal/emitter"
	"github.com/silent-IM/private-dots/internal/sampler"
	"github.com/silent-IM/private-dots/internal/scheduler"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath   = flag.String("config", "", "Path to configuration file (default: auto-discover)")
	intervalFlag = flag.Duration("interval", 0, "Sampling interval, e.g. 2s (overrides config)")
	formatFlag   = flag.String("format", "", "Output format: json or text (overrides config)")
	once         = flag.Bool("once", false, "Print a single snapshot and exit")
	writeConfig  = flag.String("write-config", "", "Write the effective configuration to this path and exit")
	showVersion  = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("candymon %s\n", version)
		os.Exit(0)
	}

	cli := config.CLIOverrides{Interval: *intervalFlag, Format: *formatFlag}
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadLayered(cli, embeddedConfig, *configPath)
	} else {
		cfg, err = config.LoadLayered(cli, embeddedConfig)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := writeEffectiveConfig(cfg, *writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Configuration written to %s\n", *writeConfig)
		return
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	out, err := emitter.New(os.Stdout, cfg.Output.Format, logger)
	if err != nil {
		logger.Fatal("Invalid output", zap.Error(err))
	}

	smp := sampler.New(samplerOptions(cfg), logger)

	ctx, cancel := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer cancel()

	if *once {
		runOnce(ctx, cfg, smp, out, logger)
		return
	}

	logger.Info("Starting candymon",
		zap.String("version", version),
		zap.Duration("interval", cfg.Collection.Interval.Duration),
		zap.String("format", cfg.Output.Format))

	sched := scheduler.New(smp, cfg, logger)
	sched.OnSnapshot(out.Handle)
	sched.Start(ctx)

	logger.Info("candymon stopped")
}

// samplerOptions starts from the live-system defaults and applies the
// configured sources and limits.
func samplerOptions(cfg *config.Config) sampler.Options {
	opts := sampler.DefaultOptions()
	if cfg.Sources.ProcRoot != "" {
		opts.Sources.ProcRoot = cfg.Sources.ProcRoot
	}
	if cfg.Sources.SysRoot != "" {
		opts.Sources.SysRoot = cfg.Sources.SysRoot
	}
	if cfg.Collection.TopProcesses > 0 {
		opts.TopProcesses = cfg.Collection.TopProcesses
	}
	opts.HostInfo = cfg.Collection.HostInfo
	return opts
}

// writeEffectiveConfig validates the layered configuration and saves it as a
// starting point for a user config file.
func writeEffectiveConfig(cfg *config.Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return config.WriteConfig(cfg, path)
}

// runOnce takes a baseline sample so CPU usage covers a real interval, then
// emits a single snapshot.
func runOnce(ctx context.Context, cfg *config.Config, smp *sampler.Sampler, out *emitter.Emitter, logger *zap.Logger) {
	baseCtx, cancel := withTimeout(ctx, cfg.Collection.Timeout.Duration)
	smp.Collect(baseCtx)
	cancel()

	select {
	case <-ctx.Done():
		return
	case <-time.After(cfg.Collection.Interval.Duration):
	}

	sampleCtx, cancel := withTimeout(ctx, cfg.Collection.Timeout.Duration)
	defer cancel()
	if err := out.Emit(smp.Sample(sampleCtx)); err != nil {
		logger.Error("Failed to emit snapshot", zap.Error(err))
	}
}

// withTimeout applies timeout to ctx unless it is zero.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// initLogger creates a zap logger based on the configuration.
// Human-readable output goes to stderr because stdout carries snapshots;
// a JSON log file is added when configured.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
