package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	icaservice "github.com/hyperlane-xyz/safe-ica/ica-service"
)

const (
	LevelFlagName  = "log.level"
	FormatFlagName = "log.format"
	ColorFlagName  = "log.color"
)

type FormatType string

const (
	FormatTerminal FormatType = "terminal"
	FormatLogFmt   FormatType = "logfmt"
	FormatJSON     FormatType = "json"
)

func (f FormatType) String() string {
	return string(f)
}

// LevelFlagValue is a cli.Generic holding a log level.
type LevelFlagValue slog.Level

func (l *LevelFlagValue) Set(value string) error {
	lvl, err := ParseLevel(value)
	if err != nil {
		return err
	}
	*l = LevelFlagValue(lvl)
	return nil
}

func (l LevelFlagValue) String() string {
	switch slog.Level(l) {
	case log.LevelTrace:
		return "trace"
	case log.LevelDebug:
		return "debug"
	case log.LevelInfo:
		return "info"
	case log.LevelWarn:
		return "warn"
	case log.LevelError:
		return "error"
	case log.LevelCrit:
		return "crit"
	default:
		return slog.Level(l).String()
	}
}

// FormatFlagValue is a cli.Generic holding a log format.
type FormatFlagValue FormatType

func (f *FormatFlagValue) Set(value string) error {
	switch FormatType(value) {
	case FormatTerminal, FormatLogFmt, FormatJSON:
		*f = FormatFlagValue(value)
		return nil
	default:
		return fmt.Errorf("unrecognized log format: %q", value)
	}
}

func (f FormatFlagValue) String() string {
	return string(f)
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	default:
		return 0, fmt.Errorf("unrecognized log level: %q", s)
	}
}

func CLIFlags(envPrefix string) []cli.Flag {
	defaultLevel := LevelFlagValue(log.LevelInfo)
	defaultFormat := FormatFlagValue(FormatTerminal)
	return []cli.Flag{
		&cli.GenericFlag{
			Name:    LevelFlagName,
			Usage:   "The lowest log level that will be output",
			Value:   &defaultLevel,
			EnvVars: icaservice.PrefixEnvVar(envPrefix, "LOG_LEVEL"),
		},
		&cli.GenericFlag{
			Name:    FormatFlagName,
			Usage:   "Format the log output. Supported formats: 'terminal', 'logfmt', 'json'",
			Value:   &defaultFormat,
			EnvVars: icaservice.PrefixEnvVar(envPrefix, "LOG_FORMAT"),
		},
		&cli.BoolFlag{
			Name:    ColorFlagName,
			Usage:   "Color the log output if in terminal mode",
			Value:   isatty.IsTerminal(os.Stdout.Fd()),
			EnvVars: icaservice.PrefixEnvVar(envPrefix, "LOG_COLOR"),
		},
	}
}

type CLIConfig struct {
	Level  slog.Level
	Color  bool
	Format FormatType
}

func DefaultCLIConfig() CLIConfig {
	return CLIConfig{
		Level:  log.LevelInfo,
		Color:  isatty.IsTerminal(os.Stdout.Fd()),
		Format: FormatTerminal,
	}
}

func ReadCLIConfig(ctx *cli.Context) CLIConfig {
	cfg := DefaultCLIConfig()
	if lvl, ok := ctx.Generic(LevelFlagName).(*LevelFlagValue); ok {
		cfg.Level = slog.Level(*lvl)
	}
	if format, ok := ctx.Generic(FormatFlagName).(*FormatFlagValue); ok {
		cfg.Format = FormatType(*format)
	}
	if ctx.IsSet(ColorFlagName) {
		cfg.Color = ctx.Bool(ColorFlagName)
	}
	return cfg
}

// NewHandler builds the slog handler described by cfg.
func NewHandler(w io.Writer, cfg CLIConfig) slog.Handler {
	switch cfg.Format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level})
	case FormatLogFmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level})
	default:
		return log.NewTerminalHandlerWithLevel(w, cfg.Level, cfg.Color && cfg.Format == FormatTerminal)
	}
}

// NewLogger returns a logger and installs it as the root logger.
func NewLogger(w io.Writer, cfg CLIConfig) log.Logger {
	logger := log.NewLogger(NewHandler(w, cfg))
	log.SetDefault(logger)
	return logger
}

// SetupDefaults installs a terminal logger before flags are parsed.
func SetupDefaults() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, isatty.IsTerminal(os.Stderr.Fd()))))
}
