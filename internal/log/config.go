package log

import (
	"fmt"
	"log/slog"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) slogLevel() (slog.Level, error) {
	switch l {
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo, "":
		return slog.LevelInfo, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level '%s'", l)
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config selects the level and encoding of the process logger. Service, when
// set, is attached to every record.
type Config struct {
	Level   Level  `mapstructure:"level"`
	Format  Format `mapstructure:"format"`
	Service string `mapstructure:"service"`
}

func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Format:  FormatText,
		Service: "cloud-api",
	}
}
