package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"moodchart/internal/structures"
)

const LogFileName = "moodchart.log"

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeStorage
	TypeBackup
	TypeCrypto
	TypeStats
)

func (t TypeEnum) String() string {
	switch t {
	case TypeStorage:
		return "storage"
	case TypeBackup:
		return "backup"
	case TypeCrypto:
		return "crypto"
	case TypeStats:
		return "stats"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	logger zerolog.Logger
	file   *os.File
}

func (l *LogProvider) event(e *zerolog.Event, t TypeEnum, format string, args ...interface{}) {
	e.Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Error(), t, format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Warn(), t, format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Debug(), t, format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.Info(), t, format, args...)
}

// Fatalf logs at fatal level without exiting; the core never terminates the process.
func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.event(l.logger.WithLevel(zerolog.FatalLevel), t, format, args...)
}

func (l *LogProvider) Close() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	if err := os.MkdirAll(conf.Logger.Dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	path := filepath.Join(conf.Logger.Dir, LogFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	var out io.Writer = file
	if conf.Debug {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Str("app", conf.AppName).Logger()
	return &LogProvider{logger: logger, file: file}, nil
}
