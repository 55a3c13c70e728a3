package common

import (
	"fmt"
	"github.com/charmbracelet/log"
	"github.com/lni/dragonboat/v4/logger"
	"os"
	"strings"
	"sync"
)

// LoggerNames lists every package logger of the archive. InitLoggers applies the
// configured level to each of them.
var LoggerNames = []string{"rpc", "server", "client", "transport", "pool", "store"}

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// archiveLogger implements the ILogger interface on top of a charm logger
type archiveLogger struct {
	logger *log.Logger
}

func (l *archiveLogger) SetLevel(level logger.LogLevel) {
	l.logger.SetLevel(toCharmLevel(level))
}

func (l *archiveLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

func (l *archiveLogger) Infof(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

func (l *archiveLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

func (l *archiveLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

func (l *archiveLogger) Panicf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Error(message)
	panic(message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// factoryOnce guards the global factory, it is installed at most once per process
var factoryOnce sync.Once

// CreateLogger implements the dragonboat logger.Factory.
// Logs go to stderr so they never mix with client output on stdout.
func CreateLogger(pkgName string) logger.ILogger {
	return &archiveLogger{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix:          fmt.Sprintf("%-9s", pkgName),
			ReportTimestamp: true,
			TimeFormat:      "2006/01/02 15:04:05",
			Formatter:       log.TextFormatter,
			Level:           log.InfoLevel,
		}),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG, nil
	case "info", "":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// toCharmLevel maps a dragonboat level onto the charm logger levels
func toCharmLevel(level logger.LogLevel) log.Level {
	switch {
	case level >= logger.DEBUG:
		return log.DebugLevel
	case level >= logger.INFO:
		return log.InfoLevel
	case level >= logger.WARNING:
		return log.WarnLevel
	case level >= logger.ERROR:
		return log.ErrorLevel
	default:
		return log.FatalLevel
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the custom logger factory and applies the level to all package loggers
func InitLoggers(level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	// Set as the global logger factory
	factoryOnce.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})

	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(lvl)
	}
	return nil
}
