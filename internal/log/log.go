package log

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/lmittmann/tint"
)

var (
	logFile *os.File
	logger  = slog.New(slog.DiscardHandler)
)

// Setup opens the state log file. Errors and info are always recorded;
// debug output only when debug is set.
func Setup(debug bool) error {
	if logFile != nil {
		return nil
	}
	logPath, err := xdg.StateFile("mailflow/mailflow.log")
	if err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	logFile = f
	SetLogger(slog.New(newHandler(f, debug)))
	return nil
}

func newHandler(f *os.File, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    true,
	})
}

func Close() error {
	if logFile == nil {
		return nil
	}
	defer func() {
		logFile = nil
		logger = slog.New(slog.DiscardHandler)
	}()
	return logFile.Close()
}

// SetLogger replaces the package logger. A nil logger discards everything.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}

func Printf(format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...))
}

func Infof(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
}
