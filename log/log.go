// Package log provides the application loggers. The exported *log.Logger
// values keep call sites short (log.ErrorLog.Printf) while the records are
// written as JSON lines by zap into a rotating file in the temp directory.
package log

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

var (
	WarningLog *stdlog.Logger
	InfoLog    *stdlog.Logger
	ErrorLog   *stdlog.Logger

	base   = zap.NewNop()
	writer *lj.Logger
)

var logFileName = filepath.Join(os.TempDir(), "tgsheet.log")

func init() {
	bindStdLoggers(base)
}

// Initialize opens the log file and routes every logger to it. Call Close
// before the program exits.
func Initialize(verbose bool) {
	writer = &lj.Logger{
		Filename:   logFileName,
		MaxBackups: 3,
		MaxSize:    1, // megabytes
		MaxAge:     7, // days
	}

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(writer),
		level,
	)
	base = zap.New(core, zap.AddCaller())
	bindStdLoggers(base)
	InitDebug()
}

func bindStdLoggers(lg *zap.Logger) {
	InfoLog = stdLogger(lg, zapcore.InfoLevel)
	WarningLog = stdLogger(lg, zapcore.WarnLevel)
	ErrorLog = stdLogger(lg, zapcore.ErrorLevel)
}

func stdLogger(lg *zap.Logger, level zapcore.Level) *stdlog.Logger {
	l, err := zap.NewStdLogAt(lg, level)
	if err != nil {
		return zap.NewStdLog(lg)
	}
	return l
}

// Zap returns the structured logger, for libraries that take one.
func Zap() *zap.Logger {
	return base
}

// Named returns a child of the structured logger.
func Named(name string) *zap.Logger {
	return base.Named(name)
}

// Close flushes and closes the log file.
func Close() {
	CloseDebug()
	_ = base.Sync()
	if writer != nil {
		_ = writer.Close()
		fmt.Println("wrote logs to " + logFileName)
	}
}
