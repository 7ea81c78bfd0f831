// Package log is the process-wide logrus logger with package level helpers.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Level logrus.Level

const (
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.Formatter = &logrus.TextFormatter{
		DisableLevelTruncation: true,
		PadLevelText:           true,
		TimestampFormat:        "2006/01/02 15:04:05",
		FullTimestamp:          true,
	}
}

func SetLevel(level Level) {
	Logger.SetLevel(logrus.Level(level))
}

// SetOutput redirects all log output, mostly useful in tests.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func Log(level Level, args ...any) {
	Logger.Logln(logrus.Level(level), args...)
}

func Debugf(fmt string, args ...any) {
	Logger.Debugf(fmt, args...)
}
func Debug(args ...any) {
	Logger.Debugln(args...)
}

func Info(args ...any) {
	Logger.Infoln(args...)
}

func Error(args ...any) {
	Logger.Errorln(args...)
}

func Fatal(args ...any) {
	Logger.Fatalln(args...)
}
