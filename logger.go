package sqlkit

import (
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var globalLogger atomic.Pointer[logrus.Logger]

func init() {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	globalLogger.Store(l)
}

// Logger returns the package logger used when a render has no logger of its own.
func Logger() *logrus.Logger {
	return globalLogger.Load()
}

func SetLogger(l *logrus.Logger) {
	if l == nil {
		return
	}
	globalLogger.Store(l)
}

// LogToFile switches the package logger to rotated JSON files.
func LogToFile(filename string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100, // MB
		MaxBackups: 7,
		MaxAge:     30, // days
		Compress:   true,
	})
	SetLogger(l)
	return l
}
