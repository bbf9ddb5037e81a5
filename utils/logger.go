package utils

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger sends logs to stdout and a rotating file, like the service has
// always traced activity to disk.
func InitLogger() {
	logPath := os.Getenv("LOG_PATH")
	if logPath == "" {
		logPath = "logs/app.log"
	}

	fileOutput := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    32, // megabytes
		MaxBackups: 2,
		MaxAge:     28, // days
		Compress:   true,
	}

	logrus.SetOutput(io.MultiWriter(os.Stdout, fileOutput))
	logrus.SetFormatter(&logrus.TextFormatter{
		PadLevelText:    true,
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}
}
