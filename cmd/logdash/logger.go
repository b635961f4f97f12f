package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"logdash/internal/config"
)

// newLogger writes to out and, when a filename is configured, to a rotating file.
// Unknown levels fall back to info.
func newLogger(cfg config.Log, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.Filename != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("level", cfg.Level).Warn("invalid log level, defaulting to info")
		return log
	}
	log.SetLevel(level)
	return log
}
