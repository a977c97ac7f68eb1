// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup applies the level and output to the standard logrus logger.
// When dir is set, entries are also written to a rotating file <dir>/<name>.log.
// The returned closer flushes the rotating file; it is a no-op without dir.
func Setup(level, dir, name string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if dir == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name+".log"),
		MaxSize:    5,
		MaxBackups: 5,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	log.WithFields(log.Fields{"path": rotating.Filename, "level": lvl.String()}).Info("Logging - writing to rotating file")
	return rotating, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
