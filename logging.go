package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// logger is replaced by setupLogging; until then output is discarded.
var logger = log.New(io.Discard, "", 0)

type logSession struct {
	Dir        string
	SurfaceLog *log.Logger
	files      []*os.File
}

func (s *logSession) Close() {
	for _, f := range s.files {
		_ = f.Close()
	}
}

func sessionLogName(t time.Time) string {
	return fmt.Sprintf("session_%02d_%02d_%02d---%02d-%02d-%02d.%03d.log",
		t.Day(), int(t.Month()), t.Year()%100, t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// setupLogging writes overlay.log in the data dir on every run. Debug runs
// also get a per-session file under logs/ and a copy on stderr.
func setupLogging(cfg Config, now time.Time) (*logSession, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &logSession{Dir: cfg.DataDir}

	logFile := filepath.Join(cfg.DataDir, "overlay.log")
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		f, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
	}
	s.files = append(s.files, f)
	var w io.Writer = f

	if cfg.Debug {
		s.Dir = filepath.Join(cfg.DataDir, "logs")
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			s.Close()
			return nil, fmt.Errorf("create logs dir: %w", err)
		}
		sessionPath := filepath.Join(s.Dir, sessionLogName(now))
		sf, err := os.OpenFile(sessionPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open session log: %w", err)
		}
		s.files = append(s.files, sf)
		w = io.MultiWriter(f, sf, os.Stderr)
	}

	log.SetOutput(w)
	log.SetFlags(log.LstdFlags)
	logger = log.New(w, "", log.LstdFlags|log.Lmicroseconds)
	s.SurfaceLog = log.New(w, "[SURFACE-LOG] ", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
	logger.Printf("=== %s v%s Started ===", appTitle, appVersion)
	logger.Printf("Log file location: %s", logFile)
	if cfg.Debug {
		logger.Printf("Session log directory: %s", s.Dir)
	}
	return s, nil
}
