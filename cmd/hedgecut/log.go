package main

import (
	"log/slog"
	"os"
)

func (rc *rootCmdConfig) logger() *slog.Logger {
	level := slog.LevelInfo
	if rc.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
