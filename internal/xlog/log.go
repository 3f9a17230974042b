// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package xlog provides the small structured-logging seam both decoders
// accept through their Options. It mirrors the Helper/Filter/Level shape
// the upstream saferwall/pe package takes from github.com/saferwall/pe/log,
// reimplemented here since that subpackage was not part of the retrieval
// pack this module was built from.
package xlog

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Level is a logging severity.
type Level int

// Severity levels, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every component writes through.
type Logger interface {
	Log(level Level, msg string)
}

// stdLogger writes to an io.Writer via the standard library logger.
type stdLogger struct {
	mu  sync.Mutex
	std *log.Logger
}

// NewStdLogger builds a Logger that writes timestamped lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{std: log.New(w, "", log.LstdFlags)}
}

func (l *stdLogger) Log(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.std.Printf("[%s] %s", level, msg)
}

// FilterOption configures a filtering Logger.
type FilterOption func(*filter)

// FilterLevel drops any record below the given level.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.level = level }
}

type filter struct {
	next  Logger
	level Level
}

// NewFilter wraps next with a minimum-severity gate.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, level: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, msg string) {
	if level < f.level {
		return
	}
	f.next.Log(level, msg)
}

// Helper is the call-site-friendly wrapper components reach for, parallel
// to saferwall/pe's log.Helper usage in file.go.
type Helper struct {
	logger Logger
}

// NewHelper wraps a Logger with printf-style convenience methods.
func NewHelper(logger Logger) *Helper {
	if logger == nil {
		logger = NewFilter(NewStdLogger(io.Discard), FilterLevel(LevelError))
	}
	return &Helper{logger: logger}
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...any) { h.logger.Log(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...any) { h.logger.Log(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...any) { h.logger.Log(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...any) { h.logger.Log(LevelError, fmt.Sprintf(format, args...)) }
