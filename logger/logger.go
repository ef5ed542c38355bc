/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides levelled logging for the aggregation engine.
// Components receive a Logger explicitly; the package level functions write
// to a replaceable process-wide default.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

// Level defines log levels
type Level int32

const (
	// DEBUG displays per-segment and per-cache-lookup detail
	DEBUG Level = iota
	// INFO displays query level information
	INFO
	// WARN displays recoverable problems
	WARN
	// ERROR only displays failures
	ERROR
	// OFF disables logging
	OFF
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a configured level name such as "info" into a Level.
// An empty name yields INFO.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "OFF", "NONE":
		return OFF, nil
	}
	return INFO, errors.Newf("unknown log level %q", name)
}

// Logger interface defines basic methods for logging
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
	// With returns a logger sharing the output and level whose lines are
	// tagged with the given component name.
	With(component string) Logger
}

type levelRef struct {
	v atomic.Int32
}

type defaultLogger struct {
	level     *levelRef
	component string
	logger    *log.Logger
}

// NewLogger creates a logger writing lines of the form
//
//	[2006-01-02 15:04:05.000] [INFO] [component] message
//
// to output.
func NewLogger(level Level, output io.Writer) Logger {
	ref := &levelRef{}
	ref.v.Store(int32(level))
	return &defaultLogger{
		level:  ref,
		logger: log.New(output, "", 0),
	}
}

func (l *defaultLogger) enabled(level Level) bool {
	cur := Level(l.level.v.Load())
	return cur != OFF && cur <= level
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if l.enabled(DEBUG) {
		l.log(DEBUG, format, args...)
	}
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	if l.enabled(INFO) {
		l.log(INFO, format, args...)
	}
}

func (l *defaultLogger) Warn(format string, args ...interface{}) {
	if l.enabled(WARN) {
		l.log(WARN, format, args...)
	}
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.log(ERROR, format, args...)
	}
}

// SetLevel applies to every logger derived through With.
func (l *defaultLogger) SetLevel(level Level) {
	l.level.v.Store(int32(level))
}

func (l *defaultLogger) With(component string) Logger {
	if l.component != "" {
		component = l.component + "." + component
	}
	return &defaultLogger{level: l.level, component: component, logger: l.logger}
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	if l.component != "" {
		l.logger.Printf("[%s] [%s] [%s] %s", timestamp, level, l.component, message)
		return
	}
	l.logger.Printf("[%s] [%s] %s", timestamp, level, message)
}

type discardLogger struct{}

// NewDiscardLogger creates a logger that discards all logs
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(format string, args ...interface{}) {}
func (discardLogger) Info(format string, args ...interface{})  {}
func (discardLogger) Warn(format string, args ...interface{})  {}
func (discardLogger) Error(format string, args ...interface{}) {}
func (discardLogger) SetLevel(level Level)                     {}
func (d discardLogger) With(component string) Logger           { return d }

var defaultInstance atomic.Value

func init() {
	defaultInstance.Store(holder{NewLogger(INFO, os.Stdout)})
}

// holder keeps the stored concrete type stable for atomic.Value.
type holder struct{ Logger }

// SetDefault sets the global default logger
func SetDefault(logger Logger) {
	defaultInstance.Store(holder{logger})
}

// GetDefault gets the global default logger
func GetDefault() Logger {
	return defaultInstance.Load().(holder).Logger
}

// Debug uses the default logger to record debug information
func Debug(format string, args ...interface{}) {
	GetDefault().Debug(format, args...)
}

// Info uses the default logger to record information
func Info(format string, args ...interface{}) {
	GetDefault().Info(format, args...)
}

// Warn uses the default logger to record warnings
func Warn(format string, args ...interface{}) {
	GetDefault().Warn(format, args...)
}

// Error uses the default logger to record errors
func Error(format string, args ...interface{}) {
	GetDefault().Error(format, args...)
}
