// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/escrow-sdk-go
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides the package level logger used by all the components of the sdk.
//
// The logger should be initialized once using InitLogger. Components then derive their own logger
// using NewLoggerWithField, so that each entry carries the component that produced it.
package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger is the interface used by components for logging. It is satisfied by
// both *logrus.Logger and *logrus.Entry.
type Logger = logrus.FieldLogger

var (
	mtx    sync.Mutex
	logger = newDefaultLogger()
)

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stdout)
	l.SetFormatter(newFormatter())
	return l
}

// InitLogger configures the package level logger with the given level and log file.
// Supported log levels are "debug", "info" and "error".
// Logs to stdout if logFile is an empty string.
func InitLogger(levelStr, logFile string) error {
	l, err := NewLogger(levelStr, logFile)
	if err != nil {
		return err
	}
	mtx.Lock()
	logger = l
	mtx.Unlock()
	return nil
}

// NewLogger returns a new logger set to the given level and log file, without modifying
// the package level logger.
func NewLogger(levelStr, logFile string) (*logrus.Logger, error) {
	if levelStr != "debug" && levelStr != "info" && levelStr != "error" {
		return nil, errors.New("unsupported log level, use debug, info or error")
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var out io.Writer = os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(filepath.Clean(logFile), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
		if err != nil {
			return nil, errors.Wrap(err, "opening log file")
		}
		out = f
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetOutput(out)
	l.SetFormatter(newFormatter())
	return l, nil
}

// NewLoggerWithField returns a logger derived from the package level logger, that
// adds the given key value pair to every entry.
func NewLoggerWithField(key string, value interface{}) Logger {
	mtx.Lock()
	defer mtx.Unlock()
	return logger.WithField(key, value)
}

// SetOutput redirects the output of the package level logger. It is used in tests.
func SetOutput(w io.Writer) {
	mtx.Lock()
	logger.SetOutput(w)
	mtx.Unlock()
}

func newFormatter() logrus.Formatter {
	return &customTextFormatter{logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05 Z0700",
		DisableLevelTruncation: true,
	}}
}

// customTextFormatter is defined to override default formating options for log entry.
type customTextFormatter struct {
	logrus.TextFormatter
}

// Format modifies the default logging format.
func (f *customTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	originalText, err := f.TextFormatter.Format(entry)
	return append([]byte("▶ "), originalText...), err
}
