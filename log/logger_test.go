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

package log_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/escrow-sdk-go/log"
)

func Test_NewLogger(t *testing.T) {
	t.Run("happy_stdout", func(t *testing.T) {
		l, err := log.NewLogger("debug", "")
		require.NoError(t, err)
		assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	})

	t.Run("happy_file", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "sdk.log")
		l, err := log.NewLogger("info", logFile)
		require.NoError(t, err)
		l.Info("deployed")

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "▶ ")
		assert.Contains(t, string(content), "deployed")
	})

	t.Run("err_unsupported_level", func(t *testing.T) {
		_, err := log.NewLogger("trace", "")
		assert.Error(t, err)
	})

	t.Run("err_invalid_file", func(t *testing.T) {
		_, err := log.NewLogger("info", filepath.Join(t.TempDir(), "missing", "sdk.log"))
		assert.Error(t, err)
	})
}

func Test_NewLoggerWithField(t *testing.T) {
	require.NoError(t, log.InitLogger("debug", ""))
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stdout)

	l := log.NewLoggerWithField("escrow", "0xabc")
	l.Debug("received request")
	assert.Contains(t, buf.String(), "escrow=0xabc")
	assert.Contains(t, buf.String(), "received request")
}
