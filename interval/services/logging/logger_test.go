/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestPackageName(t *testing.T) {
	assert.Equal(t, "interval.core.rangeproof", packageName("github.com/hyperledger-labs/zk-interval/interval/core/rangeproof.(*Prover).Prove"))
	assert.Equal(t, "interval.core.math", packageName("github.com/hyperledger-labs/zk-interval/interval/core/math.init"))
	assert.Equal(t, "main", packageName("main.main"))
}

func TestLoggerName(t *testing.T) {
	assert.Equal(t, "a.c", loggerName("a", "", "c"))
	assert.Equal(t, "", loggerName())
}

func TestInitSwitchesLevel(t *testing.T) {
	l := MustGetLogger("test")
	defer func() { require.NoError(t, Init(Config{Level: "info"})) }()

	require.NoError(t, Init(Config{Level: "debug", Format: JSONFormat}))
	assert.True(t, l.IsEnabledFor(zapcore.DebugLevel))

	require.NoError(t, Init(Config{Level: "warn"}))
	assert.False(t, l.IsEnabledFor(zapcore.InfoLevel))
	assert.True(t, l.Named("child").IsEnabledFor(zapcore.ErrorLevel))
}

func TestInitRejectsInvalidInput(t *testing.T) {
	err := Init(Config{Level: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level [chatty]")

	err = Init(Config{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging format [xml]")
}
