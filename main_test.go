package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSafelyPassesThroughExitCode(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	exitCode := runSafely(nil, func([]string) int { return 3 }, &out)

	assert.Equal(t, 3, exitCode)
	assert.Empty(t, out.String())
}

func TestRunSafelyRecoversPanic(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	exitCode := runSafely(nil, func([]string) int { panic("boom") }, &out)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, out.String(), "panic recovered: boom")
}

func TestRunWithArgsUnknownCommand(t *testing.T) {
	t.Parallel()

	exitCode := runWithArgs([]string{"no-such-command"})

	assert.Equal(t, 1, exitCode)
}
