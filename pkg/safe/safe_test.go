package safe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitaehub/vitaehub/pkg/safe"
)

func TestRunRecoversPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		safe.Run(func() {
			panic("boom")
		})
	})
}

func TestRunWithComponentRecoversPanic(t *testing.T) {
	done := false
	assert.NotPanics(t, func() {
		safe.RunWithComponent(func() {
			done = true
			panic("boom")
		}, "test")
	})
	assert.True(t, done)
}
