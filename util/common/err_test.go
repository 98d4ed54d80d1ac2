package common

import (
	"errors"
	"testing"

	"github.com/blindhunter/blindhunter/logger"
	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	first := errors.New("first")
	second := errors.New("second")
	err := Combine(first, nil, second)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestNewErrorf(t *testing.T) {
	assert.EqualError(t, NewErrorf("company %d not found", 7), "company 7 not found")
}

func TestRecover(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("checkpoint job")
		panic("boom")
	})

	logs := logger.GetLogs(1, "ERROR")
	if assert.Len(t, logs, 1) {
		assert.Contains(t, logs[0], "checkpoint job")
		assert.Contains(t, logs[0], "boom")
	}
}
