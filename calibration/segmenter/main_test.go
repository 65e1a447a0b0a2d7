package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arpaint/calibration"
)

func TestWriteLimitsRejectsInvertedRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), calibration.DefaultPath)
	previous := calibration.Limits{
		B: calibration.Range{Min: 0, Max: 80},
		G: calibration.Range{Min: 120, Max: 255},
		R: calibration.Range{Min: 10, Max: 90},
	}
	require.NoError(t, writeLimits(path, previous))

	inverted := previous
	inverted.G = calibration.Range{Min: 200, Max: 100}
	err := writeLimits(path, inverted)
	assert.ErrorIs(t, err, calibration.ErrInvertedRange)

	kept, err := calibration.Load(path)
	require.NoError(t, err)
	assert.Equal(t, previous, kept, "the last good file survives")
}

func TestWriteLimitsReportsUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", calibration.DefaultPath)
	err := writeLimits(path, calibration.Default())
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
