package calibration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`{"limits": {
		"B": {"max": 80, "min": 0},
		"G": {"max": 255, "min": 120},
		"R": {"max": 90, "min": 10}
	}}`)

	l, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 0, Max: 80}, l.B)
	assert.Equal(t, Range{Min: 120, Max: 255}, l.G)
	assert.Equal(t, Range{Min: 10, Max: 90}, l.R)
	assert.Equal(t, [3]float64{0, 120, 10}, l.Lower())
	assert.Equal(t, [3]float64{80, 255, 90}, l.Upper())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"missing channel", `{"limits": {"B": {"min": 0, "max": 1}, "G": {"min": 0, "max": 1}}}`, ErrMissingChannel},
		{"null channel", `{"limits": {"B": null, "G": {"min": 0, "max": 1}, "R": {"min": 0, "max": 1}}}`, ErrMissingChannel},
		{"above 255", `{"limits": {"B": {"min": 0, "max": 256}, "G": {"min": 0, "max": 1}, "R": {"min": 0, "max": 1}}}`, ErrRangeOutOfBounds},
		{"negative", `{"limits": {"B": {"min": 0, "max": 1}, "G": {"min": -1, "max": 1}, "R": {"min": 0, "max": 1}}}`, ErrRangeOutOfBounds},
		{"inverted", `{"limits": {"B": {"min": 0, "max": 1}, "G": {"min": 0, "max": 1}, "R": {"min": 9, "max": 3}}}`, ErrInvertedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	want := Limits{B: Range{0, 50}, G: Range{100, 200}, R: Range{5, 255}}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"limits"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	err := Save(path, Limits{B: Range{10, 5}, G: Range{0, 1}, R: Range{0, 1}})
	assert.ErrorIs(t, err, ErrInvertedRange)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDefaultIsFullRange(t *testing.T) {
	l := Default()
	require.NoError(t, l.Validate())
	assert.Equal(t, [3]float64{0, 0, 0}, l.Lower())
	assert.Equal(t, [3]float64{255, 255, 255}, l.Upper())
}
