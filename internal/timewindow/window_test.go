package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)

func TestResolveDefaults(t *testing.T) {
	w, err := Resolve("", "", now)
	require.NoError(t, err)

	assert.Equal(t, now.Add(-Grace), w.From)
	assert.Nil(t, w.To)
}

func TestResolveFromOnly(t *testing.T) {
	w, err := Resolve("2025-03-02", "", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.Local), w.From)
	assert.Nil(t, w.To)
}

func TestResolveToOnly(t *testing.T) {
	w, err := Resolve("", "2025-03-05", now)
	require.NoError(t, err)

	// Lower bound still defends against past sessions.
	assert.Equal(t, now.Add(-Grace), w.From)
	require.NotNil(t, w.To)
	assert.Equal(t, time.Date(2025, 3, 5, 23, 59, 59, 0, time.Local), *w.To)
}

func TestResolveMixedBounds(t *testing.T) {
	w, err := Resolve("2025-03-01", "2025-03-01T18:00", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), w.From)
	require.NotNil(t, w.To)
	assert.Equal(t, time.Date(2025, 3, 1, 18, 0, 0, 0, time.Local), *w.To)
}

func TestResolveMissingMinute(t *testing.T) {
	w, err := Resolve("2025-03-01T09", "", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local), w.From)
}

func TestResolveMalformed(t *testing.T) {
	cases := []string{"03/01/2025", "2025-3-1", "yesterday", "2025-03-01TT10:00"}

	for _, in := range cases {
		_, err := Resolve(in, "", now)
		assert.ErrorIs(t, err, ErrInvalidFormat, in)

		_, err = Resolve("", in, now)
		assert.ErrorIs(t, err, ErrInvalidFormat, in)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-04-10T17:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 10, 17, 30, 0, 0, time.Local), got)

	_, err = ParseDateTime("2025-04-10")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
