package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenNewPeriodValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		month int
		year  int
	}{
		{"month too low", 0, 2024},
		{"month too high", 13, 2024},
		{"missing year", 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.periods.OpenNewPeriod(tt.month, tt.year)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestOpenNewPeriodDuplicate(t *testing.T) {
	env := newTestEnv(t)

	env.mustOpenPeriod(t, 6, 2024)

	_, err := env.periods.OpenNewPeriod(6, 2024)
	assert.ErrorIs(t, err, ErrDuplicatePeriod)

	// A closed period also blocks re-creation of the same month
	period := env.mustOpenPeriod(t, 7, 2024)
	_, err = env.periods.TogglePeriod(period.ID)
	require.NoError(t, err)
	_, err = env.periods.OpenNewPeriod(7, 2024)
	assert.ErrorIs(t, err, ErrDuplicatePeriod)
}

func TestOpenNewPeriodClosesPrevious(t *testing.T) {
	env := newTestEnv(t)

	first := env.mustOpenPeriod(t, 6, 2024)
	second := env.mustOpenPeriod(t, 7, 2024)

	assert.Equal(t, 1, env.countOpenPeriods(t))

	current, err := env.periods.CurrentOpenPeriod()
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, second.ID, current.ID)

	reloaded, err := env.periods.GetPeriod(first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsOpen)
}

func TestCurrentOpenPeriodNone(t *testing.T) {
	env := newTestEnv(t)

	current, err := env.periods.CurrentOpenPeriod()
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestTogglePeriod(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.periods.TogglePeriod(42)
	assert.ErrorIs(t, err, ErrNotFound)

	june := env.mustOpenPeriod(t, 6, 2024)
	july := env.mustOpenPeriod(t, 7, 2024)

	// Opening a closed period closes the sibling
	toggled, err := env.periods.TogglePeriod(june.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsOpen)
	assert.Equal(t, 1, env.countOpenPeriods(t))

	reloaded, err := env.periods.GetPeriod(july.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsOpen)

	// Closing the only open period leaves none open
	toggled, err = env.periods.TogglePeriod(june.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsOpen)
	assert.Equal(t, 0, env.countOpenPeriods(t))
}

func TestAtMostOneOpenPeriodAcrossSequences(t *testing.T) {
	env := newTestEnv(t)

	p1 := env.mustOpenPeriod(t, 1, 2024)
	p2 := env.mustOpenPeriod(t, 2, 2024)
	p3 := env.mustOpenPeriod(t, 3, 2024)

	steps := []func() error{
		func() error { _, err := env.periods.TogglePeriod(p1.ID); return err },
		func() error { _, err := env.periods.TogglePeriod(p2.ID); return err },
		func() error { _, err := env.periods.TogglePeriod(p2.ID); return err },
		func() error { _, err := env.periods.TogglePeriod(p3.ID); return err },
		func() error { _, err := env.periods.OpenNewPeriod(4, 2024); return err },
	}
	for _, step := range steps {
		require.NoError(t, step())
		assert.LessOrEqual(t, env.countOpenPeriods(t), 1)
	}
}

func TestListPeriodsOrdering(t *testing.T) {
	env := newTestEnv(t)

	env.mustOpenPeriod(t, 6, 2024)
	env.mustOpenPeriod(t, 1, 2025)
	env.mustOpenPeriod(t, 11, 2024)

	periods, err := env.periods.ListPeriods()
	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.Equal(t, 2025, periods[0].Year)
	assert.Equal(t, 11, periods[1].Month)
	assert.Equal(t, 6, periods[2].Month)
}
