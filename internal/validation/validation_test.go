package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHabitName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "Push-ups", wantErr: false},
		{name: "single character", input: "x", wantErr: false},
		{name: "exactly 100 characters", input: strings.Repeat("a", 100), wantErr: false},
		{name: "100 multibyte characters", input: strings.Repeat("é", 100), wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "101 characters", input: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHabitName(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "error %v is not a ValidationError", err)
			assert.Equal(t, "habit name", verr.Field)
		})
	}
}

func TestValidateHabitNameTruncatesLongValue(t *testing.T) {
	err := ValidateHabitName(strings.Repeat("b", 150))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 100 characters")
	assert.NotContains(t, err.Error(), strings.Repeat("b", 21))
}

func TestDateFromParts(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             string
		wantErr          bool
	}{
		{name: "regular date", year: 2024, month: 7, day: 18, want: "2024-07-18"},
		{name: "leap day", year: 2024, month: 2, day: 29, want: "2024-02-29"},
		{name: "non-leap feb 29", year: 2023, month: 2, day: 29, wantErr: true},
		{name: "feb 30", year: 2024, month: 2, day: 30, wantErr: true},
		{name: "april 31", year: 2024, month: 4, day: 31, wantErr: true},
		{name: "day zero", year: 2024, month: 1, day: 0, wantErr: true},
		{name: "month 13", year: 2024, month: 13, day: 1, wantErr: true},
		{name: "month zero", year: 2024, month: 0, day: 1, wantErr: true},
		{name: "year zero", year: 0, month: 1, day: 1, wantErr: true},
		{name: "single digit padding", year: 2024, month: 1, day: 5, want: "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateFromParts(tt.year, tt.month, tt.day)
			if tt.wantErr {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2024-07-18 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-18", got)

	for _, bad := range []string{"", "2024-7-18", "18/07/2024", "2024-02-30", "yesterday"} {
		_, err := ParseDate(bad)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "ParseDate(%q) error = %v, want ValidationError", bad, err)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "20", want: 20},
		{input: " -5 ", want: -5},
		{input: "0", want: 0},
		{input: "twenty", wantErr: true},
		{input: "1.5", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
