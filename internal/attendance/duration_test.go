package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		minutes int
	}{
		{"empty text is zero", "", 0},
		{"whitespace only is zero", "   ", 0},
		{"hours and minutes", "2시간 30분", 150},
		{"minutes only", "45분", 45},
		{"hours only", "3시간", 180},
		{"no space between units", "1시간30분", 90},
		{"padded numbers", " 7시간  5분 ", 425},
		{"zero minutes", "0분", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDuration(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, d.TotalMinutes())
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no unit suffix", "450"},
		{"non-numeric hours", "두시간"},
		{"junk after hours", "2시간 삼십"},
		{"non-numeric minutes", "2시간 xx분"},
		{"negative minutes", "-5분"},
		{"arbitrary text", "연차"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDuration(tt.text)
			require.Error(t, err)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.text, parseErr.Text)
		})
	}
}

func TestDuration_InHours(t *testing.T) {
	assert.Equal(t, 2.5, NewDuration(2, 30).InHours())
	assert.Equal(t, 0.0, Duration(0).InHours())
}

func TestDuration_String(t *testing.T) {
	assert.Equal(t, "8시간 15분", NewDuration(8, 15).String())
	assert.Equal(t, "0시간 0분", Duration(0).String())
}

func TestFormatHoursMinutes(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{6.75, "6시간 45분"},
		{0, "0시간 0분"},
		{7.5, "7시간 30분"},
		{8.02, "8시간 1분"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHoursMinutes(tt.hours))
	}
}
