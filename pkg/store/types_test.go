package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatePixel(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{Date{2024, time.January, 5}, "20240105"},
		{Date{2024, time.December, 31}, "20241231"},
		{Date{999, time.March, 9}, "09990309"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Pixel())
		})
	}
}

func TestDateOfUsesLocalCalendar(t *testing.T) {
	// 23:30 local on Jan 5 is still Jan 5, whatever UTC says.
	loc := time.FixedZone("UTC-8", -8*60*60)
	ts := time.Date(2024, time.January, 5, 23, 30, 0, 0, loc)
	assert.Equal(t, "20240105", DateOf(ts).Pixel())
}

func TestDateAddDays(t *testing.T) {
	d := Date{2024, time.February, 28}
	assert.Equal(t, Date{2024, time.February, 29}, d.AddDays(1))
	assert.Equal(t, Date{2024, time.March, 1}, d.AddDays(2))
	assert.Equal(t, Date{2023, time.December, 31}, Date{2024, time.January, 1}.AddDays(-1))
}

func TestParseDate(t *testing.T) {
	today := Date{2024, time.June, 15}

	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso", input: "2024-01-05", want: Date{2024, time.January, 5}},
		{name: "compact", input: "20241231", want: Date{2024, time.December, 31}},
		{name: "slashes", input: "2030/07/04", want: Date{2030, time.July, 4}},
		{name: "today", input: "today", want: today},
		{name: "empty", input: "  ", want: today},
		{name: "yesterday", input: "Yesterday", want: Date{2024, time.June, 14}},
		{name: "garbage", input: "not-a-date", want: today, wantErr: true},
		{name: "impossible day", input: "2024-02-30", want: today, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, today)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialsComplete(t *testing.T) {
	assert.True(t, Credentials{Username: "a", Token: "b"}.Complete())
	assert.False(t, Credentials{Username: "a"}.Complete())
	assert.False(t, Credentials{Token: "b"}.Complete())
}
