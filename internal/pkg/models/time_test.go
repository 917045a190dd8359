package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingRideTime(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		totalHours float64
		now        time.Time
		want       RemainingTime
		expired    bool
	}{
		{
			name:       "ten minutes left of two hours",
			totalHours: 2,
			now:        createdAt.Add(time.Hour + 50*time.Minute),
			want:       RemainingTime{Hours: 0, Minutes: 10, Seconds: 0, Total: 10 * time.Minute},
		},
		{
			name:       "fractional booking",
			totalHours: 1.5,
			now:        createdAt,
			want:       RemainingTime{Hours: 1, Minutes: 30, Seconds: 0, Total: 90 * time.Minute},
		},
		{
			name:       "seconds are split out",
			totalHours: 1,
			now:        createdAt.Add(15*time.Minute + 15*time.Second),
			want:       RemainingTime{Hours: 0, Minutes: 44, Seconds: 45, Total: 44*time.Minute + 45*time.Second},
		},
		{
			name:       "exactly at the end",
			totalHours: 1,
			now:        createdAt.Add(time.Hour),
			want:       RemainingTime{},
			expired:    true,
		},
		{
			name:       "overrun is clamped to zero",
			totalHours: 1,
			now:        createdAt.Add(time.Hour + 30*time.Minute),
			want:       RemainingTime{Hours: 0, Minutes: 0, Seconds: 0, Total: -30 * time.Minute},
			expired:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingRideTime(createdAt, tt.totalHours, tt.now)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.expired, got.Expired())
		})
	}
}
