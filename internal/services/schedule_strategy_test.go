package services

import (
	"testing"

	"cassa/internal/core"
)

func TestDailyAdvancer_Next(t *testing.T) {
	tests := []struct {
		name string
		from core.Date
		want core.Date
	}{
		{"mid month", core.NewDate(2025, 6, 15), core.NewDate(2025, 6, 16)},
		{"month boundary", core.NewDate(2025, 6, 30), core.NewDate(2025, 7, 1)},
		{"year boundary", core.NewDate(2025, 12, 31), core.NewDate(2026, 1, 1)},
	}

	advancer := DailyAdvancer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advancer.Next(tt.from, tt.from.Day())
			if !got.Equal(tt.want.Time) {
				t.Errorf("Next(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestWeeklyAdvancer_Next(t *testing.T) {
	tests := []struct {
		name string
		from core.Date
		want core.Date
	}{
		{"mid month", core.NewDate(2025, 6, 10), core.NewDate(2025, 6, 17)},
		{"crosses month", core.NewDate(2025, 6, 27), core.NewDate(2025, 7, 4)},
	}

	advancer := WeeklyAdvancer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advancer.Next(tt.from, tt.from.Day())
			if !got.Equal(tt.want.Time) {
				t.Errorf("Next(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestMonthlyAdvancer_Next(t *testing.T) {
	tests := []struct {
		name   string
		from   core.Date
		anchor int
		want   core.Date
	}{
		{"plain month", core.NewDate(2025, 6, 15), 15, core.NewDate(2025, 7, 15)},
		{"clamps to short month", core.NewDate(2025, 1, 31), 31, core.NewDate(2025, 2, 28)},
		{"leap february", core.NewDate(2024, 1, 31), 31, core.NewDate(2024, 2, 29)},
		{"recovers anchor after clamp", core.NewDate(2025, 2, 28), 31, core.NewDate(2025, 3, 31)},
		{"thirty day month", core.NewDate(2025, 3, 31), 31, core.NewDate(2025, 4, 30)},
		{"december rollover", core.NewDate(2025, 12, 10), 10, core.NewDate(2026, 1, 10)},
		{"missing anchor falls back to from day", core.NewDate(2025, 6, 15), 0, core.NewDate(2025, 7, 15)},
	}

	advancer := MonthlyAdvancer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advancer.Next(tt.from, tt.anchor)
			if !got.Equal(tt.want.Time) {
				t.Errorf("Next(%s, anchor %d) = %s, want %s", tt.from, tt.anchor, got, tt.want)
			}
		})
	}
}

func TestGetScheduleAdvancer(t *testing.T) {
	for _, interval := range []core.Interval{core.Daily, core.Weekly, core.Monthly} {
		if _, err := GetScheduleAdvancer(interval); err != nil {
			t.Errorf("GetScheduleAdvancer(%s): %v", interval, err)
		}
	}
	if _, err := GetScheduleAdvancer("fortnightly"); err == nil {
		t.Error("expected error for unknown interval")
	}
}
