// Package services provides business logic and orchestration around the
// ledger engine.
//
// This file implements the Strategy Pattern for recurring-transaction
// schedule advancement. Each interval (daily, weekly, monthly) has its own
// advancer that encapsulates how the next occurrence date is computed.
package services

import (
	"fmt"
	"time"

	"cassa/internal/core"
)

// ScheduleAdvancer is the strategy interface for computing a recurring
// transaction's next occurrence. Advancers are pure: no clock, no side
// effects.
type ScheduleAdvancer interface {
	// Next returns the occurrence that follows from. anchorDay is the
	// day-of-month the schedule was created on; only the monthly strategy
	// uses it.
	Next(from core.Date, anchorDay int) core.Date
}

// DailyAdvancer moves the schedule forward by one day.
type DailyAdvancer struct{}

func (DailyAdvancer) Next(from core.Date, _ int) core.Date {
	return core.DateOf(from.AddDate(0, 0, 1))
}

// WeeklyAdvancer moves the schedule forward by seven days.
type WeeklyAdvancer struct{}

func (WeeklyAdvancer) Next(from core.Date, _ int) core.Date {
	return core.DateOf(from.AddDate(0, 0, 7))
}

// MonthlyAdvancer moves the schedule to the anchor day of the following
// month, clamped to that month's last day. Anchoring keeps a schedule created
// on the 31st from drifting permanently to the 28th after February: Jan 31 ->
// Feb 28 -> Mar 31.
type MonthlyAdvancer struct{}

func (MonthlyAdvancer) Next(from core.Date, anchorDay int) core.Date {
	if anchorDay < 1 {
		anchorDay = from.Day()
	}
	year, month := from.Year(), from.Month()+1
	if month > 12 {
		month = 1
		year++
	}
	day := anchorDay
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return core.NewDate(year, month, day)
}

func lastDayOfMonth(year, month int) int {
	// Day zero of the following month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// scheduleStrategies maps intervals to their advancers.
var scheduleStrategies = map[core.Interval]ScheduleAdvancer{
	core.Daily:   DailyAdvancer{},
	core.Weekly:  WeeklyAdvancer{},
	core.Monthly: MonthlyAdvancer{},
}

// GetScheduleAdvancer returns the advancer for an interval, or an error for
// an unknown one.
func GetScheduleAdvancer(interval core.Interval) (ScheduleAdvancer, error) {
	advancer, ok := scheduleStrategies[interval]
	if !ok {
		return nil, fmt.Errorf("unknown interval: %s", interval)
	}
	return advancer, nil
}
