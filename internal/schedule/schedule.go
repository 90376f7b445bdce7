// Package schedule decides which pickup dates and time slots the bakery
// accepts orders for. Everything is a pure function of "now" and the
// injected Config; no globals, no wall-clock reads.
package schedule

import (
	"fmt"
	"time"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
)

// Closed is the closing-hour sentinel for a day the bakery never opens.
const Closed = 0

// Fettisdagen configures the annual Shrove Tuesday promotion: a fixed
// pickup date with its own slot hours and a minimum order quantity.
type Fettisdagen struct {
	Date      string
	MinOrder  int
	OpenHour  int
	CloseHour int
}

// Config carries the weekly pattern. ClosingHours drives both the
// permanently-closed weekday rule and the same-day cutoff; which weekday
// is closed is purely a matter of this table.
type Config struct {
	ClosingHours map[domain.Weekday]int
	CutoffHours  int
	DaysAhead    int

	WeekdayOpen  int
	WeekdayClose int
	WeekendOpen  int
	WeekendClose int

	Fettisdagen Fettisdagen
}

// DefaultConfig matches the reference deployment: closed Mondays,
// weekdays 08-18, weekends 08-16, two-hour cutoff, 60-day horizon.
func DefaultConfig() Config {
	return Config{
		ClosingHours: map[domain.Weekday]int{
			domain.Monday:    Closed,
			domain.Tuesday:   18,
			domain.Wednesday: 18,
			domain.Thursday:  18,
			domain.Friday:    18,
			domain.Saturday:  16,
			domain.Sunday:    16,
		},
		CutoffHours:  2,
		DaysAhead:    60,
		WeekdayOpen:  8,
		WeekdayClose: 18,
		WeekendOpen:  8,
		WeekendClose: 16,
		Fettisdagen: Fettisdagen{
			Date:      "2026-02-17",
			MinOrder:  10,
			OpenHour:  7,
			CloseHour: 18,
		},
	}
}

type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine { return &Engine{cfg: cfg} }

func (e *Engine) Config() Config { return e.cfg }

// CanOrderForTomorrow applies the same-day cutoff: once "now" is within
// CutoffHours of today's closing hour it is too late to prep tomorrow's
// bake. On a day the bakery is closed the rule is vacuously satisfied.
func (e *Engine) CanOrderForTomorrow(now time.Time) bool {
	closing := e.cfg.ClosingHours[DateOf(now).Weekday()]
	if closing == Closed {
		return true
	}
	return now.Hour() < closing-e.cfg.CutoffHours
}

// PickupDates returns the orderable dates for offsets 1..DaysAhead from
// today, ascending, as YYYY-MM-DD strings. A date is skipped when its
// weekday is marked closed in the table, and tomorrow is additionally
// skipped past the cutoff. The cutoff never touches later offsets.
func (e *Engine) PickupDates(now time.Time) []string {
	today := DateOf(now)
	canTomorrow := e.CanOrderForTomorrow(now)

	dates := make([]string, 0, e.cfg.DaysAhead)
	for i := 1; i <= e.cfg.DaysAhead; i++ {
		d := today.AddDays(i)
		if e.cfg.ClosingHours[d.Weekday()] == Closed {
			continue
		}
		if i == 1 && !canTomorrow {
			continue
		}
		dates = append(dates, d.String())
	}
	return dates
}

// PickupTimes returns the hourly slots for a date: one HH:MM slot per
// whole hour in [open, close). The Fettisdagen date overrides the
// weekday/weekend classes with its own hours, whatever weekday it falls
// on that year.
func (e *Engine) PickupTimes(dateStr string) ([]string, error) {
	if e.IsFettisdagen(dateStr) {
		return hourlySlots(e.cfg.Fettisdagen.OpenHour, e.cfg.Fettisdagen.CloseHour), nil
	}
	d, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	if d.Weekday().Weekend() {
		return hourlySlots(e.cfg.WeekendOpen, e.cfg.WeekendClose), nil
	}
	return hourlySlots(e.cfg.WeekdayOpen, e.cfg.WeekdayClose), nil
}

func hourlySlots(open, close int) []string {
	var slots []string
	for h := open; h < close; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// DayOfWeek maps a YYYY-MM-DD string to its weekday symbol.
func DayOfWeek(dateStr string) (domain.Weekday, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return d.Weekday(), nil
}

func (e *Engine) IsFettisdagen(dateStr string) bool {
	return dateStr == e.cfg.Fettisdagen.Date
}

// FettisdagenUpcoming reports whether the promotion is still announced:
// true on the day itself and before, false once it has passed.
func (e *Engine) FettisdagenUpcoming(now time.Time) bool {
	d, err := ParseDate(e.cfg.Fettisdagen.Date)
	if err != nil {
		return false
	}
	return !d.Before(DateOf(now))
}

// CutoffInfo is display data for the "order by" banner.
type CutoffInfo struct {
	CutoffTime       string `json:"cutoffTime"`
	ClosedToday      bool   `json:"closedToday"`
	CanOrderTomorrow bool   `json:"canOrderTomorrow"`
}

func (e *Engine) Cutoff(now time.Time) CutoffInfo {
	closing := e.cfg.ClosingHours[DateOf(now).Weekday()]
	if closing == Closed {
		return CutoffInfo{ClosedToday: true, CanOrderTomorrow: true}
	}
	cutoff := closing - e.cfg.CutoffHours
	return CutoffInfo{
		CutoffTime:       fmt.Sprintf("%02d:00", cutoff),
		CanOrderTomorrow: now.Hour() < cutoff,
	}
}
