package models

import (
	"sort"
	"time"
)

// Event is a program activity (kegiatan).
type Event struct {
	ID       ID          `json:"id"`
	Title    string      `json:"nama"`
	Date     string      `json:"tanggal"`
	Location string      `json:"lokasi,omitempty"`
	Status   EventStatus `json:"status"`
}

// Attendance is one participant row of an event.
type Attendance struct {
	ID      ID               `json:"id"`
	EventID ID               `json:"kegiatanId"`
	UserID  ID               `json:"userId"`
	Name    string           `json:"nama"`
	Status  AttendanceStatus `json:"status"`
}

// CalendarDay groups the events of one date.
type CalendarDay struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// GroupByDay buckets events of the given month by date. Events outside the month or
// with an unparsable date are skipped.
func GroupByDay(events []Event, year int, month time.Month) []CalendarDay {
	buckets := map[string][]Event{}
	for _, ev := range events {
		raw := ev.Date
		if len(raw) > 10 {
			raw = raw[:10]
		}
		day, err := time.Parse("2006-01-02", raw)
		if err != nil || day.Year() != year || day.Month() != month {
			continue
		}
		buckets[raw] = append(buckets[raw], ev)
	}
	days := make([]CalendarDay, 0, len(buckets))
	for date, evs := range buckets {
		days = append(days, CalendarDay{Date: date, Events: evs})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
