package schedule

import (
	"encoding/json"
	"strings"
)

// WeekSelector picks which occurrences of a weekday inside a month a
// collection runs on.
type WeekSelector string

const (
	WeekEvery  WeekSelector = "every"
	WeekFirst  WeekSelector = "first"
	WeekSecond WeekSelector = "second"
	WeekThird  WeekSelector = "third"
	WeekFourth WeekSelector = "fourth"
	WeekFifth  WeekSelector = "fifth"
)

// Weekdays lists the valid schedule keys in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

var dayLabels = map[string]string{
	"monday":    "月",
	"tuesday":   "火",
	"wednesday": "水",
	"thursday":  "木",
	"friday":    "金",
}

var weekLabels = map[WeekSelector]string{
	WeekEvery:  "毎週",
	WeekFirst:  "第1",
	WeekSecond: "第2",
	WeekThird:  "第3",
	WeekFourth: "第4",
	WeekFifth:  "第5",
}

// None is what Summarize returns for a schedule with no enabled days.
const None = "なし"

type DaySchedule struct {
	Enabled bool           `json:"enabled"`
	Weeks   []WeekSelector `json:"weeks"`
}

// UnmarshalJSON accepts both the current object form and the legacy
// bare-boolean form, where `true` means enabled every week.
func (d *DaySchedule) UnmarshalJSON(raw []byte) error {
	var legacy bool
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if legacy {
			*d = DaySchedule{Enabled: true, Weeks: []WeekSelector{WeekEvery}}
		} else {
			*d = DaySchedule{}
		}
		return nil
	}

	type plain DaySchedule
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*d = DaySchedule(p)
	return nil
}

// Schedule maps weekday keys (monday..friday) to their activation. Days
// that are absent are disabled.
type Schedule map[string]DaySchedule

// Decode parses the persisted JSON text. An empty or null value decodes
// to an empty schedule; keys outside monday..friday and disabled days
// are dropped.
func Decode(raw string) (Schedule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return Schedule{}, nil
	}

	var parsed Schedule
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Schedule{}, err
	}

	out := Schedule{}
	for _, day := range Weekdays {
		entry, ok := parsed[day]
		if !ok || !entry.Enabled {
			continue
		}
		out[day] = entry
	}
	return out, nil
}

// Encode serializes the schedule to its persisted JSON text. Only
// enabled days are written.
func Encode(s Schedule) (string, error) {
	out := Schedule{}
	for _, day := range Weekdays {
		entry, ok := s[day]
		if !ok || !entry.Enabled {
			continue
		}
		out[day] = entry
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Summarize renders the schedule as a human-readable string, e.g.
// "毎週月, 第1・第3水". Returns なし when no day is enabled.
func Summarize(s Schedule) string {
	var parts []string
	for _, day := range Weekdays {
		entry, ok := s[day]
		if !ok || !entry.Enabled || len(entry.Weeks) == 0 {
			continue
		}
		labels := make([]string, 0, len(entry.Weeks))
		for _, week := range entry.Weeks {
			if label, known := weekLabels[week]; known {
				labels = append(labels, label)
			} else {
				labels = append(labels, string(week))
			}
		}
		parts = append(parts, strings.Join(labels, "・")+dayLabels[day])
	}
	if len(parts) == 0 {
		return None
	}
	return strings.Join(parts, ", ")
}
