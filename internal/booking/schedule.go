package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidScheduledDate = errors.New("invalid scheduled date")
	ErrInvalidScheduledTime = errors.New("invalid scheduled time")
)

// scheduledTimeLayout — формат времени визита, "HH:MM".
const scheduledTimeLayout = "15:04"

// ParseScheduledTime валидирует время визита в формате "HH:MM".
func ParseScheduledTime(s string) (time.Time, error) {
	t, err := time.Parse(scheduledTimeLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidScheduledTime
	}
	return t, nil
}

// CombineSchedule собирает дату и время визита в один момент в поясе loc.
// loc == nil трактуется как UTC.
func CombineSchedule(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, ErrInvalidScheduledDate
	}
	t, err := ParseScheduledTime(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), nil
}

// FormatScheduleForUser форматирует дату и время визита для показа
// пользователю, например "02.01.2006 в 15:04".
func FormatScheduleForUser(date time.Time, hhmm string, loc *time.Location) (string, error) {
	at, err := CombineSchedule(date, hhmm, loc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s в %s", at.Format("02.01.2006"), at.Format(scheduledTimeLayout)), nil
}
