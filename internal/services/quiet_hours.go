package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"markethub-messaging/internal/domain/conversation"
	apperrors "markethub-messaging/pkg/errors"
)

var timeOfDayPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// QuietHoursWindow is a resolved daily suppression window. Start and End are
// HH:mm strings interpreted in Timezone.
type QuietHoursWindow struct {
	Start    string
	End      string
	Timezone string
}

// QuietHoursOverride carries an explicit window supplied by the caller, which
// wins over both the participant's and the conversation's windows.
type QuietHoursOverride struct {
	Start    string
	End      string
	Timezone string
}

// ResolveQuietHours picks the effective window for a participant with
// precedence override > participant > conversation default. It returns nil
// when either bound is missing after resolution; quiet hours then never
// suppress. A malformed bound is a validation error, not a silent skip.
func ResolveQuietHours(p conversation.Participant, c conversation.Conversation, override *QuietHoursOverride) (*QuietHoursWindow, error) {
	var start, end, tz string

	switch {
	case override != nil:
		start, end, tz = override.Start, override.End, override.Timezone
	case p.QuietHoursStart.Valid || p.QuietHoursEnd.Valid:
		start, end = p.QuietHoursStart.String, p.QuietHoursEnd.String
		if p.Timezone.Valid {
			tz = p.Timezone.String
		}
	default:
		start, end = c.QuietHoursStart.String, c.QuietHoursEnd.String
	}

	if tz == "" {
		if p.Timezone.Valid {
			tz = p.Timezone.String
		} else {
			tz = c.DefaultTimezone
		}
	}

	if start == "" || end == "" {
		return nil, nil
	}
	if !timeOfDayPattern.MatchString(start) {
		return nil, fmt.Errorf("%w: quiet hours start %q is not HH:mm", apperrors.ErrInvalidInput, start)
	}
	if !timeOfDayPattern.MatchString(end) {
		return nil, fmt.Errorf("%w: quiet hours end %q is not HH:mm", apperrors.ErrInvalidInput, end)
	}

	return &QuietHoursWindow{Start: start, End: end, Timezone: tz}, nil
}

// QuietHoursActive reports whether now falls inside the window. Windows where
// end <= start wrap past midnight; an instant in the early hours still counts
// against the window that started the previous evening.
func QuietHoursActive(w QuietHoursWindow, now time.Time) (bool, error) {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return false, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrInvalidInput, w.Timezone)
	}

	localNow := now.In(loc)
	startH, startM, err := parseTimeOfDay(w.Start)
	if err != nil {
		return false, err
	}
	endH, endM, err := parseTimeOfDay(w.End)
	if err != nil {
		return false, err
	}

	start := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), startH, startM, 0, 0, loc)
	end := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), endH, endM, 0, 0, loc)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	adjusted := localNow
	if adjusted.Before(start) {
		adjusted = adjusted.Add(24 * time.Hour)
	}
	return !adjusted.Before(start) && adjusted.Before(end), nil
}

func parseTimeOfDay(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time of day %q is not HH:mm", apperrors.ErrInvalidInput, value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time of day %q is not HH:mm", apperrors.ErrInvalidInput, value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time of day %q is not HH:mm", apperrors.ErrInvalidInput, value)
	}
	return h, m, nil
}

// validTimeOfDay is used by input validation before values hit the store.
func validTimeOfDay(value string) bool {
	return timeOfDayPattern.MatchString(value)
}
