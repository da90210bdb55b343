package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/rollcall/internal/calendar"
)

// TodayToken selects the system clock as the reference date.
const TodayToken = "today"

// Clock returns the current time.
type Clock func() time.Time

// ResolveReference picks the date days-since is measured from. An explicit
// date wins, then the today token, then the latest date seen in the input.
func ResolveReference(value string, order calendar.Order, latest calendar.Date, now Clock) (calendar.Date, error) {
	value = strings.TrimSpace(value)

	switch {
	case value == "":
		return latest, nil
	case strings.EqualFold(value, TodayToken):
		if now == nil {
			now = time.Now
		}
		return calendar.FromTime(now()), nil
	default:
		d, err := calendar.Parse(value, order)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("invalid reference date: %w", err)
		}
		return d, nil
	}
}
