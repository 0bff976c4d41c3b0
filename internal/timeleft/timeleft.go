// Package timeleft converts an auction's closing time and a reference "now"
// into the remaining-time breakdown and display string used across listing
// and detail views. Everything here is pure: now is always injected.
package timeleft

import (
	"fmt"
	"time"
)

// Remaining is the truncated breakdown of the time until an auction closes.
// Elapsed is set when the closing time is not in the future; the numeric
// fields are zero in that case.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Elapsed bool
}

// Until computes the remaining time between now and end. The breakdown
// truncates rather than rounds: 1 day 23h59m is still "1 day, 23 hours".
func Until(end, now time.Time) Remaining {
	diff := end.Sub(now)
	if diff <= 0 {
		return Remaining{Elapsed: true}
	}
	return Remaining{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int((diff % (24 * time.Hour)) / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}
}

// String renders the urgency label. Exactly one branch applies: days, then
// hours, then minutes, then "Ending soon" for sub-minute remainders.
func (r Remaining) String() string {
	switch {
	case r.Elapsed:
		return "Ended"
	case r.Days > 0:
		return fmt.Sprintf("%d %s, %d %s left", r.Days, plural("day", r.Days), r.Hours, plural("hour", r.Hours))
	case r.Hours > 0:
		return fmt.Sprintf("%d %s left", r.Hours, plural("hour", r.Hours))
	case r.Minutes > 0:
		return fmt.Sprintf("%d %s left", r.Minutes, plural("minute", r.Minutes))
	default:
		return "Ending soon"
	}
}

// plural appends "s" unless the value is exactly 1
func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
