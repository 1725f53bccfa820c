package engine

import (
	"fmt"
	"time"
)

// clockLayout is the 12-hour in-game clock format, e.g. "08:30 PM".
const clockLayout = "03:04 PM"

// advanceClock adds a minute cost to a clock value, wrapping naturally
// through noon and midnight.
func advanceClock(clock string, minutes int) (string, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return clock, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format(clockLayout), nil
}
