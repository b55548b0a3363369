package preset

import (
	"github.com/gorhill/cronexpr"
	"github.com/tatermelon/stftime/config"
	"time"
)

const maxLookBehind = 200 * config.Year

// FindPrevious returns the latest tick of schedule at or before moment. The
// zero time is returned if there is no tick within the last 200 years.
func FindPrevious(schedule *cronexpr.Expression, moment time.Time) time.Time {
	if schedule == nil {
		return time.Time{}
	}

	upper := schedule.Next(moment)
	if upper.IsZero() {
		upper = moment.Add(time.Second)
	}

	// widen the window until it holds at least one tick before upper
	window := 2 * config.Day
	low := schedule.Next(moment.Add(-window))
	for low.IsZero() || !low.Before(upper) {
		if window >= maxLookBehind {
			return time.Time{}
		}
		if window > maxLookBehind/2 {
			window = maxLookBehind
		} else {
			window *= 2
		}
		low = schedule.Next(moment.Add(-window))
	}

	// low is a tick before upper and there is no tick in (high, upper)
	high := upper
	for {
		following := schedule.Next(low)
		if following.IsZero() || !following.Before(upper) {
			return low
		}
		low = following

		median := low.Add(high.Sub(low) / 2)
		if next := schedule.Next(median); !next.IsZero() && next.Before(upper) {
			low = next
		} else {
			high = median
		}
	}
}
