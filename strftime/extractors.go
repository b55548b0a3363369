package strftime

import (
	"strconv"
)

// Extractor derives the replacement text of one directive.
type Extractor func(Timestamp) string

func extractAbbreviatedDay(ts Timestamp) string {
	return abbreviatedDays[ts.Weekday()]
}

func extractFullDay(ts Timestamp) string {
	return fullDays[ts.Weekday()]
}

func extractAbbreviatedMonth(ts Timestamp) string {
	return abbreviatedMonths[ts.Month()]
}

func extractFullMonth(ts Timestamp) string {
	return fullMonths[ts.Month()]
}

func extractLocal(ts Timestamp) string {
	return ts.Local()
}

func extractMonthDay(ts Timestamp) string {
	return strconv.Itoa(ts.Day())
}

func extractPaddedMonthDay(ts Timestamp) string {
	return pad(ts.Day())
}

func extractHour24(ts Timestamp) string {
	return strconv.Itoa(ts.Hour())
}

// extractHour12 yields 0 for both midnight and noon.
func extractHour12(ts Timestamp) string {
	return strconv.Itoa(ts.Hour() % 12)
}

func extractMonthNumber(ts Timestamp) string {
	return pad(ts.Month() + 1)
}

func extractMinute(ts Timestamp) string {
	return pad(ts.Minute())
}

// The meridian switches after 12:59, so the noon hour counts as AM.
func isAfternoon(ts Timestamp) bool {
	return ts.Hour() > 12
}

func extractMeridianUpper(ts Timestamp) string {
	if isAfternoon(ts) {
		return "PM"
	}
	return "AM"
}

func extractMeridianLower(ts Timestamp) string {
	if isAfternoon(ts) {
		return "pm"
	}
	return "am"
}

func extractMeridianShort(ts Timestamp) string {
	if isAfternoon(ts) {
		return "p"
	}
	return "a"
}

func extractSecond(ts Timestamp) string {
	return strconv.Itoa(ts.Second())
}

func extractWeekdayNumber(ts Timestamp) string {
	return strconv.Itoa(ts.Weekday())
}

// extractShortYear keeps the last two characters of the decimal year. A
// one-digit year stays one digit.
func extractShortYear(ts Timestamp) string {
	year := strconv.Itoa(ts.Year())
	if len(year) > 2 {
		return year[len(year)-2:]
	}
	return year
}

func extractYear(ts Timestamp) string {
	return strconv.Itoa(ts.Year())
}

func pad(n int) string {
	if n >= 10 {
		return strconv.Itoa(n)
	}
	return "0" + strconv.Itoa(n)
}
