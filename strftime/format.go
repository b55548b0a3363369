package strftime

import (
	"strings"
	"time"
)

// Directive is one recognized two-character token.
type Directive struct {
	Token       string `json:"token"`
	Description string `json:"description"`
	extract     Extractor
}

// Substitution order is part of the output contract: every token is replaced
// on the string produced by the tokens before it.
var directives = [...]Directive{
	{"%a", "Abbreviated weekday name (Sun..Sat)", extractAbbreviatedDay},
	{"%A", "Full weekday name (Sunday..Saturday)", extractFullDay},
	{"%b", "Abbreviated month name (Jan..Dec)", extractAbbreviatedMonth},
	{"%B", "Full month name (January..December)", extractFullMonth},
	{"%c", "Date and time representation", extractLocal},
	{"%d", "Day of the month (1..31)", extractMonthDay},
	{"%D", "Day of the month (01..31)", extractPaddedMonthDay},
	{"%H", "Hour of the day, 24-hour clock (0..23)", extractHour24},
	{"%I", "Hour of the day modulo 12 (0..11)", extractHour12},
	{"%m", "Month of the year (01..12)", extractMonthNumber},
	{"%M", "Minute of the hour (00..59)", extractMinute},
	{"%P", "Meridian indicator, uppercase (AM or PM)", extractMeridianUpper},
	{"%p", "Meridian indicator, lowercase (am or pm)", extractMeridianLower},
	{"%q", "Abbreviated meridian indicator, lowercase (a or p)", extractMeridianShort},
	{"%S", "Second of the minute (0..60)", extractSecond},
	{"%w", "Day of the week, Sunday is 0 (0..6)", extractWeekdayNumber},
	{"%y", "Year without a century", extractShortYear},
	{"%Y", "Year with century", extractYear},
}

// Format replaces every recognized directive in pattern with the matching
// value of ts. Anything else, including unknown %-sequences, is copied
// through unchanged.
func Format(ts Timestamp, pattern string) string {
	if !strings.Contains(pattern, "%") {
		return pattern
	}

	var values [len(directives)]string
	for i := range directives {
		values[i] = directives[i].extract(ts)
	}

	result := pattern
	for i := range directives {
		result = strings.ReplaceAll(result, directives[i].Token, values[i])
	}
	return result
}

// FormatTime formats t as read in its own location.
func FormatTime(t time.Time, pattern string) string {
	return Format(FromTime(t), pattern)
}

// Directives lists the supported directives in substitution order.
func Directives() []Directive {
	list := make([]Directive, len(directives))
	copy(list, directives[:])
	return list
}

// Used returns the tokens of all directives occurring in pattern, in
// substitution order and without duplicates.
func Used(pattern string) []string {
	var tokens []string
	for i := range directives {
		if strings.Contains(pattern, directives[i].Token) {
			tokens = append(tokens, directives[i].Token)
		}
	}
	return tokens
}

// Lookup returns the directive registered for token.
func Lookup(token string) (Directive, bool) {
	for i := range directives {
		if directives[i].Token == token {
			return directives[i], true
		}
	}
	return Directive{}, false
}

// Extract evaluates a single directive against ts.
func (d Directive) Extract(ts Timestamp) string {
	if d.extract == nil {
		return d.Token
	}
	return d.extract(ts)
}
