package strftime

import (
	"fmt"
	"time"

	pystrftime "github.com/tebeka/strftime"
)

// Timestamp is the calendar view the formatter reads from. Month is 0-based
// (0 = January), Weekday is 0 = Sunday, Second may be 60 for a leap second.
// Implementations must keep every accessor within its documented range.
type Timestamp interface {
	Year() int
	Month() int
	Day() int
	Weekday() int
	Hour() int
	Minute() int
	Second() int
	// Local is the default human-readable date and time, used for %c.
	Local() string
}

// FromTime adapts t. Fields are read in t's own location; no conversion
// takes place.
func FromTime(t time.Time) Timestamp {
	return timeStamp{t: t}
}

type timeStamp struct {
	t time.Time
}

func (s timeStamp) Year() int    { return s.t.Year() }
func (s timeStamp) Month() int   { return int(s.t.Month()) - 1 }
func (s timeStamp) Day() int     { return s.t.Day() }
func (s timeStamp) Weekday() int { return int(s.t.Weekday()) }
func (s timeStamp) Hour() int    { return s.t.Hour() }
func (s timeStamp) Minute() int  { return s.t.Minute() }
func (s timeStamp) Second() int  { return s.t.Second() }

func (s timeStamp) Local() string {
	str, err := pystrftime.Format("%c", s.t)
	if err != nil {
		return s.t.Format(time.RFC1123)
	}
	return str
}

// Fields is a Timestamp built from plain calendar values. It can hold
// instants a time.Time cannot express as-is, such as second 60.
type Fields struct {
	year    uint16
	month   uint8
	day     uint8
	weekday uint8
	hour    uint8
	minute  uint8
	second  uint8
}

// NewFields validates the given values and derives the weekday from the
// date. month is 1-based here, like time.Month.
func NewFields(year, month, day, hour, minute, second int) (Fields, error) {
	if year < 0 || year > 9999 {
		return Fields{}, fmt.Errorf("year %d out of range 0..9999", year)
	}
	if month < 1 || month > 12 {
		return Fields{}, fmt.Errorf("month %d out of range 1..12", month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Fields{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	if hour < 0 || hour > 23 {
		return Fields{}, fmt.Errorf("hour %d out of range 0..23", hour)
	}
	if minute < 0 || minute > 59 {
		return Fields{}, fmt.Errorf("minute %d out of range 0..59", minute)
	}
	if second < 0 || second > 60 {
		return Fields{}, fmt.Errorf("second %d out of range 0..60", second)
	}

	weekday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()

	return Fields{
		year:    uint16(year),
		month:   uint8(month - 1),
		day:     uint8(day),
		weekday: uint8(weekday),
		hour:    uint8(hour),
		minute:  uint8(minute),
		second:  uint8(second),
	}, nil
}

func daysIn(year int, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (f Fields) Year() int    { return int(f.year) }
func (f Fields) Month() int   { return int(f.month) }
func (f Fields) Day() int     { return int(f.day) }
func (f Fields) Weekday() int { return int(f.weekday) }
func (f Fields) Hour() int    { return int(f.hour) }
func (f Fields) Minute() int  { return int(f.minute) }
func (f Fields) Second() int  { return int(f.second) }

// Local renders the RFC1123 layout from the fields themselves, so a leap
// second shows up as :60.
func (f Fields) Local() string {
	return fmt.Sprintf("%s, %02d %s %04d %02d:%02d:%02d UTC",
		abbreviatedDays[f.weekday],
		f.day,
		abbreviatedMonths[f.month],
		f.year,
		f.hour,
		f.minute,
		f.second)
}
