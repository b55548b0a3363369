package strftime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Monday, 2015-01-19 14:05:09
var sample = time.Date(2015, time.January, 19, 14, 5, 9, 0, time.UTC)

func Test_Format_monthDayYear(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("January 19, 2015", FormatTime(sample, "%B %d, %Y"))
}

func Test_Format_weekdayAndClock(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("Mon 14:05:09", FormatTime(sample, "%a %H:%M:%S"))
}

func Test_Format_afternoon(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("15", FormatTime(sample, "%y"))
	assertion.Equal("2", FormatTime(sample, "%I"))
	assertion.Equal("PM", FormatTime(sample, "%P"))
	assertion.Equal("pm", FormatTime(sample, "%p"))
	assertion.Equal("p", FormatTime(sample, "%q"))
}

func Test_Format_everyDirective(t *testing.T) {
	assertion := assert.New(t)

	expected := map[string]string{
		"%a": "Mon",
		"%A": "Monday",
		"%b": "Jan",
		"%B": "January",
		"%c": "Mon, 19 Jan 2015 14:05:09 UTC",
		"%d": "19",
		"%D": "19",
		"%H": "14",
		"%I": "2",
		"%m": "01",
		"%M": "05",
		"%P": "PM",
		"%p": "pm",
		"%q": "p",
		"%S": "9",
		"%w": "1",
		"%y": "15",
		"%Y": "2015",
	}

	for token, value := range expected {
		assertion.Equal(value, FormatTime(sample, token), token)
	}
}

func Test_Format_noonIsMorning(t *testing.T) {
	assertion := assert.New(t)
	noon := time.Date(2015, time.January, 19, 12, 30, 0, 0, time.UTC)

	assertion.Equal("AM", FormatTime(noon, "%P"))
	assertion.Equal("am", FormatTime(noon, "%p"))
	assertion.Equal("a", FormatTime(noon, "%q"))
	assertion.Equal("0", FormatTime(noon, "%I"))
}

func Test_Format_midnight(t *testing.T) {
	assertion := assert.New(t)
	midnight := time.Date(2015, time.January, 19, 0, 0, 0, 0, time.UTC)

	assertion.Equal("0 0 AM", FormatTime(midnight, "%H %I %P"))
}

func Test_Format_oneOClockIsAfternoon(t *testing.T) {
	assertion := assert.New(t)
	one := time.Date(2015, time.January, 19, 13, 0, 0, 0, time.UTC)

	assertion.Equal("1 PM", FormatTime(one, "%I %P"))
}

func Test_Format_shortYearKeepsLeadingZero(t *testing.T) {
	assertion := assert.New(t)
	ts := time.Date(2009, time.March, 1, 0, 0, 0, 0, time.UTC)

	assertion.Equal("09", FormatTime(ts, "%y"))
}

func Test_Format_shortYearOfSingleDigitYear(t *testing.T) {
	assertion := assert.New(t)
	ts, err := NewFields(9, 1, 1, 0, 0, 0)

	assertion.NoError(err)
	assertion.Equal("9", Format(ts, "%y"))
	assertion.Equal("9", Format(ts, "%Y"))
}

func Test_Format_unpaddedAndPaddedDay(t *testing.T) {
	assertion := assert.New(t)
	ts := time.Date(2021, time.July, 4, 8, 3, 0, 0, time.UTC)

	assertion.Equal("4 04 07 03 8 0", FormatTime(ts, "%d %D %m %M %H %S"))
}

func Test_Format_unknownDirectiveIsKept(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("%x is unknown", FormatTime(sample, "%x is unknown"))
	assertion.Equal("100%", FormatTime(sample, "100%"))
	assertion.Equal("%", FormatTime(sample, "%"))
}

func Test_Format_emptyPattern(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("", FormatTime(sample, ""))
}

func Test_Format_literalTextIsUnchanged(t *testing.T) {
	assertion := assert.New(t)

	patterns := []string{
		"plain text",
		"2015-01-19",
		"a B c D",
		"äöü ✓ 日本",
		"{{name}} ${var}",
	}

	for hour := 0; hour < 24; hour++ {
		ts := sample.Add(time.Duration(hour) * time.Hour)
		for _, pattern := range patterns {
			assertion.Equal(pattern, FormatTime(ts, pattern))
		}
	}
}

func Test_Format_replacesEveryOccurrence(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("2015/2015/2015", FormatTime(sample, "%Y/%Y/%Y"))
	assertion.Equal("Mon-Monday-Mon", FormatTime(sample, "%a-%A-%a"))
}

func Test_Format_rewritesProgressively(t *testing.T) {
	assertion := assert.New(t)

	// "%%a" becomes "%Mon" first, which then matches %M.
	assertion.Equal("05on", FormatTime(sample, "%%a"))
}

func Test_Format_isoDateShape(t *testing.T) {
	assertion := assert.New(t)

	moment := time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC)
	for i := 0; i < 400; i++ {
		moment = moment.Add(61*time.Hour + 7*time.Minute)
		assertion.Regexp(`^\d{4}-\d{2}-\d{2}$`, FormatTime(moment, "%Y-%m-%D"))
	}
}

func Test_Format_readsFieldsInOwnLocation(t *testing.T) {
	assertion := assert.New(t)
	loc := time.FixedZone("UTC+10", 10*60*60)

	// 2015-01-19 14:05:09 UTC is already the 20th in UTC+10
	assertion.Equal("20 0", FormatTime(sample.In(loc), "%d %H"))
}

func Test_Format_concurrentCallsAgree(t *testing.T) {
	assertion := assert.New(t)
	const pattern = "%A, %B %D %Y %H:%M:%S %P"
	expected := FormatTime(sample, pattern)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = FormatTime(sample, pattern)
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		assertion.Equal(expected, result)
	}
}

func Test_Directives_fixedOrder(t *testing.T) {
	assertion := assert.New(t)

	var tokens []string
	for _, directive := range Directives() {
		tokens = append(tokens, directive.Token)
		assertion.NotEmpty(directive.Description)
	}

	assertion.Equal([]string{
		"%a", "%A", "%b", "%B", "%c", "%d", "%D", "%H", "%I",
		"%m", "%M", "%P", "%p", "%q", "%S", "%w", "%y", "%Y",
	}, tokens)
}

func Test_Directives_returnsCopy(t *testing.T) {
	assertion := assert.New(t)

	list := Directives()
	list[0].Token = "%z"

	assertion.Equal("%a", Directives()[0].Token)
	assertion.Equal("Mon", FormatTime(sample, "%a"))
}

func Test_Used_listsRecognizedTokensOnce(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal([]string{"%d", "%H", "%M", "%Y"}, Used("%Y %H:%M %d %Y %x"))
	assertion.Empty(Used("no directives"))
}

func Test_Lookup(t *testing.T) {
	assertion := assert.New(t)

	directive, ok := Lookup("%B")
	assertion.True(ok)
	assertion.Equal("January", directive.Extract(FromTime(sample)))

	_, ok = Lookup("%x")
	assertion.False(ok)
}
