package config

import (
	"code.cloudfoundry.org/bytefmt"
	"fmt"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	Second = time.Second
	Minute = time.Minute
	Hour   = time.Hour
	Day    = 24 * Hour
	Week   = 7 * Day
	Month  = 30 * Day
	Year   = 365 * Day
)

const (
	FormatYaml = "yaml"
	FormatToml = "toml"
)

var (
	durationExpr = regexp.MustCompile(`^(-)?\s*` +
		`(?:([0-9]+)Y)?\s*` +
		`(?:([0-9]+)M)?\s*` +
		`(?:([0-9]+)[wW])?\s*` +
		`(?:([0-9]+)[dD])?\s*` +
		`(?:([0-9]+)h)?\s*` +
		`(?:([0-9]+)m)?\s*` +
		`(?:([0-9]+)s)?$`)
	// units of the capture groups of durationExpr after the sign
	durationUnits = []time.Duration{Year, Month, Week, Day, Hour, Minute, Second}

	interpolationExpr = regexp.MustCompile(`__\${(\w+)}__`)
)

// Raw is a parsed configuration document. Accessors return the zero value
// for missing or mistyped keys.
type Raw map[string]interface{}

// ParseFromString parses a YAML document held in a string.
func ParseFromString(content string) (Raw, error) {
	return ParseFormat(strings.NewReader(content), FormatYaml)
}

// ParseFormat reads a document in the given format, "yaml" or "toml".
func ParseFormat(reader io.Reader, format string) (Raw, error) {
	switch format {
	case FormatYaml:
		var out map[string]interface{}
		if err := yaml.NewDecoder(reader).Decode(&out); err != nil && err != io.EOF {
			return nil, err
		}
		return out, nil
	case FormatToml:
		tree, err := toml.LoadReader(reader)
		if err != nil {
			return nil, err
		}
		return tree.ToMap(), nil
	}
	return nil, fmt.Errorf("unsupported configuration format '%s'", format)
}

func (c Raw) Sub(key string) Raw {
	switch v := c[key].(type) {
	case Raw:
		return v
	case map[string]interface{}:
		return v
	case map[interface{}]interface{}:
		sub := make(Raw, len(v))
		for k, elem := range v {
			if name, ok := k.(string); ok {
				sub[name] = elem
			}
		}
		return sub
	}
	return nil
}

func (c Raw) Has(key string) bool {
	_, exists := c[key]
	return exists
}

func (c Raw) String(key string) string {
	return interpolate(asString(c[key]))
}

// StringSlice reads a list of strings. A single value is a list of one and
// empty entries are dropped.
func (c Raw) StringSlice(key string) []string {
	var items []interface{}
	switch v := c[key].(type) {
	case nil:
		return nil
	case []string:
		return v
	case []interface{}:
		items = v
	default:
		items = []interface{}{v}
	}

	var slice []string
	for _, item := range items {
		if s := interpolate(asString(item)); s != "" {
			slice = append(slice, s)
		}
	}
	return slice
}

func (c Raw) Bool(key string) bool {
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(interpolate(v))
		return b
	}
	return false
}

func (c Raw) Int64(key string) int64 {
	return asInt64(c[key])
}

// Bytes reads a size like "4KB" or "1 MB". Plain numbers are bytes.
func (c Raw) Bytes(key string) uint64 {
	s, ok := c[key].(string)
	if !ok {
		if n := asInt64(c[key]); n > 0 {
			return uint64(n)
		}
		return 0
	}

	s = strings.ReplaceAll(strings.ToUpper(interpolate(s)), " ", "")
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n
	}

	n, err := bytefmt.ToBytes(s)
	if err != nil {
		return 0
	}
	return n
}

// Duration accepts "1Y 2M 3w 4d 5h 6m 7s" in any subset, optionally with a
// leading "-". Plain numbers are days.
func (c Raw) Duration(key string) time.Duration {
	s, ok := c[key].(string)
	if !ok {
		return Day * time.Duration(asInt64(c[key]))
	}

	match := durationExpr.FindStringSubmatch(strings.TrimSpace(interpolate(s)))
	if match == nil {
		return 0
	}

	var duration time.Duration
	for i, unit := range durationUnits {
		if n, err := strconv.ParseInt(match[i+2], 10, 64); err == nil {
			duration += time.Duration(n) * unit
		}
	}

	if match[1] == "-" {
		return -duration
	}
	return duration
}

func asString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", val)
}

// asInt64 converts any integer kind, or a decimal string, to int64.
func asInt64(val interface{}) int64 {
	if s, ok := val.(string); ok {
		n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	}
	return 0
}

// interpolate replaces every __${NAME}__ with the value of the environment
// variable NAME. Unset variables expand to the empty string.
func interpolate(s string) string {
	return interpolationExpr.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(interpolationExpr.FindStringSubmatch(m)[1])
	})
}
