package config

import (
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
	"time"
)

func Test_VariableInterpolation_1_detectsRegex(t *testing.T) {
	log.SetLevel(log.DebugLevel)
	assertion := assert.New(t)

	t.Setenv("MY_var", "SUCCESS")

	matchingExpression := "__${MY_var}__"
	sut := interpolate(matchingExpression)

	assertion.Equal("SUCCESS", sut)
}

func Test_VariableInterpolation_2_failing(t *testing.T) {
	log.SetLevel(log.DebugLevel)
	assertion := assert.New(t)

	failingExpression := "_-${MY_failing_expression}__"
	sut := interpolate(failingExpression)

	assertion.Equal(failingExpression, sut)
}

func Test_VariableInterpolation_3_failsRegexpWithDashes(t *testing.T) {
	log.SetLevel(log.DebugLevel)
	assertion := assert.New(t)

	failingExpression := "__${MY-var-with-DASHES}__"
	sut := interpolate(failingExpression)

	assertion.Equal(failingExpression, sut)
}

func Test_VariableInterpolation_4_EnvVariableMissing(t *testing.T) {
	log.SetLevel(log.DebugLevel)
	assertion := assert.New(t)

	matchingExpression := "__${my_missing_var}__"
	sut := interpolate(matchingExpression)

	assertion.Equal("", sut)
}

func Test_VariableInterpolation_5_interpolatesTemplateString(t *testing.T) {
	log.SetLevel(log.DebugLevel)
	assertion := assert.New(t)

	t.Setenv("S3_HOST", "s3.my-company.com")
	t.Setenv("S3_PORT", "1234")

	matchingExpression := "__${S3_HOST}__:__${S3_PORT}__"
	sut := interpolate(matchingExpression)

	assertion.Equal("s3.my-company.com:1234", sut)
}

func Test_VariableInterpolation_6_keepsStrftimeDirectives(t *testing.T) {
	assertion := assert.New(t)

	t.Setenv("APP", "billing")

	sut := interpolate("__${APP}__-%Y-%m-%D.txt")

	assertion.Equal("billing-%Y-%m-%D.txt", sut)
}

func Test_Raw_Duration(t *testing.T) {
	assertion := assert.New(t)

	raw, err := ParseFromString(`
plain: 2
hours: 5h
mixed: 1w 2d 3h
negative: -90m
garbage: soon
`)
	assertion.NoError(err)

	assertion.Equal(2*Day, raw.Duration("plain"))
	assertion.Equal(5*time.Hour, raw.Duration("hours"))
	assertion.Equal(Week+2*Day+3*time.Hour, raw.Duration("mixed"))
	assertion.Equal(-90*time.Minute, raw.Duration("negative"))
	assertion.Equal(time.Duration(0), raw.Duration("garbage"))
	assertion.Equal(time.Duration(0), raw.Duration("missing"))
}

func Test_Raw_Bytes(t *testing.T) {
	assertion := assert.New(t)

	raw, err := ParseFromString(`
kilo: 4KB
spaced: 1 MB
number: 512
`)
	assertion.NoError(err)

	assertion.Equal(uint64(4096), raw.Bytes("kilo"))
	assertion.Equal(uint64(1024*1024), raw.Bytes("spaced"))
	assertion.Equal(uint64(512), raw.Bytes("number"))
	assertion.Equal(uint64(0), raw.Bytes("missing"))
}

func Test_Raw_StringSlice_acceptsSingleValue(t *testing.T) {
	assertion := assert.New(t)

	raw, err := ParseFromString(`
many: [a, b]
one: c
`)
	assertion.NoError(err)

	assertion.Equal([]string{"a", "b"}, raw.StringSlice("many"))
	assertion.Equal([]string{"c"}, raw.StringSlice("one"))
	assertion.Nil(raw.StringSlice("missing"))
}

func Test_ParseFormat_toml(t *testing.T) {
	assertion := assert.New(t)

	raw, err := ParseFormat(strings.NewReader(`
port = 8080
update_interval = "2h"

[presets.daily]
pattern = "%Y-%m-%D"
sinks = ["archive"]
`), FormatToml)

	assertion.NoError(err)
	assertion.Equal(int64(8080), raw.Int64("port"))
	assertion.Equal(2*time.Hour, raw.Duration("update_interval"))

	daily := raw.Sub("presets").Sub("daily")
	assertion.NotNil(daily)
	assertion.Equal("%Y-%m-%D", daily.String("pattern"))
	assertion.Equal([]string{"archive"}, daily.StringSlice("sinks"))
}

func Test_ParseFormat_unknownFormat(t *testing.T) {
	assertion := assert.New(t)

	_, err := ParseFormat(strings.NewReader(""), "ini")

	assertion.Error(err)
}

func Test_Raw_Bool_interpolates(t *testing.T) {
	assertion := assert.New(t)

	t.Setenv("PATH_STYLE", "true")

	raw, err := ParseFromString(`
literal: true
from_env: __${PATH_STYLE}__
garbage: maybe
`)
	assertion.NoError(err)

	assertion.True(raw.Bool("literal"))
	assertion.True(raw.Bool("from_env"))
	assertion.False(raw.Bool("garbage"))
	assertion.False(raw.Bool("missing"))
}

func Test_Raw_Int64(t *testing.T) {
	assertion := assert.New(t)

	raw := Raw{"int": 80, "uint": uint16(443), "string": " 8080 ", "garbage": "port"}

	assertion.Equal(int64(80), raw.Int64("int"))
	assertion.Equal(int64(443), raw.Int64("uint"))
	assertion.Equal(int64(8080), raw.Int64("string"))
	assertion.Equal(int64(0), raw.Int64("garbage"))
}

func Test_ParseFromString_empty(t *testing.T) {
	assertion := assert.New(t)

	raw, err := ParseFromString("")

	assertion.NoError(err)
	assertion.Nil(raw.Sub("presets"))
}
