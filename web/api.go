package web

import (
	"encoding/json"
	"fmt"
	"github.com/tatermelon/stftime/metrics"
	"github.com/tatermelon/stftime/storage"
	"github.com/tatermelon/stftime/strftime"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Location is where "now" is taken for format requests without an instant.
var Location = time.Local

// MaxPatternSize limits the pattern accepted by the format endpoint, in bytes.
var MaxPatternSize uint64 = 4096

func GetPresets(w http.ResponseWriter) {
	presets := storage.GetPresets()
	if presets == nil {
		// an empty list, not null
		writeData(w, []interface{}{})
		return
	}

	writeData(w, presets)
}

func GetDirectives(w http.ResponseWriter) {
	writeData(w, strftime.Directives())
}

// instantOf parses the optional unix seconds of a request. Without them it
// is now.
func instantOf(at string) (time.Time, error) {
	if at == "" {
		return time.Now().In(Location), nil
	}

	seconds, err := strconv.ParseInt(at, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(seconds, 0).In(Location), nil
}

func badInstant(w http.ResponseWriter, at string) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = fmt.Fprintf(w, "Parameter 'at' must be unix seconds, got '%s'.", at)
}

func Format(w http.ResponseWriter, pattern string, at string) {
	if uint64(len(pattern)) > MaxPatternSize {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = fmt.Fprintf(w, "Pattern exceeds %d bytes.", MaxPatternSize)
		return
	}

	instant, err := instantOf(at)
	if err != nil {
		badInstant(w, at)
		return
	}

	text := strftime.FormatTime(instant, pattern)
	metrics.GetRenderMetrics().Rendered(metrics.SourceApi, pattern, strftime.Used(pattern))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

type directiveValue struct {
	strftime.Directive
	Value string `json:"value"`
}

// GetDirective evaluates a single directive. The leading '%' of token is
// optional.
func GetDirective(w http.ResponseWriter, token string, at string) {
	if !strings.HasPrefix(token, "%") {
		token = "%" + token
	}

	directive, ok := strftime.Lookup(token)
	if !ok {
		directiveNotFound(w, token)
		return
	}

	instant, err := instantOf(at)
	if err != nil {
		badInstant(w, at)
		return
	}

	metrics.GetRenderMetrics().Rendered(metrics.SourceApi, token, []string{token})

	writeData(w, directiveValue{
		Directive: directive,
		Value:     directive.Extract(strftime.FromTime(instant)),
	})
}

type sinkInfo struct {
	Name    string   `json:"name"`
	Presets []string `json:"presets"`
}

func GetSinks(w http.ResponseWriter) {
	presets := storage.GetPresets()
	sinks := []sinkInfo{}

	for _, name := range storage.GetSinkNames() {
		info := sinkInfo{Name: name, Presets: []string{}}
		for _, p := range presets.UsingSink(name) {
			info.Presets = append(info.Presets, p.Name)
		}
		sinks = append(sinks, info)
	}

	writeData(w, sinks)
}

// GetPublished lists the objects stored in a sink.
func GetPublished(w http.ResponseWriter, r *http.Request, sinkName string) {
	known := false
	for _, name := range storage.GetSinkNames() {
		if name == sinkName {
			known = true
			break
		}
	}
	if !known {
		sinkNotFound(w, sinkName)
		return
	}

	objects, err := storage.Published(r.Context(), sinkName)
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(err.Error()))
		return
	}
	if objects == nil {
		objects = []string{}
	}

	writeData(w, objects)
}

func RenderPreset(w http.ResponseWriter, name string) {
	p := storage.FindPreset(name)
	if p == nil {
		presetNotFound(w, name)
		return
	}

	rendering := p.Render(time.Now(), Location)
	metrics.GetRenderMetrics().Rendered(metrics.SourcePreset, p.Pattern, p.Directives())

	writeData(w, rendering)
}

func writeData(w http.ResponseWriter, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		errStr := err.Error()
		_, _ = w.Write([]byte(errStr))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, err = w.Write(b)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
