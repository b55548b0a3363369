package web

import (
	"github.com/gorilla/mux"
	"github.com/tatermelon/stftime/metrics"
	"net/http"
	"net/url"
)

var Router *mux.Router

func init() {
	Router = mux.NewRouter().UseEncodedPath()
	Router.StrictSlash(true)
	Router.HandleFunc("/", BaseHandler)
	Router.Handle("/metrics", metrics.Handler())

	Router.HandleFunc("/api", PresetsHandler).Methods("GET")
	Router.HandleFunc("/api/directives", DirectivesHandler).Methods("GET")
	Router.HandleFunc("/api/directives/{token}", DirectiveHandler).Methods("GET")
	Router.HandleFunc("/api/format", FormatHandler).Methods("GET")
	Router.HandleFunc("/api/presets/{preset}", PresetHandler).Methods("GET")
	Router.HandleFunc("/api/sinks", SinksHandler).Methods("GET")
	Router.HandleFunc("/api/sinks/{sink}", PublishedHandler).Methods("GET")
}

// Base route to access the API Documentation.
func BaseHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api", http.StatusMovedPermanently)
}

func PresetsHandler(w http.ResponseWriter, r *http.Request) {
	GetPresets(w)
}

func DirectivesHandler(w http.ResponseWriter, r *http.Request) {
	GetDirectives(w)
}

func DirectiveHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unescape(vars)

	GetDirective(w, vars["token"], r.URL.Query().Get("at"))
}

func FormatHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	Format(w, query.Get("pattern"), query.Get("at"))
}

func PresetHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unescape(vars)

	RenderPreset(w, vars["preset"])
}

func SinksHandler(w http.ResponseWriter, r *http.Request) {
	GetSinks(w)
}

func PublishedHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unescape(vars)

	GetPublished(w, r, vars["sink"])
}

func presetNotFound(w http.ResponseWriter, preset string) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`Preset '`))
	_, _ = w.Write([]byte(preset))
	_, _ = w.Write([]byte(`' does not exist.`))
}

func directiveNotFound(w http.ResponseWriter, token string) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`Directive '`))
	_, _ = w.Write([]byte(token))
	_, _ = w.Write([]byte(`' does not exist.`))
}

func sinkNotFound(w http.ResponseWriter, sink string) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`Sink '`))
	_, _ = w.Write([]byte(sink))
	_, _ = w.Write([]byte(`' does not exist.`))
}

func unescape(vars map[string]string) {
	for key, val := range vars {
		val, err := url.PathUnescape(val)
		if err == nil {
			vars[key] = val
		}
	}
}
