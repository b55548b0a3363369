package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/tatermelon/stftime/config"
	"github.com/tatermelon/stftime/metrics"
	"github.com/tatermelon/stftime/preset"
	log "github.com/sirupsen/logrus"
)

var (
	sinks   = make(map[string]*sinkData)
	presets preset.Presets
	mutex   = &sync.Mutex{}
)

type sinkData struct {
	Client  Client
	metrics *metrics.SinkMetric
}

// InitializeConfiguration loads sinks and presets from the global configuration.
func InitializeConfiguration() error {
	cfg := config.GetInstance()

	parsed, err := preset.ParsePresets(cfg.Presets())
	if err != nil {
		return err
	}

	clients := make([]Client, 0, len(cfg.Sinks()))
	for _, sink := range cfg.Sinks() {
		clients = append(clients, NewClient(sink))
	}

	Initialize(clients, parsed)

	return nil
}

// Initialize replaces the registered sinks and presets.
func Initialize(clients []Client, p preset.Presets) {
	mutex.Lock()
	defer mutex.Unlock()

	for name, data := range sinks {
		data.metrics.Drop()
		delete(sinks, name)
	}

	for _, client := range clients {
		sinks[client.Name()] = &sinkData{
			Client:  client,
			metrics: metrics.NewSink(client.Name()),
		}
	}

	for _, pr := range p {
		for _, sinkName := range pr.Sinks {
			if _, exists := sinks[sinkName]; !exists {
				log.Warnf("Preset '%s' publishes to unknown sink '%s', it will be skipped there", pr.Name, sinkName)
			}
		}
	}

	presets = p
	metrics.GetApplicationMetrics().PresetsTotal.Set(float64(len(p)))
}

func GetPresets() preset.Presets {
	mutex.Lock()
	defer mutex.Unlock()

	return presets
}

func FindPreset(name string) *preset.Preset {
	return GetPresets().Find(name)
}

func GetSinkNames() []string {
	mutex.Lock()
	defer mutex.Unlock()

	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Published lists the objects currently stored in the named sink.
func Published(ctx context.Context, sinkName string) ([]string, error) {
	mutex.Lock()
	data, exists := sinks[sinkName]
	mutex.Unlock()

	if !exists {
		return nil, errors.Errorf("sink '%s' does not exist", sinkName)
	}

	return data.Client.List(ctx)
}

// Preview renders every preset without writing anything.
func Preview(now time.Time, loc *time.Location) []*preset.Rendering {
	var renderings []*preset.Rendering
	for _, p := range GetPresets() {
		renderings = append(renderings, p.Render(now, loc))
	}
	return renderings
}

type publishTarget struct {
	name    string
	data    *sinkData
	presets preset.Presets
}

// snapshot copies what a publish run needs, so sink writes happen without
// holding the lock.
func snapshot() (preset.Presets, []publishTarget) {
	mutex.Lock()
	defer mutex.Unlock()

	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	sort.Strings(names)

	targets := make([]publishTarget, 0, len(names))
	for _, name := range names {
		targets = append(targets, publishTarget{
			name:    name,
			data:    sinks[name],
			presets: presets.UsingSink(name),
		})
	}

	return presets, targets
}

// Publish renders each preset once and writes it to all of its sinks. It
// returns the number of objects that could not be written.
func Publish(ctx context.Context, now time.Time, loc *time.Location) int {
	all, targets := snapshot()

	renderings := make(map[string]*preset.Rendering, len(all))
	for _, p := range all {
		renderings[p.Name] = p.Render(now, loc)
		metrics.GetRenderMetrics().Rendered(metrics.SourcePublish, p.Pattern, p.Directives())
	}

	failures := 0
	for _, target := range targets {
		sinkFailures := 0

		for _, p := range target.presets {
			r := renderings[p.Name]

			err := target.data.Client.Put(ctx, r.Object, []byte(r.Text+"\n"))
			if err != nil {
				log.Errorf("Failed to publish preset '%s' to sink '%s': %s", p.Name, target.name, err)
				sinkFailures++
				continue
			}

			target.data.metrics.Written(p.Name, r.At)
		}

		target.data.metrics.Finished(sinkFailures, now)
		failures += sinkFailures
	}

	log.Infof("Published %d presets to %d sinks with %d failures", len(all), len(targets), failures)

	return failures
}
