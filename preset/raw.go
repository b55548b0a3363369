package preset

import (
	"fmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/gorhill/cronexpr"
	log "github.com/sirupsen/logrus"
	"github.com/tatermelon/stftime/config"
	"sort"
	"time"
)

// DefaultsKey names the entry in the presets section whose values every
// other preset inherits.
const DefaultsKey = "defaults"

const defaultObjectSuffix = ".txt"

type Defaults struct {
	Cron     string
	Schedule *cronexpr.Expression
	Object   string
	Offset   time.Duration
	Sinks    []string
}

// ParsePresets turns the `presets:` section into presets sorted by name.
func ParsePresets(cfg config.Raw) (Presets, error) {
	if cfg == nil {
		return nil, nil
	}

	defaults, err := parseDefaults(cfg.Sub(DefaultsKey))
	if err != nil {
		return nil, err
	}

	var presets Presets
	aliases := make(map[string]struct{})

	for name := range cfg {
		if name == DefaultsKey {
			continue
		}

		p, err := parsePreset(cfg.Sub(name), name, defaults)
		if err != nil {
			return nil, err
		}

		if _, exists := aliases[p.SafeName]; exists {
			return nil, fmt.Errorf("cannot have multiple presets with the alias '%s'", p.SafeName)
		}
		aliases[p.SafeName] = struct{}{}

		presets = append(presets, p)
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})

	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("Parsed presets: %s", spew.Sdump(presets))
	}

	return presets, nil
}

func parsePreset(cfg config.Raw, name string, defaults *Defaults) (*Preset, error) {
	if cfg == nil {
		return nil, fmt.Errorf("preset '%s' has no settings", name)
	}

	if !cfg.Has("pattern") {
		return nil, fmt.Errorf("preset '%s' has no pattern", name)
	}

	p := &Preset{
		Name:    name,
		Pattern: cfg.String("pattern"),
	}

	if defaults != nil {
		p.Cron = defaults.Cron
		p.Schedule = defaults.Schedule
		p.Object = defaults.Object
		p.Offset = defaults.Offset
		p.Sinks = defaults.Sinks
	}

	alias := name
	if cfg.Has("alias") {
		alias = cfg.String("alias")
	}

	var legal bool
	p.SafeName, legal = MakeLegalAlias(alias)

	if !legal {
		log.Warnf("The preset alias '%s' contained non-url characters, its name will be '%s' in urls", alias, p.SafeName)
	}

	if cfg.Has("schedule") {
		schedule, err := cronexpr.Parse(cfg.String("schedule"))
		if err != nil {
			return nil, fmt.Errorf("preset '%s' has an invalid schedule: %w", name, err)
		}
		p.Cron = cfg.String("schedule")
		p.Schedule = schedule
	}

	if cfg.Has("object") {
		p.Object = cfg.String("object")
	}

	if p.Object == "" {
		p.Object = p.SafeName + defaultObjectSuffix
	}

	if cfg.Has("offset") {
		p.Offset = cfg.Duration("offset")
	}

	if cfg.Has("sinks") {
		p.Sinks = cfg.StringSlice("sinks")
	}

	return p, nil
}

func parseDefaults(cfg config.Raw) (*Defaults, error) {
	if cfg == nil {
		return nil, nil
	}

	defaults := &Defaults{
		Object: cfg.String("object"),
		Offset: cfg.Duration("offset"),
		Sinks:  cfg.StringSlice("sinks"),
	}

	if cfg.Has("schedule") {
		schedule, err := cronexpr.Parse(cfg.String("schedule"))
		if err != nil {
			return nil, fmt.Errorf("preset defaults have an invalid schedule: %w", err)
		}
		defaults.Cron = cfg.String("schedule")
		defaults.Schedule = schedule
	}

	return defaults, nil
}
