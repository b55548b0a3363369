package preset

import (
	"github.com/gorhill/cronexpr"
	"github.com/tatermelon/stftime/strftime"
	"time"
)

// Preset is a named format pattern from the configuration.
type Preset struct {
	Name     string        `json:"name"`
	SafeName string        `json:"safe_name"`
	Pattern  string        `json:"pattern"`
	Object   string        `json:"object"`
	Offset   time.Duration `json:"offset"`
	// Cron is the schedule as written in the configuration.
	Cron     string               `json:"schedule,omitempty"`
	Schedule *cronexpr.Expression `json:"-"`
	Sinks    []string             `json:"sinks,omitempty"`
}

// Rendering is the output of a preset for one instant.
type Rendering struct {
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
	Text   string    `json:"text"`
	Object string    `json:"object"`
}

// Instant is the moment a preset renders for when asked at now: now in loc,
// moved back to the latest schedule tick if there is a schedule, then
// shifted by Offset.
func (p *Preset) Instant(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}

	if p.Schedule != nil {
		if previous := FindPrevious(p.Schedule, now); !previous.IsZero() {
			now = previous
		}
	}

	return now.Add(p.Offset)
}

// Render formats the pattern and the object name for the preset's instant.
func (p *Preset) Render(now time.Time, loc *time.Location) *Rendering {
	at := p.Instant(now, loc)
	ts := strftime.FromTime(at)

	return &Rendering{
		Name:   p.Name,
		At:     at,
		Text:   strftime.Format(ts, p.Pattern),
		Object: strftime.Format(ts, p.Object),
	}
}

// Directives lists the directive tokens used by the pattern and the object
// name together.
func (p *Preset) Directives() []string {
	return strftime.Used(p.Pattern + "\x00" + p.Object)
}

type Presets []*Preset

// Find matches either the configured name or its URL-safe form.
func (presets Presets) Find(name string) *Preset {
	for _, p := range presets {
		if p.Name == name || p.SafeName == name {
			return p
		}
	}
	return nil
}

// UsingSink returns all presets publishing to the named sink.
func (presets Presets) UsingSink(sink string) Presets {
	var r Presets
	for _, p := range presets {
		for _, s := range p.Sinks {
			if s == sink {
				r = append(r, p)
				break
			}
		}
	}
	return r
}
