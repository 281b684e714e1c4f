package detector

import "poelauncher/pkg/config"

// Key identifies a program the detector knows how to find
type Key string

const (
	KeySteam       Key = "steam"
	KeyStandalone  Key = "standalone"
	KeySteamPoe    Key = "steam_poe"
	KeyAwakened    Key = "awakened"
	KeyLurker      Key = "lurker"
	KeyChaosRecipe Key = "chaos_recipe"
)

// AllKeys lists every key in declaration order
var AllKeys = []Key{KeySteam, KeyStandalone, KeySteamPoe, KeyAwakened, KeyLurker, KeyChaosRecipe}

// DisplayName returns the program name shown to users
func (k Key) DisplayName() string {
	switch k {
	case KeySteam:
		return "Steam"
	case KeyStandalone:
		return "Path of Exile (Standalone)"
	case KeySteamPoe:
		return "Path of Exile (Steam)"
	case KeyAwakened:
		return config.CompanionAwakened.DisplayName()
	case KeyLurker:
		return config.CompanionLurker.DisplayName()
	case KeyChaosRecipe:
		return config.CompanionChaosRecipe.DisplayName()
	default:
		return string(k)
	}
}

// Result maps keys to absolute executable paths found during one pass
type Result map[Key]string

// SetIfAbsent records path for k unless k is already set or path is empty.
// It reports whether the value was stored.
func (r Result) SetIfAbsent(k Key, path string) bool {
	if path == "" {
		return false
	}
	if _, exists := r[k]; exists {
		return false
	}
	r[k] = path
	return true
}

// Has reports whether k has been found
func (r Result) Has(k Key) bool {
	_, ok := r[k]
	return ok
}

// Merge copies the keys of other that r does not have yet, in declaration
// order, so an earlier stage always wins.
func (r Result) Merge(other Result) {
	for _, k := range AllKeys {
		if v, ok := other[k]; ok {
			r.SetIfAbsent(k, v)
		}
	}
}

// Pending returns the keys of AllKeys not yet present, in declaration order
func (r Result) Pending() []Key {
	var pending []Key
	for _, k := range AllKeys {
		if !r.Has(k) {
			pending = append(pending, k)
		}
	}
	return pending
}

// StageOutcome is the result of one scanning stage: either the keys it found,
// or the reason it failed. A failed stage contributes nothing.
type StageOutcome struct {
	Stage   string `json:"stage"`
	Found   Result `json:"found,omitempty"`
	Err     error  `json:"-"`
	Skipped bool   `json:"skipped,omitempty"`
}

// OK reports whether the stage ran without failing
func (o StageOutcome) OK() bool {
	return o.Err == nil
}

// Report describes one detection pass
type Report struct {
	Found   Result         `json:"found"`
	Stages  []StageOutcome `json:"stages"`
	Applied []Key          `json:"applied,omitempty"`
}

// Count returns the number of programs found
func (r Report) Count() int {
	return len(r.Found)
}

// Failed returns the outcomes of stages that failed
func (r Report) Failed() []StageOutcome {
	var failed []StageOutcome
	for _, s := range r.Stages {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}

// Hints carries values from the current configuration that can seed a pass
// without handing the whole config to the scanning goroutine.
type Hints struct {
	// SteamPath is the user's configured Steam executable. The library stage
	// falls back to it when no earlier stage located Steam.
	SteamPath string
}

// HintsFrom extracts the hints for cfg
func HintsFrom(cfg *config.Config) Hints {
	if cfg == nil {
		return Hints{}
	}
	return Hints{SteamPath: cfg.SteamPath}
}
