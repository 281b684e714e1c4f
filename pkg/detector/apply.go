package detector

import "poelauncher/pkg/config"

// field returns the config field a key is stored in. The Steam copy of the
// game has its own cached slot and never lands in StandalonePath.
func field(cfg *config.Config, k Key) *string {
	switch k {
	case KeySteam:
		return &cfg.SteamPath
	case KeyStandalone:
		return &cfg.StandalonePath
	case KeySteamPoe:
		return &cfg.SteamPoePath
	case KeyAwakened:
		return &cfg.AwakenedPath
	case KeyLurker:
		return &cfg.LurkerPath
	case KeyChaosRecipe:
		return &cfg.ChaosRecipePath
	}
	return nil
}

// Apply writes found into cfg. Without force a value only fills an empty
// field; with force it replaces whatever is there. The Steam game path is
// always replaced by the latest finding. Keys are visited in declaration
// order and the ones whose value changed are returned.
func Apply(cfg *config.Config, found Result, force bool) []Key {
	var changed []Key
	for _, k := range AllKeys {
		value, ok := found[k]
		if !ok || value == "" {
			continue
		}
		dst := field(cfg, k)
		if dst == nil {
			continue
		}
		if k != KeySteamPoe && !force && *dst != "" {
			continue
		}
		if *dst != value {
			*dst = value
			changed = append(changed, k)
		}
	}
	return changed
}
