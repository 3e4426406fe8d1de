package config

import (
	"github.com/knadh/koanf/providers/confmap"

	"github.com/julianstephens/growlog/internal/constants"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"store":    "",
		"user":     "local",
		"debug":    false,
		"locale":   "en",
		"messages": "",
		// empty means <config dir>/photos
		"photos_dir": "",
		"api": map[string]interface{}{
			"addr": constants.DefaultAPIAddr,
		},
		"watch": map[string]interface{}{
			"debounce_ms": int(constants.DefaultWatchDebounce.Milliseconds()),
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
