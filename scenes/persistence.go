package scenes

import (
	"encoding/json"

	"github.com/quasilyte/gdata"

	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/logger"
)

// SavedSettings is the sandbox state stored between runs.
type SavedSettings struct {
	TickRate    int    `json:"tickRate"`
	Interpolate bool   `json:"interpolate"`
	Level       string `json:"level"`
}

var gdataManager *gdata.Manager

// InitPersistence opens the per-user settings store.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "steadystep",
	})
	if err != nil {
		logger.L().Warn("could not initialize persistence", "err", err)
		return err
	}
	gdataManager = m
	return nil
}

// LoadSettings returns the stored settings, or nil when nothing was saved
// or the store is unavailable.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		logger.L().Warn("could not load settings", "err", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		logger.L().Warn("could not parse saved settings", "err", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings writes s to the store. It is a no-op without a store.
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		logger.L().Warn("could not serialize settings", "err", err)
		return err
	}
	if err := gdataManager.SaveItem("settings", data); err != nil {
		logger.L().Warn("could not save settings", "err", err)
		return err
	}
	return nil
}

// ApplySavedSettings copies stored values over the config defaults before
// the first scene is built. Invalid tick rates are ignored.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}
	if saved.TickRate > 0 {
		cfg.Simulation.TickRate = saved.TickRate
	}
	cfg.Render.Interpolate = saved.Interpolate
}
