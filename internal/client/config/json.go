package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/passdoo/desktop-cli/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are plain integer seconds so the file stays hand-editable.
type JsonConfig struct {
	BaseURL         string `json:"base_url"`
	DeviceName      string `json:"device_name"`
	DatabasePath    string `json:"database_path"`
	PollIntervalSec int    `json:"poll_interval_sec"`
	PollMaxAttempts int    `json:"poll_max_attempts"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// the -c/-config flag. No file given means no overlay. Only non-zero
// fields override the defaults, so a partial file is fine.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DeviceName != "" {
		cfg.DeviceName = jc.DeviceName
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.PollIntervalSec > 0 {
		cfg.PollInterval = time.Duration(jc.PollIntervalSec) * time.Second
	}
	if jc.PollMaxAttempts > 0 {
		cfg.PollMaxAttempts = jc.PollMaxAttempts
	}
}
