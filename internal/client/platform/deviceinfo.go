package platform

import (
	"context"
	"encoding/json"
	"os"
	"runtime"

	"github.com/google/uuid"

	"github.com/passdoo/desktop-cli/internal/client/storage"
)

// deviceIDKey is the settings entry holding the stable per-install id.
const deviceIDKey = "device_id"

// DeviceInfo describes this installation for the init-auth payload.
type DeviceInfo struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	Hostname string `json:"hostname"`
	DeviceID string `json:"device_id"`
}

// DescribeDevice collects best-effort device metadata as a JSON string.
// The install id is generated once and persisted; every field that cannot
// be determined is simply left empty. Never fails.
func DescribeDevice(ctx context.Context, settings storage.SettingsRepository) string {
	info := DeviceInfo{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		DeviceID: installID(ctx, settings),
	}
	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return ""
	}
	return string(raw)
}

// installID returns the persisted per-install identifier, minting one on
// first use. Persistence failures degrade to a throwaway id.
func installID(ctx context.Context, settings storage.SettingsRepository) string {
	if raw, err := settings.Get(ctx, deviceIDKey); err == nil && len(raw) > 0 {
		return string(raw)
	}
	id := uuid.NewString()
	_ = settings.Set(ctx, deviceIDKey, []byte(id))
	return id
}
