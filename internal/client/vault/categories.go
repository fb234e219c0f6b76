package vault

// categoryNames maps category keys to their display labels. Unknown keys
// render as themselves; an absent category falls into the "other" bucket.
var categoryNames = map[string]string{
	"web":         "Siti Web",
	"server":      "Server",
	"database":    "Database",
	"email":       "Email",
	"vpn":         "VPN",
	"wifi":        "WiFi",
	"api":         "API",
	"certificate": "Certificati",
	"ssh":         "SSH",
	"ftp":         "FTP",
	"other":       "Altro",
}

// CategoryDisplayName resolves the display label for a category key.
func CategoryDisplayName(key string) string {
	if name, ok := categoryNames[key]; ok {
		return name
	}
	if key == "" {
		return "Altro"
	}
	return key
}
