package config

import (
	"github.com/s0up4200/gyazo/gyazo"
)

// Overrides holds credential values given explicitly, eg. on the command line.
// The No* flags drop a credential entirely.
type Overrides struct {
	Cookie   string
	Device   string
	Key      string
	NoCookie bool
	NoDevice bool
	NoKey    bool
}

// Credentials merges explicit overrides over the configured credentials
func (c *Config) Credentials(o Overrides) gyazo.Credentials {
	return gyazo.Credentials{
		Cookie: pick(o.NoCookie, o.Cookie, c.Cookie),
		Device: pick(o.NoDevice, o.Device, c.Device),
		Key:    pick(o.NoKey, o.Key, c.Key),
	}
}

func pick(disabled bool, override, configured string) string {
	if disabled {
		return ""
	}
	if override != "" {
		return override
	}
	return configured
}

// UploadDefaults returns the upload intent configured for this snapshot
func (c *Config) UploadDefaults() gyazo.Upload {
	upload := gyazo.NewUpload(c.Upload.PublicMetadata)
	if c.Upload.App != "" {
		upload.App = c.Upload.App
	}
	return upload
}
