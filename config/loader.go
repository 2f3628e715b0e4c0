package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultMaxQueuePerEncoder mirrors the original's per-encoder queue
// budget: encoderCount*256, capped to 255 once encoderCount exceeds 15
// (transcode.NewStream applies the cap).
const DefaultMaxQueuePerEncoder = 256

// Load reads and parses an Application config from a JSON file, mirroring
// the teacher's LoadConfigFile(path) shape.
func Load(path string) (*Application, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	app := &Application{}
	if err := json.Unmarshal(file, app); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	SetDefaults(app)
	return app, nil
}

// SetDefaults clamps/normalizes an Application the way the teacher's
// SetDefaultConfig clamps AppConfig_ fields — no dependent subsystem
// should have to re-derive these defaults itself. A negative MaxQueue
// is nonsensical, not an override, so it's clamped to 0 ("derive from
// encoder count").
func SetDefaults(app *Application) {
	if app.MaxQueue < 0 {
		app.MaxQueue = 0
	}
}
