package platform

import (
	"sync"

	"github.com/brutella/hc/log"

	"github.com/cloudkucooland/hdfd/config"
)

// Control is the interface which all platforms must satisfy
type Control interface {
	Startup(config.Config) Control
	Background()
	Shutdown() Control
}

type entry struct {
	name    string
	control Control
}

var (
	mu        sync.Mutex
	platforms []entry
)

// RegisterPlatform is called whenever a new platform is instantiated.
// Platforms start in registration order and shut down in reverse.
func RegisterPlatform(name string, control Control) {
	mu.Lock()
	defer mu.Unlock()
	if indexOf(name) < 0 {
		platforms = append(platforms, entry{name: name, control: control})
	}
}

// GetPlatform looks up a registered platform by name
func GetPlatform(name string) (Control, bool) {
	mu.Lock()
	defer mu.Unlock()
	i := indexOf(name)
	if i < 0 {
		return nil, false
	}
	return platforms[i].control, true
}

func indexOf(name string) int {
	for i, e := range platforms {
		if e.name == name {
			return i
		}
	}
	return -1
}

// ShutdownAllPlatforms is called at process stop to shutdown all platforms
func ShutdownAllPlatforms() {
	mu.Lock()
	defer mu.Unlock()
	for i := len(platforms) - 1; i >= 0; i-- {
		log.Debug.Printf("shutting down: %s", platforms[i].name)
		platforms[i].control = platforms[i].control.Shutdown()
	}
}

// StartupAllPlatforms is called at process start to initialize all platforms
func StartupAllPlatforms(c config.Config) {
	mu.Lock()
	defer mu.Unlock()
	for i := range platforms {
		log.Debug.Printf("starting up: %s", platforms[i].name)
		platforms[i].control = platforms[i].control.Startup(c)
	}
}

// Background starts the background processes for every platform
func Background() {
	mu.Lock()
	defer mu.Unlock()
	for _, e := range platforms {
		e.control.Background()
	}
}

// Reset forgets every registered platform.
func Reset() {
	mu.Lock()
	platforms = nil
	mu.Unlock()
}
