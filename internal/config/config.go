package config

import "sync"

// RuntimeSettings holds process-wide settings that may change while the
// background is running.
type RuntimeSettings struct {
	mu       sync.RWMutex
	fpsLimit int // frames per second, 0 = unlimited
	slowMS   int // frames slower than this are logged
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit: 60,
	slowMS:   16,
}

// GetFPSLimit returns the frame rate cap, 0 when uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Negative values disable the cap and
// anything above 240 is clamped.
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 240 {
		limit = 240
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetSlowFrameMS returns the frame duration above which a frame is reported
func GetSlowFrameMS() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.slowMS
}

// SetSlowFrameMS sets the slow-frame threshold, at least 1ms
func SetSlowFrameMS(ms int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if ms < 1 {
		ms = 1
	}
	globalRuntimeSettings.slowMS = ms
}
