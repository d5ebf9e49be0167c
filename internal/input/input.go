package input

import "sync"

// Action represents a logical command, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionToggleReducedMotion
	ActionResetView
	ActionSnapshot
	ActionToggleProfiling
	ActionCount // Sentinel value for array sizing
)

// Key and key state values use GLFW's numbering; the platform layer passes
// them through unchanged so this package stays free of cgo.
type Key int

const (
	Release = 0
	Press   = 1
	Repeat  = 2
)

// InputManager maps physical keys to logical actions and tracks edges between
// event pumps.
type InputManager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions map[Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
}

// NewInputManager creates an InputManager with no bindings
func NewInputManager() *InputManager {
	return &InputManager{
		keyToActions: make(map[Key][]Action),
	}
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (im *InputManager) BindKey(key Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key Key, state int) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}

	isPressed := state == Press || state == Repeat
	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// JustPressed returns true only if the action was pressed since the last
// PostUpdate
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// IsActive returns true if the action is currently held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// PostUpdate clears edge flags; call it once the pressed actions have been
// handled.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := Action(0); i < ActionCount; i++ {
		im.justPressed[i] = false
	}
}
