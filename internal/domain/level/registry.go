package level

import "fmt"

// Registry owns every level descriptor for the lifetime of a game
// session. Entries are added during level generation and only removed
// in bulk when a new game starts. One backing slice carries the levels;
// two indices make both lookup keys cheap and iteration order explicit.
type Registry struct {
	levels  []*Level
	byName  map[string]*Level
	byDepth map[int]*Level
}

// NewRegistry creates an empty level registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Level),
		byDepth: make(map[int]*Level),
	}
}

// Register adds a level. Name and depth must both be unused.
func (r *Registry) Register(l *Level) error {
	if _, dup := r.byName[l.Name]; dup {
		return fmt.Errorf("level name %q already registered", l.Name)
	}
	if _, dup := r.byDepth[l.Depth]; dup {
		return fmt.Errorf("level depth %d already registered", l.Depth)
	}
	r.levels = append(r.levels, l)
	r.byName[l.Name] = l
	r.byDepth[l.Depth] = l
	return nil
}

// ByName returns the level with the given name, or nil.
func (r *Registry) ByName(name string) *Level {
	return r.byName[name]
}

// ByDepth returns the level at the given depth, or nil.
func (r *Registry) ByDepth(depth int) *Level {
	return r.byDepth[depth]
}

// All returns the levels in registration order.
func (r *Registry) All() []*Level {
	return r.levels
}

// Len returns the number of registered levels.
func (r *Registry) Len() int {
	return len(r.levels)
}

// Reset drops every level. Used only at new-game start.
func (r *Registry) Reset() {
	r.levels = nil
	r.byName = make(map[string]*Level)
	r.byDepth = make(map[int]*Level)
}
