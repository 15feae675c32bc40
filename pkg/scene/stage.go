package scene

import "sync"

// Stage owns the collection of currently-displayed buildings. The
// original list was a package-level mutable slice; the stage makes the
// swap explicit: Swap replaces the whole collection at once, so readers
// observe either the previous scene or the next one, never a partially
// built mix.
type Stage struct {
	mu      sync.RWMutex
	scene   *Scene
	visible int
}

// NewStage returns an empty stage.
func NewStage() *Stage {
	return &Stage{}
}

// Swap installs a new scene, discarding whatever was displayed. It
// returns the previous scene so the caller can dispose renderer
// resources for it. Nothing from the new scene is visible until
// revealed.
func (st *Stage) Swap(s Scene) *Scene {
	st.mu.Lock()
	defer st.mu.Unlock()
	prev := st.scene
	st.scene = &s
	st.visible = 0
	return prev
}

// Reveal marks the next building visible and returns it. The second
// result is false once every building is showing or no scene is
// staged.
func (st *Stage) Reveal() (Building, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.scene == nil || st.visible >= len(st.scene.Buildings) {
		return Building{}, false
	}
	b := st.scene.Buildings[st.visible]
	st.visible++
	return b, true
}

// Visible returns a copy of the buildings revealed so far.
func (st *Stage) Visible() []Building {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.scene == nil {
		return nil
	}
	out := make([]Building, st.visible)
	copy(out, st.scene.Buildings[:st.visible])
	return out
}

// Len returns the number of buildings in the staged scene.
func (st *Stage) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.scene == nil {
		return 0
	}
	return len(st.scene.Buildings)
}
