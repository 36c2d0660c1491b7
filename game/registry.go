package game

import (
	"slices"

	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/beka-birhanu/vinom-sentinel/sight"
)

// Registry tracks the sentinels in play, in spawn order.
// It does not enforce one sentinel per cell; spawning does.
type Registry struct {
	agents []*Agent
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a to the registry.
func (r *Registry) Register(a *Agent) {
	r.agents = append(r.agents, a)
}

// Unregister removes a and reports whether it was present.
func (r *Registry) Unregister(a *Agent) bool {
	i := slices.Index(r.agents, a)
	if i < 0 {
		return false
	}
	r.agents = slices.Delete(slices.Clone(r.agents), i, i+1)
	return true
}

// Find returns the first sentinel standing on pos.
func (r *Registry) Find(pos maze.Position) (*Agent, bool) {
	for _, a := range r.agents {
		if a.pos == pos {
			return a, true
		}
	}
	return nil, false
}

// Agents returns a snapshot of the registered sentinels.
func (r *Registry) Agents() []*Agent {
	return slices.Clone(r.agents)
}

// Len returns the number of registered sentinels.
func (r *Registry) Len() int {
	return len(r.agents)
}

// Probe adapts Find for line-of-sight scans.
func (r *Registry) Probe() sight.Probe[*Agent] {
	return r.Find
}
