package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
)

// Fog is linear distance fog: fragments closer than Near are unfogged, fragments beyond Far
// take the fog color, and the blend is linear in between.
type Fog struct {
	Color common.Color
	Near  float32
	Far   float32
}

type scene struct {
	mu *sync.RWMutex

	name       string
	background common.Color
	fog        *Fog

	// registry holds every node by ID; order keeps insertion order for traversal and draw order.
	registry map[uint64]game_object.GameObject
	order    []uint64
}

// Scene is the root of the scene graph. Nodes are direct children of the root;
// the root also carries the clear color and fog settings.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Background returns the clear color.
	//
	// Returns:
	//   - common.Color: the background color
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the background color
	SetBackground(c common.Color)

	// Fog returns the fog settings, or nil when fog is disabled.
	//
	// Returns:
	//   - *Fog: a copy of the fog settings or nil
	Fog() *Fog

	// SetFog sets linear fog. Passing nil disables fog.
	//
	// Parameters:
	//   - f: the fog settings or nil
	SetFog(f *Fog)

	// Add appends nodes to the root. Adding a node that is already a child is a no-op.
	//
	// Parameters:
	//   - objects: the nodes to add
	Add(objects ...game_object.GameObject)

	// Remove detaches a node from the root.
	//
	// Parameters:
	//   - obj: the node to remove
	//
	// Returns:
	//   - bool: true if the node was a child
	Remove(obj game_object.GameObject) bool

	// Clear detaches every node from the root.
	Clear()

	// Len returns the number of nodes attached to the root.
	//
	// Returns:
	//   - int: the node count
	Len() int

	// Children returns the attached nodes in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: the nodes
	Children() []game_object.GameObject

	// Traverse calls fn for every attached node in insertion order.
	// The node list is snapshotted first, so fn may add or remove nodes.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(game_object.GameObject))

	// Lights returns the lights attached to enabled nodes, in insertion order.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an empty scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		registry: make(map[uint64]game_object.GameObject),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Fog() *Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fog == nil {
		return nil
	}
	f := *s.fog
	return &f
}

func (s *scene) SetFog(f *Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f == nil {
		s.fog = nil
		return
	}
	cp := *f
	s.fog = &cp
}

func (s *scene) Add(objects ...game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		if _, ok := s.registry[obj.ID()]; ok {
			continue
		}
		s.registry[obj.ID()] = obj
		s.order = append(s.order, obj.ID())
	}
}

func (s *scene) Remove(obj game_object.GameObject) bool {
	if obj == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[obj.ID()]; !ok {
		return false
	}
	delete(s.registry, obj.ID())
	for i, id := range s.order {
		if id == obj.ID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.order = nil
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *scene) Children() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) Traverse(fn func(game_object.GameObject)) {
	for _, obj := range s.Children() {
		fn(obj)
	}
}

func (s *scene) Lights() []light.Light {
	var lights []light.Light
	s.Traverse(func(obj game_object.GameObject) {
		if l := obj.Light(); l != nil && obj.Enabled() {
			lights = append(lights, l)
		}
	})
	return lights
}
