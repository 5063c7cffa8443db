package engine

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// Fixed scene parameters.
const (
	// YawStep is the character rotation added every frame, in radians.
	YawStep = 0.01

	skyColor    = 0x87b5e0
	groundColor = 0x3f6b3a
	roadColor   = 0x333333
	bodyColor   = 0xe0a96d

	fogNear = 40
	fogFar  = 220

	cameraFov  = 60 * math.Pi / 180
	cameraNear = 0.1
	cameraFar  = 500
)

// session implements the Session interface.
// Every field is set once by NewSession and cleared by Dispose.
type session struct {
	mu *sync.Mutex

	mount    window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	camera   camera.Camera
	controls camera.OrbitControls

	character game_object.GameObject

	frameHandle window.FrameHandle
	listeners   []window.ListenerID

	width, height int

	// lastRenderErr suppresses repeats of the same render failure in the log.
	lastRenderErr string

	// Pre-creation config collected from builder options
	rendererFactory renderer.Factory
	rendererOptions []renderer.RendererBuilderOption
	pool            worker.DynamicWorkerPool

	disposeOnce sync.Once
	disposed    bool
}

// Session owns one rendered scene mounted in one window, from construction through the per-frame
// update to disposal. It builds a ground disc, a road ring and a capsule character lit by a hemisphere
// and a shadow-casting sun, binds damped orbit controls to the camera, and rotates the character a
// little every frame.
//
// All methods run on the window's message-loop thread.
type Session interface {
	// Active reports whether the session was mounted. Sessions created without a mount are inert.
	//
	// Returns:
	//   - bool: true if the session owns a renderer and a scene
	Active() bool

	// Scene returns the scene root, or nil for an inert session.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Camera returns the perspective camera, or nil for an inert session.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Controls returns the orbit controls, or nil for an inert session.
	//
	// Returns:
	//   - camera.OrbitControls: the controls
	Controls() camera.OrbitControls

	// Renderer returns the renderer, or nil for an inert session.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Character returns the rotating capsule node, or nil for an inert session.
	//
	// Returns:
	//   - game_object.GameObject: the character
	Character() game_object.GameObject

	// Resize reads the mount's content size and applies it to the renderer and the camera.
	// Unchanged and zero sizes are ignored.
	Resize()

	// Dispose stops the frame loop and releases everything the session acquired. Only the first call
	// has any effect.
	Dispose()

	// Disposed reports whether Dispose has run.
	//
	// Returns:
	//   - bool: true after Dispose
	Disposed() bool
}

var _ Session = &session{}

// NewSession mounts a scene session in a window and starts its frame loop.
// A nil mount yields an inert session and no error; nothing is created and the mount is untouched.
//
// Parameters:
//   - mount: the window to draw into
//   - options: functional options configuring the renderer, its factory and the build pool
//
// Returns:
//   - Session: the running session
//   - error: an error if the geometry or the renderer could not be created; nothing stays acquired in that case
func NewSession(mount window.Window, options ...SessionBuilderOption) (Session, error) {
	s := &session{
		mu:              &sync.Mutex{},
		rendererFactory: renderer.NewRenderer,
	}
	for _, opt := range options {
		opt(s)
	}
	if mount == nil {
		return s, nil
	}

	geometries, err := model.BuildAll(s.pool,
		func() (model.Geometry, error) { return model.NewCircle(30, 64, model.WithName("ground")) },
		func() (model.Geometry, error) { return model.NewRing(5.5, 6.5, 64, model.WithName("road")) },
		func() (model.Geometry, error) { return model.NewCapsule(0.35, 1.0, 4, 8, model.WithName("character")) },
	)
	if err != nil {
		return nil, fmt.Errorf("build scene geometry: %w", err)
	}

	r, err := s.rendererFactory(mount, s.rendererOptions...)
	if err != nil {
		for _, g := range geometries {
			g.Dispose()
		}
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	s.mount = mount
	s.renderer = r
	s.width, s.height = mount.Width(), mount.Height()
	mount.AppendChild(r.Surface())

	s.scene, s.character = buildScene(geometries[0], geometries[1], geometries[2])

	s.camera = camera.NewCamera(
		camera.WithFov(cameraFov),
		camera.WithAspect(aspect(s.width, s.height)),
		camera.WithNear(cameraNear),
		camera.WithFar(cameraFar),
		camera.WithPosition(0, 2.2, 6),
	)
	s.controls = camera.NewOrbitControls(s.camera, mount, camera.WithOrbitTarget(0, 1, 0))

	onResize := func(window.Event) { s.Resize() }
	s.listeners = []window.ListenerID{
		mount.AddListener(window.EventResize, onResize),
		mount.AddListener(window.EventWindowResize, onResize),
	}
	s.frameHandle = mount.RequestFrame(s.onFrame)

	return s, nil
}

// buildScene assembles the environment around the three geometries and returns it with the character node.
func buildScene(ground, road, body model.Geometry) (scene.Scene, game_object.GameObject) {
	flat := -float32(math.Pi / 2)
	sun := light.NewDirectionalLight(common.HexColor(0xffffff), 1,
		light.WithPosition(5, 10, 5),
		light.WithCastsShadows(true),
	)

	character := game_object.NewMesh(body, material.Single(material.NewStandardMaterial("character", common.HexColor(bodyColor))),
		game_object.WithName("character"),
		game_object.WithPosition(0, 0.85, 0),
		game_object.WithCastShadow(true),
	)

	sc := scene.NewScene("viewer",
		scene.WithBackground(common.HexColor(skyColor)),
		scene.WithFog(common.HexColor(skyColor), fogNear, fogFar),
		scene.WithObjects(
			game_object.NewMesh(ground, material.Single(material.NewStandardMaterial("ground", common.HexColor(groundColor))),
				game_object.WithName("ground"),
				game_object.WithRotation(flat, 0, 0),
				game_object.WithReceiveShadow(true),
			),
			game_object.NewMesh(road, material.Single(material.NewStandardMaterial("road", common.HexColor(roadColor))),
				game_object.WithName("road"),
				game_object.WithPosition(0, 0.01, 0),
				game_object.WithRotation(flat, 0, 0),
				game_object.WithReceiveShadow(true),
			),
			character,
			game_object.NewLightNode(light.NewHemisphereLight(common.HexColor(0xffffff), common.HexColor(0x444444), 0.8),
				game_object.WithName("hemisphere"),
			),
			game_object.NewLightNode(sun, game_object.WithName("sun")),
		),
	)
	return sc, character
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// onFrame is the self-rescheduling frame callback.
func (s *session) onFrame(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.frameHandle = s.mount.RequestFrame(s.onFrame)

	s.character.Rotate(0, YawStep, 0)
	s.controls.Update()

	if err := s.renderer.Render(s.scene, s.camera); err != nil {
		if msg := err.Error(); msg != s.lastRenderErr {
			log.Printf("session: render failed: %v", err)
			s.lastRenderErr = msg
		}
		return
	}
	s.lastRenderErr = ""
}

func (s *session) Active() bool {
	return s.mount != nil
}

func (s *session) Scene() scene.Scene {
	return s.scene
}

func (s *session) Camera() camera.Camera {
	return s.camera
}

func (s *session) Controls() camera.OrbitControls {
	return s.controls
}

func (s *session) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *session) Character() game_object.GameObject {
	return s.character
}

func (s *session) Resize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mount == nil || s.disposed {
		return
	}
	width, height := s.mount.Width(), s.mount.Height()
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.renderer.Resize(width, height)
	s.camera.SetAspect(aspect(width, height))
	s.camera.UpdateProjectionMatrix()
}

func (s *session) Dispose() {
	s.disposeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.disposed = true
		if s.mount == nil {
			return
		}

		for _, id := range s.listeners {
			s.mount.RemoveListener(id)
		}
		s.listeners = nil
		s.mount.CancelFrame(s.frameHandle)
		s.controls.Dispose()

		disposeSceneResources(s.scene)
		s.scene.Clear()

		s.renderer.Release()
		if surface := s.renderer.Surface(); s.mount.Contains(surface) {
			s.mount.RemoveChild(surface)
		}
	})
}

// disposeSceneResources disposes every geometry and material attached to the scene's nodes.
// Geometries and materials shared between nodes are disposed once.
func disposeSceneResources(sc scene.Scene) {
	geometries := make(map[model.Geometry]struct{})
	materials := make(map[material.Material]struct{})

	sc.Traverse(func(obj game_object.GameObject) {
		if g := obj.Geometry(); g != nil {
			if _, ok := geometries[g]; !ok {
				geometries[g] = struct{}{}
				g.Dispose()
			}
		}
		obj.Material().Each(func(m material.Material) {
			if _, ok := materials[m]; !ok {
				materials[m] = struct{}{}
				m.Dispose()
			}
		})
	})
}

func (s *session) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
