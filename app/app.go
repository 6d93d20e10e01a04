// Package app runs the render loop: it owns the window, the renderer, the
// active loader and the camera rig, and reacts to tray commands and config
// reloads.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	vrdeck "github.com/vrdeck/vrdeck"
	"github.com/vrdeck/vrdeck/config"
	"github.com/vrdeck/vrdeck/core"
	"github.com/vrdeck/vrdeck/geometry"
	"github.com/vrdeck/vrdeck/gpu"
	"github.com/vrdeck/vrdeck/loaders"
	"github.com/vrdeck/vrdeck/tray"
)

const (
	windowWidth  = 1280
	windowHeight = 720

	// Interpupillary distance in meters.
	ipd = 0.064

	screenGridRows    = 100
	screenGridColumns = 100
	domeRings         = 32
	domeSegments      = 64
	// Dome radius as a multiple of the screen distance.
	domeRadiusFactor = 2.5
)

// Options wires the orchestrator to the outside.
type Options struct {
	Config     config.Config
	ConfigPath string
	Commands   <-chan tray.Command
	Log        vrdeck.Logger
}

type App struct {
	log vrdeck.Logger
	cfg config.Config

	window   *gpu.Window
	state    *gpu.State
	renderer *gpu.Renderer

	loader loaders.Loader
	screen *core.Screen
	rig    *core.CameraRig

	// Reference orientation of the world; recentering replaces it.
	origin mgl32.Quat
	// Head pose fed by the tracking source; identity in the desktop preview.
	headPose mgl32.Quat

	commands   <-chan tray.Command
	cfgUpdates chan config.Config
	stopWatch  func() error

	frameIndex uint32
	quit       bool
}

func New(opts Options) (*App, error) {
	a := &App{
		log:        opts.Log,
		cfg:        opts.Config,
		commands:   opts.Commands,
		cfgUpdates: make(chan config.Config, 1),
		origin:     mgl32.QuatIdent(),
		headPose:   mgl32.QuatIdent(),
	}

	a.window = gpu.NewWindow(windowWidth, windowHeight, "VRDeck")
	a.state = gpu.NewState(a.window)
	a.window.Handle().SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.state.Resize(width, height)
	})

	loader, err := newLoader(a.cfg)
	if err != nil {
		return nil, err
	}
	a.loader = loader
	info := loader.Info()

	a.screen = core.NewScreen(-a.cfg.Distance, a.cfg.Scale, info.AspectRatio())
	a.rig = core.NewCameraRig()
	a.poseCameras()

	a.renderer = gpu.NewRenderer(a.state, a.log, gpu.RendererOptions{
		EyeWidth:       windowWidth,
		EyeHeight:      windowHeight,
		Variant:        deriveVariant(a.cfg, info),
		AmbientEnabled: a.cfg.Ambient,
		ScreenMesh:     geometry.PlaneRectangle(screenGridRows, screenGridColumns, 1, 1, 0),
		DomeMesh:       geometry.Dome(domeRings, domeSegments, 1, 0),
	})

	if err := a.attachSource(); err != nil {
		return nil, err
	}

	if opts.ConfigPath != "" {
		stop, err := config.Watch(opts.ConfigPath, a.log, func(c config.Config) {
			select {
			case a.cfgUpdates <- c:
			default:
				// A newer update is already pending.
			}
		})
		if err != nil {
			a.log.Warnf("config watch disabled: %v", err)
		} else {
			a.stopWatch = stop
		}
	}

	return a, nil
}

func newLoader(cfg config.Config) (loaders.Loader, error) {
	switch cfg.Source {
	case "blank":
		return loaders.NewBlankLoader(1920, 1080), nil
	case "pattern":
		return loaders.NewTestPatternLoader(1920, 1080, 60), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// attachSource uploads the loader's first frame and refreshes everything
// derived from the source layout.
func (a *App) attachSource() error {
	info := a.loader.Info()
	frame, err := a.loader.Load()
	if err != nil {
		return fmt.Errorf("load source %s: %w", info.Name, err)
	}

	source := a.renderer.SetSource(frame.Width, frame.Height)
	if err := source.Write(a.state.Queue, frame.Pixels); err != nil {
		return fmt.Errorf("upload source frame: %w", err)
	}

	a.screen.SetAspectRatio(info.AspectRatio())
	a.applyConfig(a.cfg)
	a.log.Infof("source %s attached: %dx%d %s", info.Name, info.Width, info.Height, info.Mode)
	return nil
}

// applyConfig pushes the configuration into uniforms, variant selection and
// scene transforms. Called on startup, on hot reload and after tray toggles.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	info := a.loader.Info()

	a.renderer.SetVariant(deriveVariant(cfg, info))
	a.renderer.SetAmbientEnabled(cfg.Ambient)
	a.renderer.UpdateScreenParams(deriveScreenParams(cfg, info))

	a.screen.SetDistance(-cfg.Distance)
	a.screen.SetScale(cfg.Scale)
	a.renderer.UpdateScreenModel(a.screen.Model())
	a.renderer.UpdateDomeModel(mgl32.Scale3D(
		cfg.Distance*domeRadiusFactor,
		cfg.Distance*domeRadiusFactor,
		cfg.Distance*domeRadiusFactor,
	))
}

// poseCameras places both eyes from the current origin and head pose.
func (a *App) poseCameras() {
	orientation := a.origin.Mul(a.headPose)
	tangents := core.FovTangents{Left: -1, Right: 1, Up: 1, Down: -1}
	for view := 0; view < core.ViewCount; view++ {
		offset := (float32(view) - 0.5) * ipd
		position := orientation.Rotate(mgl32.Vec3{offset, 0, 0})
		a.rig.SetPose(view, position, orientation, tangents)
	}
}

func (a *App) handleCommand(cmd tray.Command) {
	switch cmd {
	case tray.CmdSwapEyes:
		a.cfg.SwapEyes = !a.cfg.SwapEyes
		a.applyConfig(a.cfg)
	case tray.CmdFlipX:
		a.cfg.FlipX = !a.cfg.FlipX
		a.applyConfig(a.cfg)
	case tray.CmdFlipY:
		a.cfg.FlipY = !a.cfg.FlipY
		a.applyConfig(a.cfg)
	case tray.CmdReloadScreen:
		if err := a.reloadScreen(); err != nil {
			a.log.Errorf("reload screen: %v", err)
		}
	case tray.CmdRecenter:
		a.recenter(true)
	case tray.CmdRecenterWithPitch:
		a.recenter(false)
	case tray.CmdQuit:
		a.quit = true
	}
}

func (a *App) reloadScreen() error {
	if err := a.swapLoader(); err != nil {
		return err
	}
	return a.attachSource()
}

// swapLoader replaces the active loader, constructing the new one first so a
// bad source keeps the current loader running instead of leaving a closed
// one in place.
func (a *App) swapLoader() error {
	loader, err := newLoader(a.cfg)
	if err != nil {
		return err
	}
	if err := a.loader.Close(); err != nil {
		a.log.Warnf("close loader: %v", err)
	}
	a.loader = loader
	return nil
}

// recenter re-anchors the world so the screen sits in front of the current
// gaze direction.
func (a *App) recenter(horizonLocked bool) {
	a.origin = core.RecenterOrientation(a.headPose, horizonLocked).Inverse()
	a.log.Infof("recentered (horizon locked: %v)", horizonLocked)
}

// Run drives the frame loop until the window closes or Quit arrives. Must be
// called on the OS thread that created the window.
func (a *App) Run() error {
	last := time.Now()

	for !a.window.ShouldClose() && !a.quit {
		start := time.Now()
		elapsed := start.Sub(last)
		last = start

		glfw.PollEvents()
		a.drainEvents()

		if a.loader.IsInvalid() {
			a.log.Warnf("source %s went away, falling back to blank", a.loader.Info().Name)
			a.cfg.Source = "blank"
			if err := a.reloadScreen(); err != nil {
				return err
			}
		}

		frame, err := a.loader.Update(elapsed)
		if err != nil {
			a.log.Errorf("source update: %v", err)
		} else if frame != nil {
			if err := a.renderer.Source().Write(a.state.Queue, frame.Pixels); err != nil {
				a.log.Errorf("upload frame: %v", err)
			}
		}

		a.frameIndex++
		if err := a.renderFrame(); err != nil {
			a.log.Errorf("render: %v", err)
		}

		// Read each frame so a hot-reloaded target_fps takes effect.
		if sleep := framePeriod(a.cfg.TargetFPS) - time.Since(start); sleep > 0 {
			time.Sleep(sleep)
		}
	}
	return nil
}

func framePeriod(fps int) time.Duration {
	if fps <= 0 {
		fps = 1
	}
	return time.Second / time.Duration(fps)
}

func (a *App) drainEvents() {
	for {
		select {
		case cmd := <-a.commands:
			a.handleCommand(cmd)
		case cfg := <-a.cfgUpdates:
			a.applyConfig(cfg)
		default:
			return
		}
	}
}

func (a *App) renderFrame() error {
	resolution := [2]float32{windowWidth, windowHeight}
	jitter := core.JitterOffset(a.frameIndex, resolution)

	a.poseCameras()
	matrices, err := a.rig.Snapshot()
	if err != nil {
		return fmt.Errorf("camera snapshot: %w", err)
	}
	for view := range matrices {
		matrices[view] = jitterProjection(matrices[view], jitter)
	}
	a.renderer.UpdateCameras(matrices)

	a.renderer.UpdateTemporal(core.TemporalBlurParams{
		Jitter:       jitter,
		Scale:        temporalJitterScale,
		Resolution:   resolution,
		HistoryDecay: a.cfg.HistoryDecay,
	})

	return a.renderer.RenderFrame()
}

func (a *App) Close() {
	if a.stopWatch != nil {
		if err := a.stopWatch(); err != nil {
			a.log.Warnf("stop config watch: %v", err)
		}
	}
	if a.loader != nil {
		if err := a.loader.Close(); err != nil {
			a.log.Warnf("close loader: %v", err)
		}
	}
	if a.renderer != nil {
		a.renderer.Release()
	}
	if a.state != nil {
		a.state.Release()
	}
	if a.window != nil {
		a.window.Destroy()
	}
}
