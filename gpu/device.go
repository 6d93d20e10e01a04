// Package gpu owns the wgpu device, resources and render pipeline of the
// stereo screen renderer.
package gpu

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window wraps the GLFW preview window. Creation locks the calling goroutine
// to its OS thread; all windowing calls must stay on that goroutine.
type Window struct {
	glfwWindow *glfw.Window
	Width      int
	Height     int
	title      string
}

func NewWindow(width, height int, title string) *Window {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		panic(err)
	}

	return &Window{
		glfwWindow: win,
		Width:      width,
		Height:     height,
		title:      title,
	}
}

func (w *Window) Handle() *glfw.Window { return w.glfwWindow }

func (w *Window) ShouldClose() bool { return w.glfwWindow.ShouldClose() }

func (w *Window) Destroy() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// State holds the wgpu device chain. Initialization failures panic: without
// a device there is nothing to degrade to.
type State struct {
	Surface       *wgpu.Surface
	Adapter       *wgpu.Adapter
	Device        *wgpu.Device
	Queue         *wgpu.Queue
	SurfaceConfig *wgpu.SurfaceConfiguration
}

func NewState(w *Window) *State {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	// wraps the GLFW window into a wgpu surface.
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w.glfwWindow))
	// finds a suitable GPU (discrete GPU preferred)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	// allocates the device and command queue
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            "Main Device",
		RequiredFeatures: nil,
		RequiredLimits:   nil,
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	// defines how the swapchain behaves (size, format, vsync)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(w.Width),
		Height:      uint32(w.Height),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}

	surface.Configure(adapter, device, &surfaceConfig)

	return &State{
		Surface:       surface,
		Adapter:       adapter,
		Device:        device,
		Queue:         queue,
		SurfaceConfig: &surfaceConfig,
	}
}

// Resize reconfigures the swapchain. Zero dimensions (minimized window) are
// ignored.
func (s *State) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.SurfaceConfig.Width = uint32(width)
	s.SurfaceConfig.Height = uint32(height)
	s.Surface.Configure(s.Adapter, s.Device, s.SurfaceConfig)
}

func (s *State) Release() {
	if s.Queue != nil {
		s.Queue.Release()
	}
	if s.Device != nil {
		s.Device.Release()
	}
	if s.Adapter != nil {
		s.Adapter.Release()
	}
	if s.Surface != nil {
		s.Surface.Release()
	}
}
