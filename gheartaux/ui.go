//go:build !tinygo && cgo

package gheartaux

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/gheart"
	"github.com/soypat/gheart/glrender"
	"github.com/soypat/gheart/viewport"
)

func ui(mesh *gheart.Mesh, cfg UIConfig) error {
	window, term, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer term()
	cfg.logf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	renderer, err := glrender.NewMeshRenderer()
	if err != nil {
		return err
	}
	defer renderer.Delete()
	err = renderer.SetMesh(mesh)
	if err != nil {
		return err
	}
	hud, err := glrender.NewHUD(14)
	if err != nil {
		return err
	}
	overlay, err := glrender.NewOverlayRenderer()
	if err != nil {
		return err
	}
	defer overlay.Delete()

	cam := viewport.NewCamera()
	cam.Limits = cfg.Limits
	var (
		showHUD = cfg.HUD
		refresh = true
		ticker  = viewport.Ticker{Period: viewport.TickPeriod}
	)
	resize := func(width, height int) {
		cam.Resize(width, height)
		gl.Viewport(0, 0, int32(width), int32(height))
		refresh = true
	}
	resize(window.GetFramebufferSize())
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		resize(width, height)
	})

	// Cursor positions are in screen coordinates which may differ from framebuffer
	// pixels on high DPI displays. Drag rotation is defined in screen coordinates.
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if cam.Move(xpos, ypos) {
			refresh = true
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			cam.Press(w.GetCursorPos())
		case glfw.Release:
			cam.Release()
		}
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if yoff == 0 {
			return // Horizontal scroll.
		}
		cam.Wheel(yoff)
		refresh = true
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyH:
			showHUD = !showHUD
			refresh = true
		}
	})

	ctx := cfg.Context
	previousTime := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		currentTime := glfw.GetTime()
		elapsed := time.Duration((currentTime - previousTime) * float64(time.Second))
		previousTime = currentTime
		for n := ticker.Advance(elapsed); n > 0; n-- {
			cam.Tick()
			refresh = true
		}
		if refresh {
			refresh = false
			err = renderer.SetMesh(mesh)
			if err != nil {
				return err
			}
			err = renderer.Draw(cam)
			if err != nil {
				return fmt.Errorf("drawing mesh: %w", err)
			}
			if showHUD {
				err = drawHUD(hud, overlay, cam)
				if err != nil {
					return fmt.Errorf("drawing HUD: %w", err)
				}
			}
			window.SwapBuffers()
		}
		// Sleep until the next idle tick unless input arrives first.
		glfw.WaitEventsTimeout(ticker.Until().Seconds())
	}
	return nil
}

func drawHUD(hud *glrender.HUD, overlay *glrender.OverlayRenderer, cam *viewport.Camera) error {
	img, err := hud.Render(glrender.CameraText(cam.RotationX, cam.RotationY, cam.Scale))
	if err != nil {
		return err
	}
	err = overlay.Upload(img)
	if err != nil {
		return err
	}
	width, height := cam.Size()
	return overlay.Draw(8, 8, width, height)
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
