// Package gheartaux opens an interactive window displaying the rotating heart mesh.
package gheartaux

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/soypat/gheart"
	"github.com/soypat/gheart/viewport"
)

// UIConfig configures [UI]. Zero fields take default values.
type UIConfig struct {
	// Initial window size. Defaults to 800x600. The window is resizable.
	Width, Height int
	Title         string
	// Mesh grid resolution. Defaults to 30x30.
	Rows, Cols int
	// Limits bounds the zoom. The zero value places no bounds, so repeated
	// zooming grows or shrinks the heart without limit.
	Limits viewport.Limits
	// HUD shows the camera state in the top left corner on start. Toggled with H.
	HUD bool
	// Silent suppresses informational logging.
	Silent bool
	// Context cancels the UI loop when done. May be nil.
	Context context.Context
}

const defaultTitle = "❣️"

// UI opens a window and renders the heart until the window is closed or the context is done.
// It must be called from the main thread, locked with [runtime.LockOSThread].
func UI(cfg UIConfig) error {
	if err := cfg.setDefaults(); err != nil {
		return err
	}
	mesh, err := gheart.GenerateMesh(gheart.Heart{}, cfg.Rows, cfg.Cols)
	if err != nil {
		return fmt.Errorf("generating mesh: %w", err)
	}
	return ui(&mesh, cfg)
}

func (cfg *UIConfig) setDefaults() error {
	if cfg.Width < 0 || cfg.Height < 0 || cfg.Rows < 0 || cfg.Cols < 0 {
		return errors.New("negative UI dimension")
	}
	if cfg.Limits.MinScale < 0 || cfg.Limits.MaxScale < 0 {
		return errors.New("negative scale limit")
	} else if cfg.Limits.MaxScale > 0 && cfg.Limits.MinScale > cfg.Limits.MaxScale {
		return errors.New("minimum scale exceeds maximum scale")
	}
	if cfg.Width == 0 {
		cfg.Width = 800
	}
	if cfg.Height == 0 {
		cfg.Height = 600
	}
	if cfg.Rows == 0 {
		cfg.Rows = gheart.DefaultRows
	}
	if cfg.Cols == 0 {
		cfg.Cols = gheart.DefaultCols
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	return nil
}

func (cfg *UIConfig) logf(format string, args ...any) {
	if !cfg.Silent {
		log.Printf(format, args...)
	}
}
