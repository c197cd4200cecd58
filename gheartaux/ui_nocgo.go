//go:build tinygo || !cgo

package gheartaux

import (
	"errors"

	"github.com/soypat/gheart"
)

func ui(mesh *gheart.Mesh, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
