// Package render defines the renderer contract, per-request render options
// and the localisation and error helpers shared by the concrete renderers.
package render

import (
	"context"

	"github.com/goliatone/go-roleform/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, terminal
// transcript, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
