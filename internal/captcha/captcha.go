// Package captcha renders challenge codes into an opaque artifact for the
// client. Rendering is an external collaborator: callers only see a data
// URI, so the renderer behind the interface can be swapped for a real image
// stack without touching the pipeline.
package captcha

import (
	"encoding/base64"
	"fmt"
)

// Renderer turns a challenge code into a data-URI artifact.
type Renderer interface {
	Render(code string) (string, error)
}

// SVGRenderer is the default renderer: an inline SVG data URI.
type SVGRenderer struct{}

func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

func (r *SVGRenderer) Render(code string) (string, error) {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="120" height="44">`+
			`<rect width="120" height="44" fill="#f4f4f4"/>`+
			`<text x="60" y="30" text-anchor="middle" font-family="monospace" font-size="26" letter-spacing="6" fill="#333">%s</text>`+
			`</svg>`,
		code,
	)
	encoded := base64.StdEncoding.EncodeToString([]byte(svg))
	return "data:image/svg+xml;base64," + encoded, nil
}
