// Package shader loads compiled SPIR-V for the pipeline stages.
package shader

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/packr"

	"github.com/vkngwrapper/swapchain-bootstrap/config"
)

// BoxSource reads the vertex and fragment shaders from a packr box opened on
// a directory resolved at runtime. The packr tool only embeds boxes whose
// path is a string literal, so the shaders always come from disk and must be
// shipped next to the binary.
type BoxSource struct {
	box            packr.Box
	vertexShader   string
	fragmentShader string
}

// NewBoxSource opens the shader directory. A relative directory is taken
// from the working directory, not from this package's source location.
func NewBoxSource(cfg config.Config) (*BoxSource, error) {
	dir, err := filepath.Abs(cfg.ShaderDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving shader directory %s", cfg.ShaderDir)
	}

	return &BoxSource{
		box:            packr.NewBox(dir),
		vertexShader:   cfg.VertexShader,
		fragmentShader: cfg.FragmentShader,
	}, nil
}

func (s *BoxSource) VertexShader() ([]byte, error) {
	return s.load(s.vertexShader)
}

func (s *BoxSource) FragmentShader() ([]byte, error) {
	return s.load(s.fragmentShader)
}

func (s *BoxSource) load(name string) ([]byte, error) {
	code, err := s.box.Find(name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading shader %s from %s", name, s.box.Path)
	}
	if len(code) == 0 {
		return nil, errors.Newf("shader %s in %s is empty", name, s.box.Path)
	}
	return code, nil
}
