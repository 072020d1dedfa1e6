package shader_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vkngwrapper/swapchain-bootstrap/config"
	"github.com/vkngwrapper/swapchain-bootstrap/shader"
)

func writeShaders(c *qt.C, files map[string][]byte) config.Config {
	dir := c.TempDir()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), content, 0o600)
		c.Assert(err, qt.IsNil)
	}

	cfg := config.Default()
	cfg.ShaderDir = dir
	return cfg
}

func TestBoxSource(t *testing.T) {
	c := qt.New(t)

	vert := []byte{0x03, 0x02, 0x23, 0x07}
	frag := []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}
	cfg := writeShaders(c, map[string][]byte{
		"vert.spv": vert,
		"frag.spv": frag,
	})

	source, err := shader.NewBoxSource(cfg)
	c.Assert(err, qt.IsNil)

	code, err := source.VertexShader()
	c.Assert(err, qt.IsNil)
	c.Assert(code, qt.DeepEquals, vert)

	code, err = source.FragmentShader()
	c.Assert(err, qt.IsNil)
	c.Assert(code, qt.DeepEquals, frag)
}

func TestBoxSourceMissingShader(t *testing.T) {
	c := qt.New(t)

	cfg := writeShaders(c, map[string][]byte{
		"vert.spv": {0x03, 0x02, 0x23, 0x07},
	})

	source, err := shader.NewBoxSource(cfg)
	c.Assert(err, qt.IsNil)

	_, err = source.FragmentShader()
	c.Assert(err, qt.ErrorMatches, `loading shader frag.spv from .*`)
}

func TestBoxSourceEmptyShader(t *testing.T) {
	c := qt.New(t)

	cfg := writeShaders(c, map[string][]byte{
		"vert.spv": {},
	})

	source, err := shader.NewBoxSource(cfg)
	c.Assert(err, qt.IsNil)

	_, err = source.VertexShader()
	c.Assert(err, qt.ErrorMatches, `shader vert.spv in .* is empty`)
}

func TestBoxSourceRelativeDirReadsWorkingDirectory(t *testing.T) {
	c := qt.New(t)

	root := c.TempDir()
	c.Assert(os.Mkdir(filepath.Join(root, "shaders"), 0o700), qt.IsNil)
	vert := []byte{0x03, 0x02, 0x23, 0x07}
	c.Assert(os.WriteFile(filepath.Join(root, "shaders", "vert.spv"), vert, 0o600), qt.IsNil)

	wd, err := os.Getwd()
	c.Assert(err, qt.IsNil)
	c.Assert(os.Chdir(root), qt.IsNil)
	c.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := config.Default()
	cfg.ShaderDir = "shaders"

	source, err := shader.NewBoxSource(cfg)
	c.Assert(err, qt.IsNil)

	code, err := source.VertexShader()
	c.Assert(err, qt.IsNil)
	c.Assert(code, qt.DeepEquals, vert)
}
