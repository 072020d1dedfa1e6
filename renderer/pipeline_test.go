package renderer

import (
	"testing"

	"github.com/cockroachdb/errors"
	qt "github.com/frankban/quicktest"
)

func TestBytesToBytecode(t *testing.T) {
	c := qt.New(t)

	// SPIR-V magic number followed by version 1.0
	code, err := BytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	c.Assert(err, qt.IsNil)
	c.Assert(code, qt.DeepEquals, []uint32{0x07230203, 0x00010000})

	code, err = BytesToBytecode(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(code, qt.HasLen, 0)
}

func TestBytesToBytecodeUnaligned(t *testing.T) {
	c := qt.New(t)

	_, err := BytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x00})
	c.Assert(errors.Is(err, ErrShaderModuleCreation), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `bytesToBytecode: shader bytecode is 5 bytes, not a multiple of 4`)
}
