// Package format renders the decoded attributes of a class file.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/jattr/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}

// New returns the encoder registered under name: "json" or "line".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "line", "":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want json or line)", name)
}
