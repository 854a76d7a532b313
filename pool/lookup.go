// Package pool models the class-file constant pool and the lookup contract
// attribute decoders resolve indexes through.
package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned for index 0, indexes past the end of the
	// pool, and the unusable slot following a Long or Double.
	ErrIndexOutOfRange = errors.New("constant pool index out of range")

	// ErrWrongTag is returned when an entry exists but cannot be resolved as
	// the requested kind of constant.
	ErrWrongTag = errors.New("unexpected constant pool entry")
)

// Lookup resolves 1-based constant pool indexes. Implementations must be
// safe for concurrent readers once built.
type Lookup interface {
	// PrimitiveConstant resolves Utf8, String, Class, Integer, Float, Long,
	// Double, MethodType, Module and Package entries.
	PrimitiveConstant(index uint16) (Constant, error)
	// LinkConstant resolves member references, NameAndType, MethodHandle and
	// dynamic entries to a (class, name, descriptor) triple.
	LinkConstant(index uint16) (LinkConstant, error)
	// Constant resolves any entry.
	Constant(index uint16) (Constant, error)
}

// Constant is a resolved pool value.
type Constant struct {
	Tag Tag
	// Value holds string, int32, float32, int64, float64, LinkConstant or
	// MethodHandle depending on Tag.
	Value any
}

// String returns the string form of textual constants and a formatted
// value for everything else.
func (c Constant) String() string {
	if s, ok := c.Value.(string); ok {
		return s
	}
	return fmt.Sprint(c.Value)
}

// LinkConstant is a resolved member reference.
type LinkConstant struct {
	Tag         Tag
	ClassName   string
	ElementName string
	Descriptor  string
	// BootstrapIndex is set for Dynamic and InvokeDynamic entries.
	BootstrapIndex uint16
	// HandleKind is set when the link was resolved through a MethodHandle.
	HandleKind HandleKind
}

func (l LinkConstant) String() string {
	if l.ClassName == "" {
		return l.ElementName + ":" + l.Descriptor
	}
	return l.ClassName + "." + l.ElementName + ":" + l.Descriptor
}

// MethodHandle is the resolved form of a MethodHandle entry.
type MethodHandle struct {
	Kind      HandleKind
	Reference LinkConstant
}

func (h MethodHandle) String() string {
	return fmt.Sprintf("REF_%d %s", h.Kind, h.Reference)
}
