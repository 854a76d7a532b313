// Package attr decodes JVM class-file attributes into structured values.
//
// Each recognized attribute name maps to a Kind and a concrete type
// (Signature, Exceptions, Annotations, ...). A Registry turns a Raw
// attribute into a decoded Attribute, resolving names through a
// pool.Lookup. Unknown names decode to nil without error so that class
// files carrying vendor attributes still load.
//
//	a, err := attr.Decode(raw, table)
//	switch a := a.(type) {
//	case *attr.Signature:
//		fmt.Println(a.Value)
//	case *attr.Annotations:
//		...
//	}
package attr

import (
	"io"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// Raw is an attribute as read from an attribute table, before decoding.
type Raw struct {
	NameIndex uint16
	Name      string
	Info      []byte
}

// Attribute is a decoded attribute. The set of implementations is closed;
// switch on the concrete type or on Kind.
type Attribute interface {
	Name() string
	NameIndex() uint16
	Kind() Kind
	// Content returns the attribute payload, excluding the six header
	// bytes.
	Content() []byte

	base() *header
	initContent(r *binary.Reader, p pool.Lookup) error
}

type header struct {
	nameIndex uint16
	name      string
	kind      Kind
	info      []byte
	registry  *Registry
	// depth counts the Code and Record attributes enclosing this one.
	depth int
}

func newHeader(kind Kind, nameIndex uint16) header {
	return header{nameIndex: nameIndex, name: kind.String(), kind: kind, registry: DefaultRegistry}
}

func (h *header) Name() string      { return h.name }
func (h *header) NameIndex() uint16 { return h.nameIndex }
func (h *header) Kind() Kind        { return h.kind }
func (h *header) Content() []byte   { return h.info }
func (h *header) base() *header     { return h }

// nestedTable reads the attribute table of a container attribute with the
// registry that decoded the container.
func (h *header) nestedTable(r *binary.Reader, p pool.Lookup) ([]Raw, []Attribute, error) {
	reg := h.registry
	if reg == nil {
		reg = DefaultRegistry
	}
	return reg.readTable(r, p, h.depth+1)
}

// Write serializes a as name_index (u2), length (u4), payload.
func Write(w io.Writer, a Attribute) error {
	_, err := w.Write(Encode(a))
	return err
}

// Encode returns the serialized form of a, header included.
func Encode(a Attribute) []byte {
	content := a.Content()
	return binary.NewWriter().
		U2(a.NameIndex()).
		U4(uint32(len(content))).
		Raw(content).
		Bytes()
}
