package attr

import (
	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

func readString(r *binary.Reader, p pool.Lookup) (uint16, string, error) {
	index, err := r.ReadU2()
	if err != nil {
		return 0, "", err
	}
	s, err := resolveString(p, index)
	return index, s, err
}

func resolveString(p pool.Lookup, index uint16) (string, error) {
	c, err := p.PrimitiveConstant(index)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// Marker is a presence-only attribute: Synthetic or Deprecated.
type Marker struct {
	header
}

func (a *Marker) initContent(*binary.Reader, pool.Lookup) error { return nil }

// ConstantValue holds the pool index of a field's constant initializer.
// The index is not resolved here: its meaning depends on the field
// descriptor, which the attribute does not know.
type ConstantValue struct {
	header
	Index uint16
}

func (a *ConstantValue) initContent(r *binary.Reader, _ pool.Lookup) error {
	var err error
	a.Index, err = r.ReadU2()
	return err
}

// Value looks up the constant. Callers interpret it against the field
// descriptor.
func (a *ConstantValue) Value(p pool.Lookup) (pool.Constant, error) {
	return p.PrimitiveConstant(a.Index)
}

// Signature holds a generic signature string.
type Signature struct {
	header
	Index uint16
	Value string
}

func (a *Signature) initContent(r *binary.Reader, p pool.Lookup) error {
	var err error
	a.Index, a.Value, err = readString(r, p)
	return err
}

// SourceFile holds the name of the source file a class was compiled from.
type SourceFile struct {
	header
	Index uint16
	Value string
}

func (a *SourceFile) initContent(r *binary.Reader, p pool.Lookup) error {
	var err error
	a.Index, a.Value, err = readString(r, p)
	return err
}

// NestHost names the host class of a nest.
type NestHost struct {
	header
	Index     uint16
	ClassName string
}

func (a *NestHost) initContent(r *binary.Reader, p pool.Lookup) error {
	var err error
	a.Index, a.ClassName, err = readString(r, p)
	return err
}

// EnclosingMethod links a local or anonymous class to its enclosing class
// and, when there is one, the enclosing method.
type EnclosingMethod struct {
	header
	ClassIndex  uint16
	MethodIndex uint16
	ClassName   string
	// MethodName and MethodDescriptor are empty when MethodIndex is 0,
	// e.g. for a class declared in an initializer.
	MethodName       string
	MethodDescriptor string
}

func (a *EnclosingMethod) initContent(r *binary.Reader, p pool.Lookup) error {
	var err error
	if a.ClassIndex, a.ClassName, err = readString(r, p); err != nil {
		return err
	}
	if a.MethodIndex, err = r.ReadU2(); err != nil {
		return err
	}
	if a.MethodIndex == 0 {
		return nil
	}
	link, err := p.LinkConstant(a.MethodIndex)
	if err != nil {
		return err
	}
	a.MethodName = link.ElementName
	a.MethodDescriptor = link.Descriptor
	return nil
}

// HasMethod reports whether the class is enclosed by a method.
func (a *EnclosingMethod) HasMethod() bool {
	return a.MethodIndex != 0
}
