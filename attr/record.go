package attr

import (
	"fmt"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// RecordComponent is one component of a record class.
type RecordComponent struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Name            string
	Descriptor      string
	RawAttributes   []Raw
	Attributes      []Attribute
}

// Attribute returns the first decoded attribute of kind k.
func (c *RecordComponent) Attribute(k Kind) Attribute {
	for _, a := range c.Attributes {
		if a.Kind() == k {
			return a
		}
	}
	return nil
}

// Signature returns the generic signature of the component, or "".
func (c *RecordComponent) Signature() string {
	if sig, ok := c.Attribute(KindSignature).(*Signature); ok {
		return sig.Value
	}
	return ""
}

// Record lists the components of a record class. Attributes on each
// component are decoded with the registry that decoded the Record
// attribute.
type Record struct {
	header
	Components []RecordComponent
}

func (a *Record) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Components = make([]RecordComponent, count)
	for i := range a.Components {
		c := &a.Components[i]
		if c.NameIndex, c.Name, err = readString(r, p); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		if c.DescriptorIndex, c.Descriptor, err = readString(r, p); err != nil {
			return fmt.Errorf("component %s: %w", c.Name, err)
		}
		if c.RawAttributes, c.Attributes, err = a.nestedTable(r, p); err != nil {
			return fmt.Errorf("component %s: %w", c.Name, err)
		}
	}
	return nil
}

// Component returns the component with the given name.
func (a *Record) Component(name string) (*RecordComponent, bool) {
	for i := range a.Components {
		if a.Components[i].Name == name {
			return &a.Components[i], true
		}
	}
	return nil, false
}
