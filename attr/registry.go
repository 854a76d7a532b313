package attr

import (
	"fmt"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// Registry maps attribute names to decoders. A Registry is immutable and
// safe for concurrent use.
type Registry struct {
	enabled [numKinds]bool
}

// DefaultRegistry decodes every known kind.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry that decodes only the given kinds, or all
// known kinds when none are given. Names of disabled kinds are treated as
// unknown. Code and Record are always decoded so that the attributes
// nested in them can be reached.
func NewRegistry(enabled ...Kind) *Registry {
	reg := &Registry{}
	if len(enabled) == 0 {
		for k := KindUnknown + 1; k < numKinds; k++ {
			reg.enabled[k] = true
		}
		return reg
	}
	for _, k := range enabled {
		if k > KindUnknown && k < numKinds {
			reg.enabled[k] = true
		}
	}
	reg.enabled[KindCode] = true
	reg.enabled[KindRecord] = true
	return reg
}

// Enabled reports whether reg decodes attributes of kind k.
func (reg *Registry) Enabled(k Kind) bool {
	return k > KindUnknown && k < numKinds && reg.enabled[k]
}

// New returns an empty attribute for name, or false when the name is
// unknown or disabled.
func (reg *Registry) New(nameIndex uint16, name string) (Attribute, bool) {
	k, ok := KindOf(name)
	if !ok || !reg.Enabled(k) {
		return nil, false
	}
	return kinds[k].new(header{nameIndex: nameIndex, name: name, kind: k, registry: reg}), true
}

// Decode decodes raw. It returns nil, nil when the name is not handled by
// reg. Any failure is returned as a *DecodeError.
func (reg *Registry) Decode(raw Raw, p pool.Lookup) (Attribute, error) {
	return reg.decode(raw, p, 0)
}

func (reg *Registry) decode(raw Raw, p pool.Lookup, depth int) (Attribute, error) {
	a, ok := reg.New(raw.NameIndex, raw.Name)
	if !ok {
		log.Debug("skipping attribute", "name", raw.Name)
		return nil, nil
	}
	a.base().info = raw.Info
	a.base().depth = depth

	r := binary.NewReader(raw.Info)
	if err := a.initContent(r, p); err != nil {
		return nil, newDecodeError(raw.Name, r, err)
	}
	return a, nil
}

// Decode decodes raw with DefaultRegistry.
func Decode(raw Raw, p pool.Lookup) (Attribute, error) {
	return DefaultRegistry.Decode(raw, p)
}

// ReadRaw reads one attribute_info structure and resolves its name.
func ReadRaw(r *binary.Reader, p pool.Lookup) (Raw, error) {
	nameIndex, err := r.ReadU2()
	if err != nil {
		return Raw{}, err
	}
	length, err := r.ReadU4()
	if err != nil {
		return Raw{}, err
	}
	info, err := r.ReadBytes(int(length))
	if err != nil {
		return Raw{}, err
	}
	name, err := p.PrimitiveConstant(nameIndex)
	if err != nil {
		return Raw{}, fmt.Errorf("attribute name: %w", err)
	}
	return Raw{NameIndex: nameIndex, Name: name.String(), Info: info}, nil
}

// ReadTable reads a u2-counted attribute table. It returns every raw
// attribute in order, and the decoded subset in the same order.
func (reg *Registry) ReadTable(r *binary.Reader, p pool.Lookup) ([]Raw, []Attribute, error) {
	return reg.readTable(r, p, 0)
}

// readTable reads an attribute table nested depth levels inside Code or
// Record attributes.
func (reg *Registry) readTable(r *binary.Reader, p pool.Lookup, depth int) ([]Raw, []Attribute, error) {
	if depth > maxNesting {
		return nil, nil, fmt.Errorf("%w: attribute tables nested more than %d levels", ErrNestingTooDeep, maxNesting)
	}
	count, err := r.ReadU2()
	if err != nil {
		return nil, nil, err
	}

	raws := make([]Raw, 0, count)
	var decoded []Attribute
	for i := uint16(0); i < count; i++ {
		raw, err := ReadRaw(r, p)
		if err != nil {
			return nil, nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		raws = append(raws, raw)

		a, err := reg.decode(raw, p, depth)
		if err != nil {
			return nil, nil, err
		}
		if a != nil {
			decoded = append(decoded, a)
		}
	}
	return raws, decoded, nil
}
