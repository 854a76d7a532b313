package pool

import (
	"math"

	"github.com/dhamidi/jattr/internal/binary"
)

// Builder assembles a constant pool, returning the index of each entry it
// adds. Utf8, Class, String and NameAndType entries are deduplicated.
type Builder struct {
	table Table
	utf8  map[string]uint16
	class map[string]uint16
	str   map[string]uint16
	nt    map[[2]string]uint16
}

func NewBuilder() *Builder {
	return &Builder{
		utf8:  map[string]uint16{},
		class: map[string]uint16{},
		str:   map[string]uint16{},
		nt:    map[[2]string]uint16{},
	}
}

func (b *Builder) add(e Entry) uint16 {
	b.table = append(b.table, e)
	index := uint16(len(b.table))
	if e.Tag().Wide() {
		b.table = append(b.table, nil)
	}
	return index
}

func (b *Builder) Utf8(s string) uint16 {
	if i, ok := b.utf8[s]; ok {
		return i
	}
	i := b.add(&Utf8Info{Value: s})
	b.utf8[s] = i
	return i
}

func (b *Builder) Class(internalName string) uint16 {
	if i, ok := b.class[internalName]; ok {
		return i
	}
	i := b.add(&ClassInfo{NameIndex: b.Utf8(internalName)})
	b.class[internalName] = i
	return i
}

func (b *Builder) String(s string) uint16 {
	if i, ok := b.str[s]; ok {
		return i
	}
	i := b.add(&StringInfo{StringIndex: b.Utf8(s)})
	b.str[s] = i
	return i
}

func (b *Builder) Integer(v int32) uint16  { return b.add(&IntegerInfo{Value: v}) }
func (b *Builder) Float(v float32) uint16  { return b.add(&FloatInfo{Value: v}) }
func (b *Builder) Long(v int64) uint16     { return b.add(&LongInfo{Value: v}) }
func (b *Builder) Double(v float64) uint16 { return b.add(&DoubleInfo{Value: v}) }

func (b *Builder) MethodType(d string) uint16 {
	return b.add(&MethodTypeInfo{DescriptorIndex: b.Utf8(d)})
}

func (b *Builder) NameAndType(name, descriptor string) uint16 {
	key := [2]string{name, descriptor}
	if i, ok := b.nt[key]; ok {
		return i
	}
	i := b.add(&NameAndTypeInfo{NameIndex: b.Utf8(name), DescriptorIndex: b.Utf8(descriptor)})
	b.nt[key] = i
	return i
}

func (b *Builder) Fieldref(class, name, descriptor string) uint16 {
	return b.memberref(TagFieldref, class, name, descriptor)
}

func (b *Builder) Methodref(class, name, descriptor string) uint16 {
	return b.memberref(TagMethodref, class, name, descriptor)
}

func (b *Builder) InterfaceMethodref(class, name, descriptor string) uint16 {
	return b.memberref(TagInterfaceMethodref, class, name, descriptor)
}

func (b *Builder) memberref(tag Tag, class, name, descriptor string) uint16 {
	return b.add(&MemberrefInfo{Kind: tag, ClassIndex: b.Class(class), NameAndTypeIndex: b.NameAndType(name, descriptor)})
}

func (b *Builder) MethodHandle(kind HandleKind, reference uint16) uint16 {
	return b.add(&MethodHandleInfo{ReferenceKind: kind, ReferenceIndex: reference})
}

func (b *Builder) InvokeDynamic(bootstrap uint16, name, descriptor string) uint16 {
	return b.add(&DynamicInfo{Kind: TagInvokeDynamic, BootstrapMethodAttrIndex: bootstrap, NameAndTypeIndex: b.NameAndType(name, descriptor)})
}

// Table returns the pool built so far. Later additions do not affect it.
func (b *Builder) Table() Table {
	return append(Table(nil), b.table...)
}

// Encode writes the pool in class-file form, count first.
func (b *Builder) Encode(w *binary.Writer) {
	w.U2(uint16(len(b.table) + 1))
	for _, e := range b.table {
		if e == nil {
			continue
		}
		w.U1(uint8(e.Tag()))
		switch c := e.(type) {
		case *Utf8Info:
			// Standard UTF-8; NUL and supplementary characters are not
			// rewritten to their modified forms.
			w.U2(uint16(len(c.Value))).Raw([]byte(c.Value))
		case *IntegerInfo:
			w.U4(uint32(c.Value))
		case *FloatInfo:
			w.U4(math.Float32bits(c.Value))
		case *LongInfo:
			w.U4(uint32(uint64(c.Value) >> 32)).U4(uint32(c.Value))
		case *DoubleInfo:
			bits := math.Float64bits(c.Value)
			w.U4(uint32(bits >> 32)).U4(uint32(bits))
		case *ClassInfo:
			w.U2(c.NameIndex)
		case *StringInfo:
			w.U2(c.StringIndex)
		case *MemberrefInfo:
			w.U2(c.ClassIndex).U2(c.NameAndTypeIndex)
		case *NameAndTypeInfo:
			w.U2(c.NameIndex).U2(c.DescriptorIndex)
		case *MethodHandleInfo:
			w.U1(uint8(c.ReferenceKind)).U2(c.ReferenceIndex)
		case *MethodTypeInfo:
			w.U2(c.DescriptorIndex)
		case *DynamicInfo:
			w.U2(c.BootstrapMethodAttrIndex).U2(c.NameAndTypeIndex)
		case *NamedInfo:
			w.U2(c.NameIndex)
		}
	}
}
