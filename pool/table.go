package pool

import (
	"fmt"
	"math"

	"github.com/dhamidi/jattr/internal/binary"
)

// Table is a parsed constant pool. Slot i holds the entry for index i+1;
// the slot after a Long or Double is nil.
type Table []Entry

var _ Lookup = Table(nil)

func (t Table) entry(index uint16) (Entry, error) {
	if index == 0 || int(index) > len(t) || t[index-1] == nil {
		return nil, fmt.Errorf("%w: %d (pool size %d)", ErrIndexOutOfRange, index, len(t))
	}
	return t[index-1], nil
}

func (t Table) wrongTag(index uint16, e Entry, want string) error {
	return fmt.Errorf("%w: index %d is %s, want %s", ErrWrongTag, index, e.Tag(), want)
}

// Utf8 returns the string at a Utf8 index.
func (t Table) Utf8(index uint16) (string, error) {
	e, err := t.entry(index)
	if err != nil {
		return "", err
	}
	u, ok := e.(*Utf8Info)
	if !ok {
		return "", t.wrongTag(index, e, "Utf8")
	}
	return u.Value, nil
}

// GetUtf8 is Utf8 with errors mapped to the empty string.
func (t Table) GetUtf8(index uint16) string {
	s, _ := t.Utf8(index)
	return s
}

// GetClassName returns the internal name of a Class entry, or "".
func (t Table) GetClassName(index uint16) string {
	e, err := t.entry(index)
	if err != nil {
		return ""
	}
	if c, ok := e.(*ClassInfo); ok {
		return t.GetUtf8(c.NameIndex)
	}
	return ""
}

func (t Table) nameAndType(index uint16) (name, descriptor string, err error) {
	e, err := t.entry(index)
	if err != nil {
		return "", "", err
	}
	nt, ok := e.(*NameAndTypeInfo)
	if !ok {
		return "", "", t.wrongTag(index, e, "NameAndType")
	}
	if name, err = t.Utf8(nt.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = t.Utf8(nt.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// PrimitiveConstant implements Lookup.
func (t Table) PrimitiveConstant(index uint16) (Constant, error) {
	e, err := t.entry(index)
	if err != nil {
		return Constant{}, err
	}
	switch c := e.(type) {
	case *Utf8Info:
		return Constant{Tag: TagUtf8, Value: c.Value}, nil
	case *StringInfo:
		s, err := t.Utf8(c.StringIndex)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: TagString, Value: s}, nil
	case *ClassInfo:
		s, err := t.Utf8(c.NameIndex)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: TagClass, Value: s}, nil
	case *IntegerInfo:
		return Constant{Tag: TagInteger, Value: c.Value}, nil
	case *FloatInfo:
		return Constant{Tag: TagFloat, Value: c.Value}, nil
	case *LongInfo:
		return Constant{Tag: TagLong, Value: c.Value}, nil
	case *DoubleInfo:
		return Constant{Tag: TagDouble, Value: c.Value}, nil
	case *MethodTypeInfo:
		s, err := t.Utf8(c.DescriptorIndex)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: TagMethodType, Value: s}, nil
	case *NamedInfo:
		s, err := t.Utf8(c.NameIndex)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: c.Kind, Value: s}, nil
	default:
		return Constant{}, t.wrongTag(index, e, "primitive constant")
	}
}

// LinkConstant implements Lookup.
func (t Table) LinkConstant(index uint16) (LinkConstant, error) {
	e, err := t.entry(index)
	if err != nil {
		return LinkConstant{}, err
	}
	switch c := e.(type) {
	case *MemberrefInfo:
		return t.memberref(c)
	case *NameAndTypeInfo:
		name, desc, err := t.nameAndType(index)
		if err != nil {
			return LinkConstant{}, err
		}
		return LinkConstant{Tag: TagNameAndType, ElementName: name, Descriptor: desc}, nil
	case *MethodHandleInfo:
		ref, err := t.handleReference(c)
		if err != nil {
			return LinkConstant{}, err
		}
		ref.HandleKind = c.ReferenceKind
		return ref, nil
	case *DynamicInfo:
		name, desc, err := t.nameAndType(c.NameAndTypeIndex)
		if err != nil {
			return LinkConstant{}, err
		}
		return LinkConstant{Tag: c.Kind, ElementName: name, Descriptor: desc, BootstrapIndex: c.BootstrapMethodAttrIndex}, nil
	default:
		return LinkConstant{}, t.wrongTag(index, e, "link constant")
	}
}

func (t Table) memberref(c *MemberrefInfo) (LinkConstant, error) {
	ce, err := t.entry(c.ClassIndex)
	if err != nil {
		return LinkConstant{}, err
	}
	ci, ok := ce.(*ClassInfo)
	if !ok {
		return LinkConstant{}, t.wrongTag(c.ClassIndex, ce, "Class")
	}
	className, err := t.Utf8(ci.NameIndex)
	if err != nil {
		return LinkConstant{}, err
	}
	name, desc, err := t.nameAndType(c.NameAndTypeIndex)
	if err != nil {
		return LinkConstant{}, err
	}
	return LinkConstant{Tag: c.Kind, ClassName: className, ElementName: name, Descriptor: desc}, nil
}

// handleReference resolves the target of a MethodHandle, which must be a
// Fieldref, Methodref or InterfaceMethodref.
func (t Table) handleReference(c *MethodHandleInfo) (LinkConstant, error) {
	e, err := t.entry(c.ReferenceIndex)
	if err != nil {
		return LinkConstant{}, err
	}
	m, ok := e.(*MemberrefInfo)
	if !ok {
		return LinkConstant{}, t.wrongTag(c.ReferenceIndex, e, "member reference")
	}
	return t.memberref(m)
}

// Constant implements Lookup.
func (t Table) Constant(index uint16) (Constant, error) {
	e, err := t.entry(index)
	if err != nil {
		return Constant{}, err
	}
	switch c := e.(type) {
	case *MethodHandleInfo:
		ref, err := t.handleReference(c)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: TagMethodHandle, Value: MethodHandle{Kind: c.ReferenceKind, Reference: ref}}, nil
	case *MemberrefInfo, *NameAndTypeInfo, *DynamicInfo:
		link, err := t.LinkConstant(index)
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: e.Tag(), Value: link}, nil
	default:
		return t.PrimitiveConstant(index)
	}
}

// Read parses a constant pool, starting at its u2 count.
func Read(r *binary.Reader) (Table, error) {
	count, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("read constant pool count: %w", err)
	}
	if count == 0 {
		return Table{}, nil
	}

	t := make(Table, count-1)
	for i := uint16(1); i < count; i++ {
		entry, err := readEntry(r)
		if err != nil {
			return nil, fmt.Errorf("read constant pool entry %d: %w", i, err)
		}
		t[i-1] = entry
		if entry.Tag().Wide() {
			i++
		}
	}
	return t, nil
}

func readEntry(r *binary.Reader) (Entry, error) {
	b, err := r.ReadU1()
	if err != nil {
		return nil, err
	}
	tag := Tag(b)

	// u2 and u4 keep the first read error in err.
	u2 := func() uint16 {
		if err != nil {
			return 0
		}
		var v uint16
		v, err = r.ReadU2()
		return v
	}
	u4 := func() uint32 {
		if err != nil {
			return 0
		}
		var v uint32
		v, err = r.ReadU4()
		return v
	}

	var entry Entry
	switch tag {
	case TagUtf8:
		length := u2()
		if err != nil {
			return nil, err
		}
		data, rerr := r.ReadBytes(int(length))
		if rerr != nil {
			return nil, rerr
		}
		entry = &Utf8Info{Value: decodeModifiedUtf8(data)}
	case TagInteger:
		entry = &IntegerInfo{Value: int32(u4())}
	case TagFloat:
		entry = &FloatInfo{Value: math.Float32frombits(u4())}
	case TagLong:
		high, low := u4(), u4()
		entry = &LongInfo{Value: int64(uint64(high)<<32 | uint64(low))}
	case TagDouble:
		high, low := u4(), u4()
		entry = &DoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}
	case TagClass:
		entry = &ClassInfo{NameIndex: u2()}
	case TagString:
		entry = &StringInfo{StringIndex: u2()}
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		entry = &MemberrefInfo{Kind: tag, ClassIndex: u2(), NameAndTypeIndex: u2()}
	case TagNameAndType:
		entry = &NameAndTypeInfo{NameIndex: u2(), DescriptorIndex: u2()}
	case TagMethodHandle:
		kind, kerr := r.ReadU1()
		if kerr != nil {
			return nil, kerr
		}
		entry = &MethodHandleInfo{ReferenceKind: HandleKind(kind), ReferenceIndex: u2()}
	case TagMethodType:
		entry = &MethodTypeInfo{DescriptorIndex: u2()}
	case TagDynamic, TagInvokeDynamic:
		entry = &DynamicInfo{Kind: tag, BootstrapMethodAttrIndex: u2(), NameAndTypeIndex: u2()}
	case TagModule, TagPackage:
		entry = &NamedInfo{Kind: tag, NameIndex: u2()}
	default:
		return nil, fmt.Errorf("unknown constant pool tag: %d", tag)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8, joining encoded
// surrogate pairs.
func decodeModifiedUtf8(bytes []byte) string {
	runes := make([]rune, 0, len(bytes))
	i := 0
	for i < len(bytes) {
		b := bytes[i]
		switch {
		case b&0x80 == 0:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0 && i+1 < len(bytes):
			runes = append(runes, rune(b&0x1F)<<6|rune(bytes[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0 && i+2 < len(bytes):
			r := rune(b&0x0F)<<12 | rune(bytes[i+1]&0x3F)<<6 | rune(bytes[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(bytes) && bytes[i+3] == 0xED {
				low := rune(bytes[i+3]&0x0F)<<12 | rune(bytes[i+4]&0x3F)<<6 | rune(bytes[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
