package pool

// Tag identifies the kind of a constant pool entry.
type Tag uint8

const (
	TagUtf8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagDynamic            Tag = 17
	TagInvokeDynamic      Tag = 18
	TagModule             Tag = 19
	TagPackage            Tag = 20
)

var tagNames = map[Tag]string{
	TagUtf8:               "Utf8",
	TagInteger:            "Integer",
	TagFloat:              "Float",
	TagLong:               "Long",
	TagDouble:             "Double",
	TagClass:              "Class",
	TagString:             "String",
	TagFieldref:           "Fieldref",
	TagMethodref:          "Methodref",
	TagInterfaceMethodref: "InterfaceMethodref",
	TagNameAndType:        "NameAndType",
	TagMethodHandle:       "MethodHandle",
	TagMethodType:         "MethodType",
	TagDynamic:            "Dynamic",
	TagInvokeDynamic:      "InvokeDynamic",
	TagModule:             "Module",
	TagPackage:            "Package",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Wide reports whether the entry occupies two pool slots.
func (t Tag) Wide() bool {
	return t == TagLong || t == TagDouble
}

type HandleKind uint8

const (
	RefGetField         HandleKind = 1
	RefGetStatic        HandleKind = 2
	RefPutField         HandleKind = 3
	RefPutStatic        HandleKind = 4
	RefInvokeVirtual    HandleKind = 5
	RefInvokeStatic     HandleKind = 6
	RefInvokeSpecial    HandleKind = 7
	RefNewInvokeSpecial HandleKind = 8
	RefInvokeInterface  HandleKind = 9
)

// Entry is one raw slot of the constant pool as it appears in the class
// file. Indexes inside entries are unresolved.
type Entry interface {
	Tag() Tag
}

type Utf8Info struct {
	Value string
}

func (c *Utf8Info) Tag() Tag { return TagUtf8 }

type IntegerInfo struct {
	Value int32
}

func (c *IntegerInfo) Tag() Tag { return TagInteger }

type FloatInfo struct {
	Value float32
}

func (c *FloatInfo) Tag() Tag { return TagFloat }

type LongInfo struct {
	Value int64
}

func (c *LongInfo) Tag() Tag { return TagLong }

type DoubleInfo struct {
	Value float64
}

func (c *DoubleInfo) Tag() Tag { return TagDouble }

type ClassInfo struct {
	NameIndex uint16
}

func (c *ClassInfo) Tag() Tag { return TagClass }

type StringInfo struct {
	StringIndex uint16
}

func (c *StringInfo) Tag() Tag { return TagString }

// MemberrefInfo covers Fieldref, Methodref and InterfaceMethodref, which
// share one layout.
type MemberrefInfo struct {
	Kind             Tag
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *MemberrefInfo) Tag() Tag { return c.Kind }

type NameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *NameAndTypeInfo) Tag() Tag { return TagNameAndType }

type MethodHandleInfo struct {
	ReferenceKind  HandleKind
	ReferenceIndex uint16
}

func (c *MethodHandleInfo) Tag() Tag { return TagMethodHandle }

type MethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *MethodTypeInfo) Tag() Tag { return TagMethodType }

// DynamicInfo covers Dynamic and InvokeDynamic.
type DynamicInfo struct {
	Kind                     Tag
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *DynamicInfo) Tag() Tag { return c.Kind }

// NamedInfo covers Module and Package, which only carry a name.
type NamedInfo struct {
	Kind      Tag
	NameIndex uint16
}

func (c *NamedInfo) Tag() Tag { return c.Kind }
