package classfile

import (
	"github.com/dhamidi/jattr/attr"
	"github.com/dhamidi/jattr/descriptor"
	"github.com/dhamidi/jattr/pool"
)

// member is the field_info / method_info layout shared by fields and
// methods.
type member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	RawAttributes   []attr.Raw
	Attributes      []attr.Attribute
}

func (m *member) Name(cp pool.Table) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *member) Descriptor(cp pool.Table) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

// GetAttribute returns the first decoded attribute of kind k.
func (m *member) GetAttribute(k attr.Kind) attr.Attribute {
	return findAttribute(m.Attributes, k)
}

// Signature returns the generic signature, or "" when there is none.
func (m *member) Signature() string {
	if sig, ok := m.GetAttribute(attr.KindSignature).(*attr.Signature); ok {
		return sig.Value
	}
	return ""
}

func (m *member) IsDeprecated() bool {
	return m.GetAttribute(attr.KindDeprecated) != nil
}

type FieldInfo struct {
	member
}

func (f *FieldInfo) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *FieldInfo) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *FieldInfo) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *FieldInfo) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *FieldInfo) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *FieldInfo) IsVolatile() bool  { return f.AccessFlags.IsVolatile() }
func (f *FieldInfo) IsTransient() bool { return f.AccessFlags.IsTransient() }
func (f *FieldInfo) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }
func (f *FieldInfo) IsEnum() bool      { return f.AccessFlags.IsEnum() }

func (f *FieldInfo) ParsedDescriptor(cp pool.Table) (descriptor.FieldType, error) {
	return descriptor.ParseField(f.Descriptor(cp))
}

// ConstantValue returns the field's constant initializer. ok is false when
// the field has none.
func (f *FieldInfo) ConstantValue(cp pool.Table) (c pool.Constant, ok bool, err error) {
	cv, isConst := f.GetAttribute(attr.KindConstantValue).(*attr.ConstantValue)
	if !isConst {
		return pool.Constant{}, false, nil
	}
	c, err = cv.Value(cp)
	return c, err == nil, err
}
