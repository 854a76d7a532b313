package classfile

import (
	"github.com/dhamidi/jattr/attr"
	"github.com/dhamidi/jattr/descriptor"
	"github.com/dhamidi/jattr/pool"
)

type MethodInfo struct {
	member
}

// Code returns the method body, or nil for abstract and native methods.
func (m *MethodInfo) Code() *attr.Code {
	code, _ := m.GetAttribute(attr.KindCode).(*attr.Code)
	return code
}

// Exceptions returns the declared exception class names in order.
func (m *MethodInfo) Exceptions(cp pool.Table) ([]string, error) {
	ex, ok := m.GetAttribute(attr.KindExceptions).(*attr.Exceptions)
	if !ok {
		return nil, nil
	}
	return ex.ClassNames(cp)
}

// LocalVariableNames maps slots to names from the method body's
// LocalVariableTable attributes, merged in order.
func (m *MethodInfo) LocalVariableNames() map[uint16]string {
	code := m.Code()
	if code == nil {
		return nil
	}
	lvt := code.LocalVariables()
	if lvt == nil {
		return nil
	}
	return lvt.Names()
}

func (m *MethodInfo) IsPublic() bool       { return m.AccessFlags.IsPublic() }
func (m *MethodInfo) IsPrivate() bool      { return m.AccessFlags.IsPrivate() }
func (m *MethodInfo) IsProtected() bool    { return m.AccessFlags.IsProtected() }
func (m *MethodInfo) IsStatic() bool       { return m.AccessFlags.IsStatic() }
func (m *MethodInfo) IsFinal() bool        { return m.AccessFlags.IsFinal() }
func (m *MethodInfo) IsSynchronized() bool { return m.AccessFlags.IsSynchronized() }
func (m *MethodInfo) IsBridge() bool       { return m.AccessFlags.IsBridge() }
func (m *MethodInfo) IsVarargs() bool      { return m.AccessFlags.IsVarargs() }
func (m *MethodInfo) IsNative() bool       { return m.AccessFlags.IsNative() }
func (m *MethodInfo) IsAbstract() bool     { return m.AccessFlags.IsAbstract() }
func (m *MethodInfo) IsStrict() bool       { return m.AccessFlags.IsStrict() }
func (m *MethodInfo) IsSynthetic() bool    { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfo) IsConstructor(cp pool.Table) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp pool.Table) bool {
	return m.Name(cp) == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp pool.Table) (*descriptor.MethodDescriptor, error) {
	return descriptor.ParseMethod(m.Descriptor(cp))
}
