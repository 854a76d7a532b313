// Package classfile reads JVM class files and decodes the attributes
// attached to the class, its fields and its methods.
package classfile

import (
	"github.com/dhamidi/jattr/attr"
	"github.com/dhamidi/jattr/pool"
)

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Pool         pool.Table
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	// RawAttributes holds every class attribute in file order, Attributes
	// the ones the registry decoded.
	RawAttributes []attr.Raw
	Attributes    []attr.Attribute
}

func (cf *ClassFile) ClassName() string {
	return cf.Pool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.Pool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.Pool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsModule()
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.Pool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.Pool) == name {
			if descriptor == "" || cf.Methods[i].Descriptor(cf.Pool) == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

func (cf *ClassFile) GetMethods(name string) []*MethodInfo {
	var methods []*MethodInfo
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.Pool) == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}

// GetAttribute returns the first decoded class attribute of kind k.
func (cf *ClassFile) GetAttribute(k attr.Kind) attr.Attribute {
	return findAttribute(cf.Attributes, k)
}

// BootstrapMethods returns the class's bootstrap method table, or nil.
func (cf *ClassFile) BootstrapMethods() *attr.BootstrapMethods {
	bm, _ := cf.GetAttribute(attr.KindBootstrapMethods).(*attr.BootstrapMethods)
	return bm
}

// Record returns the record component list, or nil for classes that are
// not records.
func (cf *ClassFile) Record() *attr.Record {
	rec, _ := cf.GetAttribute(attr.KindRecord).(*attr.Record)
	return rec
}

func findAttribute(attrs []attr.Attribute, k attr.Kind) attr.Attribute {
	for _, a := range attrs {
		if a.Kind() == k {
			return a
		}
	}
	return nil
}
