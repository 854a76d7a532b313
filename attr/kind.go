package attr

import "sort"

// Kind enumerates the attributes this package decodes.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConstantValue
	KindSignature
	KindAnnotationDefault
	KindExceptions
	KindEnclosingMethod
	KindRuntimeVisibleAnnotations
	KindRuntimeInvisibleAnnotations
	KindRuntimeVisibleParameterAnnotations
	KindRuntimeInvisibleParameterAnnotations
	KindRuntimeVisibleTypeAnnotations
	KindRuntimeInvisibleTypeAnnotations
	KindLocalVariableTable
	KindLocalVariableTypeTable
	KindBootstrapMethods
	KindSynthetic
	KindDeprecated
	KindSourceFile
	KindInnerClasses
	KindLineNumberTable
	KindMethodParameters
	KindNestHost
	KindNestMembers
	KindPermittedSubclasses
	KindCode
	KindRecord

	numKinds
)

var kinds = [numKinds]struct {
	name string
	new  func(h header) Attribute
}{
	KindUnknown:                              {"Unknown", nil},
	KindConstantValue:                        {"ConstantValue", func(h header) Attribute { return &ConstantValue{header: h} }},
	KindSignature:                            {"Signature", func(h header) Attribute { return &Signature{header: h} }},
	KindAnnotationDefault:                    {"AnnotationDefault", func(h header) Attribute { return &AnnotationDefault{header: h} }},
	KindExceptions:                           {"Exceptions", func(h header) Attribute { return &Exceptions{header: h} }},
	KindEnclosingMethod:                      {"EnclosingMethod", func(h header) Attribute { return &EnclosingMethod{header: h} }},
	KindRuntimeVisibleAnnotations:            {"RuntimeVisibleAnnotations", func(h header) Attribute { return &Annotations{header: h} }},
	KindRuntimeInvisibleAnnotations:          {"RuntimeInvisibleAnnotations", func(h header) Attribute { return &Annotations{header: h} }},
	KindRuntimeVisibleParameterAnnotations:   {"RuntimeVisibleParameterAnnotations", func(h header) Attribute { return &ParameterAnnotations{header: h} }},
	KindRuntimeInvisibleParameterAnnotations: {"RuntimeInvisibleParameterAnnotations", func(h header) Attribute { return &ParameterAnnotations{header: h} }},
	KindRuntimeVisibleTypeAnnotations:        {"RuntimeVisibleTypeAnnotations", func(h header) Attribute { return &TypeAnnotations{header: h} }},
	KindRuntimeInvisibleTypeAnnotations:      {"RuntimeInvisibleTypeAnnotations", func(h header) Attribute { return &TypeAnnotations{header: h} }},
	KindLocalVariableTable:                   {"LocalVariableTable", func(h header) Attribute { return &LocalVariableTable{header: h} }},
	KindLocalVariableTypeTable:               {"LocalVariableTypeTable", func(h header) Attribute { return &LocalVariableTable{header: h} }},
	KindBootstrapMethods:                     {"BootstrapMethods", func(h header) Attribute { return &BootstrapMethods{header: h} }},
	KindSynthetic:                            {"Synthetic", func(h header) Attribute { return &Marker{header: h} }},
	KindDeprecated:                           {"Deprecated", func(h header) Attribute { return &Marker{header: h} }},
	KindSourceFile:                           {"SourceFile", func(h header) Attribute { return &SourceFile{header: h} }},
	KindInnerClasses:                         {"InnerClasses", func(h header) Attribute { return &InnerClasses{header: h} }},
	KindLineNumberTable:                      {"LineNumberTable", func(h header) Attribute { return &LineNumberTable{header: h} }},
	KindMethodParameters:                     {"MethodParameters", func(h header) Attribute { return &MethodParameters{header: h} }},
	KindNestHost:                             {"NestHost", func(h header) Attribute { return &NestHost{header: h} }},
	KindNestMembers:                          {"NestMembers", func(h header) Attribute { return &ClassList{header: h} }},
	KindPermittedSubclasses:                  {"PermittedSubclasses", func(h header) Attribute { return &ClassList{header: h} }},
	KindCode:                                 {"Code", func(h header) Attribute { return &Code{header: h} }},
	KindRecord:                               {"Record", func(h header) Attribute { return &Record{header: h} }},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := KindUnknown + 1; k < numKinds; k++ {
		m[kinds[k].name] = k
	}
	return m
}()

func (k Kind) String() string {
	if k < numKinds {
		return kinds[k].name
	}
	return kinds[KindUnknown].name
}

// KindOf returns the Kind for an attribute name.
func KindOf(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every known kind, ordered by name.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := KindUnknown + 1; k < numKinds; k++ {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
