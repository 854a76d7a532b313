// Package descriptor parses JVM field and method descriptors.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned for malformed descriptors.
var ErrInvalid = errors.New("invalid descriptor")

// Object is the internal name of java.lang.Object.
const Object = "java/lang/Object"

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

var baseTags = func() map[string]byte {
	m := make(map[string]byte, len(baseTypes))
	for tag, name := range baseTypes {
		m[name] = tag
	}
	return m
}()

// BaseTypeName returns the Java keyword for a primitive descriptor tag,
// including 'V' for void.
func BaseTypeName(tag byte) (string, bool) {
	name, ok := baseTypes[tag]
	return name, ok
}

// FieldType is a parsed field descriptor. Exactly one of BaseType and
// ClassName is set.
type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

// ObjectType returns the type of a class given its internal name.
func ObjectType(internalName string) FieldType {
	return FieldType{ClassName: internalName}
}

// ArrayOf returns an array type one dimension deeper than ft.
func ArrayOf(ft FieldType) FieldType {
	ft.ArrayDepth++
	return ft
}

func (ft FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Descriptor renders ft back to descriptor form.
func (ft FieldType) Descriptor() string {
	var sb strings.Builder
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteByte('[')
	}
	if tag, ok := baseTags[ft.BaseType]; ok {
		sb.WriteByte(tag)
	} else {
		sb.WriteString("L" + ft.ClassName + ";")
	}
	return sb.String()
}

func (ft FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ArrayDepth == 0
}

func (ft FieldType) IsReference() bool {
	return ft.ClassName != "" || ft.ArrayDepth > 0
}

func (ft FieldType) IsVoid() bool {
	return ft.BaseType == "void"
}

type MethodDescriptor struct {
	Parameters []FieldType
	// ReturnType is nil for void methods.
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

// ParseField parses a field descriptor. Void is accepted so that class
// literals like void.class can be described.
func ParseField(desc string) (FieldType, error) {
	ft, n, err := parseFieldType(desc, 0)
	if err != nil {
		return FieldType{}, err
	}
	if n != len(desc) {
		return FieldType{}, fmt.Errorf("%w: trailing data in %q", ErrInvalid, desc)
	}
	return ft, nil
}

// ParseMethod parses a method descriptor.
func ParseMethod(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, fmt.Errorf("%w: %q does not start with '('", ErrInvalid, desc)
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, consumed, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		if ft.IsVoid() {
			return nil, fmt.Errorf("%w: void parameter in %q", ErrInvalid, desc)
		}
		md.Parameters = append(md.Parameters, ft)
		i += consumed
	}
	if i >= len(desc) {
		return nil, fmt.Errorf("%w: unterminated parameters in %q", ErrInvalid, desc)
	}
	i++

	ret, consumed, err := parseFieldType(desc, i)
	if err != nil {
		return nil, err
	}
	if i+consumed != len(desc) {
		return nil, fmt.Errorf("%w: trailing data in %q", ErrInvalid, desc)
	}
	if !ret.IsVoid() {
		md.ReturnType = &ret
	}
	return md, nil
}

func parseFieldType(desc string, start int) (FieldType, int, error) {
	var ft FieldType
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return FieldType{}, 0, fmt.Errorf("%w: %q ends early", ErrInvalid, desc)
	}

	if name, ok := baseTypes[desc[i]]; ok {
		if desc[i] == 'V' && ft.ArrayDepth > 0 {
			return FieldType{}, 0, fmt.Errorf("%w: array of void in %q", ErrInvalid, desc)
		}
		ft.BaseType = name
		return ft, i - start + 1, nil
	}
	if desc[i] != 'L' {
		return FieldType{}, 0, fmt.Errorf("%w: unexpected %q in %q", ErrInvalid, desc[i], desc)
	}
	semicolon := strings.IndexByte(desc[i:], ';')
	if semicolon <= 1 {
		return FieldType{}, 0, fmt.Errorf("%w: unterminated class name in %q", ErrInvalid, desc)
	}
	ft.ClassName = desc[i+1 : i+semicolon]
	return ft, i - start + semicolon + 1, nil
}

// ClassLiteralName returns the name a class literal with the given
// descriptor refers to: the Java keyword for primitives and void, the
// internal name for classes, and the descriptor itself for arrays.
func ClassLiteralName(desc string) (string, error) {
	ft, err := ParseField(desc)
	if err != nil {
		return "", err
	}
	switch {
	case ft.IsArray():
		return desc, nil
	case ft.BaseType != "":
		return ft.BaseType, nil
	default:
		return ft.ClassName, nil
	}
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
