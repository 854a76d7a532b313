package attr

import (
	"fmt"

	"github.com/dhamidi/jattr/descriptor"
	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// ElementValue is one value inside an annotation. Implementations are
// ConstValue, EnumValue, ClassValue, ArrayValue and *Annotation.
type ElementValue interface {
	// ElementTag returns the element_value tag the value was encoded with.
	ElementTag() byte
	// Type returns the Java type of the value.
	Type() descriptor.FieldType
}

// ConstValue is a primitive or string element. Value holds int8 ('B'),
// uint16 ('C'), float64 ('D'), float32 ('F'), int32 ('I'), int64 ('J'),
// int16 ('S'), bool ('Z') or string ('s').
type ConstValue struct {
	Tag   byte
	Index uint16
	Value any
}

func (v ConstValue) ElementTag() byte { return v.Tag }

func (v ConstValue) Type() descriptor.FieldType {
	if v.Tag == 's' {
		return descriptor.ObjectType("java/lang/String")
	}
	name, _ := descriptor.BaseTypeName(v.Tag)
	return descriptor.FieldType{BaseType: name}
}

// EnumValue is a reference to an enum constant.
type EnumValue struct {
	Descriptor string
	ClassName  string
	ConstName  string
}

func (v EnumValue) ElementTag() byte { return 'e' }

func (v EnumValue) Type() descriptor.FieldType { return descriptor.ObjectType(v.ClassName) }

// ClassValue is a class literal. Name is the Java keyword for primitive
// types and void, the internal name for classes, and the descriptor for
// arrays.
type ClassValue struct {
	Descriptor string
	Name       string
}

func (v ClassValue) ElementTag() byte { return 'c' }

func (v ClassValue) Type() descriptor.FieldType { return descriptor.ObjectType("java/lang/Class") }

// ArrayValue is an array element. ElementType is the type of the first
// element, or java/lang/Object when the array is empty.
type ArrayValue struct {
	ElementType descriptor.FieldType
	Elements    []ElementValue
}

func (v ArrayValue) ElementTag() byte { return '[' }

func (v ArrayValue) Type() descriptor.FieldType { return descriptor.ArrayOf(v.ElementType) }

// ElementPair is one name = value member of an annotation.
type ElementPair struct {
	Name  string
	Value ElementValue
}

// Annotation is a decoded annotation. Entries keep the order in which they
// appear in the class file.
type Annotation struct {
	Descriptor string
	ClassType  string
	Entries    []ElementPair
}

func (a *Annotation) ElementTag() byte { return '@' }

func (a *Annotation) Type() descriptor.FieldType { return descriptor.ObjectType(a.ClassType) }

// Get returns the value of the named member.
func (a *Annotation) Get(name string) (ElementValue, bool) {
	for _, e := range a.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

func readAnnotation(r *binary.Reader, p pool.Lookup) (*Annotation, error) {
	return readNestedAnnotation(r, p, 0)
}

// readNestedAnnotation reads an annotation that sits depth element values
// deep.
func readNestedAnnotation(r *binary.Reader, p pool.Lookup, depth int) (*Annotation, error) {
	_, desc, err := readString(r, p)
	if err != nil {
		return nil, err
	}
	ft, err := descriptor.ParseField(desc)
	if err != nil {
		return nil, fmt.Errorf("annotation type: %w", err)
	}
	count, err := r.ReadU2()
	if err != nil {
		return nil, err
	}

	a := &Annotation{Descriptor: desc, ClassType: ft.ClassName, Entries: make([]ElementPair, count)}
	for i := range a.Entries {
		if _, a.Entries[i].Name, err = readString(r, p); err != nil {
			return nil, err
		}
		if a.Entries[i].Value, err = readNestedElementValue(r, p, depth); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", a.ClassType, a.Entries[i].Name, err)
		}
	}
	return a, nil
}

func readElementValue(r *binary.Reader, p pool.Lookup) (ElementValue, error) {
	return readNestedElementValue(r, p, 0)
}

func readNestedElementValue(r *binary.Reader, p pool.Lookup, depth int) (ElementValue, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("%w: element values nested more than %d levels", ErrNestingTooDeep, maxNesting)
	}
	tag, err := r.ReadU1()
	if err != nil {
		return nil, err
	}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		index, err := r.ReadU2()
		if err != nil {
			return nil, err
		}
		c, err := p.PrimitiveConstant(index)
		if err != nil {
			return nil, err
		}
		value, err := constValue(tag, c)
		if err != nil {
			return nil, err
		}
		return ConstValue{Tag: tag, Index: index, Value: value}, nil

	case 'e':
		_, desc, err := readString(r, p)
		if err != nil {
			return nil, err
		}
		_, name, err := readString(r, p)
		if err != nil {
			return nil, err
		}
		ft, err := descriptor.ParseField(desc)
		if err != nil {
			return nil, fmt.Errorf("enum type: %w", err)
		}
		return EnumValue{Descriptor: desc, ClassName: ft.ClassName, ConstName: name}, nil

	case 'c':
		_, desc, err := readString(r, p)
		if err != nil {
			return nil, err
		}
		name, err := descriptor.ClassLiteralName(desc)
		if err != nil {
			return nil, fmt.Errorf("class literal: %w", err)
		}
		return ClassValue{Descriptor: desc, Name: name}, nil

	case '[':
		count, err := r.ReadU2()
		if err != nil {
			return nil, err
		}
		arr := ArrayValue{Elements: make([]ElementValue, count)}
		for i := range arr.Elements {
			if arr.Elements[i], err = readNestedElementValue(r, p, depth+1); err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
		}
		if len(arr.Elements) > 0 {
			arr.ElementType = arr.Elements[0].Type()
		} else {
			arr.ElementType = descriptor.ObjectType(descriptor.Object)
		}
		return arr, nil

	case '@':
		a, err := readNestedAnnotation(r, p, depth+1)
		if err != nil {
			return nil, err
		}
		return a, nil

	default:
		return nil, fmt.Errorf("%w: %q (0x%02x)", ErrInvalidElementTag, tag, tag)
	}
}

func constValue(tag byte, c pool.Constant) (any, error) {
	mismatch := func() error {
		return fmt.Errorf("%w: tag %q, constant %s", ErrConstantType, tag, c.Tag)
	}
	switch tag {
	case 'B', 'C', 'I', 'S', 'Z':
		v, ok := c.Value.(int32)
		if !ok {
			return nil, mismatch()
		}
		switch tag {
		case 'B':
			return int8(v), nil
		case 'C':
			return uint16(v), nil
		case 'S':
			return int16(v), nil
		case 'Z':
			return v != 0, nil
		}
		return v, nil
	case 'J':
		if v, ok := c.Value.(int64); ok {
			return v, nil
		}
	case 'F':
		if v, ok := c.Value.(float32); ok {
			return v, nil
		}
	case 'D':
		if v, ok := c.Value.(float64); ok {
			return v, nil
		}
	case 's':
		if v, ok := c.Value.(string); ok {
			return v, nil
		}
	}
	return nil, mismatch()
}
