package attr

import (
	"fmt"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// Type annotation target_type values (JVMS 4.7.20).
const (
	TargetClassTypeParameter       uint8 = 0x00
	TargetMethodTypeParameter      uint8 = 0x01
	TargetSupertype                uint8 = 0x10
	TargetClassTypeParameterBound  uint8 = 0x11
	TargetMethodTypeParameterBound uint8 = 0x12
	TargetField                    uint8 = 0x13
	TargetMethodReturn             uint8 = 0x14
	TargetMethodReceiver           uint8 = 0x15
	TargetMethodFormalParameter    uint8 = 0x16
	TargetThrows                   uint8 = 0x17
	TargetLocalVariable            uint8 = 0x40
	TargetResourceVariable         uint8 = 0x41
	TargetExceptionParameter       uint8 = 0x42
	TargetInstanceOf               uint8 = 0x43
	TargetNew                      uint8 = 0x44
	TargetConstructorReference     uint8 = 0x45
	TargetMethodReference          uint8 = 0x46
	TargetCast                     uint8 = 0x47
	TargetConstructorInvocationArg uint8 = 0x48
	TargetMethodInvocationArg      uint8 = 0x49
	TargetConstructorRefArg        uint8 = 0x4A
	TargetMethodRefArg             uint8 = 0x4B
)

// LocalVarTarget is one live range of an annotated local variable.
type LocalVarTarget struct {
	StartPC uint16
	Length  uint16
	Slot    uint16
}

// TargetInfo is the decoded target_info union. Only the fields that belong
// to the annotation's target type are set.
type TargetInfo struct {
	TypeParameterIndex   uint8
	SupertypeIndex       uint16
	BoundIndex           uint8
	FormalParameterIndex uint8
	ThrowsTypeIndex      uint16
	LocalVars            []LocalVarTarget
	ExceptionTableIndex  uint16
	Offset               uint16
	TypeArgumentIndex    uint8
}

// TypePathEntry is one step of a type_path: the path kind and, for type
// arguments, which argument.
type TypePathEntry struct {
	Kind              uint8
	TypeArgumentIndex uint8
}

// TypeAnnotation is an annotation on a use of a type.
type TypeAnnotation struct {
	TargetType uint8
	Target     TargetInfo
	Path       []TypePathEntry
	Annotation *Annotation
}

// TypeAnnotations decodes RuntimeVisibleTypeAnnotations and
// RuntimeInvisibleTypeAnnotations.
type TypeAnnotations struct {
	header
	Annotations []TypeAnnotation
}

// Visible reports whether the annotations are retained at runtime.
func (a *TypeAnnotations) Visible() bool {
	return a.kind == KindRuntimeVisibleTypeAnnotations
}

func (a *TypeAnnotations) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Annotations = make([]TypeAnnotation, count)
	for i := range a.Annotations {
		if err := readTypeAnnotation(r, p, &a.Annotations[i]); err != nil {
			return fmt.Errorf("type annotation %d: %w", i, err)
		}
	}
	return nil
}

func readTypeAnnotation(r *binary.Reader, p pool.Lookup, ta *TypeAnnotation) error {
	var err error
	if ta.TargetType, err = r.ReadU1(); err != nil {
		return err
	}
	if err := readTargetInfo(r, ta.TargetType, &ta.Target); err != nil {
		return err
	}

	pathLength, err := r.ReadU1()
	if err != nil {
		return err
	}
	ta.Path = make([]TypePathEntry, pathLength)
	for i := range ta.Path {
		if ta.Path[i].Kind, err = r.ReadU1(); err != nil {
			return err
		}
		if ta.Path[i].TypeArgumentIndex, err = r.ReadU1(); err != nil {
			return err
		}
	}

	ta.Annotation, err = readAnnotation(r, p)
	return err
}

func readTargetInfo(r *binary.Reader, target uint8, ti *TargetInfo) error {
	var err error
	switch target {
	case TargetClassTypeParameter, TargetMethodTypeParameter:
		ti.TypeParameterIndex, err = r.ReadU1()
	case TargetSupertype:
		ti.SupertypeIndex, err = r.ReadU2()
	case TargetClassTypeParameterBound, TargetMethodTypeParameterBound:
		if ti.TypeParameterIndex, err = r.ReadU1(); err != nil {
			return err
		}
		ti.BoundIndex, err = r.ReadU1()
	case TargetField, TargetMethodReturn, TargetMethodReceiver:
	case TargetMethodFormalParameter:
		ti.FormalParameterIndex, err = r.ReadU1()
	case TargetThrows:
		ti.ThrowsTypeIndex, err = r.ReadU2()
	case TargetLocalVariable, TargetResourceVariable:
		var count uint16
		if count, err = r.ReadU2(); err != nil {
			return err
		}
		ti.LocalVars = make([]LocalVarTarget, count)
		for i := range ti.LocalVars {
			lv := &ti.LocalVars[i]
			if lv.StartPC, err = r.ReadU2(); err != nil {
				return err
			}
			if lv.Length, err = r.ReadU2(); err != nil {
				return err
			}
			if lv.Slot, err = r.ReadU2(); err != nil {
				return err
			}
		}
	case TargetExceptionParameter:
		ti.ExceptionTableIndex, err = r.ReadU2()
	case TargetInstanceOf, TargetNew, TargetConstructorReference, TargetMethodReference:
		ti.Offset, err = r.ReadU2()
	case TargetCast, TargetConstructorInvocationArg, TargetMethodInvocationArg, TargetConstructorRefArg, TargetMethodRefArg:
		if ti.Offset, err = r.ReadU2(); err != nil {
			return err
		}
		ti.TypeArgumentIndex, err = r.ReadU1()
	default:
		return fmt.Errorf("%w: 0x%02x", ErrInvalidTargetType, target)
	}
	return err
}
