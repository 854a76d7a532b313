package format

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/dhamidi/jattr/attr"
	"github.com/dhamidi/jattr/classfile"
	"github.com/dhamidi/jattr/pool"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name       string          `json:"name"`
	Version    jsonVersion     `json:"version"`
	Attributes []jsonAttribute `json:"attributes"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonAttribute struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
	Value   any    `json:"value,omitempty"`
}

type jsonAnnotation struct {
	Type    string             `json:"type"`
	Entries []jsonElementEntry `json:"entries,omitempty"`
}

type jsonElementEntry struct {
	Name  string      `json:"name"`
	Value jsonElement `json:"value"`
}

type jsonElement struct {
	Tag        string          `json:"tag"`
	Type       string          `json:"type"`
	Value      any             `json:"value,omitempty"`
	Elements   []jsonElement   `json:"elements,omitempty"`
	Annotation *jsonAnnotation `json:"annotation,omitempty"`
}

type jsonTypeAnnotation struct {
	TargetType uint8          `json:"targetType"`
	Target     jsonTarget     `json:"target"`
	Path       []jsonPathStep `json:"path,omitempty"`
	Annotation jsonAnnotation `json:"annotation"`
}

// jsonTarget carries only the target_info fields of the target type.
type jsonTarget struct {
	TypeParameterIndex   *uint8           `json:"typeParameterIndex,omitempty"`
	SupertypeIndex       *uint16          `json:"supertypeIndex,omitempty"`
	BoundIndex           *uint8           `json:"boundIndex,omitempty"`
	FormalParameterIndex *uint8           `json:"formalParameterIndex,omitempty"`
	ThrowsTypeIndex      *uint16          `json:"throwsTypeIndex,omitempty"`
	LocalVars            []jsonLocalRange `json:"localVars,omitempty"`
	ExceptionTableIndex  *uint16          `json:"exceptionTableIndex,omitempty"`
	Offset               *uint16          `json:"offset,omitempty"`
	TypeArgumentIndex    *uint8           `json:"typeArgumentIndex,omitempty"`
}

type jsonLocalRange struct {
	StartPC uint16 `json:"startPc"`
	Length  uint16 `json:"length"`
	Slot    uint16 `json:"slot"`
}

type jsonPathStep struct {
	Kind              uint8 `json:"kind"`
	TypeArgumentIndex uint8 `json:"typeArgumentIndex"`
}

type jsonComponent struct {
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
	Signature  string `json:"signature,omitempty"`
}

type jsonLocal struct {
	Slot    uint16 `json:"slot"`
	Name    string `json:"name"`
	StartPC uint16 `json:"startPc"`
	Length  uint16 `json:"length"`
}

type jsonBootstrap struct {
	Method    string   `json:"method"`
	Arguments []string `json:"arguments,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	cf := e.class
	data := jsonClass{
		Name: cf.ClassName(),
		Version: jsonVersion{
			Major: cf.MajorVersion,
			Minor: cf.MinorVersion,
		},
		Attributes: []jsonAttribute{},
	}
	for _, r := range Records(cf) {
		data.Attributes = append(data.Attributes, jsonAttribute{
			Owner:   r.Owner,
			Name:    r.Attribute.Name(),
			Summary: Summary(r.Attribute, cf.Pool),
			Value:   attributeValue(r.Attribute, cf.Pool),
		})
	}
	return data
}

func attributeValue(a attr.Attribute, p pool.Lookup) any {
	switch a := a.(type) {
	case *attr.Annotations:
		return buildAnnotations(a.Annotations)
	case *attr.ParameterAnnotations:
		params := make([][]jsonAnnotation, len(a.Parameters))
		for i, anns := range a.Parameters {
			params[i] = buildAnnotations(anns)
		}
		return params
	case *attr.TypeAnnotations:
		out := make([]jsonTypeAnnotation, len(a.Annotations))
		for i, ta := range a.Annotations {
			out[i] = jsonTypeAnnotation{
				TargetType: ta.TargetType,
				Target:     buildTarget(ta.TargetType, ta.Target),
				Annotation: buildAnnotation(ta.Annotation),
			}
			for _, step := range ta.Path {
				out[i].Path = append(out[i].Path, jsonPathStep{Kind: step.Kind, TypeArgumentIndex: step.TypeArgumentIndex})
			}
		}
		return out
	case *attr.Record:
		out := make([]jsonComponent, len(a.Components))
		for i := range a.Components {
			c := &a.Components[i]
			out[i] = jsonComponent{Name: c.Name, Descriptor: c.Descriptor, Signature: c.Signature()}
		}
		return out
	case *attr.AnnotationDefault:
		return buildElement(a.Value)
	case *attr.Exceptions:
		names, err := a.ClassNames(p)
		if err != nil {
			return nil
		}
		return names
	case *attr.LocalVariableTable:
		out := make([]jsonLocal, len(a.Variables))
		for i, v := range a.Variables {
			out[i] = jsonLocal{Slot: v.Slot, Name: v.Name, StartPC: v.StartPC, Length: v.Length}
		}
		return out
	case *attr.BootstrapMethods:
		out := make([]jsonBootstrap, a.Len())
		for i := range out {
			out[i].Method = a.MethodReference(i).String()
			for _, arg := range a.MethodArguments(i) {
				out[i].Arguments = append(out[i].Arguments, constantString(arg))
			}
		}
		return out
	}
	return nil
}

func buildTarget(targetType uint8, ti attr.TargetInfo) jsonTarget {
	var out jsonTarget
	switch targetType {
	case attr.TargetClassTypeParameter, attr.TargetMethodTypeParameter:
		out.TypeParameterIndex = &ti.TypeParameterIndex
	case attr.TargetSupertype:
		out.SupertypeIndex = &ti.SupertypeIndex
	case attr.TargetClassTypeParameterBound, attr.TargetMethodTypeParameterBound:
		out.TypeParameterIndex = &ti.TypeParameterIndex
		out.BoundIndex = &ti.BoundIndex
	case attr.TargetMethodFormalParameter:
		out.FormalParameterIndex = &ti.FormalParameterIndex
	case attr.TargetThrows:
		out.ThrowsTypeIndex = &ti.ThrowsTypeIndex
	case attr.TargetLocalVariable, attr.TargetResourceVariable:
		out.LocalVars = []jsonLocalRange{}
		for _, lv := range ti.LocalVars {
			out.LocalVars = append(out.LocalVars, jsonLocalRange{StartPC: lv.StartPC, Length: lv.Length, Slot: lv.Slot})
		}
	case attr.TargetExceptionParameter:
		out.ExceptionTableIndex = &ti.ExceptionTableIndex
	case attr.TargetInstanceOf, attr.TargetNew, attr.TargetConstructorReference, attr.TargetMethodReference:
		out.Offset = &ti.Offset
	case attr.TargetCast, attr.TargetConstructorInvocationArg, attr.TargetMethodInvocationArg,
		attr.TargetConstructorRefArg, attr.TargetMethodRefArg:
		out.Offset = &ti.Offset
		out.TypeArgumentIndex = &ti.TypeArgumentIndex
	}
	return out
}

func buildAnnotations(anns []*attr.Annotation) []jsonAnnotation {
	out := make([]jsonAnnotation, len(anns))
	for i, a := range anns {
		out[i] = buildAnnotation(a)
	}
	return out
}

func buildAnnotation(a *attr.Annotation) jsonAnnotation {
	out := jsonAnnotation{Type: a.ClassType}
	for _, entry := range a.Entries {
		out.Entries = append(out.Entries, jsonElementEntry{Name: entry.Name, Value: buildElement(entry.Value)})
	}
	return out
}

func buildElement(v attr.ElementValue) jsonElement {
	out := jsonElement{Tag: string(v.ElementTag()), Type: v.Type().String()}
	switch v := v.(type) {
	case attr.ConstValue:
		out.Value = jsonValue(v.Value)
	case attr.EnumValue:
		out.Value = v.ConstName
	case attr.ClassValue:
		out.Value = v.Name
	case attr.ArrayValue:
		out.Elements = make([]jsonElement, len(v.Elements))
		for i, e := range v.Elements {
			out.Elements[i] = buildElement(e)
		}
	case *attr.Annotation:
		a := buildAnnotation(v)
		out.Annotation = &a
	}
	return out
}

// jsonValue turns chars into one-character strings and non-finite floats,
// which encoding/json rejects, into their names.
func jsonValue(v any) any {
	switch x := v.(type) {
	case uint16:
		return string(rune(x))
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return fmt.Sprint(x)
		}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprint(x)
		}
	}
	return v
}
