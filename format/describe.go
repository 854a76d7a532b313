package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/jattr/attr"
	"github.com/dhamidi/jattr/classfile"
	"github.com/dhamidi/jattr/descriptor"
	"github.com/dhamidi/jattr/pool"
)

// Record is one decoded attribute together with the element that owns it.
type Record struct {
	// Owner is "class", "field <name> <descriptor>",
	// "method <name><descriptor>", "code <name><descriptor>" for
	// attributes nested in a method body, or "component <name> <descriptor>"
	// for attributes of a record component.
	Owner     string
	Attribute attr.Attribute
}

// Records lists every decoded attribute of cf in file order: class
// attributes first, then fields, then methods with their Code attributes
// followed by the attributes nested in them.
func Records(cf *classfile.ClassFile) []Record {
	var out []Record
	for _, a := range cf.Attributes {
		out = append(out, Record{Owner: "class", Attribute: a})
		if rec, ok := a.(*attr.Record); ok {
			for _, c := range rec.Components {
				owner := "component " + c.Name + " " + c.Descriptor
				for _, nested := range c.Attributes {
					out = append(out, Record{Owner: owner, Attribute: nested})
				}
			}
		}
	}
	for i := range cf.Fields {
		f := &cf.Fields[i]
		owner := "field " + f.Name(cf.Pool) + " " + f.Descriptor(cf.Pool)
		for _, a := range f.Attributes {
			out = append(out, Record{Owner: owner, Attribute: a})
		}
	}
	for i := range cf.Methods {
		m := &cf.Methods[i]
		sig := m.Name(cf.Pool) + m.Descriptor(cf.Pool)
		for _, a := range m.Attributes {
			out = append(out, Record{Owner: "method " + sig, Attribute: a})
			if code, ok := a.(*attr.Code); ok {
				for _, nested := range code.Attributes {
					out = append(out, Record{Owner: "code " + sig, Attribute: nested})
				}
			}
		}
	}
	return out
}

// Summary renders a decoded attribute on a single line.
func Summary(a attr.Attribute, p pool.Lookup) string {
	switch a := a.(type) {
	case *attr.Marker:
		return ""
	case *attr.ConstantValue:
		c, err := a.Value(p)
		if err != nil {
			return fmt.Sprintf("#%d", a.Index)
		}
		return constantString(c)
	case *attr.Signature:
		return a.Value
	case *attr.SourceFile:
		return a.Value
	case *attr.NestHost:
		return a.ClassName
	case *attr.EnclosingMethod:
		if !a.HasMethod() {
			return a.ClassName
		}
		return a.ClassName + "." + a.MethodName + a.MethodDescriptor
	case *attr.Exceptions:
		names, err := a.ClassNames(p)
		if err != nil {
			return err.Error()
		}
		return strings.Join(names, ",")
	case *attr.BootstrapMethods:
		parts := make([]string, a.Len())
		for i := range parts {
			args := make([]string, 0, len(a.MethodArguments(i)))
			for _, arg := range a.MethodArguments(i) {
				args = append(args, constantString(arg))
			}
			parts[i] = fmt.Sprintf("#%d %s(%s)", i, a.MethodReference(i), strings.Join(args, ", "))
		}
		return strings.Join(parts, "; ")
	case *attr.LocalVariableTable:
		var parts []string
		for _, slot := range a.Slots() {
			name, _ := a.VariableName(slot)
			parts = append(parts, fmt.Sprintf("%d=%s", slot, name))
		}
		return strings.Join(parts, ",")
	case *attr.Annotations:
		return annotationsString(a.Annotations)
	case *attr.ParameterAnnotations:
		parts := make([]string, len(a.Parameters))
		for i, anns := range a.Parameters {
			parts[i] = fmt.Sprintf("%d:%s", i, annotationsString(anns))
		}
		return strings.Join(parts, "; ")
	case *attr.TypeAnnotations:
		parts := make([]string, len(a.Annotations))
		for i, ta := range a.Annotations {
			parts[i] = fmt.Sprintf("0x%02x %s", ta.TargetType, AnnotationString(ta.Annotation))
		}
		return strings.Join(parts, " ")
	case *attr.AnnotationDefault:
		return ElementString(a.Value)
	case *attr.InnerClasses:
		parts := make([]string, len(a.Classes))
		for i, c := range a.Classes {
			parts[i] = c.InnerName
			if c.OuterName != "" || c.SimpleName != "" {
				parts[i] += "(" + c.OuterName + "," + c.SimpleName + ")"
			}
		}
		return strings.Join(parts, " ")
	case *attr.LineNumberTable:
		parts := make([]string, len(a.Lines))
		for i, l := range a.Lines {
			parts[i] = fmt.Sprintf("%d:%d", l.StartPC, l.Line)
		}
		return strings.Join(parts, ",")
	case *attr.MethodParameters:
		parts := make([]string, len(a.Parameters))
		for i, mp := range a.Parameters {
			parts[i] = mp.Name
			if parts[i] == "" {
				parts[i] = "_"
			}
		}
		return strings.Join(parts, ",")
	case *attr.ClassList:
		return strings.Join(a.Names, ",")
	case *attr.Record:
		parts := make([]string, len(a.Components))
		for i, c := range a.Components {
			parts[i] = c.Name + " " + c.Descriptor
		}
		return strings.Join(parts, ",")
	case *attr.Code:
		return fmt.Sprintf("stack=%d locals=%d length=%d handlers=%d",
			a.MaxStack, a.MaxLocals, len(a.Bytecode), len(a.ExceptionTable))
	}
	return fmt.Sprintf("%d bytes", len(a.Content()))
}

func annotationsString(anns []*attr.Annotation) string {
	parts := make([]string, len(anns))
	for i, a := range anns {
		parts[i] = AnnotationString(a)
	}
	return strings.Join(parts, " ")
}

// AnnotationString renders an annotation in Java source syntax, e.g.
// @Foo(value="bar", count=5).
func AnnotationString(a *attr.Annotation) string {
	var sb strings.Builder
	sb.WriteString("@")
	sb.WriteString(descriptor.InternalToSourceName(a.ClassType))
	if len(a.Entries) == 0 {
		return sb.String()
	}
	sb.WriteString("(")
	for i, e := range a.Entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Name)
		sb.WriteString("=")
		sb.WriteString(ElementString(e.Value))
	}
	sb.WriteString(")")
	return sb.String()
}

// ElementString renders an element value in Java source syntax.
func ElementString(v attr.ElementValue) string {
	switch v := v.(type) {
	case attr.ConstValue:
		return constString(v)
	case attr.EnumValue:
		return descriptor.InternalToSourceName(v.ClassName) + "." + v.ConstName
	case attr.ClassValue:
		if ft, err := descriptor.ParseField(v.Descriptor); err == nil {
			return ft.String() + ".class"
		}
		return v.Name + ".class"
	case attr.ArrayValue:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = ElementString(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *attr.Annotation:
		return AnnotationString(v)
	}
	return "?"
}

func constString(v attr.ConstValue) string {
	switch x := v.Value.(type) {
	case string:
		return strconv.Quote(x)
	case uint16:
		return strconv.QuoteRune(rune(x))
	case int64:
		return strconv.FormatInt(x, 10) + "L"
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32) + "f"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v.Value)
}

func constantString(c pool.Constant) string {
	if c.Tag == pool.TagString {
		return strconv.Quote(c.String())
	}
	return c.String()
}
