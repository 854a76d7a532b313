package attr

import (
	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// InnerClass is one entry of an InnerClasses table. Names are resolved
// when the index is non-zero.
type InnerClass struct {
	InnerIndex  uint16
	OuterIndex  uint16
	NameIndex   uint16
	AccessFlags uint16
	InnerName   string
	// OuterName is empty for local and anonymous classes.
	OuterName string
	// SimpleName is empty for anonymous classes.
	SimpleName string
}

// InnerClasses records the nested classes a class refers to.
type InnerClasses struct {
	header
	Classes []InnerClass
}

func (a *InnerClasses) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Classes = make([]InnerClass, count)
	for i := range a.Classes {
		c := &a.Classes[i]
		if c.InnerIndex, c.InnerName, err = readString(r, p); err != nil {
			return err
		}
		if c.OuterIndex, err = r.ReadU2(); err != nil {
			return err
		}
		if c.NameIndex, err = r.ReadU2(); err != nil {
			return err
		}
		if c.AccessFlags, err = r.ReadU2(); err != nil {
			return err
		}
		if c.OuterIndex != 0 {
			if c.OuterName, err = resolveString(p, c.OuterIndex); err != nil {
				return err
			}
		}
		if c.NameIndex != 0 {
			if c.SimpleName, err = resolveString(p, c.NameIndex); err != nil {
				return err
			}
		}
	}
	return nil
}

// LineNumber maps the bytecode starting at StartPC to a source line.
type LineNumber struct {
	StartPC uint16
	Line    uint16
}

// LineNumberTable holds the line entries of a Code attribute in file
// order.
type LineNumberTable struct {
	header
	Lines []LineNumber
}

func (a *LineNumberTable) initContent(r *binary.Reader, _ pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Lines = make([]LineNumber, count)
	for i := range a.Lines {
		if a.Lines[i].StartPC, err = r.ReadU2(); err != nil {
			return err
		}
		if a.Lines[i].Line, err = r.ReadU2(); err != nil {
			return err
		}
	}
	return nil
}

// LineAt returns the source line of the entry covering pc.
func (a *LineNumberTable) LineAt(pc uint16) (uint16, bool) {
	var best *LineNumber
	for i := range a.Lines {
		l := &a.Lines[i]
		if l.StartPC <= pc && (best == nil || l.StartPC >= best.StartPC) {
			best = l
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Line, true
}

// MethodParameter is the recorded name and flags of one parameter.
type MethodParameter struct {
	NameIndex uint16
	// Name is empty when the compiler did not record one.
	Name        string
	AccessFlags uint16
}

// MethodParameters lists the formal parameters of a method.
type MethodParameters struct {
	header
	Parameters []MethodParameter
}

func (a *MethodParameters) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU1()
	if err != nil {
		return err
	}
	a.Parameters = make([]MethodParameter, count)
	for i := range a.Parameters {
		mp := &a.Parameters[i]
		if mp.NameIndex, err = r.ReadU2(); err != nil {
			return err
		}
		if mp.NameIndex != 0 {
			if mp.Name, err = resolveString(p, mp.NameIndex); err != nil {
				return err
			}
		}
		if mp.AccessFlags, err = r.ReadU2(); err != nil {
			return err
		}
	}
	return nil
}

// ClassList decodes the class lists of NestMembers and
// PermittedSubclasses.
type ClassList struct {
	header
	Indexes []uint16
	Names   []string
}

func (a *ClassList) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Indexes = make([]uint16, count)
	a.Names = make([]string, count)
	for i := range a.Indexes {
		if a.Indexes[i], a.Names[i], err = readString(r, p); err != nil {
			return err
		}
	}
	return nil
}
