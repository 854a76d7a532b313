package attr

import (
	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// BootstrapMethod is one entry of the BootstrapMethods table.
type BootstrapMethod struct {
	RefIndex   uint16
	ArgIndexes []uint16
	Ref        pool.LinkConstant
	Args       []pool.Constant
}

// BootstrapMethods holds the bootstrap method table referenced by
// invokedynamic and dynamic constants. Entries are addressed by position.
type BootstrapMethods struct {
	header
	Methods []BootstrapMethod
}

func (a *BootstrapMethods) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Methods = make([]BootstrapMethod, count)
	for i := range a.Methods {
		m := &a.Methods[i]
		if m.RefIndex, err = r.ReadU2(); err != nil {
			return err
		}
		if m.Ref, err = p.LinkConstant(m.RefIndex); err != nil {
			return err
		}
		numArgs, err := r.ReadU2()
		if err != nil {
			return err
		}
		m.ArgIndexes = make([]uint16, numArgs)
		m.Args = make([]pool.Constant, numArgs)
		for j := range m.ArgIndexes {
			if m.ArgIndexes[j], err = r.ReadU2(); err != nil {
				return err
			}
			if m.Args[j], err = p.Constant(m.ArgIndexes[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Content encodes the table from RefIndex and ArgIndexes. Methods and each
// ArgIndexes list must hold at most 65535 entries.
func (a *BootstrapMethods) Content() []byte {
	w := binary.NewWriter().U2(uint16(len(a.Methods)))
	for _, m := range a.Methods {
		w.U2(m.RefIndex).U2(uint16(len(m.ArgIndexes)))
		for _, arg := range m.ArgIndexes {
			w.U2(arg)
		}
	}
	return w.Bytes()
}

// Len returns the number of bootstrap methods.
func (a *BootstrapMethods) Len() int {
	return len(a.Methods)
}

// MethodReference returns the method handle target of entry i. It panics
// if i is out of range.
func (a *BootstrapMethods) MethodReference(i int) pool.LinkConstant {
	return a.Methods[i].Ref
}

// MethodArguments returns the static arguments of entry i. It panics if i
// is out of range.
func (a *BootstrapMethods) MethodArguments(i int) []pool.Constant {
	return a.Methods[i].Args
}
