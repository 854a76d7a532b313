package attr

import (
	"fmt"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// ExceptionHandler is one entry of a Code exception table.
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	// CatchType is 0 for handlers that catch everything (finally blocks).
	CatchType  uint16
	CatchClass string
}

// Code holds a method body. Its nested attributes are decoded with the
// registry that decoded the Code attribute itself.
type Code struct {
	header
	MaxStack       uint16
	MaxLocals      uint16
	Bytecode       []byte
	ExceptionTable []ExceptionHandler
	RawAttributes  []Raw
	Attributes     []Attribute
}

func (a *Code) initContent(r *binary.Reader, p pool.Lookup) error {
	var err error
	if a.MaxStack, err = r.ReadU2(); err != nil {
		return err
	}
	if a.MaxLocals, err = r.ReadU2(); err != nil {
		return err
	}
	length, err := r.ReadU4()
	if err != nil {
		return err
	}
	if a.Bytecode, err = r.ReadBytes(int(length)); err != nil {
		return err
	}

	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.ExceptionTable = make([]ExceptionHandler, count)
	for i := range a.ExceptionTable {
		h := &a.ExceptionTable[i]
		if h.StartPC, err = r.ReadU2(); err != nil {
			return err
		}
		if h.EndPC, err = r.ReadU2(); err != nil {
			return err
		}
		if h.HandlerPC, err = r.ReadU2(); err != nil {
			return err
		}
		if h.CatchType, err = r.ReadU2(); err != nil {
			return err
		}
		if h.CatchType != 0 {
			if h.CatchClass, err = resolveString(p, h.CatchType); err != nil {
				return fmt.Errorf("exception handler %d: %w", i, err)
			}
		}
	}

	a.RawAttributes, a.Attributes, err = a.nestedTable(r, p)
	return err
}

// Attribute returns the first nested attribute of kind k.
func (a *Code) Attribute(k Kind) Attribute {
	for _, attr := range a.Attributes {
		if attr.Kind() == k {
			return attr
		}
	}
	return nil
}

// LocalVariables merges every LocalVariableTable nested in the body, in
// order. It returns nil when there is none.
func (a *Code) LocalVariables() *LocalVariableTable {
	var merged *LocalVariableTable
	for _, attr := range a.Attributes {
		lvt, ok := attr.(*LocalVariableTable)
		if !ok || lvt.Kind() != KindLocalVariableTable {
			continue
		}
		if merged == nil {
			merged = &LocalVariableTable{header: lvt.header}
		}
		if err := merged.AddLocalVariableTable(lvt); err != nil {
			log.Warningf("%s: dropping LocalVariableTable: %v", a.name, err)
		}
	}
	return merged
}
