package attr

import (
	"sort"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// LocalVariable is one record of a LocalVariableTable or
// LocalVariableTypeTable.
type LocalVariable struct {
	StartPC   uint16
	Length    uint16
	NameIndex uint16
	Name      string
	// TypeIndex is a field descriptor in a LocalVariableTable and a field
	// signature in a LocalVariableTypeTable. It is not resolved.
	TypeIndex uint16
	Slot      uint16
}

// LocalVariableTable maps local variable slots to declared names. It
// decodes both LocalVariableTable and LocalVariableTypeTable, which share
// a record layout.
//
// A slot may be reused by different variables over different ranges; the
// slot index is the key and the last record for a slot wins.
type LocalVariableTable struct {
	header
	Variables []LocalVariable
	names     map[uint16]string
}

func (a *LocalVariableTable) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Variables = make([]LocalVariable, count)
	a.names = make(map[uint16]string, count)
	for i := range a.Variables {
		v := &a.Variables[i]
		if v.StartPC, err = r.ReadU2(); err != nil {
			return err
		}
		if v.Length, err = r.ReadU2(); err != nil {
			return err
		}
		if v.NameIndex, v.Name, err = readString(r, p); err != nil {
			return err
		}
		if v.TypeIndex, err = r.ReadU2(); err != nil {
			return err
		}
		if v.Slot, err = r.ReadU2(); err != nil {
			return err
		}
		a.names[v.Slot] = v.Name
	}
	return nil
}

// Content encodes Variables, so merged tables serialize every record.
func (a *LocalVariableTable) Content() []byte {
	w := binary.NewWriter().U2(uint16(len(a.Variables)))
	for _, v := range a.Variables {
		w.U2(v.StartPC).U2(v.Length).U2(v.NameIndex).U2(v.TypeIndex).U2(v.Slot)
	}
	return w.Bytes()
}

// VariableName returns the declared name of a slot.
func (a *LocalVariableTable) VariableName(slot uint16) (string, bool) {
	name, ok := a.names[slot]
	return name, ok
}

// Names returns a copy of the slot to name map.
func (a *LocalVariableTable) Names() map[uint16]string {
	out := make(map[uint16]string, len(a.names))
	for slot, name := range a.names {
		out[slot] = name
	}
	return out
}

// Slots returns the named slots in ascending order.
func (a *LocalVariableTable) Slots() []uint16 {
	slots := make([]uint16, 0, len(a.names))
	for slot := range a.names {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// AddLocalVariableTable merges other into a. Where both name a slot, the
// name from other wins, so tables must be merged in the order their code
// ranges occur. a is left unchanged if the merged table would exceed 65535
// records.
func (a *LocalVariableTable) AddLocalVariableTable(other *LocalVariableTable) error {
	if other == nil {
		return nil
	}
	if len(a.Variables)+len(other.Variables) > maxTableLen {
		return ErrTableFull
	}
	if a.names == nil {
		a.names = make(map[uint16]string, len(other.names))
	}
	a.Variables = append(a.Variables, other.Variables...)
	for slot, name := range other.names {
		a.names[slot] = name
	}
	return nil
}
