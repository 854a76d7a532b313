package attr

import (
	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// Exceptions lists the checked exceptions a method declares, as Class
// pool indexes in declaration order. Duplicates are kept.
type Exceptions struct {
	header
	Indexes []uint16
}

// NewExceptions creates an Exceptions attribute whose name is stored at
// nameIndex.
func NewExceptions(nameIndex uint16, indexes ...uint16) *Exceptions {
	return &Exceptions{header: newHeader(KindExceptions, nameIndex), Indexes: indexes}
}

func (a *Exceptions) initContent(r *binary.Reader, _ pool.Lookup) error {
	count, err := r.ReadU2()
	if err != nil {
		return err
	}
	a.Indexes = make([]uint16, count)
	for i := range a.Indexes {
		if a.Indexes[i], err = r.ReadU2(); err != nil {
			return err
		}
	}
	return nil
}

// Content encodes the current index list rather than returning the bytes
// the attribute was decoded from.
func (a *Exceptions) Content() []byte {
	w := binary.NewWriter().U2(uint16(len(a.Indexes)))
	for _, index := range a.Indexes {
		w.U2(index)
	}
	return w.Bytes()
}

// Add appends an exception class index. The table holds at most 65535
// entries.
func (a *Exceptions) Add(index uint16) error {
	if len(a.Indexes) >= maxTableLen {
		return ErrTableFull
	}
	a.Indexes = append(a.Indexes, index)
	return nil
}

// Remove deletes the i-th entry.
func (a *Exceptions) Remove(i int) {
	a.Indexes = append(a.Indexes[:i], a.Indexes[i+1:]...)
}

// ClassName resolves the i-th exception class.
func (a *Exceptions) ClassName(i int, p pool.Lookup) (string, error) {
	return resolveString(p, a.Indexes[i])
}

// ClassNames resolves every exception class, in order.
func (a *Exceptions) ClassNames(p pool.Lookup) ([]string, error) {
	names := make([]string, len(a.Indexes))
	for i := range a.Indexes {
		name, err := a.ClassName(i, p)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}
