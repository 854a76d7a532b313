package attr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

func rawAttr(b *pool.Builder, name string, payload []byte) Raw {
	return Raw{NameIndex: b.Utf8(name), Name: name, Info: payload}
}

func decodeWith(t *testing.T, reg *Registry, b *pool.Builder, name string, payload []byte) Attribute {
	t.Helper()
	raw := rawAttr(b, name, payload)
	a, err := reg.Decode(raw, b.Table())
	require.NoError(t, err)
	require.NotNil(t, a, "%s was not decoded", name)
	return a
}

func decode(t *testing.T, b *pool.Builder, name string, payload []byte) Attribute {
	t.Helper()
	return decodeWith(t, DefaultRegistry, b, name, payload)
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := KindOf(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	_, ok := KindOf("StackMapTable")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", Kind(200).String())

	kinds := Kinds()
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, kinds[i-1].String(), kinds[i].String())
	}
}

func TestDecodeUnknownAttribute(t *testing.T) {
	b := pool.NewBuilder()
	raw := rawAttr(b, "org.example.Vendor", []byte{0xde, 0xad})

	a, err := Decode(raw, b.Table())
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestRegistryFiltersKinds(t *testing.T) {
	reg := NewRegistry(KindSignature)
	assert.True(t, reg.Enabled(KindSignature))
	assert.True(t, reg.Enabled(KindCode))
	assert.False(t, reg.Enabled(KindExceptions))
	assert.False(t, reg.Enabled(KindUnknown))

	b := pool.NewBuilder()
	sig := b.Utf8("TT;")
	a := decodeWith(t, reg, b, "Signature", binary.NewWriter().U2(sig).Bytes())
	assert.Equal(t, "TT;", a.(*Signature).Value)

	raw := rawAttr(b, "Exceptions", binary.NewWriter().U2(0).Bytes())
	skipped, err := reg.Decode(raw, b.Table())
	assert.NoError(t, err)
	assert.Nil(t, skipped)
}

func TestWriteHeaderLayout(t *testing.T) {
	b := pool.NewBuilder()
	sig := b.Utf8("Ljava/util/List<Ljava/lang/String;>;")
	a := decode(t, b, "Signature", []byte{byte(sig >> 8), byte(sig)})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))

	want := binary.NewWriter().U2(a.NameIndex()).U4(2).U2(sig).Bytes()
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, want, Encode(a))
}

func TestTruncatedPayload(t *testing.T) {
	b := pool.NewBuilder()
	class := b.Class("Outer")
	payload := binary.NewWriter().U2(class).U1(0).Bytes()

	_, err := Decode(rawAttr(b, "EnclosingMethod", payload), b.Table())
	require.Error(t, err)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "EnclosingMethod", de.Attribute)
	assert.Equal(t, 2, de.Offset)
	assert.True(t, errors.Is(err, binary.ErrTruncated))
	assert.Contains(t, err.Error(), "decode EnclosingMethod attribute at offset 2")
}

func TestBadPoolIndex(t *testing.T) {
	b := pool.NewBuilder()
	_, err := Decode(rawAttr(b, "Signature", []byte{0x00, 0x63}), b.Table())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pool.ErrIndexOutOfRange))
}

func TestReadTable(t *testing.T) {
	b := pool.NewBuilder()
	sigName := b.Utf8("Signature")
	vendorName := b.Utf8("Vendor")
	sig := b.Utf8("TT;")

	w := binary.NewWriter().U2(3)
	w.U2(vendorName).U4(3).Raw([]byte{1, 2, 3})
	w.U2(sigName).U4(2).U2(sig)
	w.U2(b.Utf8("Deprecated")).U4(0)

	raws, decoded, err := DefaultRegistry.ReadTable(binary.NewReader(w.Bytes()), b.Table())
	require.NoError(t, err)
	require.Len(t, raws, 3)
	assert.Equal(t, "Vendor", raws[0].Name)
	assert.Equal(t, []byte{1, 2, 3}, raws[0].Info)

	require.Len(t, decoded, 2)
	assert.Equal(t, KindSignature, decoded[0].Kind())
	assert.IsType(t, &Marker{}, decoded[1])
	assert.Equal(t, "Deprecated", decoded[1].Name())
}

func TestReadTableTruncated(t *testing.T) {
	b := pool.NewBuilder()
	w := binary.NewWriter().U2(1).U2(b.Utf8("Signature")).U4(10).U2(1)

	_, _, err := DefaultRegistry.ReadTable(binary.NewReader(w.Bytes()), b.Table())
	require.Error(t, err)
	assert.True(t, errors.Is(err, binary.ErrTruncated))
}
