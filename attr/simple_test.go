package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

func TestConstantValue(t *testing.T) {
	b := pool.NewBuilder()
	idx := b.Integer(7)
	a := decode(t, b, "ConstantValue", binary.NewWriter().U2(idx).Bytes())

	cv, ok := a.(*ConstantValue)
	require.True(t, ok)
	assert.Equal(t, idx, cv.Index)

	c, err := cv.Value(b.Table())
	require.NoError(t, err)
	assert.Equal(t, int32(7), c.Value)
}

func TestEnclosingMethod(t *testing.T) {
	t.Run("without method", func(t *testing.T) {
		b := pool.NewBuilder()
		payload := binary.NewWriter().U2(b.Class("Outer")).U2(0).Bytes()
		em := decode(t, b, "EnclosingMethod", payload).(*EnclosingMethod)

		assert.Equal(t, "Outer", em.ClassName)
		assert.False(t, em.HasMethod())
		assert.Empty(t, em.MethodName)
		assert.Empty(t, em.MethodDescriptor)
	})

	t.Run("with method", func(t *testing.T) {
		b := pool.NewBuilder()
		payload := binary.NewWriter().U2(b.Class("Outer")).U2(b.NameAndType("run", "(I)V")).Bytes()
		em := decode(t, b, "EnclosingMethod", payload).(*EnclosingMethod)

		assert.True(t, em.HasMethod())
		assert.Equal(t, "run", em.MethodName)
		assert.Equal(t, "(I)V", em.MethodDescriptor)
	})
}

func TestMarkers(t *testing.T) {
	for _, name := range []string{"Synthetic", "Deprecated"} {
		b := pool.NewBuilder()
		a := decode(t, b, name, nil)
		assert.IsType(t, &Marker{}, a)
		assert.Empty(t, a.Content())
		assert.Len(t, Encode(a), 6)
	}
}

func TestNameAttributes(t *testing.T) {
	b := pool.NewBuilder()
	src := b.Utf8("Foo.java")
	sf := decode(t, b, "SourceFile", binary.NewWriter().U2(src).Bytes()).(*SourceFile)
	assert.Equal(t, "Foo.java", sf.Value)

	host := b.Class("com/example/Outer")
	nh := decode(t, b, "NestHost", binary.NewWriter().U2(host).Bytes()).(*NestHost)
	assert.Equal(t, "com/example/Outer", nh.ClassName)
}

func TestExceptions(t *testing.T) {
	t.Run("decode and encode", func(t *testing.T) {
		b := pool.NewBuilder()
		io := b.Class("java/io/IOException")
		sql := b.Class("java/sql/SQLException")
		payload := binary.NewWriter().U2(3).U2(io).U2(sql).U2(io).Bytes()

		ex := decode(t, b, "Exceptions", payload).(*Exceptions)
		assert.Equal(t, []uint16{io, sql, io}, ex.Indexes)
		assert.Equal(t, payload, ex.Content())

		names, err := ex.ClassNames(b.Table())
		require.NoError(t, err)
		assert.Equal(t, []string{"java/io/IOException", "java/sql/SQLException", "java/io/IOException"}, names)
	})

	t.Run("empty", func(t *testing.T) {
		ex := NewExceptions(9)
		want := binary.NewWriter().U2(9).U4(2).U2(0).Bytes()
		assert.Equal(t, want, Encode(ex))
		assert.Equal(t, "Exceptions", ex.Name())
	})

	t.Run("payload follows edits", func(t *testing.T) {
		ex := NewExceptions(1, 4, 5, 6)
		ex.Remove(1)
		require.NoError(t, ex.Add(7))
		assert.Equal(t, binary.NewWriter().U2(3).U2(4).U2(6).U2(7).Bytes(), ex.Content())
	})

	t.Run("add stops at u2 count", func(t *testing.T) {
		ex := NewExceptions(1, make([]uint16, 0xFFFF)...)
		assert.ErrorIs(t, ex.Add(2), ErrTableFull)
		assert.Len(t, ex.Indexes, 0xFFFF)
		assert.Equal(t, []byte{0xff, 0xff}, ex.Content()[:2])
	})
}

func TestBootstrapMethods(t *testing.T) {
	b := pool.NewBuilder()
	factory := b.Methodref("java/lang/invoke/LambdaMetafactory", "metafactory",
		"(Ljava/lang/invoke/MethodHandles$Lookup;Ljava/lang/String;Ljava/lang/invoke/MethodType;Ljava/lang/invoke/MethodType;Ljava/lang/invoke/MethodHandle;Ljava/lang/invoke/MethodType;)Ljava/lang/invoke/CallSite;")
	handle := b.MethodHandle(pool.RefInvokeStatic, factory)
	erased := b.MethodType("()V")
	impl := b.MethodHandle(pool.RefInvokeStatic, b.Methodref("Foo", "lambda$0", "()V"))
	concat := b.MethodHandle(pool.RefInvokeStatic, b.Methodref("java/lang/invoke/StringConcatFactory", "makeConcatWithConstants", "()V"))
	recipe := b.String("\u0001!")

	payload := binary.NewWriter().
		U2(2).
		U2(handle).U2(3).U2(erased).U2(impl).U2(erased).
		U2(concat).U2(1).U2(recipe).
		Bytes()

	bm := decode(t, b, "BootstrapMethods", payload).(*BootstrapMethods)
	require.Equal(t, 2, bm.Len())

	ref := bm.MethodReference(0)
	assert.Equal(t, "java/lang/invoke/LambdaMetafactory", ref.ClassName)
	assert.Equal(t, "metafactory", ref.ElementName)
	assert.Equal(t, pool.RefInvokeStatic, ref.HandleKind)

	args := bm.MethodArguments(0)
	require.Len(t, args, 3)
	assert.Equal(t, pool.TagMethodType, args[0].Tag)
	assert.Equal(t, "()V", args[0].Value)
	mh, ok := args[1].Value.(pool.MethodHandle)
	require.True(t, ok, "got %T", args[1].Value)
	assert.Equal(t, "lambda$0", mh.Reference.ElementName)

	assert.Equal(t, "makeConcatWithConstants", bm.MethodReference(1).ElementName)
	assert.Equal(t, "\u0001!", bm.MethodArguments(1)[0].Value)

	assert.Equal(t, payload, bm.Content())
	assert.Panics(t, func() { bm.MethodReference(2) })
}

func lvtPayload(records ...[5]uint16) []byte {
	w := binary.NewWriter().U2(uint16(len(records)))
	for _, r := range records {
		w.U2(r[0]).U2(r[1]).U2(r[2]).U2(r[3]).U2(r[4])
	}
	return w.Bytes()
}

func TestLocalVariableTable(t *testing.T) {
	b := pool.NewBuilder()
	this, args, x, y := b.Utf8("this"), b.Utf8("args"), b.Utf8("x"), b.Utf8("y")
	desc := b.Utf8("I")

	t.Run("slots map to names", func(t *testing.T) {
		payload := lvtPayload(
			[5]uint16{0, 10, this, desc, 0},
			[5]uint16{0, 10, args, desc, 1},
		)
		lvt := decode(t, b, "LocalVariableTable", payload).(*LocalVariableTable)

		name, ok := lvt.VariableName(1)
		assert.True(t, ok)
		assert.Equal(t, "args", name)
		_, ok = lvt.VariableName(2)
		assert.False(t, ok)
		assert.Equal(t, []uint16{0, 1}, lvt.Slots())
		assert.Equal(t, payload, lvt.Content())
	})

	t.Run("reused slot keeps last record", func(t *testing.T) {
		payload := lvtPayload(
			[5]uint16{0, 4, x, desc, 3},
			[5]uint16{4, 4, y, desc, 3},
		)
		lvt := decode(t, b, "LocalVariableTable", payload).(*LocalVariableTable)
		name, _ := lvt.VariableName(3)
		assert.Equal(t, "y", name)
	})

	t.Run("merge lets later table win", func(t *testing.T) {
		first := decode(t, b, "LocalVariableTable", lvtPayload([5]uint16{0, 4, x, desc, 3})).(*LocalVariableTable)
		second := decode(t, b, "LocalVariableTable", lvtPayload([5]uint16{4, 4, y, desc, 3})).(*LocalVariableTable)

		require.NoError(t, first.AddLocalVariableTable(second))
		name, _ := first.VariableName(3)
		assert.Equal(t, "y", name)
		assert.Len(t, first.Variables, 2)
		assert.Equal(t, lvtPayload([5]uint16{0, 4, x, desc, 3}, [5]uint16{4, 4, y, desc, 3}), first.Content())

		require.NoError(t, first.AddLocalVariableTable(nil))
		assert.Len(t, first.Variables, 2)
	})

	t.Run("merge refuses to overflow the record count", func(t *testing.T) {
		full := &LocalVariableTable{Variables: make([]LocalVariable, 0xFFFF)}
		extra := decode(t, b, "LocalVariableTable", lvtPayload([5]uint16{0, 4, x, desc, 9})).(*LocalVariableTable)

		assert.ErrorIs(t, full.AddLocalVariableTable(extra), ErrTableFull)
		assert.Len(t, full.Variables, 0xFFFF)
		_, ok := full.VariableName(9)
		assert.False(t, ok)
	})

	t.Run("type table shares layout", func(t *testing.T) {
		sig := b.Utf8("Ljava/util/List<TT;>;")
		a := decode(t, b, "LocalVariableTypeTable", lvtPayload([5]uint16{0, 10, x, sig, 2}))
		assert.Equal(t, KindLocalVariableTypeTable, a.Kind())
		lvt := a.(*LocalVariableTable)
		assert.Equal(t, sig, lvt.Variables[0].TypeIndex)
	})
}

func TestInnerClasses(t *testing.T) {
	b := pool.NewBuilder()
	inner := b.Class("Outer$Inner")
	outer := b.Class("Outer")
	simple := b.Utf8("Inner")
	anon := b.Class("Outer$1")

	payload := binary.NewWriter().U2(2).
		U2(inner).U2(outer).U2(simple).U2(0x0009).
		U2(anon).U2(0).U2(0).U2(0x0000).
		Bytes()
	ic := decode(t, b, "InnerClasses", payload).(*InnerClasses)
	require.Len(t, ic.Classes, 2)

	assert.Equal(t, InnerClass{InnerIndex: inner, OuterIndex: outer, NameIndex: simple, AccessFlags: 0x0009,
		InnerName: "Outer$Inner", OuterName: "Outer", SimpleName: "Inner"}, ic.Classes[0])
	assert.Equal(t, "Outer$1", ic.Classes[1].InnerName)
	assert.Empty(t, ic.Classes[1].OuterName)
	assert.Empty(t, ic.Classes[1].SimpleName)
}

func TestLineNumberTable(t *testing.T) {
	b := pool.NewBuilder()
	payload := binary.NewWriter().U2(3).U2(0).U2(10).U2(5).U2(11).U2(9).U2(14).Bytes()
	lnt := decode(t, b, "LineNumberTable", payload).(*LineNumberTable)

	require.Len(t, lnt.Lines, 3)
	line, ok := lnt.LineAt(7)
	assert.True(t, ok)
	assert.Equal(t, uint16(11), line)
	line, _ = lnt.LineAt(100)
	assert.Equal(t, uint16(14), line)
}

func TestMethodParameters(t *testing.T) {
	b := pool.NewBuilder()
	name := b.Utf8("count")
	payload := binary.NewWriter().U1(2).U2(name).U2(0x0010).U2(0).U2(0x1000).Bytes()
	mp := decode(t, b, "MethodParameters", payload).(*MethodParameters)

	assert.Equal(t, []MethodParameter{
		{NameIndex: name, Name: "count", AccessFlags: 0x0010},
		{AccessFlags: 0x1000},
	}, mp.Parameters)
}

func TestClassLists(t *testing.T) {
	b := pool.NewBuilder()
	a, c := b.Class("Shape$Circle"), b.Class("Shape$Square")
	payload := binary.NewWriter().U2(2).U2(a).U2(c).Bytes()

	for _, name := range []string{"NestMembers", "PermittedSubclasses"} {
		cl := decode(t, b, name, payload).(*ClassList)
		assert.Equal(t, []string{"Shape$Circle", "Shape$Square"}, cl.Names)
		assert.Equal(t, name, cl.Name())
	}
}

func TestCode(t *testing.T) {
	b := pool.NewBuilder()
	lvtName := b.Utf8("LocalVariableTable")
	lntName := b.Utf8("LineNumberTable")
	x, y, desc := b.Utf8("x"), b.Utf8("y"), b.Utf8("I")
	ioe := b.Class("java/io/IOException")

	first := lvtPayload([5]uint16{0, 2, x, desc, 1})
	second := lvtPayload([5]uint16{2, 2, y, desc, 1})
	lines := binary.NewWriter().U2(1).U2(0).U2(3).Bytes()

	w := binary.NewWriter().U2(2).U2(3).U4(4).Raw([]byte{0x03, 0x3c, 0x00, 0xb1})
	w.U2(2).
		U2(0).U2(3).U2(3).U2(ioe).
		U2(0).U2(3).U2(3).U2(0)
	w.U2(3).
		U2(lvtName).U4(uint32(len(first))).Raw(first).
		U2(lntName).U4(uint32(len(lines))).Raw(lines).
		U2(lvtName).U4(uint32(len(second))).Raw(second)

	code := decode(t, b, "Code", w.Bytes()).(*Code)
	assert.Equal(t, uint16(2), code.MaxStack)
	assert.Equal(t, uint16(3), code.MaxLocals)
	assert.Equal(t, []byte{0x03, 0x3c, 0x00, 0xb1}, code.Bytecode)
	require.Len(t, code.ExceptionTable, 2)
	assert.Equal(t, "java/io/IOException", code.ExceptionTable[0].CatchClass)
	assert.Empty(t, code.ExceptionTable[1].CatchClass)

	require.Len(t, code.Attributes, 3)
	assert.IsType(t, &LineNumberTable{}, code.Attribute(KindLineNumberTable))
	assert.Nil(t, code.Attribute(KindSignature))

	merged := code.LocalVariables()
	require.NotNil(t, merged)
	name, _ := merged.VariableName(1)
	assert.Equal(t, "y", name)
}

func TestCodeUsesOwningRegistry(t *testing.T) {
	b := pool.NewBuilder()
	lines := binary.NewWriter().U2(0).Bytes()
	w := binary.NewWriter().U2(0).U2(0).U4(0).U2(0).
		U2(1).U2(b.Utf8("LineNumberTable")).U4(uint32(len(lines))).Raw(lines)

	code := decodeWith(t, NewRegistry(KindSignature), b, "Code", w.Bytes()).(*Code)
	assert.Len(t, code.RawAttributes, 1)
	assert.Empty(t, code.Attributes)
	assert.Nil(t, code.LocalVariables())
}

func TestBootstrapMethodsRejectsHandleCycle(t *testing.T) {
	b := pool.NewBuilder()
	// The first entry is a method handle that refers to itself.
	self := b.MethodHandle(pool.RefInvokeStatic, 1)
	payload := binary.NewWriter().U2(1).U2(self).U2(0).Bytes()

	_, err := Decode(rawAttr(b, "BootstrapMethods", payload), b.Table())
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "BootstrapMethods", de.Attribute)
	assert.ErrorIs(t, err, pool.ErrWrongTag)
}

// nestedCode wraps an empty Code body in depth further Code attributes.
func nestedCode(b *pool.Builder, depth int) []byte {
	codeName := b.Utf8("Code")
	body := binary.NewWriter().U2(0).U2(0).U4(0).U2(0).U2(0).Bytes()
	for i := 0; i < depth; i++ {
		body = binary.NewWriter().U2(0).U2(0).U4(0).U2(0).
			U2(1).U2(codeName).U4(uint32(len(body))).Raw(body).
			Bytes()
	}
	return body
}

func TestCodeNestingLimit(t *testing.T) {
	b := pool.NewBuilder()

	code := decode(t, b, "Code", nestedCode(b, 3)).(*Code)
	inner, ok := code.Attribute(KindCode).(*Code)
	require.True(t, ok)
	assert.IsType(t, &Code{}, inner.Attribute(KindCode))

	_, err := Decode(rawAttr(b, "Code", nestedCode(b, 300)), b.Table())
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Code", de.Attribute)
	assert.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestRecord(t *testing.T) {
	b := pool.NewBuilder()
	sigName := b.Utf8("Signature")
	annName := b.Utf8("RuntimeVisibleAnnotations")
	vendorName := b.Utf8("org.example.Vendor")
	ann := binary.NewWriter().U2(1).U2(b.Utf8("LNonNull;")).U2(0).Bytes()

	payload := binary.NewWriter().U2(2).
		U2(b.Utf8("items")).U2(b.Utf8("Ljava/util/List;")).U2(3).
		U2(sigName).U4(2).U2(b.Utf8("Ljava/util/List<TT;>;")).
		U2(vendorName).U4(1).U1(0).
		U2(annName).U4(uint32(len(ann))).Raw(ann).
		U2(b.Utf8("count")).U2(b.Utf8("I")).U2(0).
		Bytes()

	t.Run("components and their attributes", func(t *testing.T) {
		rec := decode(t, b, "Record", payload).(*Record)
		assert.Equal(t, KindRecord, rec.Kind())
		assert.Equal(t, payload, rec.Content())
		require.Len(t, rec.Components, 2)

		items := rec.Components[0]
		assert.Equal(t, "items", items.Name)
		assert.Equal(t, "Ljava/util/List;", items.Descriptor)
		assert.Equal(t, "Ljava/util/List<TT;>;", items.Signature())
		assert.Len(t, items.RawAttributes, 3)
		require.Len(t, items.Attributes, 2)
		anns := items.Attribute(KindRuntimeVisibleAnnotations).(*Annotations)
		assert.Equal(t, "NonNull", anns.Annotations[0].ClassType)

		count, ok := rec.Component("count")
		require.True(t, ok)
		assert.Equal(t, "I", count.Descriptor)
		assert.Empty(t, count.Attributes)
		assert.Empty(t, count.Signature())

		_, ok = rec.Component("missing")
		assert.False(t, ok)
	})

	t.Run("components use the owning registry", func(t *testing.T) {
		rec := decodeWith(t, NewRegistry(KindSignature), b, "Record", payload).(*Record)
		items := rec.Components[0]
		assert.Len(t, items.RawAttributes, 3)
		require.Len(t, items.Attributes, 1)
		assert.Equal(t, KindSignature, items.Attributes[0].Kind())
	})

	t.Run("truncated component", func(t *testing.T) {
		_, err := Decode(rawAttr(b, "Record", payload[:len(payload)-3]), b.Table())
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "Record", de.Attribute)
		assert.ErrorIs(t, err, binary.ErrTruncated)
	})
}
