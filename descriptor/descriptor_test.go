package descriptor

import (
	"errors"
	"testing"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		desc       string
		baseType   string
		className  string
		arrayDepth int
	}{
		{"I", "int", "", 0},
		{"Z", "boolean", "", 0},
		{"V", "void", "", 0},
		{"Ljava/lang/String;", "", "java/lang/String", 0},
		{"[I", "int", "", 1},
		{"[[D", "double", "", 2},
		{"[Ljava/lang/Object;", "", "java/lang/Object", 1},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft, err := ParseField(tt.desc)
			if err != nil {
				t.Fatalf("ParseField(%q): %v", tt.desc, err)
			}
			if ft.BaseType != tt.baseType {
				t.Errorf("BaseType = %q, want %q", ft.BaseType, tt.baseType)
			}
			if ft.ClassName != tt.className {
				t.Errorf("ClassName = %q, want %q", ft.ClassName, tt.className)
			}
			if ft.ArrayDepth != tt.arrayDepth {
				t.Errorf("ArrayDepth = %d, want %d", ft.ArrayDepth, tt.arrayDepth)
			}
			if got := ft.Descriptor(); got != tt.desc {
				t.Errorf("Descriptor() = %q, want %q", got, tt.desc)
			}
		})
	}
}

func TestParseFieldInvalid(t *testing.T) {
	for _, desc := range []string{"", "[", "Q", "Ljava/lang/String", "L;", "[V", "II"} {
		t.Run(desc, func(t *testing.T) {
			if _, err := ParseField(desc); !errors.Is(err, ErrInvalid) {
				t.Errorf("ParseField(%q) error = %v, want ErrInvalid", desc, err)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		desc        string
		numParams   int
		returnsVoid bool
		returnType  string
	}{
		{"()V", 0, true, ""},
		{"()I", 0, false, "int"},
		{"(I)V", 1, true, ""},
		{"(II)I", 2, false, "int"},
		{"(Ljava/lang/String;)V", 1, true, ""},
		{"(IDLjava/lang/Thread;)Ljava/lang/Object;", 3, false, "java/lang/Object"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md, err := ParseMethod(tt.desc)
			if err != nil {
				t.Fatalf("ParseMethod(%q): %v", tt.desc, err)
			}
			if len(md.Parameters) != tt.numParams {
				t.Errorf("len(Parameters) = %d, want %d", len(md.Parameters), tt.numParams)
			}
			if tt.returnsVoid {
				if md.ReturnType != nil {
					t.Error("Expected nil ReturnType for void")
				}
				return
			}
			if md.ReturnType == nil {
				t.Fatal("Expected non-nil ReturnType")
			}
			if got := md.ReturnType.BaseType + md.ReturnType.ClassName; got != tt.returnType {
				t.Errorf("ReturnType = %q, want %q", got, tt.returnType)
			}
		})
	}

	if _, err := ParseMethod("(V)V"); !errors.Is(err, ErrInvalid) {
		t.Errorf("void parameter: error = %v, want ErrInvalid", err)
	}
}

func TestClassLiteralName(t *testing.T) {
	tests := map[string]string{
		"I":                  "int",
		"V":                  "void",
		"Z":                  "boolean",
		"B":                  "byte",
		"Ljava/lang/String;": "java/lang/String",
		"[I":                 "[I",
	}
	for desc, want := range tests {
		got, err := ClassLiteralName(desc)
		if err != nil {
			t.Errorf("ClassLiteralName(%q): %v", desc, err)
			continue
		}
		if got != want {
			t.Errorf("ClassLiteralName(%q) = %q, want %q", desc, got, want)
		}
	}
}

func TestFieldTypeString(t *testing.T) {
	ft := ArrayOf(ObjectType("java/util/List"))
	if got := ft.String(); got != "java.util.List[]" {
		t.Errorf("String() = %q", got)
	}
	if got := ft.Descriptor(); got != "[Ljava/util/List;" {
		t.Errorf("Descriptor() = %q", got)
	}
}
