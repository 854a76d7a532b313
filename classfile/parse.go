package classfile

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/jattr/attr"
	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

type options struct {
	registry *attr.Registry
}

// Option configures Parse.
type Option func(*options)

// WithRegistry decodes attributes with reg instead of attr.DefaultRegistry.
func WithRegistry(reg *attr.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

func ParseFile(path string, opts ...Option) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	log.Debugf("parsing %s (%d bytes)", path, len(data))
	return ParseBytes(data, opts...)
}

func Parse(rd io.Reader, opts ...Option) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return ParseBytes(data, opts...)
}

// ParseBytes parses a class file held in memory. Attribute payloads alias
// data.
func ParseBytes(data []byte, opts ...Option) (*ClassFile, error) {
	o := options{registry: attr.DefaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}
	r := binary.NewReader(data)

	magic, err := r.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{}
	if cf.MinorVersion, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if cf.MajorVersion, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}

	if cf.Pool, err = pool.Read(r); err != nil {
		return nil, fmt.Errorf("failed to read constant pool: %w", err)
	}

	flags, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", err)
	}
	cf.AccessFlags = AccessFlags(flags)
	if cf.ThisClass, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", err)
	}
	if cf.SuperClass, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", err)
	}

	interfacesCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read interfaces: %w", err)
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = r.ReadU2(); err != nil {
			return nil, fmt.Errorf("failed to read interfaces: %w", err)
		}
	}

	fieldsCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read fields count: %w", err)
	}
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		m, err := readMember(r, cf.Pool, o.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
		cf.Fields[i] = FieldInfo{member: m}
	}

	methodsCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", err)
	}
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		m, err := readMember(r, cf.Pool, o.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods[i] = MethodInfo{member: m}
	}

	cf.RawAttributes, cf.Attributes, err = o.registry.ReadTable(r, cf.Pool)
	if err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}

	if r.Len() > 0 {
		log.Warningf("%d trailing bytes after class %s", r.Len(), cf.ClassName())
	}
	return cf, nil
}

func readMember(r *binary.Reader, p pool.Table, reg *attr.Registry) (member, error) {
	var m member
	flags, err := r.ReadU2()
	if err != nil {
		return m, err
	}
	m.AccessFlags = AccessFlags(flags)
	if m.NameIndex, err = r.ReadU2(); err != nil {
		return m, err
	}
	if m.DescriptorIndex, err = r.ReadU2(); err != nil {
		return m, err
	}
	m.RawAttributes, m.Attributes, err = reg.ReadTable(r, p)
	return m, err
}
