package attr

import (
	"fmt"

	"github.com/dhamidi/jattr/internal/binary"
	"github.com/dhamidi/jattr/pool"
)

// Annotations decodes RuntimeVisibleAnnotations and
// RuntimeInvisibleAnnotations.
type Annotations struct {
	header
	Annotations []*Annotation
}

func (a *Annotations) initContent(r *binary.Reader, p pool.Lookup) error {
	var err error
	a.Annotations, err = readAnnotationList(r, p)
	return err
}

// Visible reports whether the annotations are retained at runtime.
func (a *Annotations) Visible() bool {
	return a.kind == KindRuntimeVisibleAnnotations
}

func readAnnotationList(r *binary.Reader, p pool.Lookup) ([]*Annotation, error) {
	count, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	list := make([]*Annotation, count)
	for i := range list {
		if list[i], err = readAnnotation(r, p); err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
	}
	return list, nil
}

// ParameterAnnotations decodes RuntimeVisibleParameterAnnotations and
// RuntimeInvisibleParameterAnnotations. Parameters[i] holds the annotations
// of the i-th parameter.
type ParameterAnnotations struct {
	header
	Parameters [][]*Annotation
}

func (a *ParameterAnnotations) initContent(r *binary.Reader, p pool.Lookup) error {
	count, err := r.ReadU1()
	if err != nil {
		return err
	}
	a.Parameters = make([][]*Annotation, count)
	for i := range a.Parameters {
		if a.Parameters[i], err = readAnnotationList(r, p); err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return nil
}

// Visible reports whether the annotations are retained at runtime.
func (a *ParameterAnnotations) Visible() bool {
	return a.kind == KindRuntimeVisibleParameterAnnotations
}

// AnnotationDefault holds the default value of an annotation interface
// element.
type AnnotationDefault struct {
	header
	Value ElementValue
}

func (a *AnnotationDefault) initContent(r *binary.Reader, p pool.Lookup) error {
	var err error
	a.Value, err = readElementValue(r, p)
	return err
}
