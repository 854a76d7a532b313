package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jattr/classfile"
)

// LineEncoder writes one tab-separated line per attribute:
//
//	class-name	owner	attribute-name	summary
type LineEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.class
	name := cf.ClassName()

	for _, r := range Records(cf) {
		summary := Summary(r.Attribute, cf.Pool)
		if summary == "" {
			summary = "-"
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", name, r.Owner, r.Attribute.Name(), escape(summary))
	}

	return []byte(sb.String()), nil
}

var lineEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)

func escape(s string) string {
	return lineEscaper.Replace(s)
}
