package format

import (
	"encoding"
	"fmt"
	"io"
	"slices"

	"github.com/dhamidi/modinfo/java/module"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(m *module.Model) error
}

// Names lists the encoder names accepted by NewEncoder.
var Names = []string{"java", "json", "yaml", "line"}

// NewEncoder returns the encoder registered under name, writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "java":
		return NewJavaEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, slices.Clone(Names))
}

// write marshals with e and copies the result to w.
func write(w io.Writer, e encoding.TextMarshaler) error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
