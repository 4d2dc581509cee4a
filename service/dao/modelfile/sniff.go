package modelfile

import (
	"bytes"
	"fmt"

	"github.com/viant/comets/model/types"
)

// Dialect identifies a model file format.
type Dialect string

const (
	DialectNative Dialect = "native"
	DialectSBML   Dialect = "sbml"
)

// Sniff detects the dialect from the first token of data: an XML prolog or an
// sbml root element selects SBML, any other markup is rejected, and anything
// else is treated as the native dialect.
func Sniff(data []byte) (Dialect, error) {
	fields := bytes.Fields(data)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty input", types.ErrUnrecognizedFormat)
	}
	token := bytes.TrimPrefix(fields[0], []byte("\xef\xbb\xbf"))
	switch {
	case bytes.HasPrefix(token, []byte("<?xml")), bytes.HasPrefix(token, []byte("<sbml")):
		return DialectSBML, nil
	case bytes.HasPrefix(token, []byte("<")):
		return "", fmt.Errorf("%w: unexpected markup %q", types.ErrUnrecognizedFormat, token)
	}
	return DialectNative, nil
}
