// Package codec encodes snapshots for the CLI, the HTTP API and the
// foreign-call surface. JSON goes through jsoniter; CBOR uses core
// deterministic encoding so identical snapshots produce identical bytes.
package codec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
)

const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeCBOR = "application/cbor"
)

// JSON is the shared jsoniter configuration.
var JSON jsoniter.API

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	JSON = jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Valid reports whether format names a supported encoding.
func Valid(format string) bool {
	return format == FormatJSON || format == FormatCBOR
}

func ContentType(format string) string {
	if format == FormatCBOR {
		return ContentTypeCBOR
	}
	return ContentTypeJSON
}

func Marshal(format string, v any) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return JSON.Marshal(v)
	case FormatCBOR:
		return encMode.Marshal(v)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func Unmarshal(format string, data []byte, v any) error {
	switch format {
	case FormatJSON, "":
		return JSON.Unmarshal(data, v)
	case FormatCBOR:
		return decMode.Unmarshal(data, v)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// Encoder writes a stream of values. JSON values are newline
// delimited; CBOR values are concatenated data items.
type Encoder interface {
	Encode(v any) error
}

func NewEncoder(w io.Writer, format string) (Encoder, error) {
	switch format {
	case FormatJSON, "":
		return JSON.NewEncoder(w), nil
	case FormatCBOR:
		return encMode.NewEncoder(w), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
