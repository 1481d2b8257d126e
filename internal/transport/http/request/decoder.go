// Package request
package request

import (
	"errors"
	"net/http"

	"socprobe/internal/codec"
)

var ErrInvalidBody = errors.New("invalid request body")

const maxBodySize = 64 * 1024

type RequestDecoder interface {
	Decode(r *http.Request, req any) error
}

type JSONDecoder struct{}

func NewJSONDecoder() RequestDecoder {
	return &JSONDecoder{}
}

func (d *JSONDecoder) Decode(r *http.Request, req any) error {
	defer r.Body.Close()

	dec := codec.JSON.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(req); err != nil {
		return ErrInvalidBody
	}

	return nil
}
