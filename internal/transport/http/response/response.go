// Package response writes API responses as JSON or CBOR.
package response

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"socprobe/internal/codec"
	"socprobe/internal/logger"
)

type ResponseWriter interface {
	Write(w http.ResponseWriter, r *http.Request, status int, data *Response)
	Error(w http.ResponseWriter, r *http.Request, status int, message string)
	WriteValidationError(w http.ResponseWriter, r *http.Request, errors map[string]string)
}

type Response struct {
	Message string             `json:"message,omitempty"`
	Data    any                `json:"data,omitempty"`
	Meta    any                `json:"meta,omitempty"`
	Errors  *map[string]string `json:"errors,omitempty"`
}

type Writer struct {
	log logger.Logger
}

func NewWriter(log logger.Logger) ResponseWriter {
	return &Writer{log: log}
}

// Format picks the encoding from ?format= or the Accept header.
func Format(r *http.Request) string {
	if f := strings.ToLower(r.URL.Query().Get("format")); codec.Valid(f) {
		return f
	}
	if strings.Contains(r.Header.Get("Accept"), codec.ContentTypeCBOR) {
		return codec.FormatCBOR
	}
	return codec.FormatJSON
}

func (j *Writer) Write(w http.ResponseWriter, r *http.Request, status int, data *Response) {
	format := Format(r)

	if data == nil {
		w.Header().Set("Content-Type", codec.ContentType(format))
		w.WriteHeader(status)
		return
	}

	b, err := codec.Marshal(format, data)
	if err != nil {
		j.log.Error("failed to encode response", "format", format, "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", codec.ContentType(format))
	w.WriteHeader(status)

	if _, err := w.Write(b); err != nil {
		j.log.Error("failed to write response", "error", err.Error())
	}
}

func (j *Writer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	j.Write(w, r, status, &Response{Message: message})
}

func (j *Writer) WriteValidationError(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	keys := make([]string, 0, len(errors))
	for k := range errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	firstField := keys[0]
	mainMessage := errors[firstField]
	remaining := len(errors) - 1

	var finalMessage string
	switch remaining {
	case 0:
		finalMessage = mainMessage
	case 1:
		finalMessage = fmt.Sprintf("%s (and 1 more error)", mainMessage)
	default:
		finalMessage = fmt.Sprintf("%s (and %d more errors)", mainMessage, remaining)
	}

	j.Write(w, r, http.StatusUnprocessableEntity, &Response{
		Message: finalMessage,
		Errors:  &errors,
	})
}
