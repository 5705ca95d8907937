// Package form builds multipart/form-data request payloads.
package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// ErrEmptyName is returned when a field is added without a name.
var ErrEmptyName = errors.New("form field name must not be empty")

// Data is an ordered multipart form payload. Fields and files are
// written in the order they were added.
type Data struct {
	parts []part
}

type part struct {
	name        string
	value       string
	fileName    string
	contentType string
	file        io.Reader
}

// New returns an empty payload.
func New() *Data {
	return &Data{}
}

// Add appends a value for name, keeping earlier values.
func (d *Data) Add(name, value string) *Data {
	d.parts = append(d.parts, part{name: name, value: value})
	return d
}

// Set replaces every value for name with value.
func (d *Data) Set(name, value string) *Data {
	d.Delete(name)
	return d.Add(name, value)
}

// Delete removes all fields and files under name.
func (d *Data) Delete(name string) {
	kept := d.parts[:0]
	for _, p := range d.parts {
		if p.name != name {
			kept = append(kept, p)
		}
	}
	d.parts = kept
}

// Get returns the first plain value stored under name.
func (d *Data) Get(name string) (string, bool) {
	for _, p := range d.parts {
		if p.name == name && p.file == nil {
			return p.value, true
		}
	}
	return "", false
}

// AddFile appends a file part. contentType defaults to
// application/octet-stream. r is consumed by Encode.
func (d *Data) AddFile(name, fileName, contentType string, r io.Reader) *Data {
	d.parts = append(d.parts, part{name: name, fileName: fileName, contentType: contentType, file: r})
	return d
}

// Len reports the number of parts.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.parts)
}

// Encode renders the payload, returning the body and the Content-Type
// header value carrying its boundary.
func (d *Data) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range d.parts {
		if p.name == "" {
			return nil, "", ErrEmptyName
		}

		if p.file == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", fmt.Errorf("writing field %q: %w", p.name, err)
			}
			continue
		}

		contentType := p.contentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(p.name), escapeQuotes(p.fileName)))
		header.Set("Content-Type", contentType)

		pw, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating part %q: %w", p.name, err)
		}

		if _, err := io.Copy(pw, p.file); err != nil {
			return nil, "", fmt.Errorf("copying file %q: %w", p.fileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
