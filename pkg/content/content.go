// Package content defines the wire types exchanged with the generative
// model service and the formatters that turn caller input into requests.
package content

import (
	"encoding/base64"
	"fmt"
)

// Roles used in Content.Role.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Blob is inline binary data. Data is base64-encoded on the wire.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// NewBlob base64-encodes data into a Blob.
func NewBlob(mimeType string, data []byte) *Blob {
	return &Blob{MIMEType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}
}

// Bytes decodes the base64 payload.
func (b Blob) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(b.Data)
	if err != nil {
		return nil, fmt.Errorf("content: decode inline data: %w", err)
	}

	return data, nil
}

// FileData references a file stored by the service.
type FileData struct {
	MIMEType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri"`
}

// Part is one piece of a Content. Exactly one field is expected to be set.
type Part struct {
	Text       string    `json:"text,omitempty"`
	InlineData *Blob     `json:"inlineData,omitempty"`
	FileData   *FileData `json:"fileData,omitempty"`
}

// Text returns a text Part.
func Text(s string) Part { return Part{Text: s} }

// Content is a role-tagged sequence of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// UserContent wraps parts in a user-role Content.
func UserContent(parts ...Part) Content {
	return Content{Role: RoleUser, Parts: parts}
}

// GeneratedMedia is a single generated artefact. The service returns the
// bytes inline, a reference to a stored file, or both.
type GeneratedMedia struct {
	InlineData *Blob     `json:"inlineData,omitempty"`
	FileData   *FileData `json:"fileData,omitempty"`
}

// Prompt is a plain-text input accepted by every generation method.
type Prompt string
