// Package docmapcmd exposes docmap processing through the go-command message
// surface so hosts can register it on their dispatcher.
package docmapcmd

import (
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const processMessageType = "docmap.process"

// ProcessDocmapCommand triggers ingestion of one docmap document: parse,
// fetch every content item, and convert the fetched HTML to XML.
type ProcessDocmapCommand struct {
	// Docmap carries the raw docmap JSON document.
	Docmap json.RawMessage `json:"docmap"`
	// Source labels where the docmap came from, recorded on archived runs.
	Source string `json:"source,omitempty"`
}

// Type implements command.Message.
func (ProcessDocmapCommand) Type() string { return processMessageType }

// Validate ensures a docmap payload is present before handlers execute.
func (cmd ProcessDocmapCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Docmap, validation.Required, validation.By(func(value any) error {
			raw, _ := value.(json.RawMessage)
			if strings.TrimSpace(string(raw)) == "" {
				return validation.NewError("docmap.process.docmap_required", "docmap payload is required")
			}
			return nil
		})),
	)
}
