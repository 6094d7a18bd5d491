package steps

import "encoding/json"

// Parse decodes a docmap JSON document.
func Parse(data []byte) (*Docmap, error) {
	var doc Docmap
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedDocmapError{Reason: "invalid JSON", Cause: err}
	}
	return &doc, nil
}

// IsEmpty reports whether the docmap carries no traversable steps.
func (d *Docmap) IsEmpty() bool {
	return d == nil || len(d.Steps) == 0 || d.FirstStepID == ""
}
