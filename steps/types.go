// Package steps models a docmap document and recovers ordered views of the
// content items and preprint version events it describes. A docmap is a JSON
// description of a manuscript's review provenance, structured as a chain of
// process steps linked by next-step identifiers.
package steps

// Docmap is the parsed docmap document. It is treated as immutable once parsed.
type Docmap struct {
	ID          string           `json:"id,omitempty"`
	Type        string           `json:"type,omitempty"`
	Publisher   map[string]any   `json:"publisher,omitempty"`
	Created     string           `json:"created,omitempty"`
	Updated     string           `json:"updated,omitempty"`
	FirstStepID string           `json:"first-step"`
	Steps       map[string]*Step `json:"steps"`
}

// Step is one node in the provenance chain: inputs consumed, actions
// performed, assertions established.
type Step struct {
	Inputs         []Item      `json:"inputs,omitempty"`
	Actions        []Action    `json:"actions,omitempty"`
	Assertions     []Assertion `json:"assertions,omitempty"`
	NextStepID     string      `json:"next-step,omitempty"`
	PreviousStepID string      `json:"previous-step,omitempty"`
}

// Action is a step's effect, producing typed outputs.
type Action struct {
	Participants []Participant `json:"participants,omitempty"`
	Outputs      []Output      `json:"outputs,omitempty"`
}

// Participant records who performed an action. The actor shape varies by
// publisher, so it is carried opaquely.
type Participant struct {
	Actor map[string]any `json:"actor,omitempty"`
	Role  string         `json:"role,omitempty"`
}

// Output is a typed product of an action, optionally pointing at retrievable
// web content.
type Output struct {
	Type              string       `json:"type,omitempty"`
	Published         string       `json:"published,omitempty"`
	DOI               string       `json:"doi,omitempty"`
	URL               string       `json:"url,omitempty"`
	VersionIdentifier string       `json:"versionIdentifier,omitempty"`
	License           string       `json:"license,omitempty"`
	Content           []ContentRef `json:"content,omitempty"`
}

// ContentRef points at one representation of an output. Only entries of type
// "web-content" are meaningful to extraction.
type ContentRef struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Assertion is a timestamped fact about an item, e.g. "became under review".
type Assertion struct {
	Item     Item   `json:"item,omitempty"`
	Status   string `json:"status,omitempty"`
	Happened string `json:"happened,omitempty"`
}

// Item references a manuscript identity (preprint, reviewed preprint, ...)
// as it appears in step inputs and assertion subjects.
type Item struct {
	Type              string `json:"type,omitempty"`
	DOI               string `json:"doi,omitempty"`
	URL               string `json:"url,omitempty"`
	VersionIdentifier string `json:"versionIdentifier,omitempty"`
	Published         string `json:"published,omitempty"`
	License           string `json:"license,omitempty"`
}

// ContentItem is the derived record for one reviewable content output. The
// orchestrator owns a single slice of these and threads it through fetch and
// conversion; HTML and XML are populated as those stages complete.
type ContentItem struct {
	Type       string `json:"type"`
	Published  string `json:"published"`
	WebContent string `json:"web-content"`
	HTML       []byte `json:"html,omitempty"`
	XML        []byte `json:"xml,omitempty"`
}

// Preprint event types emitted by PreprintHistory.
const (
	EventPreprint         = "preprint"
	EventReviewedPreprint = "reviewed-preprint"
)

// DateTBC is the placeholder date for preprint events with no resolvable
// timestamp.
const DateTBC = "TBC"

// PreprintEvent is one entry in a manuscript's derived version history.
type PreprintEvent struct {
	Type    string `json:"type"`
	DOI     string `json:"doi"`
	Version string `json:"versionIdentifier,omitempty"`
	Date    string `json:"date"`
}
