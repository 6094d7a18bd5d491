package convert

import (
	"regexp"
	"strings"
)

// Close-tag order inversions for em/strong pairs. The opening tags are
// rewritten to match the actual closing order, earliest matching span first.
var (
	emStrongOrderPattern = regexp.MustCompile(`<(em.*?)><(strong.*?)>(.*?</em></strong>)`)
	strongEmOrderPattern = regexp.MustCompile(`<(strong.*?)><(em.*?)>(.*?</strong></em>)`)
)

// repairMarkup applies the best-effort textual fixups for commonly malformed
// markup. It runs only after a strict parse has failed, and the result is
// retried exactly once.
func repairMarkup(fragment string) string {
	// Normalize bare <br> to self-closed form; no other void element is touched.
	fragment = strings.ReplaceAll(fragment, "<br>", "<br/>")
	fragment = emStrongOrderPattern.ReplaceAllString(fragment, "<${2}><${1}>${3}")
	fragment = strongEmOrderPattern.ReplaceAllString(fragment, "<${2}><${1}>${3}")
	return fragment
}
