// Package convert turns loosely-formed third-party HTML fragments into a
// constrained JATS-like XML document model. A best-effort textual repair pass
// precedes a strict parse; the parsed tree then moves through a fixed sequence
// of structural rewrite passes before serialization.
package convert

import (
	"unicode/utf8"

	"github.com/beevik/etree"
)

const xlinkNamespace = "http://www.w3.org/1999/xlink"

// Convert rewrites an HTML fragment into the constrained XML form, rooted at
// the synthetic wrapper element.
func Convert(data []byte) ([]byte, error) {
	doc, err := ParseFragment(data)
	if err != nil {
		return nil, err
	}
	Rewrite(doc.Root())
	return serialize(doc)
}

// ParseFragment decodes the fragment as UTF-8, wraps it in a synthetic root
// element and parses it strictly. On failure the textual repairs are applied
// and the parse retried once; a fragment that still fails is reported as
// malformed.
func ParseFragment(data []byte) (*etree.Document, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	fragment := string(data)

	doc := etree.NewDocument()
	if err := doc.ReadFromString("<root>" + fragment + "</root>"); err == nil {
		return doc, nil
	}

	doc = etree.NewDocument()
	if err := doc.ReadFromString("<root>" + repairMarkup(fragment) + "</root>"); err != nil {
		return nil, &MalformedMarkupError{Cause: err}
	}
	return doc, nil
}

func serialize(doc *etree.Document) ([]byte, error) {
	if root := doc.Root(); root != nil && usesXlink(root) {
		root.CreateAttr("xmlns:xlink", xlinkNamespace)
	}
	return doc.WriteToBytes()
}

func usesXlink(el *etree.Element) bool {
	for _, attr := range el.Attr {
		if attr.Space == "xlink" {
			return true
		}
	}
	for _, child := range el.ChildElements() {
		if usesXlink(child) {
			return true
		}
	}
	return false
}
