package convert

import (
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// Rewrite applies the structural rewrite passes to the parsed fragment tree
// in place. The order is fixed: each pass assumes the shape the previous one
// produced.
func Rewrite(root *etree.Element) {
	if root == nil {
		return
	}
	rewriteLeafTags(root)
	consolidateBlockquotes(root)
	promoteTitle(root)
	wrapStructure(root)
}

// rewriteLeafTags renames the recognized source tags and splices image
// placeholders. Unrecognized tags pass through untouched.
func rewriteLeafTags(el *etree.Element) {
	switch el.Tag {
	case "em":
		el.Tag = "italic"
	case "strong":
		el.Tag = "bold"
	case "a":
		el.Tag = "ext-link"
		if href := el.SelectAttr("href"); href != nil {
			el.CreateAttr("ext-link-type", "uri")
			el.CreateAttr("xlink:href", href.Value)
			el.RemoveAttr("href")
		}
	case "li":
		el.Tag = "list-item"
	case "ol":
		el.Tag = "list"
		el.CreateAttr("list-type", "order")
	case "ul":
		el.Tag = "list"
		el.CreateAttr("list-type", "bullet")
	}

	spliceImagePlaceholder(el)

	for _, child := range el.ChildElements() {
		rewriteLeafTags(child)
	}
}

// spliceImagePlaceholder replaces an element's img child with literal
// "[image]" text joined onto the element's leading text, the pre-existing
// text stripped of leading whitespace first.
func spliceImagePlaceholder(el *etree.Element) {
	img := el.SelectElement("img")
	if img == nil {
		return
	}
	parts := []string{"[image]"}
	if text := el.Text(); text != "" {
		parts = append(parts, strings.TrimLeftFunc(text, unicode.IsSpace))
	}
	removeWithTail(el, img)
	el.SetText(strings.Join(parts, " "))
}

// consolidateBlockquotes converts top-level blockquote elements into
// disp-quote elements, merging any maximal run of consecutive blockquotes
// into the first one. Non-blockquote siblings reset the run.
func consolidateBlockquotes(root *etree.Element) {
	var prev *etree.Element
	for _, el := range root.ChildElements() {
		if el.Tag != "blockquote" {
			prev = el
			continue
		}
		if prev == nil || prev.Tag != "disp-quote" {
			el.Tag = "disp-quote"
			el.CreateAttr("content-type", "editor-comment")
			prev = el
			continue
		}
		for _, child := range el.ChildElements() {
			moveWithTail(prev, child)
		}
		removeWithTail(root, el)
	}
}

// promoteTitle renames the first top-level child to title-group when it is a
// paragraph with no leading text whose first child is bold (post leaf
// substitution), and that bold child to article-title.
func promoteTitle(root *etree.Element) {
	children := root.ChildElements()
	if len(children) == 0 {
		return
	}
	first := children[0]
	if first.Tag != "p" || first.Text() != "" {
		return
	}
	inner := first.ChildElements()
	if len(inner) == 0 || inner[0].Tag != "bold" {
		return
	}
	first.Tag = "title-group"
	inner[0].Tag = "article-title"
}

// wrapStructure produces the final shape: an optional front-stub wrapping the
// title-group, then always a body holding every remaining top-level child in
// order.
func wrapStructure(root *etree.Element) {
	if titleGroup := root.SelectElement("title-group"); titleGroup != nil {
		index := firstElementIndex(root)
		frontStub := etree.NewElement("front-stub")
		moveWithTail(frontStub, titleGroup)
		root.InsertChildAt(index, frontStub)
	}

	body := root.SelectElement("body")
	if body == nil {
		body = etree.NewElement("body")
		if frontStub := root.SelectElement("front-stub"); frontStub != nil {
			root.InsertChildAt(frontStub.Index()+1, body)
		} else {
			root.InsertChildAt(firstElementIndex(root), body)
		}
	}

	for _, el := range root.ChildElements() {
		if el.Tag == "body" || el.Tag == "front-stub" {
			continue
		}
		moveWithTail(body, el)
	}
}

// moveWithTail re-parents an element onto dst together with the character
// data that trails it, so untouched content reconstructs byte-faithfully.
func moveWithTail(dst *etree.Element, el *etree.Element) {
	for _, tok := range withTail(el) {
		dst.AddChild(tok)
	}
}

// removeWithTail drops a child element along with its trailing character data.
func removeWithTail(parent *etree.Element, el *etree.Element) {
	tokens := withTail(el)
	for i := len(tokens) - 1; i >= 0; i-- {
		parent.RemoveChild(tokens[i])
	}
}

func withTail(el *etree.Element) []etree.Token {
	tokens := []etree.Token{el}
	parent := el.Parent()
	if parent == nil {
		return tokens
	}
	for i := el.Index() + 1; i < len(parent.Child); i++ {
		cd, ok := parent.Child[i].(*etree.CharData)
		if !ok {
			break
		}
		tokens = append(tokens, cd)
	}
	return tokens
}

func firstElementIndex(parent *etree.Element) int {
	for i, tok := range parent.Child {
		if _, ok := tok.(*etree.Element); ok {
			return i
		}
	}
	return len(parent.Child)
}
