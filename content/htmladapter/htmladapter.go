/*
Package htmladapter builds content trees from HTML input.

HTML is one convenient carrier syntax for parsed content: headings map to
heading nodes, strong emphasis to strong nodes, pre and code elements to
raw nodes, text to text runs, and everything else to generic elements. An
id attribute becomes the node's label. The adapter consumes an HTML parse
tree as produced by golang.org/x/net/html and performs no styling of its
own; everything styling-related happens during resolution.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>
*/
package htmladapter

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/npillmayer/cascade/content"
)

// Parse reads an HTML document and converts the contents of its body into
// a content tree, rooted in a group node.
func Parse(r io.Reader) (*content.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	body := findElement(atom.Body, doc)
	if body == nil {
		return content.Group(), nil
	}
	return content.Group(convertChildren(body)...), nil
}

// FromNode converts a single HTML node, including its subtree. Nodes
// without a content counterpart (comments, whitespace-only text) convert
// to nil.
func FromNode(h *html.Node) *content.Node {
	switch h.Type {
	case html.TextNode:
		if strings.TrimSpace(h.Data) == "" {
			return nil
		}
		return content.Text(h.Data)
	case html.ElementNode:
		return convertElement(h)
	case html.DocumentNode:
		return content.Group(convertChildren(h)...)
	}
	return nil
}

func convertElement(h *html.Node) *content.Node {
	var n *content.Node
	switch h.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level, _ := strconv.Atoi(h.Data[1:])
		n = content.Heading(level, convertChildren(h)...)
	case atom.Strong, atom.B:
		n = content.Strong(convertChildren(h)...)
	case atom.Pre:
		n = content.Raw(plainText(h), true)
	case atom.Code:
		n = content.Raw(plainText(h), false)
	case atom.Script, atom.Style:
		return nil
	default:
		n = content.Elem(h.Data, convertChildren(h)...)
	}
	if id := attr(h, "id"); id != "" {
		n = n.WithLabel(id)
	}
	return n
}

func convertChildren(h *html.Node) []*content.Node {
	var kids []*content.Node
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if n := FromNode(ch); n != nil {
			kids = append(kids, n)
		}
	}
	return kids
}

func plainText(h *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(h)
	return strings.TrimSuffix(b.String(), "\n")
}

func attr(h *html.Node, key string) string {
	for _, a := range h.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
