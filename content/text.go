package content

import "strings"

// PlainText concatenates the literal text content of a subtree, in document
// order. Function nodes contribute only content substituted for them during
// resolution.
func PlainText(n *Node) string {
	var b strings.Builder
	appendPlainText(&b, n)
	return b.String()
}

func appendPlainText(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.kind == TextKind || n.kind == RawKind {
		b.WriteString(n.Text())
	}
	for _, ch := range n.children {
		appendPlainText(b, ch)
	}
}
