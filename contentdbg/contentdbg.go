/*
Package contentdbg implements helpers to debug resolved content trees.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package contentdbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	tp "github.com/xlab/treeprint"

	"github.com/npillmayer/cascade/content"
)

// Print renders a content tree as an indented text diagram, one line per
// node, with labels, locations and local style overrides where present.
// Useful in failing-test output.
func Print(n *content.Node) string {
	tree := tp.New()
	branch(tree, n)
	return tree.String()
}

func branch(tree tp.Tree, n *content.Node) {
	if n == nil {
		return
	}
	b := tree.AddBranch(describe(n))
	for _, ch := range n.Children() {
		branch(b, ch)
	}
}

func describe(n *content.Node) string {
	var b strings.Builder
	b.WriteString(n.Tag())
	if text := n.Text(); text != "" {
		fmt.Fprintf(&b, " %q", shortText(text))
	}
	if n.Label() != "" {
		fmt.Fprintf(&b, " <%s>", n.Label())
	}
	if !n.Location().IsNone() {
		fmt.Fprintf(&b, " @%s", n.Location())
	}
	if styles := n.Styles(); styles != nil && !styles.Local().IsEmpty() {
		fmt.Fprintf(&b, " %s", styles.Local())
	}
	return b.String()
}

func shortText(s string) string {
	if len(s) > 20 {
		return s[:20] + "…"
	}
	return s
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
}

const graphHeadTmpl = `digraph content {
  graph [fontname = "{{ .Fontname }}"]
  node  [fontname = "{{ .Fontname }}", shape = box]
`

var nodeTmpl = template.Must(template.New("contentnode").Funcs(template.FuncMap{
	"short": shortText,
}).Parse(`  {{ .Name }} [label="{{ short .Label }}"]
`))

var edgeTmpl = template.Must(template.New("contentedge").Parse(`  {{ .From }} -> {{ .To }}
`))

// ToGraphViz outputs a diagram for a content tree. The diagram is in
// GraphViz (DOT) format.
func ToGraphViz(doc *content.Node, w io.Writer) error {
	tmpl, err := template.New("content").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	if err = tmpl.Execute(w, graphParamsType{Fontname: "Helvetica"}); err != nil {
		return err
	}
	count := 0
	if err = gvnodes(doc, w, &count); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func gvnodes(n *content.Node, w io.Writer, count *int) error {
	if n == nil {
		return nil
	}
	*count++
	name := fmt.Sprintf("node%05d", *count)
	if err := nodeTmpl.Execute(w, struct{ Name, Label string }{name, describe(n)}); err != nil {
		return err
	}
	for _, ch := range n.Children() {
		chname := fmt.Sprintf("node%05d", *count+1)
		if err := gvnodes(ch, w, count); err != nil {
			return err
		}
		if err := edgeTmpl.Execute(w, struct{ From, To string }{name, chname}); err != nil {
			return err
		}
	}
	return nil
}
