// Package stylesheet is a small loss-less CSS syntax tree. It keeps every
// byte of the source (whitespace and comments included) so an unmodified
// tree serializes back to its input, and edits only touch the nodes they
// change.
package stylesheet

import (
	"strings"
)

// Node is any element of a stylesheet
type Node interface {
	// Position returns the 1-based line and column where the node starts
	Position() (line, col int)
	writeTo(b *strings.Builder)
}

// container is implemented by nodes holding children
type container interface {
	children() []Node
	setChildren([]Node)
}

type pos struct {
	line, col int
}

func (p pos) Position() (int, int) { return p.line, p.col }

// Rule is a qualified rule: selector { ... }
type Rule struct {
	pos
	before   string
	selector string
	between  string
	nodes    []Node
	after    string
	closed   bool
}

// Selector returns the raw selector text
func (r *Rule) Selector() string { return r.selector }

// Nodes returns the direct children
func (r *Rule) Nodes() []Node { return r.nodes }

func (r *Rule) children() []Node     { return r.nodes }
func (r *Rule) setChildren(n []Node) { r.nodes = n }

func (r *Rule) writeTo(b *strings.Builder) {
	b.WriteString(r.before)
	b.WriteString(r.selector)
	b.WriteString(r.between)
	b.WriteByte('{')
	writeNodes(b, r.nodes)
	b.WriteString(r.after)
	if r.closed {
		b.WriteByte('}')
	}
}

// AtRule is an at-rule, either a statement (@import ...;) or a block (@media ... { ... })
type AtRule struct {
	pos
	before    string
	keyword   string // "@media"
	params    string
	between   string
	block     bool
	semicolon bool
	nodes     []Node
	after     string
	closed    bool
}

// Name returns the at-rule name without "@"
func (a *AtRule) Name() string { return strings.TrimPrefix(a.keyword, "@") }

// Params returns the trimmed prelude
func (a *AtRule) Params() string { return strings.TrimSpace(a.params) }

// Nodes returns the direct children of a block at-rule
func (a *AtRule) Nodes() []Node { return a.nodes }

func (a *AtRule) children() []Node     { return a.nodes }
func (a *AtRule) setChildren(n []Node) { a.nodes = n }

func (a *AtRule) writeTo(b *strings.Builder) {
	b.WriteString(a.before)
	b.WriteString(a.keyword)
	b.WriteString(a.params)
	b.WriteString(a.between)
	switch {
	case a.block:
		b.WriteByte('{')
		writeNodes(b, a.nodes)
		b.WriteString(a.after)
		if a.closed {
			b.WriteByte('}')
		}
	case a.semicolon:
		b.WriteByte(';')
	}
}

// Decl is a property declaration
type Decl struct {
	pos
	before    string
	prop      string
	colon     string // raw text between property and value, e.g. ": "
	value     string
	trail     string // whitespace between value and ';'
	semicolon bool
}

// NewDecl builds a declaration rendered as "prop: value;"
func NewDecl(prop, value string) *Decl {
	return &Decl{prop: prop, colon: ": ", value: value, semicolon: true}
}

// Prop returns the property name
func (d *Decl) Prop() string { return d.prop }

// Value returns the raw value, including any !important flag
func (d *Decl) Value() string { return d.value }

// SetValue replaces the value
func (d *Decl) SetValue(v string) { d.value = v }

func (d *Decl) writeTo(b *strings.Builder) {
	b.WriteString(d.before)
	b.WriteString(d.prop)
	b.WriteString(d.colon)
	b.WriteString(d.value)
	b.WriteString(d.trail)
	if d.semicolon {
		b.WriteByte(';')
	}
}

// Comment is a /* ... */ comment
type Comment struct {
	pos
	before string
	raw    string
	parent container
}

// Text returns the comment body without delimiters, trimmed
func (c *Comment) Text() string {
	text := strings.TrimPrefix(c.raw, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.TrimSpace(text)
}

// ReplaceWithDeclarations swaps the comment for one declaration per
// prop/value pair, indented like the comment.
func (c *Comment) ReplaceWithDeclarations(props, values []string) {
	if c.parent == nil {
		return
	}

	siblings := c.parent.children()
	idx := -1
	for i, n := range siblings {
		if n == Node(c) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	indent := c.before
	if i := strings.LastIndex(indent, "\n"); i >= 0 {
		indent = "\n" + indent[i+1:]
	}

	decls := make([]Node, 0, len(props))
	for i, prop := range props {
		d := NewDecl(prop, values[i])
		d.pos = c.pos
		d.before = indent
		if i == 0 {
			d.before = c.before
		}
		decls = append(decls, d)
	}

	out := make([]Node, 0, len(siblings)-1+len(decls))
	out = append(out, siblings[:idx]...)
	out = append(out, decls...)
	out = append(out, siblings[idx+1:]...)
	c.parent.setChildren(out)
	c.parent = nil
}

func (c *Comment) writeTo(b *strings.Builder) {
	b.WriteString(c.before)
	b.WriteString(c.raw)
}

// Raw holds text that is not a rule, declaration or comment, such as a
// stray "}" or a property without a colon.
type Raw struct {
	pos
	before string
	text   string
}

// Text returns the raw fragment
func (r *Raw) Text() string { return r.text }

func (r *Raw) writeTo(b *strings.Builder) {
	b.WriteString(r.before)
	b.WriteString(r.text)
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		n.writeTo(b)
	}
}
