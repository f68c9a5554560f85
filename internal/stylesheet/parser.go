package stylesheet

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Sheet is a parsed stylesheet
type Sheet struct {
	Filename string
	nodes    []Node
	after    string
	source   string
}

// Nodes returns the top-level nodes
func (s *Sheet) Nodes() []Node { return s.nodes }

func (s *Sheet) children() []Node     { return s.nodes }
func (s *Sheet) setChildren(n []Node) { s.nodes = n }

// String serializes the sheet
func (s *Sheet) String() string {
	var b strings.Builder
	b.Grow(len(s.source))
	writeNodes(&b, s.nodes)
	b.WriteString(s.after)
	return b.String()
}

// SourceLine returns the 1-based line of the original source, or "" when out of range
func (s *Sheet) SourceLine(line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(s.source, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

type token struct {
	tt     css.TokenType
	data   string
	offset int
}

// parser maintains the token stream while building the tree
type parser struct {
	toks       []token
	pos        int
	lineStarts []int
}

// Parse builds a tree from CSS source. The lexer never rejects input, so
// malformed fragments end up in Raw nodes instead of failing the parse.
func Parse(src string, filename string) (*Sheet, error) {
	lexer := css.NewLexer(parse.NewInputString(src))

	p := &parser{lineStarts: lineStarts(src)}
	offset := 0
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("lex %s: %w", filename, err)
			}
			break
		}
		p.toks = append(p.toks, token{tt: tt, data: string(text), offset: offset})
		offset += len(text)
	}

	sheet := &Sheet{Filename: filename, source: src}
	sheet.nodes, sheet.after, _ = p.parseNodes(sheet, true)
	return sheet, nil
}

// parseNodes reads nodes until the closing brace of the current block (or
// EOF at top level) and reports whether a closing brace was consumed.
func (p *parser) parseNodes(owner container, top bool) ([]Node, string, bool) {
	var nodes []Node
	var before strings.Builder

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch t.tt {
		case css.WhitespaceToken, css.CDOToken, css.CDCToken:
			before.WriteString(t.data)
			p.pos++

		case css.CommentToken:
			nodes = append(nodes, &Comment{
				pos:    p.position(t.offset),
				before: before.String(),
				raw:    t.data,
				parent: owner,
			})
			before.Reset()
			p.pos++

		case css.RightBraceToken:
			if !top {
				p.pos++
				return nodes, before.String(), true
			}
			// Stray brace at top level
			nodes = append(nodes, &Raw{pos: p.position(t.offset), before: before.String(), text: t.data})
			before.Reset()
			p.pos++

		case css.AtKeywordToken:
			nodes = append(nodes, p.parseAtRule(before.String()))
			before.Reset()

		default:
			nodes = append(nodes, p.parseStatement(before.String(), top))
			before.Reset()
		}
	}

	return nodes, before.String(), false
}

// collect reads tokens up to a depth-0 '{', ';' or '}' (or EOF) without
// consuming the terminator.
func (p *parser) collect() []token {
	start := p.pos
	depth := 0
	for p.pos < len(p.toks) {
		switch p.toks[p.pos].tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.LeftBraceToken, css.SemicolonToken, css.RightBraceToken:
			if depth == 0 {
				return p.toks[start:p.pos]
			}
		}
		p.pos++
	}
	return p.toks[start:p.pos]
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseAtRule(before string) Node {
	kw := p.toks[p.pos]
	p.pos++

	at := &AtRule{
		pos:     p.position(kw.offset),
		before:  before,
		keyword: kw.data,
	}

	prelude := joinTokens(p.collect())
	at.params, at.between = splitTrailingSpace(prelude)

	next, ok := p.peek()
	if !ok {
		return at
	}
	switch next.tt {
	case css.SemicolonToken:
		at.semicolon = true
		p.pos++
	case css.LeftBraceToken:
		at.block = true
		p.pos++
		at.nodes, at.after, at.closed = p.parseNodes(at, false)
	}
	return at
}

func (p *parser) parseStatement(before string, top bool) Node {
	startPos := p.position(p.toks[p.pos].offset)
	toks := p.collect()

	next, ok := p.peek()
	if ok && next.tt == css.LeftBraceToken {
		p.pos++
		rule := &Rule{pos: startPos, before: before}
		rule.selector, rule.between = splitTrailingSpace(joinTokens(toks))
		rule.nodes, rule.after, rule.closed = p.parseNodes(rule, false)
		return rule
	}

	semicolon := ok && next.tt == css.SemicolonToken
	if semicolon {
		p.pos++
	}

	if !top {
		if decl := buildDecl(toks, semicolon); decl != nil {
			decl.pos = startPos
			decl.before = before
			return decl
		}
	}

	text := joinTokens(toks)
	if semicolon {
		text += ";"
	}
	return &Raw{pos: startPos, before: before, text: text}
}

// buildDecl splits "prop : value" tokens at the first depth-0 colon
func buildDecl(toks []token, semicolon bool) *Decl {
	colonIdx := -1
	depth := 0
	for i, t := range toks {
		switch t.tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.ColonToken:
			if depth == 0 && colonIdx == -1 {
				colonIdx = i
			}
		}
	}
	if colonIdx <= 0 {
		return nil
	}

	prop, propSpace := splitTrailingSpace(joinTokens(toks[:colonIdx]))
	if prop == "" {
		return nil
	}

	rest := toks[colonIdx+1:]
	lead := 0
	for lead < len(rest) && rest[lead].tt == css.WhitespaceToken {
		lead++
	}
	value, trail := splitTrailingSpace(joinTokens(rest[lead:]))

	return &Decl{
		prop:      prop,
		colon:     propSpace + ":" + joinTokens(rest[:lead]),
		value:     value,
		trail:     trail,
		semicolon: semicolon,
	}
}

func joinTokens(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.data)
	}
	return b.String()
}

// splitTrailingSpace separates trailing CSS whitespace from s
func splitTrailingSpace(s string) (string, string) {
	trimmed := strings.TrimRight(s, " \t\r\n\f")
	return trimmed, s[len(trimmed):]
}

func lineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (p *parser) position(offset int) pos {
	line := sort.Search(len(p.lineStarts), func(i int) bool {
		return p.lineStarts[i] > offset
	})
	return pos{line: line, col: offset - p.lineStarts[line-1] + 1}
}
