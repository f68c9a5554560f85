package stylesheet

// WalkDecls calls fn for every declaration, depth first in source order
func (s *Sheet) WalkDecls(fn func(*Decl)) {
	walk(s.nodes, false, func(n Node, _ bool) {
		if d, ok := n.(*Decl); ok {
			fn(d)
		}
	})
}

// WalkComments calls fn for every comment. inRule is true when the comment
// sits inside a qualified rule at any depth.
func (s *Sheet) WalkComments(fn func(c *Comment, inRule bool)) {
	type hit struct {
		c      *Comment
		inRule bool
	}
	// Collect first so fn may replace comments while we iterate
	var hits []hit
	walk(s.nodes, false, func(n Node, inRule bool) {
		if c, ok := n.(*Comment); ok {
			hits = append(hits, hit{c, inRule})
		}
	})
	for _, h := range hits {
		fn(h.c, h.inRule)
	}
}

// WalkRuleComments calls fn for every comment nested in a qualified rule
func (s *Sheet) WalkRuleComments(fn func(*Comment)) {
	s.WalkComments(func(c *Comment, inRule bool) {
		if inRule {
			fn(c)
		}
	})
}

func walk(nodes []Node, inRule bool, fn func(Node, bool)) {
	for _, n := range nodes {
		fn(n, inRule)
		switch v := n.(type) {
		case *Rule:
			walk(v.nodes, true, fn)
		case *AtRule:
			walk(v.nodes, inRule, fn)
		}
	}
}
