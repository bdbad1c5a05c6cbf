package tenscript

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("tenscript: syntax error")

type parser struct {
	src      []rune
	pos      int
	spin     Spin
	spinSeen bool
}

// Parse compiles tenscript source into an immutable tree. The grammar is
// rejected wholesale on any malformation; no partial tree is returned.
func Parse(code string) (*Tree, error) {
	p := &parser{src: []rune(code)}
	p.skipSpace()
	root, err := p.node(true)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing input after tree")
	}
	return &Tree{Spin: p.spin, Root: root}, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrSyntax, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) expect(r rune) error {
	got, ok := p.peek()
	if !ok {
		return p.errorf("unexpected end of input, want %q", r)
	}
	if got != r {
		return p.errorf("unexpected %q, want %q", got, r)
	}
	p.pos++
	return nil
}

func (p *parser) digits() (int, error) {
	start := p.pos
	n := 0
	for {
		r, ok := p.peek()
		if !ok || r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("digits expected")
	}
	return n, nil
}

// node parses a parenthesized item list. Spin tokens are only legal at
// the root.
func (p *parser) node(root bool) (*Node, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	n := &Node{Scale: 100}
	forwardSeen := false
	first := true
	for {
		p.skipSpace()
		r, ok := p.peek()
		if !ok {
			return nil, p.errorf("unbalanced parentheses")
		}
		if r == ')' {
			p.pos++
			return n, nil
		}
		if !first {
			if err := p.expect(','); err != nil {
				return nil, err
			}
			p.skipSpace()
		}
		first = false
		if err := p.item(n, root, &forwardSeen); err != nil {
			return nil, err
		}
	}
}

func (p *parser) item(n *Node, root bool, forwardSeen *bool) error {
	r, ok := p.peek()
	if !ok {
		return p.errorf("unexpected end of input")
	}
	switch {
	case r >= '0' && r <= '9':
		count, err := p.digits()
		if err != nil {
			return err
		}
		if *forwardSeen {
			return p.errorf("duplicate forward count")
		}
		*forwardSeen = true
		n.Forward = count
		return nil

	case r == 'S':
		p.pos++
		pct, err := p.digits()
		if err != nil {
			return err
		}
		if pct == 0 {
			return p.errorf("scale must be positive")
		}
		n.Scale = float64(pct)
		return nil

	case r == 'M':
		p.pos++
		d, err := p.direction()
		if err != nil {
			return err
		}
		tag, err := p.digits()
		if err != nil {
			return err
		}
		if tag == 0 {
			return p.errorf("mark tag must be positive")
		}
		if _, dup := n.Marks[d]; dup {
			return p.errorf("duplicate mark on direction %s", d)
		}
		if n.Marks == nil {
			n.Marks = make(map[Dir]int)
		}
		n.Marks[d] = tag
		return nil

	case r == 'L' || r == 'R':
		if !root {
			return p.errorf("spin token only allowed at the root")
		}
		if p.spinSeen {
			return p.errorf("duplicate spin token")
		}
		p.spinSeen = true
		p.pos++
		if r == 'L' {
			if next, ok := p.peek(); ok && next == 'R' {
				p.pos++
				p.spin = SpinLeftRight
				return nil
			}
			p.spin = SpinLeft
			return nil
		}
		p.spin = SpinRight
		return nil

	default:
		d, err := p.direction()
		if err != nil {
			return err
		}
		if _, dup := n.Branches[d]; dup {
			return p.errorf("duplicate branch on direction %s", d)
		}
		child, err := p.node(false)
		if err != nil {
			return err
		}
		if n.Branches == nil {
			n.Branches = make(map[Dir]*Node)
		}
		n.Branches[d] = child
		return nil
	}
}

func (p *parser) direction() (Dir, error) {
	r, ok := p.peek()
	if !ok {
		return 0, p.errorf("direction expected")
	}
	if r == 'D' || r == 'd' {
		return 0, p.errorf("direction %q requires an omni twist, which is not supported", r)
	}
	d, ok := parseDir(r)
	if !ok {
		return 0, p.errorf("unknown direction %q", r)
	}
	p.pos++
	return d, nil
}
