package pdfmodel

import (
	"strconv"
)

// tokenizedPage is the result of interpreting a page's content stream
// operators into the glyph/path/image primitives PageProvider exposes.
// pdfcpu works at the structural (object/stream) level and does not expose
// glyph metrics or path geometry itself, so this tokenizer is hand-rolled:
// it walks the operator stream, tracks the graphics and text state (CTM,
// text matrix, font size), and emits one GlyphPrimitive per character shown
// by Tj/TJ and one PathPrimitive per path-painting operator. Because no
// font program is consulted, glyph advance widths are approximated from the
// font size rather than true glyph metrics — acceptable for a layout engine
// whose primary signal is glyph origin and line structure, not pixel-exact
// width.
type tokenizedPage struct {
	glyphs []GlyphPrimitive
	paths []PathPrimitive
	images []ImagePrimitive
}

type textState struct {
	fontName string
	fontSize float64
	flags int
	weight int
	render RenderMode
	fill uint32
	stroke uint32
}

type matrix struct{ a, b, c, d, e, f float64 }

func identity() matrix { return matrix{a: 1, d: 1} }

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func (m matrix) mul(o matrix) matrix {
	return matrix{
		a: m.a*o.a + m.b*o.c,
		b: m.a*o.b + m.b*o.d,
		c: m.c*o.a + m.d*o.c,
		d: m.c*o.b + m.d*o.d,
		e: m.e*o.a + m.f*o.c + o.e,
		f: m.e*o.b + m.f*o.d + o.f,
	}
}

// tokenizeContentStream interprets a page content stream into primitives.
// Unrecognized or malformed operators are skipped rather than aborting the
// page: a page with a truncated content stream still yields whatever
// primitives were already parsed before the truncation.
func tokenizeContentStream(content []byte) tokenizedPage {
	var out tokenizedPage
	if len(content) == 0 {
		return out
	}

	lex := newLexer(content)
	var stack []token
	ctm := identity()
	tm, tlm := identity(), identity()
	ts := textState{fontSize: 10}
	var pathPts []Segment
	var curX, curY float64
	inText := false

	flush := func() {
		stack = stack[:0]
	}

	for {
		tok, ok := lex.next()
		if !ok {
			break
		}
		if tok.isOperator {
			switch tok.op {
			case "q", "Q":
				// graphics state save/restore is not tracked (single
				// linear pass is sufficient for layout purposes).
			case "cm":
				if m, ok := matrixFromStack(stack); ok {
					ctm = m.mul(ctm)
				}
			case "BT":
				inText = true
				tm, tlm = identity(), identity()
			case "ET":
				inText = false
			case "Tf":
				if len(stack) >= 2 {
					ts.fontName = stack[len(stack)-2].str
					if v, ok := stack[len(stack)-1].float(); ok {
						ts.fontSize = v
					}
				}
			case "Tr":
				if len(stack) >= 1 {
					if v, ok := stack[len(stack)-1].float(); ok {
						ts.render = RenderMode(int(v))
					}
				}
			case "Td", "TD":
				if len(stack) >= 2 {
					dx, _ := stack[len(stack)-2].float()
					dy, _ := stack[len(stack)-1].float()
					tlm = matrix{a: 1, d: 1, e: dx, f: dy}.mul(tlm)
					tm = tlm
				}
			case "Tm":
				if m, ok := matrixFromStack(stack); ok {
					tm, tlm = m, m
				}
			case "Tj":
				if len(stack) >= 1 {
					emitText(&out, stack[len(stack)-1].str, ctm, tm, ts)
					advance := float64(len(stack[len(stack)-1].str)) * ts.fontSize * 0.5
					tm = matrix{a: 1, d: 1, e: advance}.mul(tm)
				}
			case "'", "\"":
				if len(stack) >= 1 {
					s := stack[len(stack)-1].str
					tlm = matrix{a: 1, d: 1, f: -ts.fontSize * 1.2}.mul(tlm)
					tm = tlm
					emitText(&out, s, ctm, tm, ts)
				}
			case "TJ":
				if len(stack) >= 1 {
					for _, el := range stack[len(stack)-1].arr {
						if el.str != "" {
							emitText(&out, el.str, ctm, tm, ts)
							advance := float64(len(el.str)) * ts.fontSize * 0.5
							tm = matrix{a: 1, d: 1, e: advance}.mul(tm)
						} else if v, ok := el.float(); ok {
							tm = matrix{a: 1, d: 1, e: -v / 1000 * ts.fontSize}.mul(tm)
						}
					}
				}
			case "m":
				if len(stack) >= 2 {
					curX, _ = stack[len(stack)-2].float()
					curY, _ = stack[len(stack)-1].float()
					x, y := ctm.apply(curX, curY)
					pathPts = append(pathPts, Segment{Kind: SegMove, X: x, Y: y})
				}
			case "l":
				if len(stack) >= 2 {
					curX, _ = stack[len(stack)-2].float()
					curY, _ = stack[len(stack)-1].float()
					x, y := ctm.apply(curX, curY)
					pathPts = append(pathPts, Segment{Kind: SegLine, X: x, Y: y})
				}
			case "c", "v", "y":
				if len(stack) >= 6 {
					curX, _ = stack[len(stack)-2].float()
					curY, _ = stack[len(stack)-1].float()
					x, y := ctm.apply(curX, curY)
					pathPts = append(pathPts, Segment{Kind: SegBezier, X: x, Y: y})
				}
			case "re":
				if len(stack) >= 4 {
					x0, _ := stack[len(stack)-4].float()
					y0, _ := stack[len(stack)-3].float()
					w, _ := stack[len(stack)-2].float()
					h, _ := stack[len(stack)-1].float()
					for _, c := range [][2]float64{{x0, y0}, {x0 + w, y0}, {x0 + w, y0 + h}, {x0, y0 + h}, {x0, y0}} {
						x, y := ctm.apply(c[0], c[1])
						kind := SegLine
						if c == [2]float64{x0, y0} && len(pathPts) == 0 {
							kind = SegMove
						}
						pathPts = append(pathPts, Segment{Kind: kind, X: x, Y: y})
					}
				}
			case "h":
				pathPts = append(pathPts, Segment{Kind: SegClose})
			case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*":
				if len(pathPts) > 0 {
					out.paths = append(out.paths, PathPrimitive{Segments: pathPts, BBox: bboxOf(pathPts)})
				}
				pathPts = nil
			case "n":
				pathPts = nil
			case "Do":
				out.images = append(out.images, ImagePrimitive{BBox: bboxOf([]Segment{
					{X: ctm.e, Y: ctm.f}, {X: ctm.e + ctm.a, Y: ctm.f + ctm.d},
				})})
			}
			flush()
		} else {
			stack = append(stack, tok)
		}
	}
	_ = inText
	return out
}

func emitText(out *tokenizedPage, s string, ctm, tm matrix, ts textState) {
	composed := tm.mul(ctm)
	for _, r := range s {
		x, y := composed.apply(0, 0)
		w := ts.fontSize * 0.5
		h := ts.fontSize
		out.glyphs = append(out.glyphs, GlyphPrimitive{
			Unicode: r,
			OriginX: x,
			OriginY: y,
			HasLoose: true,
			LooseBBox: [4]float64{x, y, x + w, y + h},
			TightBBox: [4]float64{x, y, x + w, y + h},
			Render: ts.render,
			FontName: ts.fontName,
			FontFlags: ts.flags,
			Size: ts.fontSize,
			Weight: ts.weight,
			FillRGBA: ts.fill,
			StrokeRGBA: ts.stroke,
		})
		composed = matrix{a: 1, d: 1, e: w}.mul(composed)
	}
}

func bboxOf(pts []Segment) [4]float64 {
	if len(pts) == 0 {
		return [4]float64{}
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return [4]float64{minX, minY, maxX, maxY}
}

func matrixFromStack(stack []token) (matrix, bool) {
	if len(stack) < 6 {
		return matrix{}, false
	}
	vals := make([]float64, 6)
	for i := 0; i < 6; i++ {
		v, ok := stack[len(stack)-6+i].float()
		if !ok {
			return matrix{}, false
		}
		vals[i] = v
	}
	return matrix{a: vals[0], b: vals[1], c: vals[2], d: vals[3], e: vals[4], f: vals[5]}, true
}

// token is one lexical unit of a content stream: either an operand (number,
// string, name, array) or an operator keyword.
type token struct {
	isOperator bool
	op string
	num string
	str string
	arr []token
}

func (t token) float() (float64, bool) {
	if t.num == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(t.num, 64)
	return v, err == nil
}

type lexer struct {
	b []byte
	pos int
}

func newLexer(b []byte) *lexer { return &lexer{b: b} }

func (l *lexer) skipSpace() {
	for l.pos < len(l.b) {
		c := l.b[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0 {
			l.pos++
			continue
		}
		if c == '%' {
			for l.pos < len(l.b) && l.b[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}
}

func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.b) {
		return token{}, false
	}
	c := l.b[l.pos]
	switch {
	case c == '/':
		start := l.pos + 1
		l.pos++
		for l.pos < len(l.b) && !isDelim(l.b[l.pos]) {
			l.pos++
		}
		return token{op: "name", str: string(l.b[start:l.pos])}, true
	case c == '(':
		return l.readLiteralString()
	case c == '[':
		return l.readArray()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		start := l.pos
		l.pos++
		for l.pos < len(l.b) && !isDelim(l.b[l.pos]) {
			l.pos++
		}
		return token{num: string(l.b[start:l.pos])}, true
	case c == '<':
		if l.pos+1 < len(l.b) && l.b[l.pos+1] == '<' {
			return l.skipDict()
		}
		return l.readHexString()
	default:
		start := l.pos
		for l.pos < len(l.b) && !isDelim(l.b[l.pos]) {
			l.pos++
		}
		op := string(l.b[start:l.pos])
		if op == "" {
			l.pos++
			return l.next()
		}
		return token{isOperator: true, op: op}, true
	}
}

func (l *lexer) readLiteralString() (token, bool) {
	l.pos++ // skip '('
	depth := 1
	var out []byte
	for l.pos < len(l.b) && depth > 0 {
		c := l.b[l.pos]
		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth > 0 {
				out = append(out, c)
			}
		case '\\':
			l.pos++
			if l.pos < len(l.b) {
				out = append(out, l.b[l.pos])
			}
		default:
			out = append(out, c)
		}
		l.pos++
	}
	return token{str: string(out)}, true
}

func (l *lexer) readHexString() (token, bool) {
	l.pos++ // skip '<'
	start := l.pos
	for l.pos < len(l.b) && l.b[l.pos] != '>' {
		l.pos++
	}
	hex := string(l.b[start:l.pos])
	l.pos++ // skip '>'
	var out []byte
	for i := 0; i+1 < len(hex); i += 2 {
		var v byte
		for _, c := range hex[i : i+2] {
			v <<= 4
			v |= hexVal(byte(c))
		}
		out = append(out, v)
	}
	return token{str: string(out)}, true
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

func (l *lexer) readArray() (token, bool) {
	l.pos++ // skip '['
	var elems []token
	for {
		l.skipSpace()
		if l.pos >= len(l.b) || l.b[l.pos] == ']' {
			l.pos++
			break
		}
		t, ok := l.next()
		if !ok {
			break
		}
		elems = append(elems, t)
	}
	return token{arr: elems}, true
}

func (l *lexer) skipDict() (token, bool) {
	depth := 0
	for l.pos < len(l.b) {
		if l.pos+1 < len(l.b) && l.b[l.pos] == '<' && l.b[l.pos+1] == '<' {
			depth++
			l.pos += 2
			continue
		}
		if l.pos+1 < len(l.b) && l.b[l.pos] == '>' && l.b[l.pos+1] == '>' {
			depth--
			l.pos += 2
			if depth == 0 {
				break
			}
			continue
		}
		l.pos++
	}
	return l.next()
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0, '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	default:
		return false
	}
}
