package flatten

import (
	"fmt"
	"math"
	"strings"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/parse/v2/strconv"
)

// Shape is one path-like drawing primitive extracted from the document, an
// immutable snapshot produced by normalization. Style holds the raw style
// attribute and Fill the raw fill presentation attribute.
type Shape struct {
	Path  *canvas.Path
	Style string
	Fill  string
}

// effectiveFill resolves the fill used for skip-set classification: a fill
// declared in the style attribute takes precedence, the fill presentation
// attribute is the fallback.
func (s *Shape) effectiveFill() string {
	if fill := cssFill(s.Style); fill != "" {
		return fill
	}
	return normalizeFill(s.Fill)
}

var containerTags = map[string]bool{
	"svg":    true,
	"g":      true,
	"a":      true,
	"switch": true,
}

// extractShapes returns the document's shapes in document order. In Simplify
// mode ancestor fills are pushed down onto the shapes and ancestor transforms
// are applied to their geometry; otherwise elements are used as parsed.
func (f *Flattener) extractShapes(doc *etree.Document) ([]Shape, error) {
	var shapes []Shape
	if err := f.walkShapes(doc.Root(), "", canvas.Identity, &shapes); err != nil {
		return nil, err
	}
	return shapes, nil
}

func (f *Flattener) walkShapes(e *etree.Element, fill string, m canvas.Matrix, shapes *[]Shape) error {
	if f.Simplify {
		// a style-declared fill wins over the fill attribute, the same
		// precedence effectiveFill uses on the shape itself
		if v := cssFill(e.SelectAttrValue("style", "")); v != "" {
			fill = v
		} else if v := e.SelectAttrValue("fill", ""); v != "" {
			fill = v
		}
		if t := e.SelectAttrValue("transform", ""); t != "" {
			tm, err := parseTransform(t)
			if err != nil {
				return err
			}
			m = m.Mul(tm)
		}
	}
	if containerTags[e.Tag] {
		for _, c := range e.ChildElements() {
			if err := f.walkShapes(c, fill, m, shapes); err != nil {
				return err
			}
		}
		return nil
	}

	p, err := elementPath(e)
	if err != nil {
		return err
	} else if p == nil {
		return nil
	}
	shapeFill := e.SelectAttrValue("fill", "")
	if f.Simplify {
		shapeFill = fill // includes the element's own fill when set
		if m != canvas.Identity {
			p = p.Transform(m)
		}
	}
	*shapes = append(*shapes, Shape{
		Path:  p,
		Style: e.SelectAttrValue("style", ""),
		Fill:  shapeFill,
	})
	return nil
}

// elementPath converts a drawable element to its outline. It returns nil
// without an error for elements that draw nothing: non-drawable tags,
// zero-sized shapes and paths without data.
func elementPath(e *etree.Element) (*canvas.Path, error) {
	switch e.Tag {
	case "path":
		d := e.SelectAttrValue("d", "")
		if d == "" {
			return nil, nil
		}
		p, err := canvas.ParseSVGPath(d)
		if err != nil {
			return nil, fmt.Errorf("path data: %w", err)
		}
		return p, nil
	case "rect":
		x, y := attrFloat(e, "x"), attrFloat(e, "y")
		w, h := attrFloat(e, "width"), attrFloat(e, "height")
		if w <= 0.0 || h <= 0.0 {
			return nil, nil
		}
		rx, ry := attrFloat(e, "rx"), attrFloat(e, "ry")
		if rx <= 0.0 {
			rx = ry
		} else if ry <= 0.0 {
			ry = rx
		}
		if w/2.0 < rx {
			rx = w / 2.0
		}
		if h/2.0 < ry {
			ry = h / 2.0
		}
		p := &canvas.Path{}
		if rx <= 0.0 || ry <= 0.0 {
			p.MoveTo(x, y)
			p.LineTo(x+w, y)
			p.LineTo(x+w, y+h)
			p.LineTo(x, y+h)
			p.Close()
			return p, nil
		}
		p.MoveTo(x+rx, y)
		p.LineTo(x+w-rx, y)
		p.ArcTo(rx, ry, 0.0, false, true, x+w, y+ry)
		p.LineTo(x+w, y+h-ry)
		p.ArcTo(rx, ry, 0.0, false, true, x+w-rx, y+h)
		p.LineTo(x+rx, y+h)
		p.ArcTo(rx, ry, 0.0, false, true, x, y+h-ry)
		p.LineTo(x, y+ry)
		p.ArcTo(rx, ry, 0.0, false, true, x+rx, y)
		p.Close()
		return p, nil
	case "circle":
		cx, cy, r := attrFloat(e, "cx"), attrFloat(e, "cy"), attrFloat(e, "r")
		if r <= 0.0 {
			return nil, nil
		}
		return ellipsePath(cx, cy, r, r), nil
	case "ellipse":
		cx, cy := attrFloat(e, "cx"), attrFloat(e, "cy")
		rx, ry := attrFloat(e, "rx"), attrFloat(e, "ry")
		if rx <= 0.0 || ry <= 0.0 {
			return nil, nil
		}
		return ellipsePath(cx, cy, rx, ry), nil
	case "line":
		p := &canvas.Path{}
		p.MoveTo(attrFloat(e, "x1"), attrFloat(e, "y1"))
		p.LineTo(attrFloat(e, "x2"), attrFloat(e, "y2"))
		return p, nil
	case "polyline", "polygon":
		pts := parsePoints(e.SelectAttrValue("points", ""))
		if len(pts) < 4 {
			return nil, nil
		}
		p := &canvas.Path{}
		p.MoveTo(pts[0], pts[1])
		for i := 2; i+1 < len(pts); i += 2 {
			p.LineTo(pts[i], pts[i+1])
		}
		if e.Tag == "polygon" {
			p.Close()
		}
		return p, nil
	}
	return nil, nil
}

func ellipsePath(cx, cy, rx, ry float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(cx+rx, cy)
	p.ArcTo(rx, ry, 0.0, false, true, cx-rx, cy)
	p.ArcTo(rx, ry, 0.0, false, true, cx+rx, cy)
	p.Close()
	return p
}

// attrFloat parses a numeric attribute, ignoring a trailing unit. Absent or
// unparsable attributes yield zero.
func attrFloat(e *etree.Element, key string) float64 {
	v := strings.TrimSpace(e.SelectAttrValue(key, ""))
	if v == "" {
		return 0.0
	}
	f, n := strconv.ParseFloat([]byte(v))
	if n == 0 {
		return 0.0
	}
	return f
}

// parsePoints parses a points attribute into a flat list of coordinates.
func parsePoints(s string) []float64 {
	b := []byte(s)
	var pts []float64
	for i := 0; i < len(b); {
		if isPointSep(b[i]) {
			i++
			continue
		}
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			break
		}
		pts = append(pts, f)
		i += n
	}
	return pts
}

func isPointSep(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

// parseTransform parses an SVG transform list into a single matrix.
func parseTransform(s string) (canvas.Matrix, error) {
	m := canvas.Identity
	b := []byte(s)
	i := 0
	for {
		for i < len(b) && isPointSep(b[i]) {
			i++
		}
		if i == len(b) {
			break
		}
		start := i
		for i < len(b) && b[i] != '(' {
			i++
		}
		if i == len(b) {
			return m, fmt.Errorf("bad transform %q", s)
		}
		name := strings.ToLower(strings.TrimSpace(string(b[start:i])))
		i++ // consume (
		var args []float64
		for i < len(b) && b[i] != ')' {
			if isPointSep(b[i]) {
				i++
				continue
			}
			f, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				return m, fmt.Errorf("bad transform %q", s)
			}
			args = append(args, f)
			i += n
		}
		if i == len(b) {
			return m, fmt.Errorf("bad transform %q", s)
		}
		i++ // consume )

		switch name {
		case "matrix":
			if len(args) != 6 {
				return m, fmt.Errorf("transform matrix needs 6 numbers")
			}
			m = m.Mul(canvas.Matrix{
				{args[0], args[2], args[4]},
				{args[1], args[3], args[5]},
			})
		case "translate":
			if len(args) == 1 {
				args = append(args, 0.0)
			}
			if len(args) != 2 {
				return m, fmt.Errorf("transform translate needs 1 or 2 numbers")
			}
			m = m.Translate(args[0], args[1])
		case "scale":
			if len(args) == 1 {
				args = append(args, args[0])
			}
			if len(args) != 2 {
				return m, fmt.Errorf("transform scale needs 1 or 2 numbers")
			}
			m = m.Scale(args[0], args[1])
		case "rotate":
			if len(args) == 1 {
				m = m.Rotate(args[0])
			} else if len(args) == 3 {
				m = m.Translate(args[1], args[2]).Rotate(args[0]).Translate(-args[1], -args[2])
			} else {
				return m, fmt.Errorf("transform rotate needs 1 or 3 numbers")
			}
		case "skewx":
			if len(args) != 1 {
				return m, fmt.Errorf("transform skewX needs 1 number")
			}
			m = m.Shear(math.Tan(args[0]*math.Pi/180.0), 0.0)
		case "skewy":
			if len(args) != 1 {
				return m, fmt.Errorf("transform skewY needs 1 number")
			}
			m = m.Shear(0.0, math.Tan(args[0]*math.Pi/180.0))
		default:
			return m, fmt.Errorf("unknown transform %q", name)
		}
	}
	return m, nil
}
