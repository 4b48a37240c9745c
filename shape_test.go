package flatten

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/test"
)

func parseElement(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	err := doc.ReadFromString(s)
	test.Error(t, err)
	return doc.Root()
}

func TestEffectiveFill(t *testing.T) {
	tests := []struct {
		shape Shape
		fill  string
	}{
		{Shape{Style: "fill:red", Fill: "blue"}, "red"},
		{Shape{Fill: " Blue "}, "blue"},
		{Shape{Style: "stroke:black", Fill: "none"}, "none"},
		{Shape{}, ""},
	}
	for _, tt := range tests {
		test.String(t, tt.shape.effectiveFill(), tt.fill)
	}
}

func TestElementPath(t *testing.T) {
	tests := []struct {
		svg string
		d   string
	}{
		{`<path d="M0 0L10 0L10 10z"/>`, "M0 0H10V10z"},
		{`<rect x="1" y="2" width="10" height="5"/>`, "M1 2H11V7H1z"},
		{`<rect width="10px" height="5px"/>`, "M0 0H10V5H0z"},
		{`<line x1="0" y1="0" x2="10" y2="5"/>`, "M0 0L10 5"},
		{`<polygon points="0,0 10,0 10,10"/>`, "M0 0H10V10z"},
		{`<polyline points="0,0 10,0 10,10"/>`, "M0 0H10V10"},
	}
	for _, tt := range tests {
		t.Run(tt.svg, func(t *testing.T) {
			p, err := elementPath(parseElement(t, tt.svg))
			test.Error(t, err)
			test.String(t, p.ToSVG(), tt.d)
		})
	}
}

func TestElementPathEmpty(t *testing.T) {
	tests := []string{
		`<path/>`,
		`<path d=""/>`,
		`<rect width="0" height="5"/>`,
		`<rect width="5"/>`,
		`<circle cx="5" cy="5"/>`,
		`<ellipse rx="3"/>`,
		`<polygon points="0,0"/>`,
		`<text>hi</text>`,
		`<defs/>`,
	}
	for _, svg := range tests {
		t.Run(svg, func(t *testing.T) {
			p, err := elementPath(parseElement(t, svg))
			test.Error(t, err)
			test.That(t, p == nil)
		})
	}
}

func TestElementPathEllipse(t *testing.T) {
	p, err := elementPath(parseElement(t, `<circle cx="5" cy="5" r="5"/>`))
	test.Error(t, err)
	test.T(t, p, ellipsePath(5, 5, 5, 5))

	p, err = elementPath(parseElement(t, `<ellipse cx="1" cy="2" rx="3" ry="4"/>`))
	test.Error(t, err)
	test.T(t, p, ellipsePath(1, 2, 3, 4))
}

func TestElementPathRoundedRect(t *testing.T) {
	p, err := elementPath(parseElement(t, `<rect width="10" height="5" rx="1"/>`))
	test.Error(t, err)
	test.That(t, p != nil)
	test.T(t, strings.Count(p.ToSVG(), "A"), 4)
}

func TestElementPathBad(t *testing.T) {
	_, err := elementPath(parseElement(t, `<path d="garbage"/>`))
	test.That(t, err != nil)
}

func TestParsePoints(t *testing.T) {
	test.T(t, parsePoints("0,0 10,0 10,10"), []float64{0.0, 0.0, 10.0, 0.0, 10.0, 10.0})
	test.T(t, parsePoints(" 1 2 ,, 3 "), []float64{1.0, 2.0, 3.0})
	test.That(t, parsePoints("") == nil)
	test.That(t, parsePoints("a b") == nil)
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		transform string
		m         canvas.Matrix
	}{
		{"translate(3 4)", canvas.Identity.Translate(3.0, 4.0)},
		{"translate(3)", canvas.Identity.Translate(3.0, 0.0)},
		{"matrix(1 0 0 1 5 6)", canvas.Identity.Mul(canvas.Matrix{{1.0, 0.0, 5.0}, {0.0, 1.0, 6.0}})},
		{"scale(2)", canvas.Identity.Scale(2.0, 2.0)},
		{"scale(2,3)", canvas.Identity.Scale(2.0, 3.0)},
		{"rotate(90)", canvas.Identity.Rotate(90.0)},
		{"rotate(90 1 2)", canvas.Identity.Translate(1.0, 2.0).Rotate(90.0).Translate(-1.0, -2.0)},
		{"translate(1 2) scale(3 4)", canvas.Identity.Translate(1.0, 2.0).Scale(3.0, 4.0)},
	}
	for _, tt := range tests {
		t.Run(tt.transform, func(t *testing.T) {
			m, err := parseTransform(tt.transform)
			test.Error(t, err)
			test.T(t, m, tt.m)
		})
	}
}

func TestParseTransformBad(t *testing.T) {
	tests := []string{
		"spin(1)",
		"matrix(1 2 3)",
		"translate(",
		"translate(a)",
		"translate",
	}
	for _, transform := range tests {
		t.Run(transform, func(t *testing.T) {
			_, err := parseTransform(transform)
			test.That(t, err != nil)
		})
	}
}

func TestExtractShapes(t *testing.T) {
	doc := etree.NewDocument()
	err := doc.ReadFromString(`<svg xmlns="http://www.w3.org/2000/svg">
  <g fill="red" transform="translate(10 0)">
    <rect width="10" height="10"/>
  </g>
  <rect fill="blue" width="5" height="5"/>
</svg>`)
	test.Error(t, err)

	f := New()
	shapes, err := f.extractShapes(doc)
	test.Error(t, err)
	test.T(t, len(shapes), 2)
	test.String(t, shapes[0].Fill, "red")
	test.String(t, shapes[0].Path.ToSVG(), "M10 0H20V10H10z")
	test.String(t, shapes[1].Fill, "blue")
	test.String(t, shapes[1].Path.ToSVG(), "M0 0H5V5H0z")
}

func TestExtractShapesStyleFill(t *testing.T) {
	// a fill declared in a group's style attribute is inherited like a
	// fill attribute, and wins over one
	doc := etree.NewDocument()
	err := doc.ReadFromString(`<svg xmlns="http://www.w3.org/2000/svg">
  <g style="fill:white" fill="red">
    <rect width="10" height="10"/>
  </g>
  <g fill="red">
    <rect style="fill:blue" x="20" width="10" height="10"/>
  </g>
</svg>`)
	test.Error(t, err)

	f := New()
	shapes, err := f.extractShapes(doc)
	test.Error(t, err)
	test.T(t, len(shapes), 2)
	test.String(t, shapes[0].effectiveFill(), "white")
	test.String(t, shapes[1].effectiveFill(), "blue")
}

func TestExtractShapesNoSimplify(t *testing.T) {
	doc := etree.NewDocument()
	err := doc.ReadFromString(`<svg xmlns="http://www.w3.org/2000/svg">
  <g fill="red" transform="translate(10 0)">
    <rect width="10" height="10"/>
  </g>
</svg>`)
	test.Error(t, err)

	f := New()
	f.Simplify = false
	shapes, err := f.extractShapes(doc)
	test.Error(t, err)
	test.T(t, len(shapes), 1)
	test.String(t, shapes[0].Fill, "")
	test.String(t, shapes[0].Path.ToSVG(), "M0 0H10V10H0z")
}
