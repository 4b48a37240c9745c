package flatten

import (
	"errors"

	"github.com/beevik/etree"
)

// Renderer is the optional render-normalization collaborator: it rewrites
// exotic SVG constructs into plain path data before shape extraction. The
// input and output are both complete SVG documents.
type Renderer interface {
	Normalize(svg []byte) ([]byte, error)
}

// maximum depth when expanding nested use references, guards against cycles
const maxUseDepth = 16

var droppedTags = map[string]bool{
	"text":          true,
	"image":         true,
	"script":        true,
	"style":         true,
	"foreignObject": true,
	"metadata":      true,
	"title":         true,
	"desc":          true,
}

// renderer is the default render-normalization pass: it resolves use
// references, rewrites basic shapes into path elements and drops content
// that cannot contribute outline geometry.
type renderer struct{}

func (renderer) Normalize(svg []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("no root element")
	}

	ids := map[string]*etree.Element{}
	collectIDs(root, ids)
	resolveUses(root, ids, 0)
	if err := inlineShapes(root); err != nil {
		return nil, err
	}
	dropNonDrawables(root)
	return doc.WriteToBytes()
}

func collectIDs(e *etree.Element, ids map[string]*etree.Element) {
	if id := e.SelectAttrValue("id", ""); id != "" {
		ids[id] = e
	}
	for _, c := range e.ChildElements() {
		collectIDs(c, ids)
	}
}

// resolveUses rewrites every use element into a group holding a copy of the
// referenced element, translated by the use's x and y.
func resolveUses(e *etree.Element, ids map[string]*etree.Element, depth int) {
	for _, c := range e.ChildElements() {
		if c.Tag != "use" {
			resolveUses(c, ids, depth)
			continue
		}
		href := c.SelectAttrValue("href", "")
		if href == "" {
			href = c.SelectAttrValue("xlink:href", "")
		}
		var target *etree.Element
		if 1 < len(href) && href[0] == '#' {
			target = ids[href[1:]]
		}
		if target == nil || maxUseDepth <= depth {
			e.RemoveChild(c)
			continue
		}

		x, y := attrFloat(c, "x"), attrFloat(c, "y")
		c.Tag = "g"
		for _, key := range []string{"href", "xlink:href", "x", "y", "width", "height"} {
			c.RemoveAttr(key)
		}
		if x != 0.0 || y != 0.0 {
			c.CreateAttr("transform", "translate("+formatFloat(x)+" "+formatFloat(y)+")")
		}
		copied := target.Copy()
		copied.RemoveAttr("id")
		c.AddChild(copied)
		resolveUses(c, ids, depth+1)
	}
}

// inlineShapes rewrites rect, circle, ellipse, line, polyline and polygon
// elements into equivalent path elements. Zero-sized shapes are removed.
func inlineShapes(e *etree.Element) error {
	for _, c := range e.ChildElements() {
		switch c.Tag {
		case "rect", "circle", "ellipse", "line", "polyline", "polygon":
			p, err := elementPath(c)
			if err != nil {
				return err
			} else if p == nil {
				e.RemoveChild(c)
				continue
			}
			c.Tag = "path"
			for _, key := range []string{"x", "y", "width", "height", "rx", "ry", "cx", "cy", "r", "x1", "y1", "x2", "y2", "points"} {
				c.RemoveAttr(key)
			}
			c.CreateAttr("d", p.ToSVG())
		default:
			if err := inlineShapes(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func dropNonDrawables(e *etree.Element) {
	for _, c := range e.ChildElements() {
		if droppedTags[c.Tag] {
			e.RemoveChild(c)
		} else {
			dropNonDrawables(c)
		}
	}
}
