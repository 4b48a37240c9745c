package flatten

import (
	strconvStdlib "strconv"

	"github.com/beevik/etree"
	"github.com/tdewolff/parse/v2/strconv"
)

// Namespace is the canonical SVG namespace carried by every rebuilt document.
const Namespace = "http://www.w3.org/2000/svg"

// ViewBox holds the four bounds of an SVG viewBox attribute.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// parseViewBox parses a viewBox attribute. The second return value is false
// when the attribute does not hold exactly four numbers.
func parseViewBox(s string) (ViewBox, bool) {
	b := []byte(s)
	var nums []float64
	for i := 0; i < len(b); {
		if isPointSep(b[i]) {
			i++
			continue
		}
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 || 4 <= len(nums) {
			return ViewBox{}, false
		}
		nums = append(nums, f)
		i += n
	}
	if len(nums) != 4 {
		return ViewBox{}, false
	}
	return ViewBox{nums[0], nums[1], nums[2], nums[3]}, true
}

func (v ViewBox) String() string {
	return formatFloat(v.MinX) + " " + formatFloat(v.MinY) + " " + formatFloat(v.Width) + " " + formatFloat(v.Height)
}

func formatFloat(f float64) string {
	return strconvStdlib.FormatFloat(f, 'f', -1, 64)
}

// rebuild synthesizes the output document: a fresh svg root carrying the
// canonical namespace, the original root attributes, the view-box when
// present, and one path child holding the unioned outline, or no child at
// all when the union is empty.
func rebuild(src *etree.Element, d string) *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", Namespace)
	for _, a := range src.Attr {
		if a.Space == "" && a.Key == "xmlns" {
			continue // the canonical namespace wins over a copied duplicate
		}
		key := a.Key
		if a.Space != "" {
			key = a.Space + ":" + a.Key
		}
		value := a.Value
		if key == "viewBox" {
			if vb, ok := parseViewBox(value); ok {
				value = vb.String()
			}
		}
		root.CreateAttr(key, value)
	}
	if d != "" {
		path := root.CreateElement("path")
		path.CreateAttr("d", d)
	}
	doc.Indent(2)
	return doc
}
