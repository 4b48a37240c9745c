package flatten

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/tdewolff/test"
)

func normalizeString(t *testing.T, s string) *etree.Element {
	t.Helper()
	out, err := renderer{}.Normalize([]byte(s))
	test.Error(t, err)
	doc := etree.NewDocument()
	test.Error(t, doc.ReadFromBytes(out))
	return doc.Root()
}

func TestRendererInlineShapes(t *testing.T) {
	root := normalizeString(t, `<svg xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="5"/><rect width="0" height="5"/></svg>`)
	children := root.ChildElements()
	test.T(t, len(children), 1)
	test.String(t, children[0].Tag, "path")
	test.That(t, children[0].SelectAttrValue("d", "") != "")
	test.String(t, children[0].SelectAttrValue("cx", ""), "")
}

func TestRendererDropsNonDrawables(t *testing.T) {
	root := normalizeString(t, `<svg xmlns="http://www.w3.org/2000/svg"><title>icon</title><text>hi</text><script>1</script><path d="M0 0H5V5z"/></svg>`)
	children := root.ChildElements()
	test.T(t, len(children), 1)
	test.String(t, children[0].Tag, "path")
}

func TestRendererResolvesUse(t *testing.T) {
	root := normalizeString(t, `<svg xmlns="http://www.w3.org/2000/svg"><rect id="r" width="10" height="10"/><use href="#r" x="5" fill="red"/></svg>`)
	children := root.ChildElements()
	test.T(t, len(children), 2)

	g := children[1]
	test.String(t, g.Tag, "g")
	test.String(t, g.SelectAttrValue("transform", ""), "translate(5 0)")
	test.String(t, g.SelectAttrValue("fill", ""), "red")
	test.String(t, g.SelectAttrValue("href", ""), "")

	inner := g.ChildElements()
	test.T(t, len(inner), 1)
	test.String(t, inner[0].Tag, "path")
	test.String(t, inner[0].SelectAttrValue("id", ""), "")
}

func TestRendererRemovesBrokenUse(t *testing.T) {
	root := normalizeString(t, `<svg xmlns="http://www.w3.org/2000/svg"><use href="#missing"/><use/></svg>`)
	test.T(t, len(root.ChildElements()), 0)
}

func TestRendererUseCycle(t *testing.T) {
	// a self-referencing use must terminate at the depth guard
	root := normalizeString(t, `<svg xmlns="http://www.w3.org/2000/svg"><g id="a"><use href="#a"/></g></svg>`)
	test.That(t, root != nil)
}

func TestRendererMalformed(t *testing.T) {
	_, err := renderer{}.Normalize([]byte(`<svg><rect`))
	test.That(t, err != nil)
}
