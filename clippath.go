package flatten

import (
	"github.com/beevik/etree"
)

var graphicalTags = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"line":     true,
	"polyline": true,
	"polygon":  true,
	"text":     true,
	"use":      true,
}

// sanitizeClipPaths neutralizes the fill of all graphical content inside
// clipPath definitions. Renderers used as a normalization pre-pass may paint
// clip-path content; a transparent fill prevents that without altering the
// clipping behavior, which only needs the outline.
func sanitizeClipPaths(doc *etree.Document) {
	if root := doc.Root(); root != nil {
		findClipPaths(root)
	}
}

func findClipPaths(e *etree.Element) {
	for _, c := range e.ChildElements() {
		if c.Tag == "clipPath" {
			neutralizeFills(c)
		} else {
			findClipPaths(c)
		}
	}
}

func neutralizeFills(e *etree.Element) {
	for _, c := range e.ChildElements() {
		if graphicalTags[c.Tag] {
			c.CreateAttr("fill", "transparent")
		}
		if containerTags[c.Tag] {
			neutralizeFills(c)
		}
	}
}
