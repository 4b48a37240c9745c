// Package flatten converts an SVG document with multiple, possibly
// overlapping filled shapes into a document with a single path covering the
// union of the selected shape outlines. Shapes whose fill is in a
// configurable skip-set (white and non-rendering fills by default) are left
// out of the union, so that a background rectangle does not swallow the
// actual artwork.
package flatten

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/tdewolff/flatten/pathops"
)

// DefaultSkipFills is the default skip-set: shapes with these fills do not
// participate in the union. All entries are normalized (lowercase, no
// whitespace). A caller-supplied set replaces this list entirely.
var DefaultSkipFills = []string{
	"white",
	"rgb(255,255,255)",
	"rgb(100%,100%,100%)",
	"rgba(255,255,255,1)",
	"hsl(0,0%,100%)",
	"hsla(0,0%,100%,1)",
	"transparent",
	"rgba(0,0,0,0)",
	"hsla(0,0%,0%,0)",
	"#ffffff",
	"none",
}

// whiteFills are the literal white-family fills that KeepWhite rescues from
// the skip-set. Non-rendering fills such as transparent and none are never
// rescued by the flag.
var whiteFills = map[string]bool{
	"white":               true,
	"#ffffff":             true,
	"#fff":                true,
	"rgb(255,255,255)":    true,
	"rgb(100%,100%,100%)": true,
	"rgba(255,255,255,1)": true,
	"hsl(0,0%,100%)":      true,
	"hsla(0,0%,100%,1)":   true,
}

// Flattener flattens overlapping SVG shapes into one union outline.
type Flattener struct {
	Sequential bool     // fold shapes into the union one at a time instead of one batch call
	KeepWhite  bool     // keep shapes with a literal white-family fill
	SkipFills  []string // replaces DefaultSkipFills when non-nil
	Render     bool     // run the render-normalization pre-pass
	Simplify   bool     // resolve groups, inherited fills and transforms onto the shapes
	Renderer   Renderer // overrides the default render-normalization pass

	// Progress is an optional per-run diagnostic sink; it only observes and
	// never affects control flow.
	Progress *log.Logger
}

// New returns a Flattener with the default configuration.
func New() *Flattener {
	return &Flattener{
		Render:   true,
		Simplify: true,
	}
}

func (f *Flattener) progress(format string, args ...interface{}) {
	if f.Progress != nil {
		f.Progress.Printf(format, args...)
	}
}

// Flatten reads one SVG document from r and writes the flattened document
// to w.
func (f *Flattener) Flatten(w io.Writer, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return &Error{Kind: ErrInputNotFound, Err: err}
	}
	res, err := f.Bytes(b)
	if err != nil {
		return err
	}
	if _, err := w.Write(res); err != nil {
		return &Error{Kind: ErrOutputWrite, Err: err}
	}
	return nil
}

// String flattens an SVG document given as a string.
func (f *Flattener) String(svg string) (string, error) {
	b, err := f.Bytes([]byte(svg))
	return string(b), err
}

// Bytes flattens an SVG document given as a byte slice.
func (f *Flattener) Bytes(svg []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, &Error{Kind: ErrMalformedXML, Err: err}
	} else if doc.Root() == nil {
		return nil, &Error{Kind: ErrMalformedXML, Err: errors.New("no root element")}
	}
	sanitizeClipPaths(doc)

	if f.Render {
		rend := f.Renderer
		if rend == nil {
			rend = renderer{}
		}
		f.progress("normalizing rendering")
		src, err := doc.WriteToBytes()
		if err != nil {
			return nil, &Error{Kind: ErrNormalization, Err: err}
		}
		res, err := rend.Normalize(src)
		if err != nil {
			return nil, &Error{Kind: ErrNormalization, Err: err}
		}
		doc = etree.NewDocument()
		if err := doc.ReadFromBytes(res); err != nil {
			return nil, &Error{Kind: ErrNormalization, Err: err}
		} else if doc.Root() == nil {
			return nil, &Error{Kind: ErrNormalization, Err: errors.New("renderer returned no root element")}
		}
	}

	f.progress("converting shapes")
	shapes, err := f.extractShapes(doc)
	if err != nil {
		return nil, &Error{Kind: ErrNormalization, Err: err}
	}
	survivors := f.filter(shapes)
	f.progress("%d of %d shapes participate in the union", len(survivors), len(shapes))

	union, err := f.compose(survivors)
	if err != nil {
		return nil, err
	}
	var d string
	if union != nil {
		if d, err = pathops.ToPathData(union); err != nil {
			return nil, &Error{Kind: ErrPathReconstruction, Err: err}
		}
	}

	out, err := rebuild(doc.Root(), d).WriteToBytes()
	if err != nil {
		return nil, &Error{Kind: ErrOutputWrite, Err: err}
	}
	return out, nil
}

// FlattenFile reads the SVG document at input, flattens it and writes the
// result to output, creating parent directories as needed.
func (f *Flattener) FlattenFile(input, output string) error {
	if input == "" {
		return &Error{Kind: ErrInputEmptyPath}
	}
	info, err := os.Stat(input)
	if err != nil {
		return &Error{Kind: ErrInputNotFound, Err: err}
	} else if !info.Mode().IsRegular() {
		return &Error{Kind: ErrInputNotAFile}
	}
	f.progress("reading %s", input)
	b, err := os.ReadFile(input)
	if err != nil {
		return &Error{Kind: ErrInputNotFound, Err: err}
	}
	res, err := f.Bytes(b)
	if err != nil {
		return err
	}
	if output == "" {
		return &Error{Kind: ErrOutputWrite, Err: errors.New("empty output path")}
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return &Error{Kind: ErrOutputWrite, Err: err}
		}
	}
	f.progress("saving %s", output)
	if err := os.WriteFile(output, res, 0666); err != nil {
		return &Error{Kind: ErrOutputWrite, Err: err}
	}
	return nil
}

// filter returns the ordered sub-sequence of shapes that participate in the
// union: a shape is excluded iff its effective fill is in the skip-set and
// not rescued by KeepWhite.
func (f *Flattener) filter(shapes []Shape) []Shape {
	skipList := f.SkipFills
	if skipList == nil {
		skipList = DefaultSkipFills
	}
	skip := make(map[string]bool, len(skipList))
	for _, fill := range skipList {
		skip[normalizeFill(fill)] = true
	}

	var keep []Shape
	for _, s := range shapes {
		fill := s.effectiveFill()
		if skip[fill] && !(f.KeepWhite && whiteFills[fill]) {
			continue
		}
		keep = append(keep, s)
	}
	return keep
}
