package flatten

import (
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/flatten/pathops"
)

// compose combines the surviving shapes into one outline. It returns nil
// when no shape survived; the rebuilder then emits a shape-less document.
// A single shape is its own union and bypasses the engine in both modes.
func (f *Flattener) compose(shapes []Shape) (*canvas.Path, error) {
	if len(shapes) == 0 {
		return nil, nil
	} else if len(shapes) == 1 {
		return shapes[0].Path, nil
	}

	if f.Sequential {
		acc := shapes[0].Path
		for i, s := range shapes[1:] {
			res, err := pathops.Union(
				[]*canvas.Path{acc, s.Path},
				[]canvas.FillRule{canvas.NonZero, canvas.NonZero},
			)
			if err != nil {
				return nil, &Error{Kind: ErrGeometry, Call: i + 1, Err: err}
			}
			acc = res
			f.progress("removing overlaps %d/%d", i+1, len(shapes)-1)
		}
		return acc, nil
	}

	ps := make([]*canvas.Path, len(shapes))
	rules := make([]canvas.FillRule, len(shapes))
	for i, s := range shapes {
		ps[i] = s.Path
		rules[i] = canvas.NonZero
	}
	f.progress("removing overlaps")
	res, err := pathops.Union(ps, rules)
	if err != nil {
		return nil, &Error{Kind: ErrGeometry, Err: err}
	}
	return res, nil
}
