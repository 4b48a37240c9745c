// Package pathops adapts the canvas path boolean operations into the union
// primitive this pipeline consumes: union(paths, fillRules) -> path. The
// engine is treated as an external collaborator; its panics surface as
// errors, never as crashes.
package pathops

import (
	"errors"
	"fmt"

	"github.com/tdewolff/canvas"
)

// ErrTooFewOperands is returned when Union is invoked with fewer than two
// paths; the caller handles the zero and one operand cases itself.
var ErrTooFewOperands = errors.New("union needs two or more operands")

// Union returns the outline of the combined coverage of all paths, each
// interpreted under its own fill rule. The result carries consistent
// winding: filling contours counter clockwise, holes clockwise.
func Union(ps []*canvas.Path, fillRules []canvas.FillRule) (res *canvas.Path, err error) {
	if len(ps) < 2 {
		return nil, ErrTooFewOperands
	} else if len(fillRules) != len(ps) {
		return nil, fmt.Errorf("got %d fill rules for %d paths", len(fillRules), len(ps))
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("union: %v", r)
		}
	}()

	// settling each operand under its fill rule first makes all windings
	// consistent, after which the nonzero evaluation of the compound path
	// is exactly the n-way union of the coverages
	compound := &canvas.Path{}
	for i, p := range ps {
		compound = compound.Append(p.Settle(fillRules[i]))
	}
	return compound.Settle(canvas.NonZero), nil
}

// ToPathData serializes an outline to SVG path data.
func ToPathData(p *canvas.Path) (d string, err error) {
	if p == nil {
		return "", errors.New("nil path")
	}
	defer func() {
		if r := recover(); r != nil {
			d, err = "", fmt.Errorf("path data: %v", r)
		}
	}()
	return p.ToSVG(), nil
}
