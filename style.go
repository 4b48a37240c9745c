package flatten

import (
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var fillBytes = []byte("fill")

// cssFill extracts the value of the first fill declaration from an inline
// style declaration list, lowercased and with whitespace removed. It returns
// the empty string when no fill is declared or when the declarations fail to
// parse; a single shape with a broken style must not abort the pipeline.
func cssFill(style string) string {
	if style == "" {
		return ""
	}
	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			// either the end of the declarations or a parse error,
			// in both cases no fill was found
			return ""
		} else if gt == css.DeclarationGrammar && parse.EqualFold(data, fillBytes) {
			var val []byte
			for _, t := range p.Values() {
				if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
					continue
				}
				val = append(val, t.Data...)
			}
			return string(parse.ToLower(val))
		}
	}
}

// normalizeFill lowercases a fill value and strips all whitespace, so that
// skip-set membership is an exact string comparison.
func normalizeFill(fill string) string {
	fill = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, fill)
	return strings.ToLower(fill)
}
