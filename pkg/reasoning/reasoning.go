// Package reasoning cleans the accumulated reasoning text of a streamed
// completion before display.
//
// Reasoning tokens arrive over the wire with partial-word repeats ("resolu"
// then "resolução") and stuttered punctuation, so the cleaner collapses
// punctuation runs, drops consecutive duplicate tokens, and fuses tokens that
// overlap at either end. This is a deliberate heuristic: it does not remove
// all duplication, and it can occasionally fuse unrelated short tokens that
// happen to share a prefix or suffix.
package reasoning

import (
	"regexp"
	"strings"
)

var (
	dotRun      = regexp.MustCompile(`\.{2,}`)
	questionRun = regexp.MustCompile(`\?{2,}`)
)

// Clean normalizes and deduplicates reasoning text. It is pure and
// idempotent: Clean(Clean(s)) == Clean(s).
//
// Steps, in order:
//  1. Collapse runs of "." and "?" to a single mark (only these two).
//  2. Tokenize on whitespace.
//  3. Drop consecutive exact-duplicate tokens.
//  4. Fuse adjacent overlapping tokens, keeping the longer one.
//  5. Join with single spaces.
func Clean(text string) string {
	collapsed := dotRun.ReplaceAllString(text, ".")
	collapsed = questionRun.ReplaceAllString(collapsed, "?")

	tokens := strings.Fields(collapsed)

	deduped := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(deduped) > 0 && deduped[len(deduped)-1] == tok {
			continue
		}
		deduped = append(deduped, tok)
	}

	return strings.Join(fuseOverlaps(deduped), " ")
}

// fuseOverlaps scans left to right and merges each token with the last placed
// one when either is a prefix or suffix of the other (case-sensitive, exact).
// The longer token of the pair wins. When an incoming token absorbs the last
// placed one, it is re-checked against the new last element so a grown token
// can absorb its new neighbor too; this is what keeps Clean idempotent.
func fuseOverlaps(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		for len(out) > 0 && overlaps(out[len(out)-1], tok) {
			last := out[len(out)-1]
			if len(tok) < len(last) {
				// The placed token already covers the incoming one.
				tok = ""
				break
			}

			// The incoming token covers the placed one; replace and
			// re-check against the element before it.
			out = out[:len(out)-1]
		}

		if tok != "" {
			out = append(out, tok)
		}
	}

	return out
}

// overlaps reports whether the shorter of a and b sits at either end of the
// longer one.
func overlaps(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a) ||
		strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}
