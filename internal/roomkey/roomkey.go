// Package roomkey derives canonical room keys from user-supplied tokens.
package roomkey

// Separator joins the two sorted tokens of a room key.
const Separator = "_"

// Build derives the canonical room key from two free-text tokens.
// The tokens are sorted lexicographically before joining, so the key is
// independent of argument order: Build(a, b) == Build(b, a).
//
// Tokens are taken verbatim; empty or oddly shaped tokens produce the
// corresponding key without complaint.
func Build(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + Separator + b
}
