package fst

import (
	"fmt"
	"strings"
)

// debugPreviewLimit bounds how many leading keys DebugString renders, so
// printing a Set/Map never materializes an arbitrarily large key list.
const debugPreviewLimit = 3

// DebugString renders a short, human-readable summary of an opened image:
// its kind, key count, and a bounded preview of its first few keys, never
// the full key list (which may be arbitrarily large). Grounded on
// coregx-coregex's dfa/lazy State.String debug convention.
func DebugString(r *Reader) string {
	kind := "set"
	if r.IsMap() {
		kind = "map"
	}
	preview, more := previewKeys(r)
	if len(preview) == 0 {
		return fmt.Sprintf("fst.%s{keys=%d}", kind, r.Len())
	}
	suffix := ""
	if more {
		suffix = ", ..."
	}
	return fmt.Sprintf("fst.%s{keys=%d, first=[%s]%s}", kind, r.Len(), strings.Join(preview, " "), suffix)
}

func previewKeys(r *Reader) (keys []string, more bool) {
	st := newStream(r, streamOptions{})
	for len(keys) < debugPreviewLimit {
		k, _, ok, err := st.next()
		if err != nil || !ok {
			return keys, false
		}
		keys = append(keys, fmt.Sprintf("%q", k))
	}
	_, _, ok, err := st.next()
	return keys, err == nil && ok
}
