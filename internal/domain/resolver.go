package domain

import "strings"

// PathSeparator splits field paths into traversal segments.
const PathSeparator = "."

// Resolve walks a dot-separated field path through a document value
// tree. It returns the resolved value and true when every segment
// traversed a keyed mapping, or nil and false when resolution failed at
// any segment.
//
// Traversal rules:
//   - At each segment the current value must be a map[string]any; a
//     list, scalar, nil, or absent key terminates resolution as missing.
//     Lists are never indexed by numeric segment, they are leaf values
//     consumed whole by collection operators.
//   - A present key holding an explicit nil resolves as found with a
//     nil value. Present-but-nil and truly absent are never conflated
//     here; operators such as $exists decide how to treat each.
func Resolve(document any, path string) (any, bool) {
	current := document
	for _, segment := range strings.Split(path, PathSeparator) {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, present := node[segment]
		if !present {
			return nil, false
		}
		current = value
	}
	return current, true
}
