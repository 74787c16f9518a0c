package oasloc

import "sort"

// Normalize applies the enabled structural normalizations to a copy of
// doc. Each step is a pure function of its input and independent of the
// others; with no options enabled the result is a plain deep copy.
func Normalize(doc *Node, opts NormalizeOptions) *Node {
	out := doc.Clone()
	if out == nil || out.Kind != KindMapping {
		return out
	}

	if opts.RemoveUnimplemented {
		removeUnimplemented(out)
	}
	if opts.SortPaths {
		sortPaths(out)
	}
	if opts.SortTags {
		sortTags(out)
	}
	return out
}

// sortPaths orders the path entries alphabetically by their literal
// route string.
func sortPaths(doc *Node) {
	paths := doc.Get("paths")
	if paths == nil || paths.Kind != KindMapping {
		return
	}
	sort.SliceStable(paths.Pairs, func(i, j int) bool {
		return paths.Pairs[i].Key < paths.Pairs[j].Key
	})
}

// sortTags orders the document's tag declarations by name and every
// operation's tag list alphabetically.
func sortTags(doc *Node) {
	if tags := doc.Get("tags"); tags != nil && tags.Kind == KindSequence {
		sort.SliceStable(tags.Items, func(i, j int) bool {
			return tagName(tags.Items[i]) < tagName(tags.Items[j])
		})
	}

	paths := doc.Get("paths")
	if paths == nil || paths.Kind != KindMapping {
		return
	}
	for _, route := range paths.Pairs {
		if route.Value.Kind != KindMapping {
			continue
		}
		for _, op := range route.Value.Pairs {
			if !httpMethods[op.Key] || op.Value.Kind != KindMapping {
				continue
			}
			list := op.Value.Get("tags")
			if list == nil || list.Kind != KindSequence {
				continue
			}
			sort.SliceStable(list.Items, func(i, j int) bool {
				return list.Items[i].Value < list.Items[j].Value
			})
		}
	}
}

func tagName(tag *Node) string {
	if tag.Kind == KindMapping {
		if name := tag.Get("name"); name != nil {
			return name.Value
		}
	}
	return tag.Value
}

// removeUnimplemented prunes every operation whose x-unimplemented
// marker is truthy. Path items left without operations are kept; they
// may still carry parameters or extensions.
func removeUnimplemented(doc *Node) {
	paths := doc.Get("paths")
	if paths == nil || paths.Kind != KindMapping {
		return
	}
	for _, route := range paths.Pairs {
		if route.Value.Kind != KindMapping {
			continue
		}
		kept := route.Value.Pairs[:0]
		for _, op := range route.Value.Pairs {
			if httpMethods[op.Key] && op.Value.Kind == KindMapping {
				if op.Value.Get("x-unimplemented").IsTruthy() {
					continue
				}
			}
			kept = append(kept, op)
		}
		route.Value.Pairs = kept
	}
}
