package suggest

import "strings"

// DefaultMaxDepth bounds suggestion trees; level four is already past
// what the UI renders ahead of the speaker.
const DefaultMaxDepth = 4

// Sanitize normalizes a flat candidate list: each entry is trimmed,
// empties are dropped, duplicates are removed case-insensitively keeping
// the first occurrence's casing, and the result is truncated to limit.
// Order is preserved throughout. Sanitizing an already-sanitized list
// with the same limit returns it unchanged.
//
// An empty result is not an error here; the service layer decides whether
// "no suggestions" is fatal.
func Sanitize(words []string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	out := make([]string, 0, min(limit, len(words)))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		trimmed := strings.TrimSpace(w)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// SanitizeTree applies the same trim/dedupe/order rules level by level.
// Deduplication is scoped to siblings, not the whole tree: "no" may
// legitimately follow both "yes" and "maybe". A node whose word is empty
// after trimming is dropped with its whole subtree. Once maxDepth levels
// have been produced, children are truncated to none. limit bounds the
// top level only; maxDepth values below one fall back to DefaultMaxDepth.
func SanitizeTree(branches []Branch, limit, maxDepth int) []Branch {
	if limit <= 0 {
		return []Branch{}
	}
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	out := make([]Branch, 0, min(limit, len(branches)))
	seen := make(map[string]struct{}, len(branches))
	for _, b := range branches {
		cleaned, ok := sanitizeBranch(b, 1, maxDepth)
		if !ok {
			continue
		}
		key := strings.ToLower(cleaned.Word)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// sanitizeBranch cleans one node at the given depth. Returns false when
// the node's word is empty after trimming.
func sanitizeBranch(b Branch, depth, maxDepth int) (Branch, bool) {
	word := strings.TrimSpace(b.Word)
	if word == "" {
		return Branch{}, false
	}

	var children []Branch
	if depth < maxDepth {
		seen := make(map[string]struct{}, len(b.Next))
		for _, child := range b.Next {
			cleaned, ok := sanitizeBranch(child, depth+1, maxDepth)
			if !ok {
				continue
			}
			key := strings.ToLower(cleaned.Word)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			children = append(children, cleaned)
		}
	}

	return Branch{Word: word, Next: children}, true
}
