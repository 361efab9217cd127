package gallery

import "time"

// Candidate is the minimum a stored record must expose to take part in selection.
type Candidate struct {
	Id        string
	Path      string
	CreatedAt time.Time
}

// newer reports whether a should win over b. created_at decides; identical
// timestamps fall back to path (which embeds the upload millis) and then id,
// so the choice never depends on query order.
func newer(a, b Candidate) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.Path != b.Path {
		return a.Path > b.Path
	}
	return a.Id > b.Id
}

// SelectLatest picks, for every known slot, the newest candidate whose path
// sits under the gallery prefix. Candidates for unknown slots, other prefixes
// or malformed paths are ignored.
func SelectLatest(candidates []Candidate, prefix string, slotIds []string) map[string]Candidate {
	known := make(map[string]bool, len(slotIds))
	for _, id := range slotIds {
		known[id] = true
	}

	latest := make(map[string]Candidate)
	for _, c := range candidates {
		parts, ok := ParsePath(c.Path)
		if !ok || parts.Prefix != prefix || !known[parts.SlotId] {
			continue
		}
		current, seen := latest[parts.SlotId]
		if !seen || newer(c, current) {
			latest[parts.SlotId] = c
		}
	}
	return latest
}

// Superseded returns every candidate under a known slot that is not the latest one.
func Superseded(candidates []Candidate, prefix string, slotIds []string) []Candidate {
	latest := SelectLatest(candidates, prefix, slotIds)

	var out []Candidate
	for _, c := range candidates {
		parts, ok := ParsePath(c.Path)
		if !ok || parts.Prefix != prefix {
			continue
		}
		keep, found := latest[parts.SlotId]
		if !found {
			continue
		}
		if keep.Path != c.Path || keep.Id != c.Id {
			out = append(out, c)
		}
	}
	return out
}
