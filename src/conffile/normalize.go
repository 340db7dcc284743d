package conffile

import (
	"sort"

	"github.com/flakeconf/flakeconf/src/ruleset"
)

// Normalize returns a new File whose policy is in canonical shape: ignore
// and select sorted and deduplicated, exclude deduplicated with its order
// kept (pattern order is meaningful), docs and thresholds untouched.
// Normalizing twice is a no-op.
func (f *File) Normalize() *File {
	p := f.Policy

	out := &File{Path: f.Path}
	out.Policy = Policy{
		Ignore:        sortCodes(p.Ignore),
		Select:        sortCodes(p.Select),
		MaxLineLength: p.MaxLineLength,
		MaxComplexity: p.MaxComplexity,
		Exclude:       dedupeStrings(p.Exclude),
		Docs:          copyMap(p.Docs),
		Extra:         copyMap(p.Extra),
	}
	return out
}

func sortCodes(codes []ruleset.Code) []ruleset.Code {
	out := make([]ruleset.Code, 0, len(codes))
	seen := map[ruleset.Code]bool{}
	for _, c := range codes {
		if !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func dedupeStrings(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	seen := map[string]bool{}
	for _, s := range items {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
