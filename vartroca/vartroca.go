package vartroca

import (
	"sort"
	"strings"
)

// Kind discriminates what a Candidate resolves to when chosen.
type Kind byte

const (
	KindVariable Kind = iota
	KindFunction
	KindConstant
)

// Candidate is one member eligible for substitution: its name with the
// var_prefix already stripped (NormSuffix is that remainder, normalized
// and used for sorting/matching), the original member name (for
// resolution), and its kind.
type Candidate struct {
	NormSuffix string
	Original   string
	Kind       Kind
}

// BuildCandidates normalizes names against prefix, keeps only those
// starting with the normalized prefix, strips it, deduplicates by
// original name (first occurrence wins — callers must supply names
// already walked most-derived-first per §4.6 step 2), and sorts by
// NormSuffix to enable the longest-match scan.
func BuildCandidates(names []struct {
	Name string
	Kind Kind
}, prefix string) []Candidate {
	normPrefix := Normalize(prefix)
	seen := make(map[string]bool)
	var out []Candidate
	for _, n := range names {
		normName := Normalize(n.Name)
		if !strings.HasPrefix(normName, normPrefix) {
			continue
		}
		key := strings.ToLower(n.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Candidate{
			NormSuffix: normName[len(normPrefix):],
			Original:   n.Name,
			Kind:       n.Kind,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NormSuffix < out[j].NormSuffix })
	return out
}

// Resolver stringifies the chosen candidate's replacement value (§4.6
// step 7): a variable's current field value, a constant's value, an
// evaluated expression constant, or a function invoked with the matched
// suffix as its single argument.
type Resolver func(c Candidate, matchedSuffix string) string

// Substitute runs the scan-and-replace algorithm. rng must return a
// uniform integer in [0,100) for the probability gate.
func Substitute(text, pattern, varPrefix string, probability, spacing int, candidates []Candidate, resolve Resolver, rng func() int) string {
	if spacing < 0 {
		spacing = 0
	}
	if probability <= 0 {
		return text
	}

	normText := Normalize(text)
	normPattern := Normalize(pattern)

	var out strings.Builder
	pos := 0
	spacingCounter := 0

	for pos < len(text) {
		if !matchesAt(normText, normPattern, pos) {
			out.WriteByte(text[pos])
			pos++
			continue
		}

		afterPattern := pos + len(pattern)
		match, matchedLen := longestMatch(normText, afterPattern, candidates)
		if match == nil {
			out.WriteByte(text[pos])
			pos++
			continue
		}

		if spacingCounter > 0 {
			spacingCounter--
			out.WriteByte(text[pos])
			pos++
			continue
		}

		if rng() >= probability {
			out.WriteByte(text[pos])
			pos++
			continue
		}

		matchedSuffix := text[afterPattern : afterPattern+matchedLen]
		out.WriteString(resolve(*match, matchedSuffix))
		pos = afterPattern + matchedLen
		spacingCounter = spacing
	}

	return out.String()
}

func matchesAt(normText, normPattern string, pos int) bool {
	if len(normPattern) == 0 {
		return true
	}
	if pos+len(normPattern) > len(normText) {
		return false
	}
	return normText[pos:pos+len(normPattern)] == normPattern
}

// longestMatch finds the candidate whose NormSuffix is the longest prefix
// match of normText starting at offset. Candidates are pre-sorted, which
// the reference implementation exploits via progressive binary search;
// a linear scan over the (typically small) member table yields the same
// winner and is what this port does for clarity.
func longestMatch(normText string, offset int, candidates []Candidate) (*Candidate, int) {
	var best *Candidate
	bestLen := -1
	for i := range candidates {
		c := &candidates[i]
		n := len(c.NormSuffix)
		if offset+n > len(normText) {
			continue
		}
		if normText[offset:offset+n] == c.NormSuffix && n > bestLen {
			best = c
			bestLen = n
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestLen
}
