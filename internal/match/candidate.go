package match

import (
	"cmp"
	"reflect"
	"slices"

	"propbind/access"
)

// SuggestThreshold is the minimum score for Suggest.
const SuggestThreshold = 0.5

const (
	nameWeight = 0.6
	typeWeight = 0.4
)

// Property is a name that can be suggested, with its type when known.
type Property struct {
	Name string
	Type reflect.Type
}

// Candidate is a known property scored against a wanted name.
type Candidate struct {
	Property   Property
	NameScore  float64                  // 0-1
	TypeCompat access.TypeCompatibility // TypeIncompatible when either type is unknown
	Score      float64                  // NameScore, blended with TypeCompat when both types are known
}

// CandidateList is ordered best first.
type CandidateList []Candidate

// RankCandidates scores every known property against wanted. Names are
// compared both as written and with a trailing id/value/text suffix removed,
// keeping the better result. Ties are broken by name.
func RankCandidates(wanted string, wantType reflect.Type, known []Property) CandidateList {
	plain, stripped := Normalize(wanted), NormalizeStripped(wanted)

	out := make(CandidateList, 0, len(known))
	for _, p := range known {
		c := Candidate{
			Property:   p,
			NameScore:  max(Similarity(Normalize(p.Name), plain), Similarity(NormalizeStripped(p.Name), stripped)),
			TypeCompat: access.TypeIncompatible,
		}
		c.Score = c.NameScore

		if wantType != nil && p.Type != nil {
			c.TypeCompat = access.ScoreTypeCompatibility(p.Type, wantType)
			c.Score = c.NameScore*nameWeight + typeScore(c.TypeCompat)*typeWeight
		}

		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if r := cmp.Compare(b.Score, a.Score); r != 0 {
			return r
		}
		return cmp.Compare(a.Property.Name, b.Property.Name)
	})

	return out
}

// Suggest returns up to n names of known that resemble wanted closely enough
// to be offered as "did you mean" hints, best first.
func Suggest(wanted string, known []string, n int) []string {
	props := make([]Property, len(known))
	for i, name := range known {
		props[i] = Property{Name: name}
	}

	var out []string
	for _, c := range RankCandidates(wanted, nil, props).Above(SuggestThreshold).Top(n) {
		out = append(out, c.Property.Name)
	}

	return out
}

func typeScore(c access.TypeCompatibility) float64 {
	switch c {
	case access.TypeIdentical:
		return 1
	case access.TypeAssignable:
		return 0.9
	case access.TypeConvertible:
		return 0.7
	case access.TypeNeedsTransform:
		return 0.4
	default:
		return 0
	}
}

// Top returns at most the n best candidates.
func (c CandidateList) Top(n int) CandidateList {
	return c[:min(n, len(c))]
}

// Best returns the best candidate, or nil.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// Above returns the candidates scoring at least threshold.
func (c CandidateList) Above(threshold float64) CandidateList {
	i := slices.IndexFunc(c, func(x Candidate) bool { return x.Score < threshold })
	if i < 0 {
		return c
	}
	return c[:i]
}
