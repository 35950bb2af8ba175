package binding

import "strconv"

// newStem creates a name generator producing stem1, stem2, ... and skipping
// names already taken. A nil namespace is a free namespace.
func newStem(stem string, namespace map[string]struct{}) *nameStem {
	return &nameStem{
		taken: namespace,
		stem:  stem,
		last:  0,
	}
}

type nameStem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

func (s *nameStem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}

// Reserve marks name as taken so Next never returns it.
func (s *nameStem) Reserve(name string) bool {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	if _, ok := s.taken[name]; ok {
		return false
	}

	s.taken[name] = struct{}{}

	return true
}
