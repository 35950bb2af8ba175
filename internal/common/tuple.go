package common

// Second drops the first of two results.
func Second[T any](_ any, t T) T { return t }

// Pair returns the first two elements of s, zero values standing in for
// missing ones.
func Pair[S ~[]T, T any](s S) (first, second T) {
	switch len(s) {
	case 0:
	case 1:
		first = s[0]
	default:
		first, second = s[0], s[1]
	}

	return first, second
}
