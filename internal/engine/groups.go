package engine

// every is the within-group conjunction
func every[T any](group []T, test func(T) bool) bool {
	for _, item := range group {
		if !test(item) {
			return false
		}
	}
	return true
}

// some is the within-group disjunction
func some[T any](group []T, test func(T) bool) bool {
	for _, item := range group {
		if test(item) {
			return true
		}
	}
	return false
}

// anyGroupSatisfied ORs groups together. within decides how the members of a
// single group combine; empty groups never satisfy.
func anyGroupSatisfied[T any](groups [][]T, within func([]T, func(T) bool) bool, test func(T) bool) bool {
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		if within(group, test) {
			return true
		}
	}
	return false
}
