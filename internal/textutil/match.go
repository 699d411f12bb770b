package textutil

import "strings"

// Score tiers for candidate cover images. Higher is a stronger match; zero
// means excluded.
const (
	ScoreExact           = 100
	ScoreCoreEquality    = 80
	ScoreContainment     = 60
	ScoreCoreContainment = 40

	// coreEqualityMinLength guards the core-equality tier against matching
	// on trivially short runs.
	coreEqualityMinLength = 4
)

// Match reports whether two filenames plausibly refer to the same work. It is
// symmetric and enforces no minimum key length: exact normalized equality,
// normalized containment in either direction, core equality, or core
// containment in either direction all count as a match.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	if containsEither(na, nb) {
		return true
	}
	ca, cb := Core(a), Core(b)
	if ca != "" && ca == cb {
		return true
	}
	return containsEither(ca, cb)
}

// ScoreMatch rates how well a candidate filename matches a submitted name.
// Tiers, strongest first: exact normalized equality, core equality (core
// length >= 4), normalized containment, core containment. Unrelated names
// score zero.
func ScoreMatch(name, candidate string) int {
	n, c := Normalize(name), Normalize(candidate)
	if n != "" && n == c {
		return ScoreExact
	}
	cn, cc := Core(name), Core(candidate)
	if cn != "" && cn == cc && len(cn) >= coreEqualityMinLength {
		return ScoreCoreEquality
	}
	if containsEither(n, c) {
		return ScoreContainment
	}
	if containsEither(cn, cc) {
		return ScoreCoreContainment
	}
	return 0
}

// containsEither checks substring containment in both directions. Empty keys
// never participate: an empty normalized name must not match everything.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
