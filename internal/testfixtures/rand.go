package testfixtures

// FirstRand is a deterministic random source that always selects index zero
// and never shuffles. Engine decisions become the registry order, which keeps
// assertions about slot contents exact.
type FirstRand struct{}

// IntN always returns 0.
func (FirstRand) IntN(int) int { return 0 }

// Shuffle leaves the slice untouched.
func (FirstRand) Shuffle(int, func(i, j int)) {}
