package game

// Rand is the random source used by weapons. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int
}
