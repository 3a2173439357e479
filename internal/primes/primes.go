package primes

// Count is the number of primes in the table.
const Count = 15

var table = [Count]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// At returns the i-th prime. It panics if i is out of range.
func At(i int) uint64 {
	return table[i]
}

// Cyclic returns the prime for sequence position i, wrapping around the
// table once i runs past its end.
func Cyclic(i int) uint64 {
	return table[i%Count]
}

// All returns a copy of the table.
func All() [Count]uint64 {
	return table
}
