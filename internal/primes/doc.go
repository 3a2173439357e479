// Package primes holds the fixed ascending prime table shared by the
// spectral derivation, the mixing function and the reverse transform.
package primes
