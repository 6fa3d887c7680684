// Package emission implements the emission models attached to HMM states:
// Single (one symbol of one track) and Pair (one symbol from each of two
// tracks), plus the shared Track alphabets they index into.
//
// Probabilities are stored as natural logs; symbols with no configured
// probability emit with -Inf. Nothing here checks that a distribution sums
// to one.
package emission
