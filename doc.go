// Package hll implements the HyperLogLog algorithm from "HyperLogLog: the
// analysis of a near-optimal cardinality estimation algorithm" by Flajolet,
// Fusy, Gandouet and Meunier. Given a stream of input elements, a Sketch
// estimates the number of distinct items in the stream using memory that is
// orders of magnitude smaller than storing the items themselves: a sketch
// with precision p holds 2^p one-byte registers, and its typical relative
// error is 1.04/sqrt(2^p).
//
// Each inserted item is hashed with a per-sketch seeded 64-bit hash. The low
// p bits of the hash select a register; the remaining bits contribute a
// "rank" (the position of their leftmost set bit), and the register keeps
// the maximum rank ever observed. Estimation combines the registers with a
// harmonic mean, switching to Linear Counting while many registers are
// still empty, where that formula is more accurate.
//
// No large-range correction is applied. The classical algorithm's third
// regime corrects for hash collisions as the cardinality approaches the
// hash space size, but with a 64-bit hash the collision probability is
// negligible for any realistic input, so that regime never materializes.
//
// Sketches are not safe for concurrent use. Callers that share a sketch
// across goroutines must synchronize externally.
package hll
