package hll

// CardinalitySketch is the common surface of distinct-count estimators in
// this package. Sketch implements it directly; CachedSketch layers estimate
// memoization on top of any implementation.
type CardinalitySketch[T comparable] interface {
	// Insert adds an item to the sketch. It is total: it never fails, and
	// re-inserting an item never changes the sketch's state.
	Insert(item T)

	// Merge folds another sketch of the same type and configuration into
	// this one, so it estimates the union of both input streams.
	Merge(other CardinalitySketch[T]) error

	// Clear resets the sketch to its empty state.
	Clear()

	// Cardinality returns the estimated number of distinct items inserted.
	Cardinality() uint64
}
