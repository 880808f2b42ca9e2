package hll

// CachedSketch wraps a CardinalitySketch and memoizes its cardinality.
// Estimation reads every register of the underlying sketch, which is costly
// to repeat at large precisions; the wrapper recomputes only after the
// sketch has been mutated.
type CachedSketch[T comparable] struct {
	sketch      CardinalitySketch[T]
	cardinality uint64
	dirty       bool
}

// NewCachedSketch creates a new cached sketch around an existing sketch.
func NewCachedSketch[T comparable](sketch CardinalitySketch[T]) *CachedSketch[T] {
	return &CachedSketch[T]{
		sketch: sketch,
		dirty:  true,
	}
}

// Insert adds an item to the underlying sketch and invalidates the cached
// cardinality.
func (c *CachedSketch[T]) Insert(item T) {
	c.sketch.Insert(item)
	c.dirty = true
}

// Merge combines this sketch with another sketch of the same type.
func (c *CachedSketch[T]) Merge(other CardinalitySketch[T]) error {
	otherCached, ok := other.(*CachedSketch[T])
	if ok {
		other = otherCached.sketch
	}

	if err := c.sketch.Merge(other); err != nil {
		return err
	}

	c.dirty = true
	return nil
}

// Clear resets the underlying sketch to its initial state.
func (c *CachedSketch[T]) Clear() {
	c.sketch.Clear()
	c.cardinality = 0
	c.dirty = false
}

// Cardinality returns the cached cardinality, recomputing it if the sketch
// has been mutated since the last read.
func (c *CachedSketch[T]) Cardinality() uint64 {
	if c.dirty {
		c.cardinality = c.sketch.Cardinality()
		c.dirty = false
	}

	return c.cardinality
}
