package pool

import (
	"strings"
	"sync"
)

// StringBuilderPool implements a pool of string builders reused by the key
// normalizers, which run once per registry record and once per source name.
type StringBuilderPool struct {
	pool sync.Pool
}

// NewStringBuilderPool creates a new strings.Builder pool
func NewStringBuilderPool() *StringBuilderPool {
	return &StringBuilderPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(StringBuilder)
			},
		},
	}
}

// Get retrieves a StringBuilder from the pool or creates a new one if none are available
func (sbp *StringBuilderPool) Get() *StringBuilder {
	return sbp.pool.Get().(*StringBuilder)
}

// Put returns a StringBuilder to the pool for reuse
func (sbp *StringBuilderPool) Put(sb *StringBuilder) {
	sb.Reset()
	sbp.pool.Put(sb)
}

// StringBuilder wraps strings.Builder so pooled builders can be reset as one unit.
type StringBuilder struct {
	builder strings.Builder
}

// WriteRune writes a rune to the builder
func (sb *StringBuilder) WriteRune(r rune) {
	sb.builder.WriteRune(r)
}

// WriteString writes a string to the builder
func (sb *StringBuilder) WriteString(s string) {
	sb.builder.WriteString(s)
}

// String returns the accumulated string
func (sb *StringBuilder) String() string {
	return sb.builder.String()
}

// Len returns the number of accumulated bytes
func (sb *StringBuilder) Len() int {
	return sb.builder.Len()
}

// Reset resets the builder for reuse
func (sb *StringBuilder) Reset() {
	sb.builder.Reset()
}

// IntRowPool implements a pool of int slices used as rolling rows by the
// edit-distance computation in the fuzzy scorer.
type IntRowPool struct {
	pool sync.Pool
	size int
}

// NewIntRowPool creates a new pool of int slices with the specified capacity
func NewIntRowPool(size int) *IntRowPool {
	return &IntRowPool{
		pool: sync.Pool{
			New: func() interface{} {
				row := make([]int, 0, size)
				return &row
			},
		},
		size: size,
	}
}

// Get retrieves a row from the pool
func (rp *IntRowPool) Get() *[]int {
	return rp.pool.Get().(*[]int)
}

// Put returns a row to the pool
func (rp *IntRowPool) Put(row *[]int) {
	*row = (*row)[:0]
	rp.pool.Put(row)
}
