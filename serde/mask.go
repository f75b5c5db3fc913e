package serde

// Bits is a completeness mask for types with more than 64 fields. Smaller
// types use a plain unsigned integer.
type Bits []uint64

// NewBits returns a cleared mask able to hold n bits.
func NewBits(n int) Bits {
	return make(Bits, (n+63)/64)
}

// BitsOf returns a mask of n bits with the given indices set.
func BitsOf(n int, set ...int) Bits {
	b := NewBits(n)
	for _, i := range set {
		b.Set(i)
	}

	return b
}

// Set sets bit i.
func (b Bits) Set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

// Has reports whether bit i is set.
func (b Bits) Has(i int) bool {
	if i/64 >= len(b) {
		return false
	}

	return b[i/64]&(1<<uint(i%64)) != 0
}

// Covers reports whether every bit set in required is also set in b.
func (b Bits) Covers(required Bits) bool {
	for i, w := range required {
		var have uint64
		if i < len(b) {
			have = b[i]
		}

		if have&w != w {
			return false
		}
	}

	return true
}
