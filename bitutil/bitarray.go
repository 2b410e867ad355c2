// Package bitutil provides packed 1-bit rasters for dithering output.
package bitutil

// BitArray is a simple, fast array of bits represented compactly by an array
// of uint32 values internally. BitMatrix hands out its rows as BitArrays.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArray creates a new BitArray with the given size.
func NewBitArray(size int) *BitArray {
	if size <= 0 {
		return &BitArray{}
	}
	return &BitArray{
		bits: makeArray(size),
		size: size,
	}
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	return (ba.bits[i/32] & (1 << uint(i&0x1F))) != 0
}

// Set sets bit i.
func (ba *BitArray) Set(i int) {
	ba.bits[i/32] |= 1 << uint(i&0x1F)
}

// SetBulk sets a block of 32 bits starting at bit i.
func (ba *BitArray) SetBulk(i int, newBits uint32) {
	ba.bits[i/32] = newBits
}

// Clear clears all bits.
func (ba *BitArray) Clear() {
	for i := range ba.bits {
		ba.bits[i] = 0
	}
}

// BitData returns the underlying uint32 slice.
func (ba *BitArray) BitData() []uint32 {
	return ba.bits
}

func makeArray(size int) []uint32 {
	return make([]uint32, (size+31)/32)
}
