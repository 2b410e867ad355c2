package bitutil

import (
	"math/bits"
	"strings"
)

// BitMatrix is a packed 1-bit raster.
// x is the column position, y is the row position. The origin is at the top-left.
// A set bit is an "on" (white, 255) pixel.
//
// Every row starts on a fresh word, so distinct rows may be written from
// different goroutines without synchronization.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrix creates a new BitMatrix with the given width and height.
func NewBitMatrix(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// ParseLevels creates a BitMatrix from row-major 0/255 levels. Any non-zero
// level sets the bit.
func ParseLevels(width, height int, levels []uint8) *BitMatrix {
	if len(levels) != width*height {
		panic("bitmatrix: level count does not match dimensions")
	}
	bm := NewBitMatrix(width, height)
	for i, v := range levels {
		if v != 0 {
			bm.Set(i%width, i/width)
		}
	}
	return bm
}

// ParseStringMatrix creates a BitMatrix from a string representation.
func ParseStringMatrix(repr, setStr, unsetStr string) *BitMatrix {
	var bts []bool
	rowLength := -1
	nRows := 0
	for _, line := range strings.Split(repr, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		n := 0
		for pos := 0; pos < len(line); {
			switch {
			case strings.HasPrefix(line[pos:], setStr):
				bts = append(bts, true)
				pos += len(setStr)
			case strings.HasPrefix(line[pos:], unsetStr):
				bts = append(bts, false)
				pos += len(unsetStr)
			default:
				panic("bitmatrix: illegal character encountered")
			}
			n++
		}
		if rowLength == -1 {
			rowLength = n
		} else if n != rowLength {
			panic("bitmatrix: row lengths do not match")
		}
		nRows++
	}
	matrix := NewBitMatrix(rowLength, nRows)
	for i, b := range bts {
		if b {
			matrix.Set(i%rowLength, i/rowLength)
		}
	}
	return matrix
}

// Get returns true if the bit at (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

// Level returns 255 if the bit at (x, y) is set and 0 otherwise.
func (bm *BitMatrix) Level(x, y int) uint8 {
	if bm.Get(x, y) {
		return 255
	}
	return 0
}

// Levels returns the matrix as row-major 0/255 levels.
func (bm *BitMatrix) Levels() []uint8 {
	levels := make([]uint8, bm.width*bm.height)
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			levels[y*bm.width+x] = bm.Level(x, y)
		}
	}
	return levels
}

// Set sets the bit at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// Xor flips bits in this matrix where the mask has bits set.
func (bm *BitMatrix) Xor(mask *BitMatrix) {
	if bm.width != mask.width || bm.height != mask.height || bm.rowSize != mask.rowSize {
		panic("bitmatrix: dimensions do not match")
	}
	rowArray := NewBitArray(bm.width)
	for y := 0; y < bm.height; y++ {
		offset := y * bm.rowSize
		row := mask.Row(y, rowArray).BitData()
		for x := 0; x < bm.rowSize; x++ {
			bm.data[offset+x] ^= row[x]
		}
	}
}

// CountSet returns the number of set bits.
func (bm *BitMatrix) CountSet() int {
	n := 0
	for _, w := range bm.data {
		n += bits.OnesCount32(w)
	}
	return n
}

// Row returns a row as a BitArray. If row is nil or too small, a new one is allocated.
func (bm *BitMatrix) Row(y int, row *BitArray) *BitArray {
	if row == nil || row.Size() < bm.width {
		row = NewBitArray(bm.width)
	} else {
		row.Clear()
	}
	offset := y * bm.rowSize
	for x := 0; x < bm.rowSize; x++ {
		row.SetBulk(x*32, bm.data[offset+x])
	}
	return row
}

// SetRow sets the row at y from the given BitArray.
func (bm *BitMatrix) SetRow(y int, row *BitArray) {
	copy(bm.data[y*bm.rowSize:(y+1)*bm.rowSize], row.BitData())
	if rem := bm.width & 0x1f; rem != 0 {
		bm.data[(y+1)*bm.rowSize-1] &= 1<<uint(rem) - 1
	}
}

// Width returns the width.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy of the BitMatrix.
func (bm *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(bm.data))
	copy(d, bm.data)
	return &BitMatrix{width: bm.width, height: bm.height, rowSize: bm.rowSize, data: d}
}

// String returns a string representation using "# " for set and ". " for unset.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("# ", ". ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width*len(setString) + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if two BitMatrices are equal.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if bm.width != other.width || bm.height != other.height || bm.rowSize != other.rowSize {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
