package hangar

import (
	"reflect"
	"unsafe"
)

// packedColumn is a type-erased, contiguous, growable array holding one
// component type's instances in row order. Elements are moved by raw byte
// copy — component types are restricted to trivially relocatable data, so
// no constructor/destructor runs on append, growth, or swap-remove.
//
// Grounded on delaneyj-arche/ecs/storage.go's Storage type: a
// reflect-backed array with an unsafe.Pointer base address, doubling
// growth, and a raw byte-slice copy for both Set and Remove.
type packedColumn struct {
	buffer   reflect.Value
	base     unsafe.Pointer
	elemType reflect.Type
	elemSize uintptr
	len      int
	cap      int
}

func newPackedColumn(elemType reflect.Type, initialCapacity int) *packedColumn {
	if initialCapacity <= 0 {
		initialCapacity = defaultColumnCapacity
	}
	buf := reflect.New(reflect.ArrayOf(initialCapacity, elemType)).Elem()
	return &packedColumn{
		buffer:   buf,
		base:     buf.Addr().UnsafePointer(),
		elemType: elemType,
		elemSize: elemType.Size(),
		cap:      initialCapacity,
	}
}

// Len reports the current number of live elements.
func (c *packedColumn) Len() int { return c.len }

// append grows the column if needed and returns the row of a new,
// zeroed element, so a reused slot never carries the bytes of an element
// that swapRemove dropped earlier.
func (c *packedColumn) append() int {
	c.grow()
	row := c.len
	c.len++
	if c.elemSize > 0 {
		clear(unsafe.Slice((*byte)(unsafe.Add(c.base, uintptr(row)*c.elemSize)), c.elemSize))
	}
	return row
}

// at returns a pointer to the element at row, bounds-checked against the
// current length.
func (c *packedColumn) at(row int) (unsafe.Pointer, error) {
	if row < 0 || row >= c.len {
		return nil, OutOfRangeError{Row: row, Len: c.len}
	}
	return unsafe.Add(c.base, uintptr(row)*c.elemSize), nil
}

// swapRemove overwrites the bytes at row with the bytes of the last live
// element and shrinks the length by one. The caller is responsible for
// fixing up any parallel entity<->row maps; swapRemove only knows about
// bytes.
func (c *packedColumn) swapRemove(row int) error {
	if row < 0 || row >= c.len {
		return OutOfRangeError{Row: row, Len: c.len}
	}
	last := c.len - 1
	if row != last && c.elemSize > 0 {
		c.rawCopy(last, row)
	}
	c.len--
	return nil
}

// copyRowTo byte-copies the element at row into dst at dstRow. Both
// columns must share the same element type/size; the caller (the
// archetype set) only ever invokes this across columns for the same
// component id.
func (c *packedColumn) copyRowTo(row int, dst *packedColumn, dstRow int) error {
	src, err := c.at(row)
	if err != nil {
		return err
	}
	dstPtr, err := dst.at(dstRow)
	if err != nil {
		return err
	}
	if c.elemSize == 0 {
		return nil
	}
	srcBytes := unsafe.Slice((*byte)(src), c.elemSize)
	dstBytes := unsafe.Slice((*byte)(dstPtr), c.elemSize)
	copy(dstBytes, srcBytes)
	return nil
}

func (c *packedColumn) grow() {
	if c.cap > c.len {
		return
	}
	newCap := c.cap * 2
	if newCap == 0 {
		newCap = defaultColumnCapacity
	}
	old := c.buffer
	c.buffer = reflect.New(reflect.ArrayOf(newCap, c.elemType)).Elem()
	c.base = c.buffer.Addr().UnsafePointer()
	reflect.Copy(c.buffer, old)
	c.cap = newCap
}

func (c *packedColumn) rawCopy(srcRow, dstRow int) {
	src := unsafe.Add(c.base, uintptr(srcRow)*c.elemSize)
	dst := unsafe.Add(c.base, uintptr(dstRow)*c.elemSize)
	srcBytes := unsafe.Slice((*byte)(src), c.elemSize)
	dstBytes := unsafe.Slice((*byte)(dst), c.elemSize)
	copy(dstBytes, srcBytes)
}
