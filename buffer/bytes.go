package buffer

import (
	"encoding/binary"
	"fmt"

	"github.com/mrjoshuak/go-texel/internal/xdr"
)

// Bytes is a buffer over a byte slice holding elements in a fixed byte
// order, for memory that is shared with a GPU upload or a file mapping.
type Bytes struct {
	data  []byte
	kind  Kind
	size  int
	order binary.ByteOrder
}

// NewBytes interprets data as elements of the given kind. A nil order means
// little-endian. Trailing bytes that do not form a whole element are ignored.
func NewBytes(data []byte, kind Kind, order binary.ByteOrder) (*Bytes, error) {
	if kind == Invalid || kind.Bits() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrKindMismatch, kind)
	}
	size := kind.Bits() / 8
	if err := xdr.CheckSize(size); err != nil {
		return nil, err
	}
	if order == nil {
		order = xdr.ByteOrder
	}
	return &Bytes{data: data, kind: kind, size: size, order: order}, nil
}

// Data returns the underlying byte slice.
func (b *Bytes) Data() []byte { return b.data }

// Order returns the element byte order.
func (b *Bytes) Order() binary.ByteOrder { return b.order }

func (b *Bytes) Kind() Kind { return b.kind }

func (b *Bytes) Len() int { return xdr.Elements(b.data, b.size) }

func (b *Bytes) Bits(i int) uint64 { return xdr.Uint(b.order, b.data, b.size, i) }

func (b *Bytes) SetBits(i int, v uint64) { xdr.PutUint(b.order, b.data, b.size, i, v) }
