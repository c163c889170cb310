package xdr

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestUintLittleEndian(t *testing.T) {
	data := []byte{
		0x34, 0x12, // 0x1234
		0x78, 0x56, // 0x5678
	}
	if got := Uint(ByteOrder, data, 2, 0); got != 0x1234 {
		t.Errorf("Uint(0) = %#04x, want 0x1234", got)
	}
	if got := Uint(ByteOrder, data, 2, 1); got != 0x5678 {
		t.Errorf("Uint(1) = %#04x, want 0x5678", got)
	}
	if got := Uint(ByteOrder, data, 4, 0); got != 0x56781234 {
		t.Errorf("Uint32 = %#08x, want 0x56781234", got)
	}
	if got := Uint(ByteOrder, data, 1, 3); got != 0x56 {
		t.Errorf("Uint8(3) = %#02x, want 0x56", got)
	}
}

func TestPutUintRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
		size  int
		v     uint64
	}{
		{"byte", binary.LittleEndian, 1, 0xAB},
		{"le16", binary.LittleEndian, 2, 0xBEEF},
		{"be16", binary.BigEndian, 2, 0xBEEF},
		{"le32", binary.LittleEndian, 4, 0xDEADBEEF},
		{"be64", binary.BigEndian, 8, 0x0123456789ABCDEF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, 3*tt.size)
			PutUint(tt.order, b, tt.size, 2, tt.v)
			if got := Uint(tt.order, b, tt.size, 2); got != tt.v {
				t.Errorf("Uint = %#x, want %#x", got, tt.v)
			}
			if got := Uint(tt.order, b, tt.size, 1); got != 0 {
				t.Errorf("neighbouring element = %#x, want 0", got)
			}
		})
	}
}

func TestPutUintTruncates(t *testing.T) {
	b := make([]byte, 2)
	PutUint(ByteOrder, b, 2, 0, 0x123456)
	if got := Uint(ByteOrder, b, 2, 0); got != 0x3456 {
		t.Errorf("Uint = %#x, want 0x3456", got)
	}
}

func TestBigEndianLayout(t *testing.T) {
	b := make([]byte, 4)
	PutUint(binary.BigEndian, b, 4, 0, 0x01020304)
	if b[0] != 1 || b[3] != 4 {
		t.Errorf("big-endian bytes = %v", b)
	}
}

func TestCheckSize(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8} {
		if err := CheckSize(size); err != nil {
			t.Errorf("CheckSize(%d) = %v", size, err)
		}
	}
	if err := CheckSize(3); !errors.Is(err, ErrElementSize) {
		t.Errorf("CheckSize(3) = %v, want ErrElementSize", err)
	}
	if got := Elements(make([]byte, 9), 4); got != 2 {
		t.Errorf("Elements = %d, want 2", got)
	}
}

func TestCopyElements(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6}
	dst := make([]byte, 6)
	CopyElements(dst, 1, src, 0, 2, 2)
	want := []byte{0, 0, 1, 2, 3, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func BenchmarkUint32(b *testing.B) {
	data := make([]byte, 4096)
	for i := 0; i < b.N; i++ {
		_ = Uint(ByteOrder, data, 4, i&1023)
	}
}
