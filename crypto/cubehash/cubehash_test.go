package cubehash

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestSum256(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		// empty message
		{nil, "44c6de3ac6c73c391bf0906cb7482600ec06b216c7c54a2a8688a6a42676577d"},
		// one zero block, the shape used inside Lyra2REv2
		{make([]byte, 32), "e27007aa498dd2100ffc76ce4eff578e6eb89908967186156f065cf6a61f6855"},
		{seq(32), "576c781c05c747adb52e68cab1ffe409c2a42e373cc3da2330e5d785529ee860"},
		// spans several blocks with a partial tail
		{seq(100), "08a14ba3c4e40c67f3545a4a62cd7c3ce0e65757440163cc8bbf2d1b7d643e44"},
	}

	for i, test := range tests {
		got := Sum256(test.in)
		if hex.EncodeToString(got[:]) != test.want {
			t.Fatalf("test %d: got %x want %s", i, got, test.want)
		}
	}
}

func TestStreaming(t *testing.T) {
	msg := seq(300)
	want := Sum256(msg)

	for _, chunk := range []int{1, 7, 31, 32, 33, 64, 299} {
		h := New()
		for off := 0; off < len(msg); off += chunk {
			end := off + chunk
			if end > len(msg) {
				end = len(msg)
			}
			h.Write(msg[off:end])
		}
		if got := h.Sum(nil); !bytes.Equal(got, want[:]) {
			t.Fatalf("chunk %d: got %x want %x", chunk, got, want)
		}
	}
}

func TestSumKeepsState(t *testing.T) {
	h := New()
	h.Write(seq(40))
	first := h.Sum(nil)
	second := h.Sum([]byte{0xff})
	if !bytes.Equal(first, second[1:]) || second[0] != 0xff {
		t.Fatalf("Sum changed the running state: %x then %x", first, second)
	}

	h.Reset()
	empty := Sum256(nil)
	if got := h.Sum(nil); !bytes.Equal(got, empty[:]) {
		t.Fatalf("after Reset got %x want %x", got, empty)
	}
	if h.Size() != Size || h.BlockSize() != BlockSize {
		t.Fatalf("Size %d BlockSize %d", h.Size(), h.BlockSize())
	}
}
