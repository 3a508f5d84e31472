package encoding

import (
	"math"
	"math/bits"
	"unsafe"
)

// HostIsBigEndian is the runtime host endianness, detected once at package
// init the same way the reference implementation's run_time_host_endianness
// helper does it: write a known 16-bit pattern, read back the first byte.
var HostIsBigEndian = func() bool {
	var i uint16 = 0x1234
	b := (*[2]byte)(unsafe.Pointer(&i))
	return b[0] == 0x12
}()

// ByteSwap16 reverses the byte order of a 16-bit code unit.
func ByteSwap16(v uint16) uint16 { return bits.ReverseBytes16(v) }

// ByteSwap32 reverses the byte order of a 32-bit code unit.
func ByteSwap32(v uint32) uint32 { return bits.ReverseBytes32(v) }

// ByteSwap64 reverses the byte order of a 64-bit value. It is exposed for
// callers that byte-swap raw wire data wider than a JSON code unit (none of
// the core does currently, but it keeps the family complete per the
// reference implementation's byte_swap.hpp, which handles 1/2/4/8-byte
// widths uniformly).
func ByteSwap64(v uint64) uint64 { return bits.ReverseBytes64(v) }

// ByteSwapFloat64 swaps a float64's byte order via bit reinterpretation,
// mirroring the reference implementation's approach for floating types
// (which have no meaningful bit-pattern reversal other than byte order).
func ByteSwapFloat64(v float64) float64 {
	return math.Float64frombits(ByteSwap64(math.Float64bits(v)))
}

// maybeSwap16 swaps iff the form's endianness differs from host.
func maybeSwap16(f Form, v uint16) uint16 {
	if f.IsHostEndian() {
		return v
	}
	return ByteSwap16(v)
}

// maybeSwap32 swaps iff the form's endianness differs from host.
func maybeSwap32(f Form, v uint32) uint32 {
	if f.IsHostEndian() {
		return v
	}
	return ByteSwap32(v)
}
