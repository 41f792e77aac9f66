// stand for bytes helper
package bx

import (
	"encoding/binary"
	"math"
)

// BE is the byte order of every row field on disk and on the wire.
var BE = binary.BigEndian

// --- BE: read ---
func U32(b []byte) uint32  { return BE.Uint32(b) }
func U64(b []byte) uint64  { return BE.Uint64(b) }
func I32(b []byte) int32   { return int32(U32(b)) }
func I64(b []byte) int64   { return int64(U64(b)) }
func F64(b []byte) float64 { return math.Float64frombits(U64(b)) }

// --- BE: write ---
func PutU32(b []byte, v uint32)  { BE.PutUint32(b, v) }
func PutU64(b []byte, v uint64)  { BE.PutUint64(b, v) }
func PutI32(b []byte, v int32)   { PutU32(b, uint32(v)) }
func PutI64(b []byte, v int64)   { PutU64(b, uint64(v)) }
func PutF64(b []byte, v float64) { PutU64(b, math.Float64bits(v)) }

// --- BE: append ---
func AppendI32(dst []byte, v int32) []byte   { return BE.AppendUint32(dst, uint32(v)) }
func AppendI64(dst []byte, v int64) []byte   { return BE.AppendUint64(dst, uint64(v)) }
func AppendF64(dst []byte, v float64) []byte { return BE.AppendUint64(dst, math.Float64bits(v)) }

// --- sortable keys ---
//
// The plain BE encodings above do not sort correctly as raw bytes for
// negative numbers. The Key* variants flip bits so that bytes.Compare on
// the encoding agrees with numeric order.

// AppendKeyI64 appends v with the sign bit flipped.
func AppendKeyI64(dst []byte, v int64) []byte {
	return BE.AppendUint64(dst, uint64(v)^(1<<63))
}

// KeyI64 decodes a value written by AppendKeyI64.
func KeyI64(b []byte) int64 { return int64(U64(b) ^ (1 << 63)) }

// AppendKeyF64 appends v so that negative floats sort before positive ones.
// NaN sorts after +Inf.
func AppendKeyF64(dst []byte, v float64) []byte {
	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}
	return BE.AppendUint64(dst, bits)
}

// KeyF64 decodes a value written by AppendKeyF64.
func KeyF64(b []byte) float64 {
	bits := U64(b)
	if bits&(1<<63) != 0 {
		bits &^= 1 << 63
	} else {
		bits = ^bits
	}
	return math.Float64frombits(bits)
}
