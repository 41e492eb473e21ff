package msgpack

import (
	"math"
)

// DefaultMaxDepth bounds recursion into nested Array/Map values so a
// maliciously or accidentally deep input cannot blow the goroutine stack.
const DefaultMaxDepth = 1000

// UnpackerOptions configures a Unpacker. The zero value selects
// DefaultMaxDepth; a negative MaxDepth disables the limit entirely.
type UnpackerOptions struct {
	MaxDepth int
}

// Unpacker decodes a sequence of MessagePack values from a byte buffer. A
// single Unpacker can decode multiple concatenated values by calling Unpack
// repeatedly until Remaining reports 0.
type Unpacker struct {
	d        byteDecoder
	maxDepth int
}

// NewUnpacker returns an Unpacker reading from buf with DefaultMaxDepth.
func NewUnpacker(buf []byte) *Unpacker {
	return NewUnpackerWithOptions(buf, UnpackerOptions{})
}

// NewUnpackerWithOptions returns an Unpacker reading from buf with the given
// options.
func NewUnpackerWithOptions(buf []byte, opts UnpackerOptions) *Unpacker {
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Unpacker{d: makeByteDecoder(buf), maxDepth: maxDepth}
}

// Reset discards any partially consumed state and begins decoding buf.
func (u *Unpacker) Reset(buf []byte) {
	u.d = makeByteDecoder(buf)
}

// Remaining returns the number of bytes not yet consumed.
func (u *Unpacker) Remaining() int {
	return u.d.Len()
}

// IsComplete reports whether every byte has been consumed.
func (u *Unpacker) IsComplete() bool {
	return u.d.Len() == 0
}

// Unpack decodes the next value from the buffer. It does not require the
// buffer to be fully consumed: call it again to decode the next
// concatenated value, or check Remaining/IsComplete to see what is left.
func (u *Unpacker) Unpack() (Value, error) {
	return u.decodeValue(0)
}

func (u *Unpacker) depthErr(depth int) error {
	return dataErrf(u.d.Orig, u.d.Off(), nil, "max decode depth exceeded (%d)", depth)
}

func (u *Unpacker) decodeValue(depth int) (Value, error) {
	if u.maxDepth >= 0 && depth > u.maxDepth {
		return Value{}, u.depthErr(depth)
	}

	b, err := u.d.Byte()
	if err != nil {
		return Value{}, err
	}

	switch {
	case b <= posFixintMax:
		return FromUint(uint64(b)), nil
	case b >= negFixintMin:
		return FromInt(int64(int8(b))), nil
	case b&0xe0 == fixstrLowCode:
		return u.decodeStr(int(b & fixstrMask))
	case b&0xf0 == fixarrayLowCode:
		return u.decodeArray(int(b&fixarrayMask), depth)
	case b&0xf0 == fixmapLowCode:
		return u.decodeMap(int(b&fixmapMask), depth)
	}

	switch b {
	case nilCode:
		return Nil(), nil
	case falseCode:
		return FromBool(false), nil
	case trueCode:
		return FromBool(true), nil
	case reservedC1:
		return Value{}, dataErrf(u.d.Orig, u.d.Off()-1, nil, "reserved byte 0xc1 is never a valid tag")

	case uint8Code:
		v, err := u.d.Uint8()
		return FromUint(uint64(v)), err
	case uint16Code:
		v, err := u.d.Uint16()
		return FromUint(uint64(v)), err
	case uint32Code:
		v, err := u.d.Uint32()
		return FromUint(uint64(v)), err
	case uint64Code:
		v, err := u.d.Uint64()
		return FromUint(v), err

	case int8Code:
		v, err := u.d.Uint8()
		return FromInt(int64(int8(v))), err
	case int16Code:
		v, err := u.d.Uint16()
		return FromInt(int64(int16(v))), err
	case int32Code:
		v, err := u.d.Uint32()
		return FromInt(int64(int32(v))), err
	case int64Code:
		v, err := u.d.Uint64()
		return FromInt(int64(v)), err

	case float32Code:
		v, err := u.d.Uint32()
		if err != nil {
			return Value{}, err
		}
		return FromFloat32(math.Float32frombits(v)), nil
	case float64Code:
		v, err := u.d.Uint64()
		if err != nil {
			return Value{}, err
		}
		return FromFloat(math.Float64frombits(v)), nil

	case bin8Code:
		n, err := u.d.Uint8()
		if err != nil {
			return Value{}, err
		}
		return u.decodeBin(int(n))
	case bin16Code:
		n, err := u.d.Uint16()
		if err != nil {
			return Value{}, err
		}
		return u.decodeBin(int(n))
	case bin32Code:
		n, err := u.d.Uint32()
		if err != nil {
			return Value{}, err
		}
		return u.decodeBin(int(n))

	case str8Code:
		n, err := u.d.Uint8()
		if err != nil {
			return Value{}, err
		}
		return u.decodeStr(int(n))
	case str16Code:
		n, err := u.d.Uint16()
		if err != nil {
			return Value{}, err
		}
		return u.decodeStr(int(n))
	case str32Code:
		n, err := u.d.Uint32()
		if err != nil {
			return Value{}, err
		}
		return u.decodeStr(int(n))

	case array16Code:
		n, err := u.d.Uint16()
		if err != nil {
			return Value{}, err
		}
		return u.decodeArray(int(n), depth)
	case array32Code:
		n, err := u.d.Uint32()
		if err != nil {
			return Value{}, err
		}
		return u.decodeArray(int(n), depth)

	case map16Code:
		n, err := u.d.Uint16()
		if err != nil {
			return Value{}, err
		}
		return u.decodeMap(int(n), depth)
	case map32Code:
		n, err := u.d.Uint32()
		if err != nil {
			return Value{}, err
		}
		return u.decodeMap(int(n), depth)

	case ext8Code:
		n, err := u.d.Uint8()
		if err != nil {
			return Value{}, err
		}
		return u.decodeExt(int(n))
	case ext16Code:
		n, err := u.d.Uint16()
		if err != nil {
			return Value{}, err
		}
		return u.decodeExt(int(n))
	case ext32Code:
		n, err := u.d.Uint32()
		if err != nil {
			return Value{}, err
		}
		return u.decodeExt(int(n))

	case fixext1Code:
		return u.decodeExt(1)
	case fixext2Code:
		return u.decodeExt(2)
	case fixext4Code:
		return u.decodeExt(4)
	case fixext8Code:
		return u.decodeExt(8)
	case fixext16Code:
		return u.decodeExt(16)
	}

	return Value{}, dataErrf(u.d.Orig, u.d.Off()-1, nil, "unknown tag byte 0x%02x", b)
}

// decodeExt skips an extension type's type byte and n-byte payload and
// yields Nil; extension types carry no portable Go representation, so they
// are consumed for correct streaming but not surfaced as data.
func (u *Unpacker) decodeExt(n int) (Value, error) {
	if _, err := u.d.Byte(); err != nil {
		return Value{}, err
	}
	if _, err := u.d.Raw(n); err != nil {
		return Value{}, err
	}
	return Nil(), nil
}

func (u *Unpacker) decodeStr(n int) (Value, error) {
	b, err := u.d.Raw(n)
	if err != nil {
		return Value{}, err
	}
	return FromStringBytes(b), nil
}

func (u *Unpacker) decodeBin(n int) (Value, error) {
	b, err := u.d.Raw(n)
	if err != nil {
		return Value{}, err
	}
	return FromBin(b), nil
}

// decodeArray pre-checks the declared length against the remaining buffer
// before allocating, so a truncated header with a huge declared count (e.g.
// 0xdd 0xff 0xff 0xff 0xff) fails fast instead of allocating gigabytes.
func (u *Unpacker) decodeArray(n int, depth int) (Value, error) {
	if n < 0 || n > u.d.Len() {
		return Value{}, dataErrf(u.d.Orig, u.d.Off(), ErrTruncated, "array declares %d elements, only %d bytes remain", n, u.d.Len())
	}
	elems := make([]Value, n)
	for i := 0; i < n; i++ {
		v, err := u.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	return Value{tag: TagArray, payload: elems}, nil
}

// decodeMap applies the same pre-check as decodeArray; each entry needs at
// least one byte for its key and one for its value, so the floor is 2*n.
func (u *Unpacker) decodeMap(n int, depth int) (Value, error) {
	if n < 0 || n > u.d.Len()/2 {
		return Value{}, dataErrf(u.d.Orig, u.d.Off(), ErrTruncated, "map declares %d entries, only %d bytes remain", n, u.d.Len())
	}
	entries := make([]MapEntry, n)
	for i := 0; i < n; i++ {
		k, err := u.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		v, err := u.decodeValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		entries[i] = MapEntry{Key: k, Value: v}
	}
	return Value{tag: TagMap, payload: entries}, nil
}

// unpackOne decodes a single value from buf and returns it along with any
// bytes left over.
func unpackOne(buf []byte) (Value, []byte, error) {
	u := NewUnpacker(buf)
	v, err := u.Unpack()
	if err != nil {
		return Value{}, nil, err
	}
	return v, u.d.Buf, nil
}

// Unpack decodes the first value from buf. Any bytes after that value are
// ignored; use UnpackAll to decode a buffer holding several concatenated
// values.
func Unpack(buf []byte) (Value, error) {
	v, _, err := unpackOne(buf)
	return v, err
}

// UnpackAll decodes buf as a sequence of concatenated values, collecting one
// result per value until the buffer is fully consumed. The first decode
// failure aborts the call and discards whatever was decoded so far.
func UnpackAll(buf []byte) ([]Value, error) {
	u := NewUnpacker(buf)
	var out []Value
	for !u.IsComplete() {
		v, err := u.Unpack()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// TryUnpack decodes a single value from buf, recovering any decode failure
// (including a panic surfaced by malformed internal state) and returning Nil
// in its place. It never fails and never panics.
func TryUnpack(buf []byte) (v Value) {
	defer func() {
		if recover() != nil {
			v = Nil()
		}
	}()
	decoded, err := Unpack(buf)
	if err != nil {
		return Nil()
	}
	return decoded
}
