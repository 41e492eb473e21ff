package msgpack_test

import (
	"bytes"
	"testing"

	vmpack "github.com/vmihailenco/msgpack/v5"

	"github.com/nanopack/msgpack"
)

// These tests cross-check our codec against a mature third-party
// implementation. Production code never imports vmihailenco/msgpack/v5; it
// exists here purely as an independent oracle for wire-format agreement.

func decodeWithVmihailenco(t *testing.T, buf []byte) any {
	t.Helper()
	dec := vmpack.GetDecoder()
	defer vmpack.PutDecoder(dec)
	dec.Reset(bytes.NewReader(buf))
	v, err := dec.DecodeInterface()
	if err != nil {
		t.Fatalf("vmihailenco decode of %x failed: %v", buf, err)
	}
	return v
}

func encodeWithVmihailenco(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := vmpack.GetEncoder()
	defer vmpack.PutEncoder(enc)
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		t.Fatalf("vmihailenco encode of %v failed: %v", v, err)
	}
	return buf.Bytes()
}

func TestConformance_OurEncodingDecodesElsewhere(t *testing.T) {
	cases := []struct {
		name string
		ours msgpack.Value
		want any
	}{
		{"nil", msgpack.Nil(), nil},
		{"bool", msgpack.FromBool(true), true},
		{"posint", msgpack.FromUint(1000), uint16(1000)},
		{"negint", msgpack.FromInt(-1000), int16(-1000)},
		{"string", msgpack.FromString("hello world"), "hello world"},
		{"bin", msgpack.FromBin([]byte{1, 2, 3}), []byte{1, 2, 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded := msgpack.Pack(c.ours)
			got := decodeWithVmihailenco(t, encoded)
			if !valuesMatch(got, c.want) {
				t.Fatalf("vmihailenco decoded %x as %#v (%T), wanted %#v (%T)", encoded, got, got, c.want, c.want)
			}
		})
	}
}

func TestConformance_TheirEncodingDecodesHere(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want msgpack.Value
	}{
		{"nil", nil, msgpack.Nil()},
		{"bool", false, msgpack.FromBool(false)},
		{"uint", uint64(42), msgpack.FromUint(42)},
		{"int", int64(-42), msgpack.FromInt(-42)},
		{"string", "abcxyz", msgpack.FromString("abcxyz")},
		{"bin", []byte{9, 9, 9}, msgpack.FromBin([]byte{9, 9, 9})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded := encodeWithVmihailenco(t, c.in)
			got, err := msgpack.Unpack(encoded)
			if err != nil {
				t.Fatalf("Unpack(%x) error: %v", encoded, err)
			}
			if !got.Equal(c.want) {
				t.Fatalf("Unpack(%x) = %v, wanted %v", encoded, got, c.want)
			}
		})
	}
}

func TestConformance_NestedStructureRoundTrips(t *testing.T) {
	ours := msgpack.FromArray([]msgpack.Value{
		msgpack.FromInt(1),
		msgpack.FromString("two"),
		msgpack.FromMap([]msgpack.MapEntry{
			{Key: msgpack.FromString("three"), Value: msgpack.FromBool(true)},
		}),
	})
	encoded := msgpack.Pack(ours)

	got := decodeWithVmihailenco(t, encoded)
	arr, ok := got.([]any)
	if !ok || len(arr) != 3 {
		t.Fatalf("vmihailenco decoded %#v, wanted a 3-element slice", got)
	}
	if arr[1] != "two" {
		t.Fatalf("element 1 = %#v, wanted \"two\"", arr[1])
	}
	m, ok := arr[2].(map[string]any)
	if !ok || m["three"] != true {
		t.Fatalf("element 2 = %#v, wanted map with three=true", arr[2])
	}
}

func valuesMatch(got, want any) bool {
	if want == nil {
		return got == nil
	}
	switch w := want.(type) {
	case []byte:
		g, ok := got.([]byte)
		return ok && bytes.Equal(g, w)
	default:
		return got == want
	}
}
