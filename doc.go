/*
Package msgpack implements a self-contained MessagePack codec: a dynamically
typed value representation, a packer that always chooses the shortest legal
on-wire encoding, and an unpacker that decodes one or many concatenated values
from a byte buffer.

We implement:

1. Value, a tagged union over every MessagePack type (nil, bool, int, uint,
float, str, bin, array, map), with constructors, accessors, equality, and a
diagnostic String form.

2. Pack, a format-selection packer that emits the minimal byte sequence for any
given Value, plus one-shot shortcuts for the common scalar cases.

3. Unpack / UnpackAll / TryUnpack, a cursor-based unpacker supporting streaming
decode of concatenated values and a panic-free convenience form.

# Technical Details

**Int vs UInt.** The wire format has separate signed and unsigned integer
families. We preserve which family a decoded value came from (positive fixint
decodes to UInt) rather than collapsing both to one integer type, so a value
that round-trips through Pack/Unpack keeps its sign family unless it started
as a non-negative Int, in which case Pack picks the unsigned encoding and
Unpack hands back UInt.

**Float width.** Both binary32 and binary64 decode to the same Float tag,
carrying a float64. Pack always emits binary64; narrowing back to binary32 on
encode is left as a possible future extension, not attempted here.

**Extension types.** Ext and Fixext payloads are recognized on the wire only
to be skipped; Unpack yields Nil for them and advances the cursor past their
data so streaming decode of the rest of the buffer is unaffected.

## Binary encoding

See the MessagePack specification for the wire format. Every multi-byte field
is big-endian. The packer always selects, among the legal encodings for a
given value, the one with the fewest bytes; round-tripping is guaranteed to
preserve value (modulo the Int→UInt normalization above), not original bytes.
*/
package msgpack
