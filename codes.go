package msgpack

// Wire format tag bytes, per the MessagePack specification.
const (
	posFixintMax = 0x7f
	negFixintMin = 0xe0

	nilCode    = 0xc0
	reservedC1 = 0xc1
	falseCode  = 0xc2
	trueCode   = 0xc3

	bin8Code  = 0xc4
	bin16Code = 0xc5
	bin32Code = 0xc6

	ext8Code  = 0xc7
	ext16Code = 0xc8
	ext32Code = 0xc9

	float32Code = 0xca
	float64Code = 0xcb

	uint8Code  = 0xcc
	uint16Code = 0xcd
	uint32Code = 0xce
	uint64Code = 0xcf

	int8Code  = 0xd0
	int16Code = 0xd1
	int32Code = 0xd2
	int64Code = 0xd3

	fixext1Code  = 0xd4
	fixext2Code  = 0xd5
	fixext4Code  = 0xd6
	fixext8Code  = 0xd7
	fixext16Code = 0xd8

	str8Code  = 0xd9
	str16Code = 0xda
	str32Code = 0xdb

	array16Code = 0xdc
	array32Code = 0xdd

	map16Code = 0xde
	map32Code = 0xdf

	fixmapLowCode = 0x80
	fixmapMask    = 0x0f

	fixarrayLowCode = 0x90
	fixarrayMask    = 0x0f

	fixstrLowCode = 0xa0
	fixstrMask    = 0x1f
)
