package ogg

// Ogg pages use a CRC-32 with polynomial 0x04C11DB7, no reflection and a
// zero initial value. hash/crc32 only offers the reflected form.

var crcTable = func() (t [256]uint32) {
	const poly = uint32(0x04C11DB7)
	for i := range t {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}()

// crcUpdate extends a running page checksum with data.
func crcUpdate(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// pageCRC checksums a serialized page, treating its CRC field as zero.
func pageCRC(page []byte) uint32 {
	var zero [4]byte
	crc := crcUpdate(0, page[:crcOffset])
	crc = crcUpdate(crc, zero[:])
	return crcUpdate(crc, page[crcOffset+4:])
}
