// Package ogg stores iSAC frame payloads in an Ogg container (RFC 3533).
//
// A stream starts with two header packets, each on its own page:
//
//	ISACHead   identification header, first page, BOS flag set
//	ISACTags   vendor string and user comments
//
// followed by one page per frame payload and an empty EOS page. The
// granule position of a page counts the PCM samples of every frame
// completed on it.
//
// # Page Structure
//
//	Bytes 0-3:   "OggS" capture pattern
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continuation, BOS, EOS)
//	Bytes 6-13:  Granule position
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table, then payload
//
// Packets are split into segments of up to 255 bytes. A segment shorter
// than 255 ends a packet, so a packet whose length is a multiple of 255
// ends with a zero-length segment.
//
// # ISACHead
//
//	Bytes 0-7:   "ISACHead"
//	Byte 8:      Version (1)
//	Byte 9:      Channel count (1)
//	Bytes 10-13: Sample rate
//	Bytes 14-15: Samples per frame
//	Byte 16:     Bands per frame
//	Bytes 17-18: Payload capacity in 16-bit words
//	Bytes 19-20: Q7 scale
//	Bytes 21-22: Average pitch gain (Q12)
//	Byte 23:     Maximum shift
//
// All multi-byte fields are little-endian.
//
// # ISACTags
//
//	Bytes 0-7:   "ISACTags"
//	Bytes 8-11:  Vendor string length, then the vendor string
//	Next 4:      Comment count
//	Per comment: 4-byte length, then "KEY=value"
package ogg
