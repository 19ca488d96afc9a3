package ogg

import "errors"

var (
	// ErrInvalidPage indicates a malformed page: missing "OggS" capture
	// pattern, unknown version or truncated data.
	ErrInvalidPage = errors.New("ogg: invalid page structure")

	// ErrInvalidHeader indicates a malformed ISACHead or ISACTags packet.
	ErrInvalidHeader = errors.New("ogg: invalid iSAC header")

	// ErrBadCRC indicates the page checksum does not match its contents.
	ErrBadCRC = errors.New("ogg: CRC mismatch")

	// ErrUnexpectedEOS indicates the stream ended in the middle of a packet,
	// or a write after Close.
	ErrUnexpectedEOS = errors.New("ogg: unexpected end of stream")
)
