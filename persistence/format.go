package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic identifies a versioned library blob.
var Magic = [4]byte{'S', 'P', 'F', 'L'}

const (
	// Version is the current blob format version.
	Version uint16 = 2
	// LegacyVersion is the plain-mapping format that predates the header.
	LegacyVersion uint16 = 1

	// HeaderSize is the encoded size of Header.
	HeaderSize = 28
)

// Section tags.
const (
	tagDimensions uint8 = 0x01
	tagProperties uint8 = 0x02
	// tagAttributes holds untagged attributes from earlier writers; numbers
	// come back as float64 and lists as []any.
	tagAttributes      uint8 = 0x03
	tagTypedAttributes uint8 = 0x04
	tagEnd             uint8 = 0xFF
)

var (
	ErrInvalidMagic       = errors.New("persistence: invalid magic number")
	ErrUnsupportedVersion = errors.New("persistence: unsupported version")
	ErrCorrupt            = errors.New("persistence: corrupt blob")
	// ErrUnsupportedAttribute is wrapped by AttributeError.
	ErrUnsupportedAttribute = errors.New("persistence: unsupported attribute value")
)

// Header is the fixed-size prefix of every versioned blob.
type Header struct {
	Magic        [4]byte
	Version      uint16
	Compression  Compression
	Reserved     uint8
	RawLength    uint64 // Payload length after decompression
	StoredLength uint64 // Payload length as stored
	Checksum     uint32 // CRC32 (IEEE) of the stored payload
}

// ReadHeader reads and validates the header at the start of r.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Header{}, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		return Header{}, err
	}
	if h.Magic != Magic {
		return Header{}, ErrInvalidMagic
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !h.Compression.valid() {
		return Header{}, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, h.Compression)
	}
	return h, nil
}

func writeHeader(w io.Writer, h Header) error {
	return binary.Write(w, binary.LittleEndian, &h)
}
