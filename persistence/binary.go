package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wandadars/spitfire/codec"
	"github.com/wandadars/spitfire/internal/conv"
	"github.com/wandadars/spitfire/library"
)

// Save encodes lib as a versioned blob.
func Save(lib *library.Library, opts ...Option) ([]byte, error) {
	return Marshal(Capture(lib), opts...)
}

// Load decodes a blob of any supported version into a Library.
func Load(data []byte, opts ...Option) (*library.Library, error) {
	snap, err := Unmarshal(data, opts...)
	if err != nil {
		return nil, err
	}
	return Restore(snap)
}

// Marshal encodes snap as a versioned blob.
func Marshal(snap Snapshot, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, snap, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a blob of any supported version.
func Unmarshal(data []byte, opts ...Option) (Snapshot, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// Encode writes snap to w as a versioned blob.
func Encode(w io.Writer, snap Snapshot, opts ...Option) error {
	o := newOptions(opts)

	raw, err := encodePayload(snap, o.codec)
	if err != nil {
		return err
	}
	used, stored, err := compress(o.compression, raw)
	if err != nil {
		return fmt.Errorf("persistence: compress: %w", err)
	}

	h := Header{
		Magic:        Magic,
		Version:      Version,
		Compression:  used,
		RawLength:    uint64(len(raw)),
		StoredLength: uint64(len(stored)),
		Checksum:     CalculateChecksum(stored),
	}
	if err := writeHeader(w, h); err != nil {
		return err
	}
	_, err = w.Write(stored)
	return err
}

// Decode reads one blob from r. Legacy plain-mapping blobs are upgraded.
func Decode(r io.Reader, opts ...Option) (Snapshot, error) {
	o := newOptions(opts)

	var prefix [4]byte
	n, err := io.ReadFull(r, prefix[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Snapshot{}, err
	}
	if n < len(prefix) || prefix != Magic {
		rest, err := io.ReadAll(r)
		if err != nil {
			return Snapshot{}, err
		}
		data := append(prefix[:n:n], rest...)
		if !IsLegacy(data) {
			return Snapshot{}, ErrInvalidMagic
		}
		return UpgradeLegacy(data, WithCodec(o.codec))
	}

	h, err := ReadHeader(io.MultiReader(bytes.NewReader(prefix[:]), r))
	if err != nil {
		return Snapshot{}, err
	}
	if h.StoredLength > math.MaxInt64 {
		return Snapshot{}, fmt.Errorf("%w: stored length %d", ErrCorrupt, h.StoredLength)
	}

	cr := NewChecksumReader(io.LimitReader(r, int64(h.StoredLength)))
	stored, err := io.ReadAll(cr)
	if err != nil {
		return Snapshot{}, err
	}
	if uint64(len(stored)) != h.StoredLength {
		return Snapshot{}, fmt.Errorf("%w: payload truncated: got %d of %d bytes", ErrCorrupt, len(stored), h.StoredLength)
	}
	if err := cr.Verify(h.Checksum); err != nil {
		return Snapshot{}, err
	}

	raw, err := decompress(h.Compression, stored, h.RawLength)
	if err != nil {
		return Snapshot{}, err
	}
	return decodePayload(raw)
}

func encodePayload(snap Snapshot, c codec.Codec) ([]byte, error) {
	var e encoder

	var dims encoder
	dims.count(len(snap.Dimensions))
	for _, d := range snap.Dimensions {
		dims.str(d.Name)
		dims.bool(d.Structured)
		dims.length(len(d.Values))
		dims.floats(d.Values)
	}
	e.section(tagDimensions, dims.buf)

	var props encoder
	props.count(len(snap.Properties))
	for _, p := range snap.Properties {
		props.str(p.Name)
		props.count(len(p.Shape))
		for _, ext := range p.Shape {
			props.length(ext)
		}
		props.floats(p.Data)
	}
	e.section(tagProperties, props.buf)

	attrs := snap.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	tree, err := encodeAttributes(attrs)
	if err != nil {
		return nil, fmt.Errorf("persistence: encode: %w", err)
	}
	encoded, err := c.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("persistence: encode attributes with %s: %w", c.Name(), err)
	}
	var ab encoder
	ab.str(c.Name())
	ab.bytes(encoded)
	e.section(tagTypedAttributes, ab.buf)

	e.section(tagEnd, nil)
	if err := errors.Join(dims.err, props.err, ab.err, e.err); err != nil {
		return nil, fmt.Errorf("persistence: encode: %w", err)
	}
	return e.buf, nil
}

func decodePayload(raw []byte) (Snapshot, error) {
	d := &decoder{buf: raw}
	snap := Snapshot{Attributes: map[string]any{}}
	seen := make(map[uint8]bool)

	for {
		tag := d.u8()
		body := d.take(d.u64())
		if d.err != nil {
			return Snapshot{}, d.err
		}
		if tag == tagEnd {
			break
		}
		if seen[tag] {
			return Snapshot{}, fmt.Errorf("%w: duplicate section 0x%02x", ErrCorrupt, tag)
		}
		seen[tag] = true

		var err error
		switch tag {
		case tagDimensions:
			snap.Dimensions, err = decodeDimensions(body)
		case tagProperties:
			snap.Properties, err = decodeProperties(body)
		case tagAttributes, tagTypedAttributes:
			if seen[tagAttributes] && seen[tagTypedAttributes] {
				return Snapshot{}, fmt.Errorf("%w: both plain and typed attributes sections", ErrCorrupt)
			}
			snap.Attributes, err = decodeAttributes(body, tag == tagTypedAttributes)
		default:
			// Unknown section from a newer writer.
		}
		if err != nil {
			return Snapshot{}, err
		}
	}

	if len(d.buf) != 0 {
		return Snapshot{}, fmt.Errorf("%w: %d trailing bytes after end section", ErrCorrupt, len(d.buf))
	}
	if !seen[tagDimensions] || !seen[tagProperties] {
		return Snapshot{}, fmt.Errorf("%w: missing dimensions or properties section", ErrCorrupt)
	}
	return snap, nil
}

func decodeDimensions(body []byte) ([]DimensionRecord, error) {
	d := &decoder{buf: body}
	count := d.u32()
	var out []DimensionRecord
	for i := uint32(0); i < count && d.err == nil; i++ {
		var rec DimensionRecord
		rec.Name = d.str()
		rec.Structured = d.bool()
		rec.Values = d.floats(d.u64())
		out = append(out, rec)
	}
	return out, d.finish("dimensions")
}

func decodeProperties(body []byte) ([]PropertyRecord, error) {
	d := &decoder{buf: body}
	count := d.u32()
	var out []PropertyRecord
	for i := uint32(0); i < count && d.err == nil; i++ {
		var rec PropertyRecord
		rec.Name = d.str()
		rank := d.u32()
		size := uint64(1)
		for j := uint32(0); j < rank && d.err == nil; j++ {
			ext := d.u64()
			if ext == 0 || ext > uint64(len(d.buf)) || size > uint64(len(d.buf))/ext {
				d.fail(fmt.Sprintf("property %q: extent %d does not fit the section", rec.Name, ext))
				break
			}
			size *= ext
			rec.Shape = append(rec.Shape, int(ext))
		}
		rec.Data = d.floats(size)
		out = append(out, rec)
	}
	return out, d.finish("properties")
}

func decodeAttributes(body []byte, typed bool) (map[string]any, error) {
	d := &decoder{buf: body}
	name := d.str()
	encoded := d.take(d.u64())
	if err := d.finish("attributes"); err != nil {
		return nil, err
	}

	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown attributes codec %q", ErrCorrupt, name)
	}
	var attrs map[string]any
	if err := c.Unmarshal(encoded, &attrs); err != nil {
		return nil, fmt.Errorf("%w: attributes: %w", ErrCorrupt, err)
	}
	if attrs == nil {
		return map[string]any{}, nil
	}
	if typed {
		return decodeTypedAttributes(attrs)
	}
	return attrs, nil
}

// encoder appends to buf and records the first length that does not fit
// its wire width.
type encoder struct {
	buf []byte
	err error
}

func (e *encoder) u8(v uint8)   { e.buf = append(e.buf, v) }
func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) u64(v uint64) { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }

func (e *encoder) bool(v bool) {
	if v {
		e.u8(1)
	} else {
		e.u8(0)
	}
}

func (e *encoder) count(n int) {
	v, err := conv.IntToUint32(n)
	if err != nil && e.err == nil {
		e.err = err
	}
	e.u32(v)
}

func (e *encoder) length(n int) {
	v, err := conv.IntToUint64(n)
	if err != nil && e.err == nil {
		e.err = err
	}
	e.u64(v)
}

func (e *encoder) str(s string) {
	e.count(len(s))
	e.buf = append(e.buf, s...)
}

func (e *encoder) bytes(b []byte) {
	e.length(len(b))
	e.buf = append(e.buf, b...)
}

func (e *encoder) floats(vs []float64) {
	for _, v := range vs {
		e.u64(math.Float64bits(v))
	}
}

func (e *encoder) section(tag uint8, body []byte) {
	e.u8(tag)
	e.bytes(body)
}

// decoder reads from buf and records the first error; later reads return
// zero values.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) fail(msg string) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s", ErrCorrupt, msg)
	}
}

func (d *decoder) take(n uint64) []byte {
	if d.err != nil {
		return nil
	}
	if n > uint64(len(d.buf)) {
		d.fail(fmt.Sprintf("need %d bytes, have %d", n, len(d.buf)))
		return nil
	}
	b := d.buf[:n]
	d.buf = d.buf[n:]
	return b
}

func (d *decoder) u8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) u64() uint64 {
	if b := d.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (d *decoder) bool() bool {
	switch d.u8() {
	case 0:
		return false
	case 1:
		return true
	default:
		d.fail("invalid boolean")
		return false
	}
}

func (d *decoder) str() string {
	return string(d.take(uint64(d.u32())))
}

func (d *decoder) floats(n uint64) []float64 {
	if d.err != nil {
		return nil
	}
	if n > uint64(len(d.buf))/8 {
		d.fail(fmt.Sprintf("%d values do not fit in %d bytes", n, len(d.buf)))
		return nil
	}
	b := d.take(n * 8)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out
}

func (d *decoder) finish(section string) error {
	if d.err == nil && len(d.buf) != 0 {
		d.fail(fmt.Sprintf("%d trailing bytes in %s section", len(d.buf), section))
	}
	return d.err
}
