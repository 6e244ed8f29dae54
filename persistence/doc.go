// Package persistence provides the binary serialization of a Library.
//
// A library is captured into a Snapshot (ordered dimension definitions,
// properties in insertion order, extra attributes) and encoded as a single
// self-describing blob:
//
//	+-------------------+  magic "SPFL", version, compression,
//	| header (28 bytes) |  raw and stored payload length,
//	+-------------------+  CRC32 of the stored payload
//	| payload           |  tagged sections, optionally LZ4/ZSTD compressed
//	+-------------------+
//
// Each payload section is [tag uint8][length uint64][body]. Readers skip
// tags they do not know. All integers are little-endian.
//
// Blobs written before the versioned format (version 1) are plain JSON
// mappings. They are detected on load and upgraded with UpgradeLegacy.
package persistence
