// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync capabilities
//   - [FileSystem]: filesystem operations (open, remove, rename, etc.)
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that injects I/O errors per file pattern
//
// Production code uses fs.Default (a [LocalFS]). Tests inject a [FaultyFS]
// to simulate failures partway through a text dump or a blob write:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("bulkdata_T", fs.Fault{FailOnOpen: true})
//
// Filesystem calls take no context.Context; local operations are not
// interruptible at the syscall level. Slow remote storage goes through
// blobstore, which is context-aware.
package fs
