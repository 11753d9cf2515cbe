// Package fs abstracts the filesystem writes of blobstore.LocalStore so tests
// can inject failures.
//
// Production code uses fs.Default (which is [LocalFS]):
//
//	f, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
//
// Tests wrap it with [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: 16})
//	// inject ffs into the store under test
//
// Operations take no context.Context; local syscalls cannot be interrupted.
package fs
