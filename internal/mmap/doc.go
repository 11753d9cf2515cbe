// Package mmap maps result files read-only into memory so persisted
// extinction vectors can be decoded without an intermediate copy.
//
//	m, err := mmap.Open("run.cgmx")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// On unix systems the file is mapped with mmap(2); elsewhere it is read into
// a heap buffer behind the same API. The slice returned by Bytes is invalid
// after Close.
package mmap
