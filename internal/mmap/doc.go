// Package mmap provides read-only memory-mapped file access.
//
// On unix platforms files are mapped with mmap(2) and a sequential access hint
// is given, which suits whole-image reads. Other platforms read the file into
// memory so callers see the same API.
package mmap
