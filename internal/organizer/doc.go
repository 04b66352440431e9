// Package organizer runs one complete organise pass over a photo directory.
//
// The pass is strictly forward: discover files, read their tags, match a
// year, move each file, then write the report sections to the audit log and
// record the run in the journal. Per-file problems are collected on the
// result; only setup problems (missing root, unsupported modes, a held log
// lock) abort before any file is touched.
//
// Cancellation is honoured between files. Files already moved stay moved and
// the partial run is still reported.
package organizer
