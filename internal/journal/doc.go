// Package journal keeps a SQLite history of organiser runs.
//
// Each run stores one row with its counts and one row per attempted move, so
// `photorganiser history` can show what happened without parsing the audit
// log. The journal is write-once per run; nothing reads it back into the
// pipeline.
package journal
