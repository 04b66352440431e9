// Package preflight provides readiness checks that run before any file is
// touched.
//
// The organize command calls RequireExiv2 and aborts when the metadata tool
// cannot be resolved, so a run never starts moving files it cannot read. The
// `photorganiser check` command calls RunAll to show the same checks as a
// table, including write access to the audit log and journal locations.
package preflight
