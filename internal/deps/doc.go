// Package deps reports whether the external binaries photorganiser shells
// out to can be resolved.
package deps
