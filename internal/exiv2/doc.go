// Package exiv2 runs the exiv2 command-line tool and parses its IPTC text
// output.
//
// This package has no photorganiser-specific dependencies.
//
// Primary entry points:
//   - Run: executes `exiv2 -PI <file>` and captures stdout, stderr, and the exit code
//   - ParseTags: splits printed output into one tag string per line
//
// exiv2 prints each datum as whitespace-separated columns (key, type, size,
// value). The value starts at the fourth column and may itself contain spaces.
package exiv2
