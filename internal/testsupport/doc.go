// Package testsupport holds fixtures shared by package tests: temp-dir
// configs, a scripted exiv2 stub, and small filesystem helpers.
package testsupport
