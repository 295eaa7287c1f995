// Package testsupport holds helpers shared by package tests: a finalized
// config rooted in a temp directory, stub binaries on PATH, and byte and
// image fixture writers.
package testsupport
