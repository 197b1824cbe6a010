//go:build !windows

package app

import "io"

// enableVirtualTerminal is a no-op: Unix terminals interpret ANSI natively.
func enableVirtualTerminal(io.Writer) {}
