//go:build !unix && !windows

package faultguard

import "testing"

func unreadablePage(t testing.TB) []byte {
	t.Skip("no way to produce an unreadable page on this platform")
	return nil
}
