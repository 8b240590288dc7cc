//go:build windows

package main

import "syscall"

// manageConsole detaches the console window unless debug output is wanted.
// Launched from Explorer this prevents a persistent console window.
func manageConsole(debug bool) {
	if debug {
		return
	}
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	freeConsole := kernel32.NewProc("FreeConsole")
	freeConsole.Call()
}
