//go:build windows

package main

import "os"

// shutdownSignals cancel the running conversion.
// syscall.SIGTERM is not delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
