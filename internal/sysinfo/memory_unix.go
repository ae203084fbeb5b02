//go:build unix

// Package sysinfo reports OS-level resource usage for the run report.
package sysinfo

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PeakRSSMB returns the process's peak resident set size in megabytes.
// ru_maxrss is kilobytes on Linux and bytes on Darwin.
func PeakRSSMB() int64 {
	var usage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &usage); err != nil {
		return 0
	}
	if runtime.GOOS == "darwin" {
		return usage.Maxrss / (1024 * 1024)
	}
	return usage.Maxrss / 1024
}
