//go:build !unix

package sysinfo

import "runtime"

// PeakRSSMB approximates peak memory from the Go heap high-water mark
// on platforms without getrusage.
func PeakRSSMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.HeapSys / (1024 * 1024))
}
