//go:build !linux && !darwin && !windows

package filetime

import "time"

// Created is unsupported on this platform
func Created(path string) (time.Time, bool) {
	return time.Time{}, false
}
