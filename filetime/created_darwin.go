//go:build darwin

package filetime

import (
	"os"
	"syscall"
	"time"
)

// Created returns the birth time of path
func Created(path string) (time.Time, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}

	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(stat.Birthtimespec.Unix()), true
}
