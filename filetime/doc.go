// Package filetime reads the creation (birth) time of files where the
// platform records one.
package filetime
