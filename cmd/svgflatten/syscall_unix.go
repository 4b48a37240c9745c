//go:build linux || darwin || netbsd || solaris || openbsd

package main

import (
	"os"
	"syscall"
)

var supportsGetOwnership = true

func getOwnership(info os.FileInfo) (int, int, bool) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(stat.Uid), int(stat.Gid), true
	}
	return 0, 0, false
}
