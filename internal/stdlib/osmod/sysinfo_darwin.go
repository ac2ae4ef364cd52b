//go:build darwin

package osmod

import (
	"encoding/binary"
	"time"

	"golang.org/x/sys/unix"
)

func uptimeSeconds() (int64, error) {
	tv, err := unix.SysctlTimeval("kern.boottime")
	if err != nil {
		return 0, err
	}
	boot := time.Unix(tv.Sec, int64(tv.Usec)*int64(time.Microsecond))
	return int64(time.Since(boot).Seconds()), nil
}

func memoryInfo() (totalBytes, freeBytes uint64, err error) {
	raw, err := unix.SysctlRaw("hw.memsize")
	if err != nil {
		return 0, 0, err
	}
	if len(raw) >= 8 {
		totalBytes = binary.LittleEndian.Uint64(raw)
	}
	// Free-memory requires a vm_stat-style Mach call this package doesn't
	// reach for; report total only and let the caller treat free as unknown.
	return totalBytes, 0, nil
}
