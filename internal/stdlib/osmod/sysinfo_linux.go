//go:build linux

// Per-OS system introspection backing os.getUptime/memory-info methods,
// split by build tag the way the prior interpreter splits builtins_term_<os>.go.
package osmod

import "golang.org/x/sys/unix"

func uptimeSeconds() (int64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return int64(info.Uptime), nil
}

func memoryInfo() (totalBytes, freeBytes uint64, err error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, 0, err
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return uint64(info.Totalram) * unit, uint64(info.Freeram) * unit, nil
}
