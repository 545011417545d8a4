// +build linux

package emscripten

import (
	"golang.org/x/sys/unix"
)

// Stat returns the host's view of the named file.
func Stat(path string) (*HostStat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, err
	}
	return newHostStat(&st), nil
}

// Lstat is like Stat but does not follow symbolic links.
func Lstat(path string) (*HostStat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, err
	}
	return newHostStat(&st), nil
}

// Fstat returns the host's view of an open file descriptor.
func Fstat(fd int) (*HostStat, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, err
	}
	return newHostStat(&st), nil
}

func newHostStat(st *unix.Stat_t) *HostStat {
	return &HostStat{
		Dev:    uint64(st.Dev),
		Ino:    uint64(st.Ino),
		Mode:   uint32(st.Mode),
		Nlink:  uint32(st.Nlink),
		UID:    st.Uid,
		GID:    st.Gid,
		Rdev:   uint64(st.Rdev),
		Size:   st.Size,
		Blocks: st.Blocks,
		Atime:  st.Atim.Sec,
		Mtime:  st.Mtim.Sec,
		Ctime:  st.Ctim.Sec,
	}
}
