// +build !linux,!darwin

package emscripten

import (
	"os"
	"sync/atomic"
)

// On hosts with no native stat representation the collector synthesizes one
// from os.FileInfo. Inodes are process-local cookies and block counts are
// fixed at 0, matching platforms where the host reports no such field.

var fileCookie uint64

// Stat returns the host's view of the named file.
func Stat(path string) (*HostStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return newHostStat(info), nil
}

// Lstat is like Stat but does not follow symbolic links.
func Lstat(path string) (*HostStat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	return newHostStat(info), nil
}

// Fstat returns the host's view of an open file descriptor.
func Fstat(fd int) (*HostStat, error) {
	f := os.NewFile(uintptr(fd), "")
	if f == nil {
		return nil, os.ErrInvalid
	}
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return newHostStat(info), nil
}

func newHostStat(info os.FileInfo) *HostStat {
	modTime := info.ModTime().Unix()
	return &HostStat{
		Ino:   atomic.AddUint64(&fileCookie, 1),
		Mode:  modeBits(info.Mode()),
		Nlink: 1,
		Size:  info.Size(),
		Atime: modTime,
		Mtime: modTime,
		Ctime: modTime,
	}
}

// POSIX st_mode file type bits.
const (
	hostIFDIR = 0x4000
	hostIFREG = 0x8000
	hostIFLNK = 0xa000
)

func modeBits(mode os.FileMode) uint32 {
	bits := uint32(mode.Perm())
	switch {
	case mode.IsDir():
		bits |= hostIFDIR
	case mode&os.ModeSymlink != 0:
		bits |= hostIFLNK
	case mode.IsRegular():
		bits |= hostIFREG
	}
	return bits
}
