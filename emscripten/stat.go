package emscripten

import (
	"encoding/binary"

	"github.com/wasmlab/emshim/exec"
)

// HostStat is a portable view of a host file-status result. Field widths
// follow the widest host representation; the translator narrows or widens
// them to the guest ABI.
type HostStat struct {
	Dev    uint64
	Ino    uint64
	Mode   uint32
	Nlink  uint32
	UID    uint32
	GID    uint32
	Rdev   uint64
	Size   int64
	Blocks int64

	// Times are in seconds since the epoch.
	Atime int64
	Mtime int64
	Ctime int64
}

// GuestStatSize is the size in bytes of the stat record layout the guest C
// runtime expects.
const GuestStatSize = 80

// Byte offsets of each field in the guest stat layout. The layout replicates
// the Emscripten libc ABI exactly: field order, widths, and the explicit
// padding fields after the narrowed dev and rdev values. The truncated inode
// near the head and the full 64-bit inode at the tail must both be written,
// for guest code compiled against either inode convention.
const (
	statDev          = 0  // u32, narrowed
	statDevPadding   = 4  // u32, explicit zero
	statInoTruncated = 8  // u32, low 32 bits of the inode
	statMode         = 12 // u32
	statNlink        = 16 // u32
	statUID          = 20 // u32
	statGID          = 24 // u32
	statRdev         = 28 // u32, narrowed
	statRdevPadding  = 32 // u32, explicit zero
	statSize         = 36 // u32, narrowed
	statBlksize      = 40 // u32, always guestBlockSize
	statBlocks       = 44 // u32, 0 where the host reports none
	statAtime        = 48 // u64, widened
	statMtime        = 56 // u64, widened
	statCtime        = 64 // u64, widened
	statIno          = 72 // u64, full value
)

// Guests assume this block size regardless of the host's.
const guestBlockSize = 4096

// WriteStat renders a host file-status result into the guest stat layout at
// the given offset in memory 0. The destination region is resolved once
// before any field is written, so a failure never leaves a partial record.
func WriteStat(inst *exec.Instance, offset uint32, st *HostStat) error {
	buf, err := inst.Range(0, offset, GuestStatSize)
	if err != nil {
		return err
	}

	le := binary.LittleEndian
	le.PutUint32(buf[statDev:], uint32(st.Dev))
	le.PutUint32(buf[statDevPadding:], 0)
	le.PutUint32(buf[statInoTruncated:], uint32(st.Ino))
	le.PutUint32(buf[statMode:], st.Mode)
	le.PutUint32(buf[statNlink:], st.Nlink)
	le.PutUint32(buf[statUID:], st.UID)
	le.PutUint32(buf[statGID:], st.GID)
	le.PutUint32(buf[statRdev:], uint32(st.Rdev))
	le.PutUint32(buf[statRdevPadding:], 0)
	le.PutUint32(buf[statSize:], uint32(st.Size))
	le.PutUint32(buf[statBlksize:], guestBlockSize)
	le.PutUint32(buf[statBlocks:], uint32(st.Blocks))
	le.PutUint64(buf[statAtime:], uint64(st.Atime))
	le.PutUint64(buf[statMtime:], uint64(st.Mtime))
	le.PutUint64(buf[statCtime:], uint64(st.Ctime))
	le.PutUint64(buf[statIno:], st.Ino)
	return nil
}
