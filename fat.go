package blockfs

import (
	"encoding/binary"
	"log/slog"
)

// loadFAT reads FATBlock into the in-memory FAT. It returns an error (and
// leaves fsys.fat untouched) if the block looks uninitialized, which
// signals Mount to format fresh.
func (fsys *FS) loadFAT() error {
	buf := make([]byte, fsys.blockSize)
	if err := fsys.readBlock(FATBlock, buf); err != nil {
		return err
	}
	fat := make([]int16, fsys.blockCount)
	for i := range fat {
		fat[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	if fat[RootBlock] != fatEOF || fat[FATBlock] != fatEOF {
		return newErr(IOError, "FAT reserved slots not EOF")
	}
	fsys.fat = fat
	return nil
}

// persist writes the in-memory FAT back to FATBlock. Every user-visible
// operation that mutates the FAT calls persist before returning success.
func (fsys *FS) persist() error {
	fsys.trace("fat:persist")
	buf := make([]byte, fsys.blockSize)
	for i, v := range fsys.fat {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	return fsys.writeBlock(FATBlock, buf)
}

// allocateOne scans FAT indices [2, blockCount) in ascending order for the
// first free slot, marks it EOF, and returns its index. This lowest-
// free-first policy is observable and required for test determinism.
func (fsys *FS) allocateOne() (int, error) {
	for i := 2; i < len(fsys.fat); i++ {
		if fsys.fat[i] == fatFree {
			fsys.fat[i] = fatEOF
			fsys.trace("fat:allocate", slog.Int("block", i))
			return i, nil
		}
	}
	return 0, newErr(NoSpace, "")
}

// allocateChain allocates n blocks (n >= 1), linking them in ascending
// allocation order, and returns the first block. On NoSpace mid-way it
// rolls back every block it allocated this call, satisfying the
// best-effort two-phase recommendation: create/cp/mkdir/append never leak
// a partial chain from allocateChain itself.
func (fsys *FS) allocateChain(n int) (int, error) {
	if n < 1 {
		n = 1
	}
	blocks := make([]int, 0, n)
	for len(blocks) < n {
		b, err := fsys.allocateOne()
		if err != nil {
			fsys.freeBlocks(blocks)
			return 0, err
		}
		blocks = append(blocks, b)
	}
	for i := 0; i < len(blocks)-1; i++ {
		fsys.fat[blocks[i]] = int16(blocks[i+1])
	}
	return blocks[0], nil
}

// freeBlocks marks each block in blocks free again, without following FAT
// links; used to roll back a partially-allocated chain.
func (fsys *FS) freeBlocks(blocks []int) {
	for _, b := range blocks {
		fsys.fat[b] = fatFree
	}
}

// chainNext returns the successor of block in its chain, or -1 at EOF.
func (fsys *FS) chainNext(block int) int {
	v := fsys.fat[block]
	if v == fatEOF {
		return -1
	}
	return int(v)
}

// freeChain walks the chain from start, setting each visited slot free,
// stopping at EOF.
func (fsys *FS) freeChain(start int) {
	fsys.trace("fat:free_chain", slog.Int("start", start))
	b := start
	for b != -1 {
		next := fsys.chainNext(b)
		fsys.fat[b] = fatFree
		b = next
	}
}

// chainLen walks the chain from start and returns its length (number of
// blocks visited before EOF).
func (fsys *FS) chainLen(start int) int {
	n := 0
	b := start
	for b != -1 {
		n++
		b = fsys.chainNext(b)
	}
	return n
}

// chainBlocks returns every block visited in the chain from start, in
// chain order.
func (fsys *FS) chainBlocks(start int) []int {
	var blocks []int
	b := start
	for b != -1 {
		blocks = append(blocks, b)
		b = fsys.chainNext(b)
	}
	return blocks
}

// freeBlockCount returns the number of FAT slots currently free, used by
// the supplemented df() operation.
func (fsys *FS) freeBlockCount() int {
	n := 0
	for i := 2; i < len(fsys.fat); i++ {
		if fsys.fat[i] == fatFree {
			n++
		}
	}
	return n
}
