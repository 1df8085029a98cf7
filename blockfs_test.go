package blockfs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/blockfs/internal/blockdev"
)

func newTestFS(t *testing.T) *FS {
	t.Helper()
	dev := blockdev.NewMemory(512, 256)
	fsys, err := Mount(dev)
	if err != nil {
		t.Fatal(err)
	}
	return fsys
}

func mustCreate(t *testing.T, fsys *FS, path, payload string) {
	t.Helper()
	if err := fsys.Create(path, []byte(payload)); err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
}

// Scenario 1 from the design spec's testable-properties section.
func TestScenario_CreateCatLs(t *testing.T) {
	fsys := newTestFS(t)
	mustCreate(t, fsys, "hello", "hi\n")

	var buf bytes.Buffer
	if err := fsys.Cat("hello", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hi\n" {
		t.Fatalf("cat: got %q want %q", buf.String(), "hi\n")
	}

	entries, err := fsys.Ls()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("ls: got %d entries want 1", len(entries))
	}
	e := entries[0]
	if e.Name != "hello" || e.Dir || e.RightsString() != "rw-" || e.Size != 3 {
		t.Fatalf("ls row mismatch: %+v", e)
	}
}

// Scenario 2.
func TestScenario_MkdirCdPwd(t *testing.T) {
	fsys := newTestFS(t)
	if err := fsys.Mkdir("a"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Mkdir("a/b"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Cd("a/b"); err != nil {
		t.Fatal(err)
	}
	pwd, err := fsys.Pwd()
	if err != nil {
		t.Fatal(err)
	}
	if pwd != "/a/b/" {
		t.Fatalf("pwd: got %q want %q", pwd, "/a/b/")
	}
}

// Scenario 3: a payload spanning two blocks chains correctly.
func TestScenario_MultiBlockChain(t *testing.T) {
	dev := blockdev.NewMemory(4096, 64)
	fsys, err := Mount(dev)
	if err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte("x"), 5000)
	if err := fsys.Create("f", payload); err != nil {
		t.Fatal(err)
	}
	e, _, _, err := fsys.resolveEntry("f")
	if err != nil {
		t.Fatal(err)
	}
	blocks := fsys.chainBlocks(int(e.firstBlk))
	if len(blocks) != 2 {
		t.Fatalf("chain length: got %d want 2", len(blocks))
	}
	if fsys.fat[blocks[0]] != int16(blocks[1]) {
		t.Fatalf("fat[%d] = %d want %d", blocks[0], fsys.fat[blocks[0]], blocks[1])
	}
	if fsys.fat[blocks[1]] != fatEOF {
		t.Fatalf("fat[%d] = %d want EOF", blocks[1], fsys.fat[blocks[1]])
	}
}

// Scenario 4: append adds src's content after dst's original content.
func TestScenario_Append(t *testing.T) {
	fsys := newTestFS(t)
	mustCreate(t, fsys, "f1", "abc\n")
	mustCreate(t, fsys, "f2", "xyz\n")
	if err := fsys.Append("f1", "f2"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := fsys.Cat("f2", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "xyz\nabc\n" {
		t.Fatalf("cat f2: got %q want %q", buf.String(), "xyz\nabc\n")
	}
	info, err := fsys.Stat("f2")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 8 {
		t.Fatalf("size(f2): got %d want 8", info.Size)
	}
}

// Scenario 5: rm refuses a non-empty directory, then succeeds once empty.
func TestScenario_RmDirectoryNotEmpty(t *testing.T) {
	fsys := newTestFS(t)
	if err := fsys.Mkdir("d"); err != nil {
		t.Fatal(err)
	}
	mustCreate(t, fsys, "d/x", "hi\n")

	err := fsys.Rm("d")
	if err == nil || err.(*Error).Kind != DirectoryNotEmpty {
		t.Fatalf("rm d: got %v want DirectoryNotEmpty", err)
	}

	if err := fsys.Rm("d/x"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Rm("d"); err != nil {
		t.Fatal(err)
	}
}

// Scenario 6: append fails PermissionDenied when dst lacks write.
func TestScenario_AppendPermissionDenied(t *testing.T) {
	fsys := newTestFS(t)
	mustCreate(t, fsys, "a", "hi\n")
	if err := fsys.Chmod("4", "a"); err != nil {
		t.Fatal(err)
	}
	err := fsys.Append("a", "a")
	if err == nil || err.(*Error).Kind != PermissionDenied {
		t.Fatalf("append a a: got %v want PermissionDenied", err)
	}
}

func TestFormatErases(t *testing.T) {
	fsys := newTestFS(t)
	mustCreate(t, fsys, "f", "hello\n")
	if err := fsys.Mkdir("d"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Format(); err != nil {
		t.Fatal(err)
	}
	entries, err := fsys.Ls()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("ls after format: got %d entries want 0", len(entries))
	}
	for i := 2; i < len(fsys.fat); i++ {
		if fsys.fat[i] != fatFree {
			t.Fatalf("fat[%d] = %d want FAT_FREE after format", i, fsys.fat[i])
		}
	}
}

func TestCreateDuplicateAndNameTooLong(t *testing.T) {
	fsys := newTestFS(t)
	mustCreate(t, fsys, "dup", "x\n")
	if err := fsys.Create("dup", []byte("y\n")); err == nil || err.(*Error).Kind != Duplicate {
		t.Fatalf("create dup: got %v want Duplicate", err)
	}

	longName := strings.Repeat("a", MaxNameLen+1)
	if err := fsys.Create(longName, []byte("y\n")); err == nil || err.(*Error).Kind != NameTooLong {
		t.Fatalf("create long name: got %v want NameTooLong", err)
	}
}

func TestCatIsDirectoryAndPermissionDenied(t *testing.T) {
	fsys := newTestFS(t)
	if err := fsys.Mkdir("d"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := fsys.Cat("d", &buf); err == nil || err.(*Error).Kind != IsDirectory {
		t.Fatalf("cat d: got %v want IsDirectory", err)
	}

	mustCreate(t, fsys, "noread", "secret\n")
	if err := fsys.Chmod("2", "noread"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Cat("noread", &buf); err == nil || err.(*Error).Kind != PermissionDenied {
		t.Fatalf("cat noread: got %v want PermissionDenied", err)
	}
}

func TestChmodInvalidMode(t *testing.T) {
	fsys := newTestFS(t)
	mustCreate(t, fsys, "f", "x\n")
	if err := fsys.Chmod("8", "f"); err == nil || err.(*Error).Kind != InvalidMode {
		t.Fatalf("chmod 8: got %v want InvalidMode", err)
	}
	if err := fsys.Chmod("abc", "f"); err == nil || err.(*Error).Kind != InvalidMode {
		t.Fatalf("chmod abc: got %v want InvalidMode", err)
	}
}

func TestCdNotADirectoryAndPathNotFound(t *testing.T) {
	fsys := newTestFS(t)
	mustCreate(t, fsys, "f", "x\n")
	if err := fsys.Cd("f"); err == nil || err.(*Error).Kind != NotADirectory {
		t.Fatalf("cd f: got %v want NotADirectory", err)
	}
	if err := fsys.Cd("nope"); err == nil || err.(*Error).Kind != PathNotFound {
		t.Fatalf("cd nope: got %v want PathNotFound", err)
	}
}

func TestRmRejectsRoot(t *testing.T) {
	fsys := newTestFS(t)
	for _, path := range []string{"/", "."} {
		if err := fsys.Rm(path); err == nil || err.(*Error).Kind != PermissionDenied {
			t.Fatalf("rm %q: got %v want PermissionDenied", path, err)
		}
	}
	if fsys.fat[RootBlock] != fatEOF {
		t.Fatalf("fat[RootBlock] = %d, want FAT_EOF after rejected rm", fsys.fat[RootBlock])
	}
}
