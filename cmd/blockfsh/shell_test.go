package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/blockfs"
	"github.com/soypat/blockfs/internal/blockdev"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, out *bytes.Buffer, stdin string) *shell {
	t.Helper()
	dev := blockdev.NewMemory(512, 128)
	fsys, err := blockfs.Mount(dev)
	require.NoError(t, err)
	return newShell(fsys, strings.NewReader(stdin), out)
}

func TestShell_CreateCatRoundTrip(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out, "create greeting\nhello world\n\ncat greeting\n")
	require.NoError(t, sh.run())
	require.Equal(t, "0\nhello world\n0\n", out.String())
}

func TestShell_LsReportsCreatedFile(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out, "create a\nx\n\nls\n")
	require.NoError(t, sh.run())
	lines := strings.Split(out.String(), "\n")
	require.Equal(t, "0", lines[0])
	require.Contains(t, out.String(), "name\t type\t accessrights\t size")
	require.Contains(t, out.String(), "a\t file\t rw-\t 2")
}

func TestShell_UnknownCommandReportsError(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out, "frobnicate\n")
	require.NoError(t, sh.run())
	require.Contains(t, out.String(), "-1\tunknown command")
}

func TestShell_FailedOperationReportsMinusOne(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out, "cat nope\n")
	require.NoError(t, sh.run())
	require.True(t, strings.HasPrefix(out.String(), "-1\t"))
}

func TestShell_ExitStopsReadingImmediately(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out, "create a\nx\n\nexit\ncat a\n")
	require.NoError(t, sh.run())
	require.False(t, strings.Contains(out.String(), "x"), "commands after exit must not run")
}

func TestShell_MkdirCdPwd(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out, "mkdir sub\ncd sub\npwd\n")
	require.NoError(t, sh.run())
	require.Contains(t, out.String(), "/sub/")
}

func TestShell_DfReportsBlockCounts(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out, "df\n")
	require.NoError(t, sh.run())
	require.Contains(t, out.String(), "total 126 free 126 used 0")
}
