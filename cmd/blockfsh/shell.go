package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/soypat/blockfs"
	"github.com/soypat/blockfs/internal/blockdev"
	"github.com/soypat/blockfs/internal/config"
)

// newMountedFS mounts dev, wiring up structured logging per cfg.LogLevel.
func newMountedFS(cfg config.Config, dev *blockdev.File) (*blockfs.FS, error) {
	fsys, err := blockfs.Mount(dev)
	if err != nil {
		return nil, err
	}
	fsys.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))
	return fsys, nil
}

// shell is the line-oriented REPL described in spec.md §6: each line is
// tokenized and dispatched to a blockfs operation; create's payload is
// read from the same stdin stream the shell reads commands from.
type shell struct {
	fsys *blockfs.FS
	in   *bufio.Reader
	out  io.Writer
	done bool
}

func newShell(fsys *blockfs.FS, in io.Reader, out io.Writer) *shell {
	return &shell{fsys: fsys, in: bufio.NewReader(in), out: out}
}

func (sh *shell) run() error {
	for {
		line, err := sh.in.ReadString('\n')
		line = strings.TrimRight(line, "\n")
		if line != "" {
			sh.dispatch(line)
		}
		if sh.done {
			return nil
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// dispatch tokenizes one command line with shlex (so quoted names with
// spaces survive) and runs it, printing diagnostics to sh.out. It never
// returns an error: per spec.md §6, a failed operation only affects that
// command's 0/-1 result, not the shell's ability to keep reading.
func (sh *shell) dispatch(line string) {
	fields, err := shlex.Split(line)
	if err != nil || len(fields) == 0 {
		fmt.Fprintln(sh.out, "-1\tparse error")
		return
	}
	cmd, args := fields[0], fields[1:]
	var opErr error
	switch cmd {
	case "format":
		opErr = sh.fsys.Format()
	case "create":
		opErr = sh.cmdCreate(args)
	case "cat":
		opErr = sh.cmdCat(args)
	case "ls":
		opErr = sh.cmdLs(args)
	case "cp":
		opErr = sh.cmdCp(args)
	case "mv":
		opErr = sh.cmdMv(args)
	case "rm":
		opErr = sh.cmdRm(args)
	case "append":
		opErr = sh.cmdAppend(args)
	case "mkdir":
		opErr = sh.cmdMkdir(args)
	case "cd":
		opErr = sh.cmdCd(args)
	case "pwd":
		opErr = sh.cmdPwd(args)
	case "chmod":
		opErr = sh.cmdChmod(args)
	case "stat":
		opErr = sh.cmdStat(args)
	case "tree":
		opErr = sh.cmdTree(args)
	case "df":
		opErr = sh.cmdDf(args)
	case "exit", "quit":
		sh.done = true
		return
	default:
		fmt.Fprintf(sh.out, "-1\tunknown command %q\n", cmd)
		return
	}
	if opErr != nil {
		fmt.Fprintf(sh.out, "-1\t%s\n", opErr.Error())
		return
	}
	fmt.Fprintln(sh.out, "0")
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (sh *shell) cmdCreate(args []string) error {
	path := argAt(args, 0)
	payload, err := blockfs.ReadPayloadUntilBlank(sh.in)
	if err != nil {
		return err
	}
	return sh.fsys.Create(path, payload)
}

func (sh *shell) cmdCat(args []string) error {
	return sh.fsys.Cat(argAt(args, 0), sh.out)
}

func (sh *shell) cmdLs([]string) error {
	entries, err := sh.fsys.Ls()
	if err != nil {
		return err
	}
	return blockfs.WriteLs(sh.out, entries)
}

func (sh *shell) cmdCp(args []string) error { return sh.fsys.Cp(argAt(args, 0), argAt(args, 1)) }
func (sh *shell) cmdMv(args []string) error { return sh.fsys.Mv(argAt(args, 0), argAt(args, 1)) }
func (sh *shell) cmdRm(args []string) error { return sh.fsys.Rm(argAt(args, 0)) }
func (sh *shell) cmdAppend(args []string) error {
	return sh.fsys.Append(argAt(args, 0), argAt(args, 1))
}
func (sh *shell) cmdMkdir(args []string) error { return sh.fsys.Mkdir(argAt(args, 0)) }
func (sh *shell) cmdCd(args []string) error    { return sh.fsys.Cd(argAt(args, 0)) }

func (sh *shell) cmdPwd([]string) error {
	p, err := sh.fsys.Pwd()
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, p)
	return nil
}

func (sh *shell) cmdChmod(args []string) error {
	return sh.fsys.Chmod(argAt(args, 0), argAt(args, 1))
}

func (sh *shell) cmdStat(args []string) error {
	info, err := sh.fsys.Stat(argAt(args, 0))
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%+v\n", info)
	return nil
}

func (sh *shell) cmdTree(args []string) error {
	entries, err := sh.fsys.Tree(argAt(args, 0))
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintln(sh.out, e.Path)
	}
	return nil
}

func (sh *shell) cmdDf([]string) error {
	d := sh.fsys.Df()
	fmt.Fprintf(sh.out, "total %d free %d used %d\n", d.TotalBlocks, d.FreeBlocks, d.UsedBlocks)
	return nil
}
