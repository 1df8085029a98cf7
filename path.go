package blockfs

import "strings"

// splitPath splits a slash-separated path into non-empty, non-"." parts,
// reporting whether the path was absolute and whether it ended in "/"
// (spec.md's "trailing slash signals the path names a directory").
func splitPath(path string) (parts []string, absolute, trailingSlash bool) {
	absolute = strings.HasPrefix(path, "/")
	trailingSlash = strings.HasSuffix(path, "/")
	for _, c := range strings.Split(path, "/") {
		if c == "" || c == "." {
			continue
		}
		parts = append(parts, c)
	}
	return parts, absolute, trailingSlash
}

// resolve implements the path resolution contract: it descends into every
// component but the last, requiring each to be an existing directory, and
// returns the block of the deepest resolved directory plus the unresolved
// final component name (empty if the path ends in a slash or consists only
// of "." components; a final ".." is returned as the name, not followed).
func (fsys *FS) resolve(path string) (dirBlock int, final string, err error) {
	parts, absolute, trailingSlash := splitPath(path)
	cur := fsys.cwd
	if absolute {
		cur = RootBlock
	}
	if len(parts) == 0 {
		return cur, "", nil
	}
	last := len(parts) - 1
	if trailingSlash {
		last = len(parts) // all parts are intermediate directories.
	}
	for i := 0; i < last; i++ {
		cur, err = fsys.descend(cur, parts[i])
		if err != nil {
			return 0, "", err
		}
	}
	if trailingSlash {
		return cur, "", nil
	}
	return cur, parts[last], nil
}

// descend moves from dirBlock into its child component c, which must
// exist and be a directory. "." and ".." are handled specially.
func (fsys *FS) descend(dirBlock int, c string) (int, error) {
	switch c {
	case ".":
		return dirBlock, nil
	case "..":
		return fsys.dirParent(dirBlock)
	}
	e, _, err := fsys.dirFindEntry(dirBlock, c)
	if err != nil {
		return 0, newErr(PathNotFound, c)
	}
	if e.typ != TypeDir {
		return 0, newErr(PathNotFound, c)
	}
	return int(e.firstBlk), nil
}

// resolveDir resolves path to an existing directory's block number,
// following "." and ".." throughout, including in the final component
// (used by Tree wherever a full directory path, not a parent+name pair,
// is required; Cd walks its path with its own loop).
func (fsys *FS) resolveDir(path string) (int, error) {
	parts, absolute, _ := splitPath(path)
	cur := fsys.cwd
	if absolute {
		cur = RootBlock
	}
	for _, p := range parts {
		var err error
		cur, err = fsys.descend(cur, p)
		if err != nil {
			return 0, err
		}
	}
	return cur, nil
}

// resolveEntry resolves path fully to an existing entry (file or
// directory), returning the entry, the block of its containing
// directory, and its name.
func (fsys *FS) resolveEntry(path string) (e entry, parent int, name string, err error) {
	parent, name, err = fsys.resolve(path)
	if err != nil {
		return entry{}, 0, "", err
	}
	if name == "" {
		// Path named a directory outright (e.g. "a/b/" or "." or "/").
		if parent == RootBlock {
			return entry{name: "/", typ: TypeDir, firstBlk: RootBlock, accessRights: Read | Write | Execute}, RootBlock, "/", nil
		}
		selfName, nameErr := fsys.dirSelfName(parent)
		if nameErr != nil {
			return entry{}, 0, "", nameErr
		}
		gparent, perr := fsys.dirParent(parent)
		if perr != nil {
			return entry{}, 0, "", perr
		}
		e, _, err = fsys.dirFindEntry(gparent, selfName)
		return e, gparent, selfName, err
	}
	e, _, err = fsys.dirFindEntry(parent, name)
	return e, parent, name, err
}

// dirSelfName returns the name by which dirBlock is known in its parent;
// used when a path resolves to a directory with no trailing component.
func (fsys *FS) dirSelfName(dirBlock int) (string, error) {
	parent, err := fsys.dirParent(dirBlock)
	if err != nil {
		return "", err
	}
	return fsys.dirChildName(parent, dirBlock)
}

// validateName checks a final path component against spec.md's naming
// constraints shared by create/mkdir/mv/cp.
func validateName(name string) error {
	if name == "" {
		return newErr(NotFound, "")
	}
	if len(name) > MaxNameLen {
		return newErr(NameTooLong, name)
	}
	return nil
}
