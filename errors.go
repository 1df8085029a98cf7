package blockfs

// ErrKind identifies the category of a blockfs error, mirroring the
// error-kind table of the design spec. Compare with errors.Is against the
// exported sentinels below; Error.Kind also works directly.
type ErrKind uint8

const (
	_ ErrKind = iota
	PathNotFound
	NotFound
	Duplicate
	NameTooLong
	DirectoryFull
	NoSpace
	PermissionDenied
	IsDirectory
	NotADirectory
	DirectoryNotEmpty
	InvalidMode
	IOError
)

var errKindStrings = [...]string{
	PathNotFound:      "path not found",
	NotFound:          "not found",
	Duplicate:         "duplicate name",
	NameTooLong:       "name too long",
	DirectoryFull:     "directory full",
	NoSpace:           "no space left",
	PermissionDenied:  "permission denied",
	IsDirectory:       "is a directory",
	NotADirectory:     "not a directory",
	DirectoryNotEmpty: "directory not empty",
	InvalidMode:       "invalid mode",
	IOError:           "I/O error",
}

func (k ErrKind) String() string {
	if int(k) < len(errKindStrings) && errKindStrings[k] != "" {
		return errKindStrings[k]
	}
	return "unknown error"
}

// Error is the error type returned by every blockfs operation that fails.
type Error struct {
	Kind ErrKind
	msg  string // optional detail, e.g. the offending path or I/O cause.
}

func (e *Error) Error() string {
	if e.msg == "" {
		return "blockfs: " + e.Kind.String()
	}
	return "blockfs: " + e.Kind.String() + ": " + e.msg
}

// Is lets errors.Is(err, SomeSentinel) match by kind, ignoring message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newErr(kind ErrKind, msg string) *Error { return &Error{Kind: kind, msg: msg} }

// Sentinel errors for use with errors.Is. Each carries no message; compare
// by kind only.
var (
	ErrPathNotFound      = &Error{Kind: PathNotFound}
	ErrNotFound          = &Error{Kind: NotFound}
	ErrDuplicate         = &Error{Kind: Duplicate}
	ErrNameTooLong       = &Error{Kind: NameTooLong}
	ErrDirectoryFull     = &Error{Kind: DirectoryFull}
	ErrNoSpace           = &Error{Kind: NoSpace}
	ErrPermissionDenied  = &Error{Kind: PermissionDenied}
	ErrIsDirectory       = &Error{Kind: IsDirectory}
	ErrNotADirectory     = &Error{Kind: NotADirectory}
	ErrDirectoryNotEmpty = &Error{Kind: DirectoryNotEmpty}
	ErrInvalidMode       = &Error{Kind: InvalidMode}
	ErrIOError           = &Error{Kind: IOError}
)
