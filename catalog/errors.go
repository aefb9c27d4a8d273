package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for matching with errors.Is. Operations return the typed
// errors below, which carry the offending path/name/index; user-facing
// messages are the transport layer's job.
var (
	ErrNotFound        = errors.New("not found")
	ErrParentNotFound  = errors.New("parent folder not found")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrForbidden       = errors.New("forbidden operation")
	ErrLocationMissing = errors.New("original location missing")
	ErrIndexOutOfRange = errors.New("recycle bin index out of range")
	ErrInvalidQuery    = errors.New("empty search query")
	ErrInvalidInput    = errors.New("invalid input")
)

// PathError reports a parent path that failed to resolve, identifying the
// deepest segment that had no matching folder.
type PathError struct {
	Path    string // full requested path
	Segment string // deepest segment that did not resolve
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot resolve %q: no folder %q", e.Path, e.Segment)
}

func (e *PathError) Is(target error) bool { return target == ErrParentNotFound }

// NotFoundError reports a name with no match inside a resolved parent folder.
type NotFoundError struct {
	Path string // canonical parent folder path
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q not found in %q", e.Name, e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateError reports a sibling name collision on create or restore.
type DuplicateError struct {
	Path string // canonical parent folder path
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%q already exists in %q", e.Name, e.Path)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicateName }

// ForbiddenError reports an operation the tree never allows, such as
// deleting the root folder.
type ForbiddenError struct {
	Name string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("operation not allowed on %q", e.Name)
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// LocationError reports a restore whose recorded parent folder no longer
// exists in the live tree.
type LocationError struct {
	OriginalPath string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("original location of %q no longer exists", e.OriginalPath)
}

func (e *LocationError) Is(target error) bool { return target == ErrLocationMissing }

// IndexError reports a recycle bin index outside the current entry range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("recycle bin index %d out of range (%d entries)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// EntryError reports a recycle bin entry ID with no matching entry.
type EntryError struct {
	ID uuid.UUID
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("no recycle bin entry %s", e.ID)
}

func (e *EntryError) Is(target error) bool { return target == ErrNotFound }

// InputError reports a missing or malformed required field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// QueryError reports a search with no criteria supplied.
type QueryError struct{}

func (e *QueryError) Error() string {
	return "search requires at least one criterion"
}

func (e *QueryError) Is(target error) bool { return target == ErrInvalidQuery }
