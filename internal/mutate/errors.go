package mutate

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidIndexError reports a position outside [0, Len) for sources or [0, Len] for insertion points.
type InvalidIndexError struct {
	Kind  string
	Index int
	Len   int
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid %s index %d (len %d)", e.Kind, e.Index, e.Len)
}

type UnknownActionError struct {
	Type string
}

func (e UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action type: %q", e.Type)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsInvalidIndex(err error) bool {
	var ii InvalidIndexError
	return errors.As(err, &ii)
}

func errBoard(id string) error { return NotFoundError{Kind: "board", ID: id} }
func errList(id string) error  { return NotFoundError{Kind: "list", ID: id} }
func errTask(id string) error  { return NotFoundError{Kind: "task", ID: id} }
