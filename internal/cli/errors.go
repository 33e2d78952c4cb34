package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"kanban-cli/internal/model"
)

type notFoundError struct {
	kind    string
	ref     string
	suggest string
}

func (e notFoundError) Error() string {
	if e.suggest != "" {
		return fmt.Sprintf("%s not found: %s (did you mean %q?)", e.kind, e.ref, e.suggest)
	}
	return fmt.Sprintf("%s not found: %s", e.kind, e.ref)
}

type ambiguousError struct {
	kind string
	ref  string
	ids  []string
}

func (e ambiguousError) Error() string {
	return fmt.Sprintf("%s name %q is ambiguous (matches %s); use an id", e.kind, e.ref, strings.Join(e.ids, ", "))
}

// candidate is one id/name pair that a reference may match.
type candidate struct {
	id   string
	name string
}

// resolveRef returns the index of the candidate whose id equals ref (as given, then trimmed), or
// whose name matches the trimmed ref case-insensitively. A miss carries the closest id or name as
// a suggestion.
func resolveRef(kind, ref string, cands []candidate) (int, error) {
	for _, r := range []string{ref, strings.TrimSpace(ref)} {
		for i, c := range cands {
			if c.id == r {
				return i, nil
			}
		}
	}
	ref = strings.TrimSpace(ref)
	var hits []int
	for i, c := range cands {
		if strings.EqualFold(c.name, ref) {
			hits = append(hits, i)
		}
	}
	switch len(hits) {
	case 1:
		return hits[0], nil
	case 0:
		return -1, notFoundError{kind: kind, ref: ref, suggest: suggest(ref, cands)}
	default:
		ids := make([]string, 0, len(hits))
		for _, i := range hits {
			ids = append(ids, cands[i].id)
		}
		return -1, ambiguousError{kind: kind, ref: ref, ids: ids}
	}
}

// suggest picks the id or name closest to ref, if it is close enough to be a plausible typo.
func suggest(ref string, cands []candidate) string {
	if ref == "" {
		return ""
	}
	best, bestDist := "", -1
	try := func(s string) {
		if s == "" {
			return
		}
		d := levenshtein.ComputeDistance(strings.ToLower(ref), strings.ToLower(s))
		if bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	for _, c := range cands {
		try(c.id)
		try(c.name)
	}
	limit := len(ref) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

func resolveBoard(st model.State, ref string) (*model.Board, int, error) {
	cands := make([]candidate, 0, len(st.Boards))
	for _, b := range st.Boards {
		cands = append(cands, candidate{id: b.BoardID, name: b.BoardName})
	}
	i, err := resolveRef("board", ref, cands)
	if err != nil {
		return nil, -1, err
	}
	return st.Boards[i], i, nil
}

func resolveList(b *model.Board, ref string) (*model.List, int, error) {
	cands := make([]candidate, 0, len(b.Lists))
	for _, l := range b.Lists {
		cands = append(cands, candidate{id: l.ListID, name: l.ListName})
	}
	i, err := resolveRef("list", ref, cands)
	if err != nil {
		return nil, -1, err
	}
	return b.Lists[i], i, nil
}

func resolveTask(l *model.List, ref string) (*model.Task, int, error) {
	cands := make([]candidate, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		cands = append(cands, candidate{id: t.TaskID, name: t.TaskName})
	}
	i, err := resolveRef("task", ref, cands)
	if err != nil {
		return nil, -1, err
	}
	return l.Tasks[i], i, nil
}
