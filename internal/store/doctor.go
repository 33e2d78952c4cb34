package store

import (
	"fmt"
	"strings"

	"kanban-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`

	// Path locates the node as board[i].lists[j].tasks[k].
	Path       string `json:"path"`
	EntityKind string `json:"entityKind,omitempty"`
	EntityID   string `json:"entityId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks a snapshot for problems the state engine does not guard against. Duplicate ids
// are the main one: lookups return the first match, so a shadowed entity can never be edited.
// Ids are compared across all entity kinds.
func Doctor(st model.State) DoctorReport {
	var issues []DoctorIssue
	firstSeen := map[string]string{}

	check := func(kind, id, name, path string) {
		switch {
		case strings.TrimSpace(id) == "":
			issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "blank_id", Path: path, EntityKind: kind,
				Message: fmt.Sprintf("%s at %s has no id", kind, path)})
		case firstSeen[id] != "":
			issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "duplicate_id", Path: path, EntityKind: kind, EntityID: id,
				Message: fmt.Sprintf("%s id %s at %s duplicates %s", kind, id, path, firstSeen[id])})
		default:
			firstSeen[id] = path
		}
		if strings.TrimSpace(name) == "" {
			issues = append(issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "blank_name", Path: path, EntityKind: kind, EntityID: id,
				Message: fmt.Sprintf("%s %s has no name", kind, id)})
		}
	}
	missing := func(kind, path string) {
		issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "missing_node", Path: path, EntityKind: kind,
			Message: fmt.Sprintf("%s at %s is null", kind, path)})
	}

	for bi, b := range st.Boards {
		bp := fmt.Sprintf("board[%d]", bi)
		if b == nil {
			missing("board", bp)
			continue
		}
		check("board", b.BoardID, b.BoardName, bp)
		for li, l := range b.Lists {
			lp := fmt.Sprintf("%s.lists[%d]", bp, li)
			if l == nil {
				missing("list", lp)
				continue
			}
			check("list", l.ListID, l.ListName, lp)
			for ti, t := range l.Tasks {
				tp := fmt.Sprintf("%s.tasks[%d]", lp, ti)
				if t == nil {
					missing("task", tp)
					continue
				}
				check("task", t.TaskID, t.TaskName, tp)
			}
		}
	}
	return DoctorReport{Issues: issuesOrEmpty(issues)}
}

func issuesOrEmpty(xs []DoctorIssue) []DoctorIssue {
	if xs == nil {
		return []DoctorIssue{}
	}
	return xs
}
