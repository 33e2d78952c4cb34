package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"kanban-cli/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteBoard publishes a board as static markdown under toDir:
//
//	boards/<boardId>/index.md
//	boards/<boardId>/tasks/<taskId>.md
func WriteBoard(st model.State, boardID string, toDir string, opt WriteOptions) (WriteResult, error) {
	boardID = strings.TrimSpace(boardID)
	if boardID == "" {
		return WriteResult{}, errors.New("missing boardID")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	b, _, ok := model.FindBoard(st, boardID)
	if !ok {
		return WriteResult{}, errors.New("board not found: " + boardID)
	}

	boardDir := filepath.Join(toDir, "boards", b.BoardID)
	tasksDir := filepath.Join(boardDir, "tasks")
	if err := os.MkdirAll(tasksDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexMD, err := RenderBoardMarkdown(b)
	if err != nil {
		return WriteResult{}, err
	}
	indexPath := filepath.Join(boardDir, "index.md")
	if err := writeFile(indexPath, []byte(indexMD), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Task pages: stop on first error.
	written := []string{indexPath}
	for _, l := range b.Lists {
		if l == nil {
			continue
		}
		for _, t := range l.Tasks {
			if t == nil || strings.TrimSpace(t.TaskID) == "" {
				continue
			}
			md, err := RenderTaskMarkdown(b, l, t)
			if err != nil {
				return WriteResult{}, err
			}
			p := filepath.Join(tasksDir, t.TaskID+".md")
			if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
				return WriteResult{}, err
			}
			written = append(written, p)
		}
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
