package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Tasks (cards) in a list",
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksRemoveCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var name, description, owner string
	cmd := &cobra.Command{
		Use:   "add <board> <list>",
		Short: "Append a task to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return writeErr(cmd, errors.New("missing --name"))
			}
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, _, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			l, _, err := resolveList(b, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			t := model.Task{TaskName: name, TaskDescription: description, TaskOwner: strings.TrimSpace(owner)}
			_, applied, err := sess.Dispatch(cmd.Context(), mutate.AddTaskAction{BoardID: b.BoardID, ListID: l.ListID, Task: t})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": applied.(mutate.AddTaskAction).Task})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Task name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	cmd.Flags().StringVar(&owner, "owner", "", "Task owner")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var name, description, owner string
	cmd := &cobra.Command{
		Use:   "update <board> <list> <task>",
		Short: "Update a task's name, description or owner",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("description") && !flags.Changed("owner") {
				return writeErr(cmd, errors.New("nothing to update (use --name, --description or --owner)"))
			}
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, _, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			l, _, err := resolveList(b, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, _, err := resolveTask(l, args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			t := *cur
			if flags.Changed("name") {
				t.TaskName = strings.TrimSpace(name)
			}
			if flags.Changed("description") {
				t.TaskDescription = description
			}
			if flags.Changed("owner") {
				t.TaskOwner = strings.TrimSpace(owner)
			}
			if _, _, err := sess.Dispatch(cmd.Context(), mutate.UpdateTaskAction{BoardID: b.BoardID, ListID: l.ListID, Task: t}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New task name")
	cmd.Flags().StringVar(&description, "description", "", "New task description (markdown)")
	cmd.Flags().StringVar(&owner, "owner", "", "New task owner")
	return cmd
}

func newTasksRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <board> <list> <task>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, _, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			l, _, err := resolveList(b, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, _, err := resolveTask(l, args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, err := sess.Dispatch(cmd.Context(), mutate.DeleteTaskAction{BoardID: b.BoardID, ListID: l.ListID, TaskID: t.TaskID}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": t.TaskID}})
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var taskID, toList string
	var toIndex int
	cmd := &cobra.Command{
		Use:   "move <board>",
		Short: "Move a task within its list or to another list",
		Example: strings.TrimSpace(`
  # Move a task to the top of "Done"
  kanban tasks move Main --task task-1a2b3c4d --to-list Done --to-index 0

  # Move a task to the end of its current list
  kanban tasks move Main --task task-1a2b3c4d
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, bi, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			req, err := planTaskMove(b, bi, taskID, toList, toIndex)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, err := sess.Dispatch(cmd.Context(), mutate.SortAction{SortRequest: req}); err != nil {
				return writeErr(cmd, err)
			}
			nb, _, _ := model.FindBoard(sess.Hier.Current(), b.BoardID)
			return writeOut(cmd, app, map[string]any{"data": nb})
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "Task id (required)")
	cmd.Flags().StringVar(&toList, "to-list", "", "Destination list id or name (default: the task's current list)")
	cmd.Flags().IntVar(&toIndex, "to-index", -1, "Destination index after removal (default: end of list)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

// planTaskMove turns a task id plus destination into a sort request. The task's current list and
// index are looked up here; the engine itself only trusts indexes.
func planTaskMove(b *model.Board, boardIndex int, taskID, toList string, toIndex int) (mutate.SortRequest, error) {
	src, si, ok := model.LocateTask(b, taskID)
	if !ok {
		cands := []candidate{}
		for _, l := range b.Lists {
			for _, t := range l.Tasks {
				cands = append(cands, candidate{id: t.TaskID, name: t.TaskName})
			}
		}
		return mutate.SortRequest{}, notFoundError{kind: "task", ref: taskID, suggest: suggest(taskID, cands)}
	}
	dst := src
	if strings.TrimSpace(toList) != "" {
		l, _, err := resolveList(b, toList)
		if err != nil {
			return mutate.SortRequest{}, err
		}
		dst = l
	}
	if toIndex < 0 {
		toIndex = len(dst.Tasks)
		if dst == src {
			toIndex--
		}
	}
	return mutate.SortRequest{
		BoardIndex:          boardIndex,
		DroppableIDStart:    src.ListID,
		DroppableIDEnd:      dst.ListID,
		DroppableIndexStart: si,
		DroppableIndexEnd:   toIndex,
		DraggableID:         src.Tasks[si].TaskID,
	}, nil
}
