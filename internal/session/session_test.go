package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kanban-cli/internal/logging"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"
)

func openTemp(t *testing.T) (*Session, store.Store) {
	t.Helper()
	s := store.Store{Dir: t.TempDir(), Log: logging.Discard()}
	sess, err := Open(context.Background(), s, logging.Discard())
	require.NoError(t, err)
	return sess, s
}

func TestDispatchPersistsAndRecords(t *testing.T) {
	ctx := context.Background()
	sess, s := openTemp(t)

	st, applied, err := sess.Dispatch(ctx, mutate.AddBoardAction{Board: model.Board{BoardName: "Main"}})
	require.NoError(t, err)
	require.Len(t, st.Boards, 1)
	boardID := applied.(mutate.AddBoardAction).Board.BoardID
	require.True(t, strings.HasPrefix(boardID, "board-"), boardID)
	require.Equal(t, boardID, st.Boards[0].BoardID)

	_, applied, err = sess.Dispatch(ctx, mutate.AddListAction{BoardID: boardID, List: model.List{ListName: "Todo"}})
	require.NoError(t, err)
	listID := applied.(mutate.AddListAction).List.ListID

	_, _, err = sess.Dispatch(ctx, mutate.AddTaskAction{BoardID: boardID, ListID: listID, Task: model.Task{TaskID: "t1", TaskName: "x"}})
	require.NoError(t, err)

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"t1"}, stored.Boards[0].TaskIDs())

	acts, err := s.ListActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, acts, 3)
	require.Equal(t, mutate.TypeAddTask, acts[0].Type)
	require.Equal(t, "t1", acts[0].EntityID)
	require.Equal(t, mutate.TypeAddBoard, acts[2].Type)
}

func TestDispatchErrorLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	sess, s := openTemp(t)

	_, _, err := sess.Dispatch(ctx, mutate.AddBoardAction{Board: model.Board{BoardID: "b1", BoardName: "Main"}})
	require.NoError(t, err)
	v := sess.Hier.Version()

	st, _, err := sess.Dispatch(ctx, mutate.DeleteListAction{BoardID: "b1", ListID: "nope"})
	require.True(t, mutate.IsNotFound(err), "err=%v", err)
	require.Len(t, st.Boards, 1)
	require.Equal(t, v, sess.Hier.Version())

	acts, err := s.ListActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, acts, 1)
}

func TestModalToggleIsSavedNotRecorded(t *testing.T) {
	ctx := context.Background()
	sess, s := openTemp(t)

	st, _, err := sess.Dispatch(ctx, mutate.SetModalActiveAction{Active: true})
	require.NoError(t, err)
	require.True(t, st.ModalActive)

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, stored.ModalActive)

	acts, err := s.ListActivity(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, acts)
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	sess, s := openTemp(t)

	require.NoError(t, s.Save(ctx, model.State{Boards: []*model.Board{{BoardID: "b9", BoardName: "Elsewhere"}}}))
	st, err := sess.Reload(ctx)
	require.NoError(t, err)
	require.Len(t, st.Boards, 1)
	require.Equal(t, "b9", st.Boards[0].BoardID)
}

func TestFillIDsKeepsExplicitIDs(t *testing.T) {
	a, err := FillIDs(model.State{}, mutate.AddTaskAction{Task: model.Task{TaskID: "mine"}})
	require.NoError(t, err)
	require.Equal(t, "mine", a.(mutate.AddTaskAction).Task.TaskID)

	a, err = FillIDs(model.State{}, mutate.DeleteBoardAction{BoardID: "b"})
	require.NoError(t, err)
	require.Equal(t, mutate.DeleteBoardAction{BoardID: "b"}, a)
}

func TestDescribe(t *testing.T) {
	id, summary := Describe(mutate.SortAction{SortRequest: mutate.SortRequest{
		DroppableIDStart: "l1", DroppableIDEnd: "l2", DroppableIndexStart: 0, DroppableIndexEnd: 3, DraggableID: "t1",
	}})
	require.Equal(t, "t1", id)
	require.Equal(t, "moved t1 from l1[0] to l2[3]", summary)

	require.Equal(t, store.DefaultActivityLimit, ActivityLimit(0))
	require.Equal(t, 5, ActivityLimit(5))
}

type failingSave struct {
	store.Store
}

func (failingSave) Save(context.Context, model.State) error {
	return errors.New("disk full")
}

func TestDispatchSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	s := store.Store{Dir: t.TempDir(), Log: logging.Discard()}
	sess, err := Open(ctx, failingSave{s}, logging.Discard())
	require.NoError(t, err)

	_, _, err = sess.Dispatch(ctx, mutate.AddBoardAction{Board: model.Board{BoardID: "b1", BoardName: "Main"}})
	require.ErrorContains(t, err, "disk full")
	require.Empty(t, sess.Hier.Current().Boards)
	require.Empty(t, sess.Hier.Snapshot().Boards)

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, stored.Boards)

	acts, err := s.ListActivity(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, acts)
}

func TestActivityAuthor(t *testing.T) {
	ctx := context.Background()
	sess, s := openTemp(t)

	_, _, err := sess.Dispatch(ctx, mutate.AddBoardAction{Board: model.Board{BoardID: "b1", BoardName: "Main"}})
	require.NoError(t, err)
	sess.Author = "lee"
	_, _, err = sess.Dispatch(ctx, mutate.RenameBoardAction{BoardID: "b1", BoardName: "Home"})
	require.NoError(t, err)

	acts, err := s.ListActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, acts, 2)
	require.Equal(t, "lee", acts[0].Author)
	require.Equal(t, DefaultAuthor, acts[1].Author)
}
