package hierarchy

import (
	"testing"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"

	"github.com/stretchr/testify/require"
)

func seeded() *Store {
	return New(model.State{Boards: []*model.Board{{
		BoardID: "b1", BoardName: "Main",
		Lists: []*model.List{{ListID: "A", ListName: "Todo", Tasks: []*model.Task{{TaskID: "T1"}, {TaskID: "T2"}}}},
	}}})
}

func TestDispatch_ReturnsCopyOnRead(t *testing.T) {
	s := seeded()

	st, err := s.Dispatch(mutate.AddTaskAction{BoardID: "b1", ListID: "A", Task: model.Task{TaskID: "T3"}})
	require.NoError(t, err)
	require.Len(t, st.Boards[0].Lists[0].Tasks, 3)

	// Mutating the returned snapshot must not reach the store.
	st.Boards[0].Lists[0].Tasks[0].TaskName = "hijacked"
	st.Boards[0].Lists[0].Tasks = nil
	cur := s.Current()
	require.Len(t, cur.Boards[0].Lists[0].Tasks, 3)
	require.Empty(t, cur.Boards[0].Lists[0].Tasks[0].TaskName)
}

func TestDispatch_ErrorKeepsState(t *testing.T) {
	s := seeded()
	before := s.Current()
	v := s.Version()

	_, err := s.Dispatch(mutate.DeleteTaskAction{BoardID: "b1", ListID: "A", TaskID: "nope"})
	require.True(t, mutate.IsNotFound(err))
	require.Equal(t, v, s.Version())
	require.Same(t, before.Boards[0], s.Current().Boards[0])

	_, err = s.Dispatch(mutate.SortAction{SortRequest: mutate.SortRequest{DroppableIDStart: "A", DroppableIDEnd: "A", DroppableIndexStart: 5}})
	require.True(t, mutate.IsInvalidIndex(err))
	require.Equal(t, v, s.Version())
}

func TestDispatch_NoOpSortKeepsVersion(t *testing.T) {
	s := seeded()
	v := s.Version()

	_, err := s.Dispatch(mutate.SortAction{SortRequest: mutate.SortRequest{DroppableIDStart: "A", DroppableIDEnd: "A", DroppableIndexStart: 1, DroppableIndexEnd: 1}})
	require.NoError(t, err)
	require.Equal(t, v, s.Version())

	_, err = s.Dispatch(mutate.SortAction{SortRequest: mutate.SortRequest{DroppableIDStart: "A", DroppableIDEnd: "A", DroppableIndexStart: 0, DroppableIndexEnd: 1}})
	require.NoError(t, err)
	require.Equal(t, v+1, s.Version())
	require.Equal(t, "T2", s.Current().Boards[0].Lists[0].Tasks[0].TaskID)
}

func TestSetModalActive(t *testing.T) {
	s := seeded()
	require.True(t, s.SetModalActive(true).ModalActive)
	require.True(t, s.Current().ModalActive)
	require.False(t, s.SetModalActive(false).ModalActive)
}

func TestNewAndReplaceCopyInput(t *testing.T) {
	in := model.State{Boards: []*model.Board{{BoardID: "b1", Lists: []*model.List{}}}}
	s := New(in)
	in.Boards[0].BoardName = "mutated"
	require.Empty(t, s.Current().Boards[0].BoardName)

	s.Replace(model.State{})
	require.Empty(t, s.Current().Boards)
}
