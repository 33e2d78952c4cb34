package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kanban-cli/internal/docs"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

func runCLI(t *testing.T, stdin io.Reader, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// setupCLI isolates config and returns a store dir.
func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("KANBAN_CONFIG_DIR", t.TempDir())
	t.Setenv("KANBAN_BACKEND", "")
	return t.TempDir()
}

func mustRunData[T any](t *testing.T, args ...string) T {
	t.Helper()
	stdout, stderr, err := runCLI(t, nil, args)
	if err != nil {
		t.Fatalf("command failed: kanban %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	return env.Data
}

func listTaskNames(l *model.List) []string {
	out := []string{}
	for _, t := range l.Tasks {
		out = append(out, t.TaskName)
	}
	return out
}

func TestInitCreatesDefaultBoard(t *testing.T) {
	dir := setupCLI(t)

	res := mustRunData[struct {
		Created bool        `json:"created"`
		State   model.State `json:"state"`
	}](t, "--dir", dir, "init")
	if !res.Created || len(res.State.Boards) != 1 {
		t.Fatalf("expected one created board, got %+v", res)
	}
	b := res.State.Boards[0]
	if b.BoardName != "Main" || len(b.Lists) != 3 || b.Lists[0].ListName != "To Do" || b.Lists[2].ListName != "Done" {
		t.Fatalf("unexpected default board: %+v", b)
	}

	// Second init is a no-op.
	again := mustRunData[struct {
		Created bool        `json:"created"`
		State   model.State `json:"state"`
	}](t, "--dir", dir, "init")
	if again.Created || len(again.State.Boards) != 1 || again.State.Boards[0].BoardID != b.BoardID {
		t.Fatalf("expected init to be idempotent, got %+v", again)
	}
}

func TestTasksLifecycle(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")

	a := mustRunData[model.Task](t, "--dir", dir, "tasks", "add", "Main", "to do", "--name", "A", "--owner", "ann")
	mustRunData[model.Task](t, "--dir", dir, "tasks", "add", "Main", "To Do", "--name", "B")
	mustRunData[model.Task](t, "--dir", dir, "tasks", "add", "Main", "To Do", "--name", "C")
	if !strings.HasPrefix(a.TaskID, "task-") || a.TaskOwner != "ann" {
		t.Fatalf("unexpected task: %+v", a)
	}

	// Within-list move: A to the end.
	b := mustRunData[model.Board](t, "--dir", dir, "tasks", "move", "Main", "--task", a.TaskID)
	if got := listTaskNames(b.Lists[0]); strings.Join(got, ",") != "B,C,A" {
		t.Fatalf("after move to end: %v", got)
	}

	// Cross-list move: A to the top of Done.
	b = mustRunData[model.Board](t, "--dir", dir, "tasks", "move", "Main", "--task", a.TaskID, "--to-list", "Done", "--to-index", "0")
	if got := listTaskNames(b.Lists[0]); strings.Join(got, ",") != "B,C" {
		t.Fatalf("source after cross move: %v", got)
	}
	if got := listTaskNames(b.Lists[2]); strings.Join(got, ",") != "A" {
		t.Fatalf("destination after cross move: %v", got)
	}

	upd := mustRunData[model.Task](t, "--dir", dir, "tasks", "update", "Main", "Done", a.TaskID, "--description", "# Notes")
	if upd.TaskName != "A" || upd.TaskOwner != "ann" || upd.TaskDescription != "# Notes" {
		t.Fatalf("update should only touch changed fields: %+v", upd)
	}

	mustRunData[map[string]any](t, "--dir", dir, "tasks", "rm", "Main", "Done", "A")
	b = mustRunData[model.Board](t, "--dir", dir, "boards", "show", "Main")
	if b.TaskCount() != 2 {
		t.Fatalf("expected 2 tasks after rm, got %d", b.TaskCount())
	}

	acts := mustRunData[[]model.Activity](t, "--dir", dir, "activity", "--limit", "2")
	if len(acts) != 2 || acts[0].Type != "deleteTask" || acts[1].Type != "updateTask" {
		t.Fatalf("unexpected activity: %+v", acts)
	}
}

func TestTasksMoveRejectsBadIndex(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")
	a := mustRunData[model.Task](t, "--dir", dir, "tasks", "add", "Main", "To Do", "--name", "A")

	_, stderr, err := runCLI(t, nil, []string{"--dir", dir, "tasks", "move", "Main", "--task", a.TaskID, "--to-index", "5"})
	if err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
	if !strings.Contains(string(stderr), "invalid destination index 5") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
	b := mustRunData[model.Board](t, "--dir", dir, "boards", "show", "Main")
	if got := listTaskNames(b.Lists[0]); len(got) != 1 || got[0] != "A" {
		t.Fatalf("state changed after failed move: %v", got)
	}
}

func TestBoardsAndLists(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")

	nb := mustRunData[model.Board](t, "--dir", dir, "boards", "add", "--name", "Ops")
	mustRunData[model.Board](t, "--dir", dir, "boards", "rename", nb.BoardID, "--name", "Operations")
	mustRunData[model.List](t, "--dir", dir, "lists", "add", "Operations", "--name", "Inbox")
	mustRunData[model.List](t, "--dir", dir, "lists", "add", "Operations", "--name", "Later")
	mustRunData[model.List](t, "--dir", dir, "lists", "rename", "Operations", "Later", "--name", "Someday")
	b := mustRunData[model.Board](t, "--dir", dir, "lists", "move", "Operations", "--from", "1", "--to", "0")
	if len(b.Lists) != 2 || b.Lists[0].ListName != "Someday" || b.Lists[1].ListName != "Inbox" {
		t.Fatalf("unexpected lists: %+v", b.Lists)
	}

	boards := mustRunData[[]boardSummary](t, "--dir", dir, "boards", "ls")
	if len(boards) != 2 || boards[1].BoardName != "Operations" || boards[1].Lists != 2 {
		t.Fatalf("unexpected boards: %+v", boards)
	}

	mustRunData[map[string]any](t, "--dir", dir, "lists", "rm", "Operations", "Inbox")
	mustRunData[map[string]any](t, "--dir", dir, "boards", "rm", "Main")

	// Last board needs --force.
	if _, _, err := runCLI(t, nil, []string{"--dir", dir, "boards", "rm", "Operations"}); err == nil {
		t.Fatalf("expected refusal to delete the last board")
	}
	mustRunData[map[string]any](t, "--dir", dir, "boards", "rm", "Operations", "--force")
	if got := mustRunData[[]boardSummary](t, "--dir", dir, "boards", "ls"); len(got) != 0 {
		t.Fatalf("expected no boards, got %+v", got)
	}
}

func TestNotFoundSuggestsClosestName(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")

	_, stderr, err := runCLI(t, nil, []string{"--dir", dir, "boards", "show", "Mian"})
	if err == nil {
		t.Fatalf("expected not found")
	}
	if !strings.Contains(string(stderr), `board not found: Mian (did you mean "Main"?)`) {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestDispatchFromStdinAndFile(t *testing.T) {
	dir := setupCLI(t)

	in := strings.NewReader(`{"type":"addBoard","payload":{"board":{"boardId":"b1","boardName":"From JSON"}}}`)
	stdout, stderr, err := runCLI(t, in, []string{"--dir", dir, "dispatch"})
	if err != nil {
		t.Fatalf("dispatch: %v\n%s", err, stderr)
	}
	if !strings.Contains(string(stdout), `"boardId":"b1"`) {
		t.Fatalf("unexpected stdout: %s", stdout)
	}

	path := filepath.Join(t.TempDir(), "action.json")
	if err := os.WriteFile(path, []byte(`{"type":"addList","payload":{"boardId":"b1","list":{"listName":"Todo"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	st := mustRunData[model.State](t, "--dir", dir, "dispatch", path)
	if len(st.Boards[0].Lists) != 1 || !strings.HasPrefix(st.Boards[0].Lists[0].ListID, "list-") {
		t.Fatalf("expected generated list id, got %+v", st.Boards[0].Lists)
	}

	if _, _, err := runCLI(t, strings.NewReader(`{"type":"explode","payload":{}}`), []string{"--dir", dir, "dispatch", "-"}); err == nil {
		t.Fatalf("expected unknown action error")
	}
}

func TestFormatText(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")

	stdout, stderr, err := runCLI(t, nil, []string{"--dir", dir, "--format", "text", "boards", "show", "Main"})
	if err != nil {
		t.Fatalf("show: %v\n%s", err, stderr)
	}
	if !strings.HasPrefix(string(stdout), "Main\n") || !strings.Contains(string(stdout), "    Doing\n") {
		t.Fatalf("unexpected text output:\n%s", stdout)
	}
}

func TestWorkspaceExportImport(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")
	path := filepath.Join(t.TempDir(), "snap.json")
	mustRunData[map[string]any](t, "--dir", dir, "workspace", "export", path)

	other := t.TempDir()
	st := mustRunData[model.State](t, "--dir", other, "workspace", "import", path)
	if len(st.Boards) != 1 || st.Boards[0].BoardName != "Main" {
		t.Fatalf("unexpected imported state: %+v", st)
	}
	acts := mustRunData[[]model.Activity](t, "--dir", other, "activity")
	if len(acts) != 1 || acts[0].Type != "import" {
		t.Fatalf("unexpected activity: %+v", acts)
	}
}

func TestWorkspacePrecedence(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("KANBAN_CONFIG_DIR", cfgDir)

	mustRunData[map[string]any](t, "workspace", "use", "alpha")
	cur := mustRunData[map[string]string](t, "workspace", "current")
	if cur["workspace"] != "alpha" || cur["dir"] != filepath.Join(cfgDir, "workspaces", "alpha") {
		t.Fatalf("config workspace not honored: %v", cur)
	}
	cur = mustRunData[map[string]string](t, "--workspace", "beta", "workspace", "current")
	if cur["workspace"] != "beta" {
		t.Fatalf("--workspace should beat config: %v", cur)
	}
	cur = mustRunData[map[string]string](t, "--dir", "/tmp/x", "--workspace", "beta", "workspace", "current")
	if cur["dir"] != "/tmp/x" {
		t.Fatalf("--dir should beat --workspace: %v", cur)
	}
}

func TestConfigSet(t *testing.T) {
	setupCLI(t)
	cfg := mustRunData[map[string]any](t, "config", "set", "server.addr", "0.0.0.0:9000")
	if cfg["server"].(map[string]any)["addr"] != "0.0.0.0:9000" {
		t.Fatalf("unexpected config: %v", cfg)
	}
	if _, _, err := runCLI(t, nil, []string{"config", "set", "backend", "mongo"}); err == nil {
		t.Fatalf("expected invalid backend error")
	}
}

func TestDoctorReportsDuplicateIDs(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")

	report := mustRunData[store.DoctorReport](t, "--dir", dir, "doctor", "--fail")
	if len(report.Issues) != 0 {
		t.Fatalf("expected clean report, got %+v", report.Issues)
	}

	in := strings.NewReader(`{"type":"addBoard","payload":{"board":{"boardId":"dup","boardName":"One"}}}`)
	if _, stderr, err := runCLI(t, in, []string{"--dir", dir, "dispatch"}); err != nil {
		t.Fatalf("dispatch: %v\n%s", err, stderr)
	}
	in = strings.NewReader(`{"type":"addBoard","payload":{"board":{"boardId":"dup","boardName":"Two"}}}`)
	if _, stderr, err := runCLI(t, in, []string{"--dir", dir, "dispatch"}); err != nil {
		t.Fatalf("dispatch: %v\n%s", err, stderr)
	}

	report = mustRunData[store.DoctorReport](t, "--dir", dir, "doctor")
	if !report.HasErrors() || report.Issues[0].Code != "duplicate_id" || report.Issues[0].EntityID != "dup" {
		t.Fatalf("expected duplicate_id issue, got %+v", report.Issues)
	}

	_, stderr, err := runCLI(t, nil, []string{"--dir", dir, "doctor", "--fail"})
	if err == nil || !strings.Contains(string(stderr), "doctor found errors") {
		t.Fatalf("expected --fail error, got err=%v stderr=%s", err, stderr)
	}
}

func TestDocs(t *testing.T) {
	setupCLI(t)

	topics := mustRunData[[]docs.Topic](t, "docs")
	if len(topics) == 0 || topics[0].Name != "actions" || topics[0].Title != "Actions" {
		t.Fatalf("unexpected topics: %v", topics)
	}

	page := mustRunData[map[string]string](t, "docs", "sorting")
	if page["topic"] != "sorting" || !strings.Contains(page["markdown"], "remove-then-insert") {
		t.Fatalf("unexpected page: %v", page)
	}

	stdout, stderr, err := runCLI(t, nil, []string{"docs", "tui", "--render"})
	if err != nil {
		t.Fatalf("docs --render: %v\n%s", err, stderr)
	}
	if !strings.Contains(string(stdout), "TUI") || !strings.Contains(string(stdout), "quit") {
		t.Fatalf("expected rendered markdown, got:\n%s", stdout)
	}

	if _, stderr, err := runCLI(t, nil, []string{"docs", "nope"}); err == nil || !strings.Contains(string(stderr), "unknown topic") {
		t.Fatalf("expected unknown topic error, got err=%v stderr=%s", err, stderr)
	}
}

func TestBoardsPublish(t *testing.T) {
	dir := setupCLI(t)
	mustRunData[map[string]any](t, "--dir", dir, "init")
	mustRunData[model.Task](t, "--dir", dir, "tasks", "add", "Main", "To Do", "--name", "Ship it")

	out := t.TempDir()
	res := mustRunData[struct {
		Written []string `json:"written"`
	}](t, "--dir", dir, "boards", "publish", "Main", "--to", out)
	if len(res.Written) != 2 {
		t.Fatalf("expected index and one task page, got %v", res.Written)
	}
	index, err := os.ReadFile(res.Written[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "# Main") || !strings.Contains(string(index), "Ship it") {
		t.Fatalf("unexpected index:\n%s", index)
	}
}
