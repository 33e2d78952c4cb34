package main

import (
	"os"
	"strings"

	"kanban-cli/internal/cli"
	"kanban-cli/internal/store"
)

// Persistent flags that take a value; needed to find the first positional token.
var valueFlags = map[string]bool{
	"--dir":       true,
	"--workspace": true,
	"--format":    true,
	"--log-level": true,
	"--backend":   true,
}

func isBoardID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, store.PrefixBoard+"-") && len(s) > len(store.PrefixBoard)+1
}

// rewriteDirectBoardArgs makes `kanban <board-id>` behave like `kanban boards show <board-id>`.
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
func rewriteDirectBoardArgs(argv []string) []string {
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			return argv
		case strings.HasPrefix(a, "-"):
			if valueFlags[a] {
				i++
			}
			continue
		}
		if !isBoardID(a) {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "boards", "show")
		return append(out, argv[i:]...)
	}
	return argv
}

func main() {
	os.Args = rewriteDirectBoardArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
