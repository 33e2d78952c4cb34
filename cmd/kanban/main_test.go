package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectBoardArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"kanban"},
			want: []string{"kanban"},
		},
		{
			name: "board id first token",
			in:   []string{"kanban", "board-1a2b3c4d"},
			want: []string{"kanban", "boards", "show", "board-1a2b3c4d"},
		},
		{
			name: "board id after value flag",
			in:   []string{"kanban", "--dir", "./ws", "board-1a2b3c4d"},
			want: []string{"kanban", "--dir", "./ws", "boards", "show", "board-1a2b3c4d"},
		},
		{
			name: "board id after equals flag",
			in:   []string{"kanban", "--format=text", "board-1a2b3c4d"},
			want: []string{"kanban", "--format=text", "boards", "show", "board-1a2b3c4d"},
		},
		{
			name: "board id after bool flag",
			in:   []string{"kanban", "--pretty", "board-1a2b3c4d"},
			want: []string{"kanban", "--pretty", "boards", "show", "board-1a2b3c4d"},
		},
		{
			name: "double dash stops rewriting",
			in:   []string{"kanban", "--", "board-1a2b3c4d"},
			want: []string{"kanban", "--", "board-1a2b3c4d"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"kanban", "boards", "show", "board-1a2b3c4d"},
			want: []string{"kanban", "boards", "show", "board-1a2b3c4d"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"kanban", "board-"},
			want: []string{"kanban", "board-"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewriteDirectBoardArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectBoardArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
