package main

import (
	"reflect"
	"testing"
)

func TestRewriteProgramFileArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"setgrid"},
			want: []string{"setgrid"},
		},
		{
			name: "program file first token",
			in:   []string{"setgrid", "plan.json"},
			want: []string{"setgrid", "--program", "plan.json"},
		},
		{
			name: "program file after value flag",
			in:   []string{"setgrid", "--day", "push", "plan.json"},
			want: []string{"setgrid", "--day", "push", "--program", "plan.json"},
		},
		{
			name: "program file after equals flag",
			in:   []string{"setgrid", "--day=push", "plan.json"},
			want: []string{"setgrid", "--day=push", "--program", "plan.json"},
		},
		{
			name: "program file after bool flag",
			in:   []string{"setgrid", "--print", "plan.json"},
			want: []string{"setgrid", "--print", "--program", "plan.json"},
		},
		{
			name: "program file after double dash",
			in:   []string{"setgrid", "--", "plan.json"},
			want: []string{"setgrid", "--program", "plan.json"},
		},
		{
			name: "subcommand argument not rewritten",
			in:   []string{"setgrid", "simulate", "drag.json"},
			want: []string{"setgrid", "simulate", "drag.json"},
		},
		{
			name: "value of --program not rewritten",
			in:   []string{"setgrid", "--program", "plan.json"},
			want: []string{"setgrid", "--program", "plan.json"},
		},
		{
			name: "bare suffix is not a file",
			in:   []string{"setgrid", ".json"},
			want: []string{"setgrid", ".json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteProgramFileArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteProgramFileArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
