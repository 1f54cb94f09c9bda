package compiler_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/go9cc/internal/compiler"
	"github.com/karupanerura/go9cc/internal/types"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source         string
		expected       []compiler.Instruction
		expectedResult int64
		expectedDetail string
	}{
		{
			source:         "42",
			expected:       []compiler.Instruction{{Mnemonic: compiler.MovMnemonic, Operand: 42}},
			expectedResult: 42,
		},
		{
			source: "5+20-4",
			expected: []compiler.Instruction{
				{Mnemonic: compiler.MovMnemonic, Operand: 5},
				{Mnemonic: compiler.AddMnemonic, Operand: 20},
				{Mnemonic: compiler.SubMnemonic, Operand: 4},
			},
			expectedResult: 21,
		},
		{
			source: "  42 - 21 + 10  ",
			expected: []compiler.Instruction{
				{Mnemonic: compiler.MovMnemonic, Operand: 42},
				{Mnemonic: compiler.SubMnemonic, Operand: 21},
				{Mnemonic: compiler.AddMnemonic, Operand: 10},
			},
			expectedResult: 31,
		},
		{
			source: "1-2-3",
			expected: []compiler.Instruction{
				{Mnemonic: compiler.MovMnemonic, Operand: 1},
				{Mnemonic: compiler.SubMnemonic, Operand: 2},
				{Mnemonic: compiler.SubMnemonic, Operand: 3},
			},
			expectedResult: -4,
		},
		{
			source:         "aaa",
			expectedDetail: "aaa\n^ expected a number",
		},
		{
			source:         "",
			expectedDetail: "\n^ expected a number",
		},
		{
			source:         "+1",
			expectedDetail: "+1\n^ expected a number",
		},
		{
			source:         "5 + five",
			expectedDetail: "5 + five\n    ^ expected a number",
		},
		{
			source:         "1 2",
			expectedDetail: "1 2\n  ^ unexpected token",
		},
		{
			source:         "1 +",
			expectedDetail: "1 +\n   ^ expected a number",
		},
		{
			source:         "1 + + 2",
			expectedDetail: "1 + + 2\n    ^ expected a number",
		},
		{
			source:         "1 * 2",
			expectedDetail: "1 * 2\n  ^ unexpected token",
		},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			p, err := compiler.Compile(tt.source)
			if tt.expectedDetail != "" {
				if err == nil {
					t.Fatalf("should be compile error but got %+v", p)
				}

				var typedErr *types.Error
				if !errors.As(err, &typedErr) {
					t.Fatalf("should be *types.Error but got %T", err)
				}
				if typedErr.Tag != types.UnexpectedTokenErrorTag {
					t.Errorf("unexpected tag: %s", typedErr.Tag)
				}
				if diff := cmp.Diff(tt.expectedDetail, typedErr.Diagnostic()); diff != "" {
					t.Errorf("(-expected, +actual):\n%s", diff)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.expected, p.Instructions); diff != "" {
				t.Errorf("(-expected, +actual):\n%s", diff)
			}
			if p.Result != tt.expectedResult {
				t.Errorf("expect result to %d but got %d", tt.expectedResult, p.Result)
			}
			if p.Source != tt.source {
				t.Errorf("expect source to %q but got %q", tt.source, p.Source)
			}
		})
	}
}

func TestCompileWithDebugOutput(t *testing.T) {
	p, err := compiler.CompileWithDebugOutput("1+1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Result != 2 {
		t.Errorf("expect result to 2 but got %d", p.Result)
	}
}

func FuzzCompile(f *testing.F) {
	for _, seed := range []string{"42", "5+20-4", "aaa", "1 +", "1 2"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		p, err := compiler.Compile(source)
		if err != nil {
			if !types.HasTag(err, types.UnexpectedTokenErrorTag) {
				t.Fatalf("unexpected error: %v", err)
			}
			return
		}

		if len(p.Instructions) == 0 || p.Instructions[0].Mnemonic != compiler.MovMnemonic {
			t.Fatalf("program must start with mov: %+v", p.Instructions)
		}
	})
}
