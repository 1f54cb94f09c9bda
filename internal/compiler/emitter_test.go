package compiler_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/go9cc/internal/compiler"
)

func TestEmitter(t *testing.T) {
	t.Parallel()

	p, err := compiler.Compile("5+20-4")
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		name     string
		emitter  *compiler.Emitter
		expected string
	}{
		{
			name:    "default",
			emitter: compiler.NewEmitter(),
			expected: strings.Join([]string{
				".intel_syntax noprefix",
				".global main",
				"main:",
				"  mov rax, 5",
				"  add rax, 20",
				"  sub rax, 4",
				"  ret",
				"",
			}, "\n"),
		},
		{
			name:    "custom entry and indent",
			emitter: &compiler.Emitter{Entry: "_start", Indent: "\t"},
			expected: strings.Join([]string{
				".intel_syntax noprefix",
				".global _start",
				"_start:",
				"\tmov rax, 5",
				"\tadd rax, 20",
				"\tsub rax, 4",
				"\tret",
				"",
			}, "\n"),
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			if err := tt.emitter.Emit(&b, p); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.expected, b.String()); diff != "" {
				t.Errorf("(-expected, +actual):\n%s", diff)
			}
			if diff := cmp.Diff(tt.expected, tt.emitter.Assemble(p)); diff != "" {
				t.Errorf("(-expected, +actual):\n%s", diff)
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	t.Parallel()

	inst := compiler.Instruction{Mnemonic: compiler.SubMnemonic, Operand: 7}
	if got := inst.String(); got != "sub rax, 7" {
		t.Errorf("expect %q but got %q", "sub rax, 7", got)
	}
}
