package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

const (
	DefaultEntry  = "main"
	DefaultIndent = "  "
)

// Emitter writes a Program as x86-64 assembly in Intel syntax. The result is left in rax.
type Emitter struct {
	Entry  string
	Indent string
}

func NewEmitter() *Emitter {
	return &Emitter{
		Entry:  DefaultEntry,
		Indent: DefaultIndent,
	}
}

func (e *Emitter) Lines(p *Program) []string {
	lines := []string{
		".intel_syntax noprefix",
		".global " + e.Entry,
		e.Entry + ":",
	}
	lines = append(lines, lo.Map(p.Instructions, func(inst Instruction, _ int) string {
		return e.Indent + inst.String()
	})...)
	return append(lines, e.Indent+"ret")
}

func (e *Emitter) Emit(w io.Writer, p *Program) error {
	for _, line := range e.Lines(p) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("io.WriteString: %w", err)
		}
	}
	return nil
}

func (e *Emitter) Assemble(p *Program) string {
	var b strings.Builder
	_ = e.Emit(&b, p) // strings.Builder never fails
	return b.String()
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s rax, %d", i.Mnemonic, i.Operand)
}
