package compiler

import (
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/go9cc/internal/expression"
	"github.com/karupanerura/go9cc/internal/types"
)

type Mnemonic string

const (
	MovMnemonic Mnemonic = "mov"
	AddMnemonic Mnemonic = "add"
	SubMnemonic Mnemonic = "sub"
)

var operatorMnemonicMap = map[string]Mnemonic{
	"+": AddMnemonic,
	"-": SubMnemonic,
}

// Instruction applies Operand to rax.
type Instruction struct {
	Mnemonic Mnemonic
	Operand  int64
}

type Program struct {
	Source       string
	Instructions []Instruction

	// Result is the value rax holds after the instructions run.
	Result int64
}

var compilerDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("GO9CC_DEBUG")); v && err == nil {
		compilerDebugLog = true
	}
}

type compiler struct {
	stream *expression.TokenStream
	debug  bool
}

func Compile(source string) (*Program, error) {
	c := &compiler{stream: expression.NewTokenStream(source), debug: compilerDebugLog}
	return c.compile()
}

func CompileWithDebugOutput(source string) (*Program, error) {
	c := &compiler{stream: expression.NewTokenStream(source), debug: true}
	return c.compile()
}

func (c *compiler) compile() (*Program, error) {
	if c.debug {
		pp.Println(c.stream.Source())
		pp.Println(c.stream.Tokens())
	}

	first, ok := c.stream.ConsumeIfNumber()
	if !ok {
		return nil, c.unexpected("expected a number")
	}

	p := &Program{
		Source:       c.stream.Source(),
		Instructions: []Instruction{{Mnemonic: MovMnemonic, Operand: first}},
		Result:       first,
	}
	for !c.stream.AtEnd() {
		op, ok := c.consumeOperator()
		if !ok {
			return nil, c.unexpected("unexpected token")
		}

		n, ok := c.stream.ConsumeIfNumber()
		if !ok {
			return nil, c.unexpected("expected a number")
		}

		switch operatorMnemonicMap[op] {
		case AddMnemonic:
			p.Result += n
		case SubMnemonic:
			p.Result -= n
		}
		p.Instructions = append(p.Instructions, Instruction{Mnemonic: operatorMnemonicMap[op], Operand: n})
	}

	if c.debug {
		pp.Println(p)
	}
	return p, nil
}

func (c *compiler) consumeOperator() (string, bool) {
	for _, op := range []string{"+", "-"} {
		if c.stream.ConsumeIfOp(op) {
			return op, true
		}
	}
	return "", false
}

func (c *compiler) unexpected(message string) error {
	err := c.stream.ErrorAtCursor(types.UnexpectedTokenErrorTag, message)
	if c.debug {
		log.Printf("failed to compile at token %d: %v", c.stream.Index(), err)
	}
	return err
}
