package section

import (
	"bytes"
	"strings"
)

// Block is a named block rendered as header, body lines, children and terminator.
type Block struct {
	Header   string
	Lines    []string
	Children []*Block
	// Open suppresses the terminator line.
	Open bool
}

// NewBlock creates a block with a header built from fields.
func NewBlock(fields ...string) *Block {
	return &Block{Header: strings.Join(fields, " ")}
}

// AddLine appends a body line built from fields.
func (b *Block) AddLine(fields ...string) *Block {
	b.Lines = append(b.Lines, strings.Join(fields, " "))
	return b
}

// AddChild appends a nested block.
func (b *Block) AddChild(child *Block) *Block {
	b.Children = append(b.Children, child)
	return b
}

// Writer renders blocks with a fixed indent per nesting depth.
type Writer struct {
	indent string
}

// Encode renders blocks in order.
func (w *Writer) Encode(blocks ...*Block) []byte {
	buf := &bytes.Buffer{}
	for _, block := range blocks {
		w.encode(buf, block, 0)
	}
	return buf.Bytes()
}

func (w *Writer) encode(buf *bytes.Buffer, block *Block, depth int) {
	prefix := strings.Repeat(w.indent, depth)
	bodyPrefix := prefix + w.indent
	buf.WriteString(prefix)
	buf.WriteString(block.Header)
	buf.WriteByte('\n')
	for _, line := range block.Lines {
		buf.WriteString(bodyPrefix)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, child := range block.Children {
		w.encode(buf, child, depth+1)
	}
	if block.Open {
		return
	}
	buf.WriteString(prefix)
	buf.WriteString(Terminator)
	buf.WriteByte('\n')
}

// NewWriter creates a writer using indent per depth level.
func NewWriter(indent string) *Writer {
	return &Writer{indent: indent}
}
