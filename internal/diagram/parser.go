package diagram

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hurou927/uml-ddl/internal/schema"
)

const (
	startMarker  = "@startuml"
	classKeyword = "class"
	blockEnd     = "}"
	separator    = ".."

	notNullToken       = "NN"
	autoIncrementToken = "AUTO_INCREMENT"
	refPrefix          = "REF("
	refSuffix          = ")"

	// maxLineSize bounds a single diagram line read by ParseReader.
	maxLineSize = 1024 * 1024
)

// Result is the outcome of parsing a diagram.
type Result struct {
	Schema      *schema.Schema
	Diagnostics []Diagnostic
}

// Strict returns a *SyntaxError when the parse produced any diagnostics.
func (r *Result) Strict() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return &SyntaxError{Diagnostics: r.Diagnostics}
}

// Parser is a line-oriented state machine turning class-diagram text into
// a schema. It never fails: anything it does not understand is either
// ignored or recorded as a Diagnostic.
type Parser struct {
	schema *schema.Schema

	inDiagram bool
	inTable   bool
	// table is nil inside a block whose class line had no name; the
	// block's lines are dropped.
	table     *schema.Table
	tableLine int

	lineNo int
	diags  []Diagnostic
}

// NewParser creates a parser with a fresh schema.
func NewParser() *Parser {
	return &Parser{schema: schema.New()}
}

// Feed processes the next line of input.
func (p *Parser) Feed(line string) {
	p.lineNo++

	if !p.inDiagram {
		if strings.HasPrefix(strings.TrimSpace(line), startMarker) {
			p.inDiagram = true
		}
		return
	}

	line = strings.TrimSpace(line)

	if !p.inTable {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == classKeyword {
			p.openTable(fields, line)
		}
		return
	}

	if line == blockEnd {
		p.inTable = false
		p.table = nil
		return
	}
	if p.table == nil {
		return
	}

	col, problems := parseColumnLine(strings.Fields(line))
	for _, msg := range problems {
		p.warn(line, msg)
	}
	if col == nil {
		return
	}
	if p.table.AddColumn(col) {
		p.warn(line, fmt.Sprintf("column %q redefined in table %q, last definition wins", col.Name, p.table.Name))
	}
}

func (p *Parser) openTable(fields []string, line string) {
	p.inTable = true
	p.tableLine = p.lineNo
	if len(fields) < 2 {
		p.table = nil
		p.warn(line, "class declaration without a name, block ignored")
		return
	}
	p.table = schema.NewTable(fields[1])
	if p.schema.AddTable(p.table) {
		p.warn(line, fmt.Sprintf("table %q redefined, last definition wins", p.table.Name))
	}
}

// Finish ends the input and returns the parsed schema.
func (p *Parser) Finish() *Result {
	if p.inTable && p.table != nil {
		p.diags = append(p.diags, Diagnostic{
			Line:    p.tableLine,
			Message: fmt.Sprintf("table %q is not closed with %q", p.table.Name, blockEnd),
		})
	}
	return &Result{Schema: p.schema, Diagnostics: p.diags}
}

func (p *Parser) warn(line, msg string) {
	p.diags = append(p.diags, Diagnostic{Line: p.lineNo, Text: line, Message: msg})
}

// Parse parses a complete sequence of lines.
func Parse(lines []string) *Result {
	p := NewParser()
	for _, line := range lines {
		p.Feed(line)
	}
	return p.Finish()
}

// ParseReader parses r line by line until EOF.
func ParseReader(r io.Reader) (*Result, error) {
	p := NewParser()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		p.Feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", p.lineNo+1, err)
	}
	return p.Finish(), nil
}

// parseColumnLine interprets the whitespace-separated fields of one line
// inside a class block. It returns nil for separator and blank lines.
func parseColumnLine(fields []string) (*schema.Column, []string) {
	if len(fields) == 0 || fields[0] == separator {
		return nil, nil
	}

	col := columnFromName(fields[0])
	var problems []string

	for _, field := range fields[1:] {
		switch {
		case field == notNullToken:
			col.NotNull = true
		case field == autoIncrementToken:
			col.AutoIncrement = true
		case strings.HasPrefix(field, refPrefix) && strings.HasSuffix(field, refSuffix):
			ref, err := parseReference(field)
			if err != nil {
				problems = append(problems, err.Error())
				continue
			}
			col.Ref = ref
		default:
			col.Type = field
		}
	}

	if col.Name == "" {
		return nil, append(problems, "column without a name, line ignored")
	}
	if col.Ref == nil && !col.HasType() {
		problems = append(problems, fmt.Sprintf("column %q has neither a type nor a reference", col.Name))
	}
	return col, problems
}

// columnFromName builds a column from the first field of a line, where
// '#' and '+' mark primary keys and '-' marks a plain attribute.
func columnFromName(field string) *schema.Column {
	switch field[0] {
	case '#', '+':
		return &schema.Column{Name: field[1:], IsPrimaryKey: true}
	case '-':
		return &schema.Column{Name: field[1:]}
	default:
		return &schema.Column{Name: field}
	}
}

// parseReference parses REF(table.column).
func parseReference(field string) (*schema.ColumnReference, error) {
	body := field[len(refPrefix) : len(field)-len(refSuffix)]
	parts := strings.Split(body, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("malformed reference %q, want REF(Table.column)", field)
	}
	return &schema.ColumnReference{
		Table:  schema.NormalizeReferenceTable(parts[0]),
		Column: parts[1],
	}, nil
}
