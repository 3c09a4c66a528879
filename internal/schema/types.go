package schema

// ColumnReference points a column at another table's column.
type ColumnReference struct {
	Table  string
	Column string
}

// String returns the reference as Table.column.
func (r ColumnReference) String() string {
	return r.Table + "." + r.Column
}

// Column represents one attribute of a diagram class.
type Column struct {
	Name          string
	IsPrimaryKey  bool
	NotNull       bool
	AutoIncrement bool
	Type          string // declared type; for referencing columns it is back-filled during generation
	Ref           *ColumnReference
}

// HasType reports whether the column has a concrete type.
func (c *Column) HasType() bool {
	return c.Type != ""
}

// Table represents a diagram class and the SQL table it becomes.
type Table struct {
	Name   string
	PKList []string // primary key column names in discovery order

	columns map[string]*Column
	order   []string
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		columns: make(map[string]*Column),
	}
}

// AddColumn registers col under its name. A column that already exists is
// replaced in place, keeping its original position. It reports whether an
// existing column was replaced.
func (t *Table) AddColumn(col *Column) bool {
	_, exists := t.columns[col.Name]
	if !exists {
		t.order = append(t.order, col.Name)
	}
	t.columns[col.Name] = col
	if col.IsPrimaryKey {
		t.PKList = append(t.PKList, col.Name)
	}
	return exists
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	return t.columns[name]
}

// Columns returns the columns in insertion order.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, len(t.order))
	for i, name := range t.order {
		cols[i] = t.columns[name]
	}
	return cols
}

// ColumnNames returns all column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// PKColumnNames returns the names of columns currently flagged as primary key.
func (t *Table) PKColumnNames() []string {
	var names []string
	for _, name := range t.order {
		if t.columns[name].IsPrimaryKey {
			names = append(names, name)
		}
	}
	return names
}

// References returns the columns carrying a reference, in insertion order.
func (t *Table) References() []*Column {
	var refs []*Column
	for _, name := range t.order {
		if c := t.columns[name]; c.Ref != nil {
			refs = append(refs, c)
		}
	}
	return refs
}

// Schema is the ordered set of tables discovered in a diagram.
type Schema struct {
	tables map[string]*Table
	order  []string
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{tables: make(map[string]*Table)}
}

// AddTable registers tbl under its name. A table that already exists is
// replaced in place, keeping its original position. It reports whether an
// existing table was replaced.
func (s *Schema) AddTable(tbl *Table) bool {
	_, exists := s.tables[tbl.Name]
	if !exists {
		s.order = append(s.order, tbl.Name)
	}
	s.tables[tbl.Name] = tbl
	return exists
}

// Table returns the named table, or nil.
func (s *Schema) Table(name string) *Table {
	return s.tables[name]
}

// Tables returns the tables in discovery order.
func (s *Schema) Tables() []*Table {
	tables := make([]*Table, len(s.order))
	for i, name := range s.order {
		tables[i] = s.tables[name]
	}
	return tables
}

// Len returns the number of tables.
func (s *Schema) Len() int {
	return len(s.order)
}

// Lookup returns the column a reference points at. ok is false when either
// the table or the column is missing.
func (s *Schema) Lookup(ref ColumnReference) (tbl *Table, col *Column, ok bool) {
	tbl = s.tables[ref.Table]
	if tbl == nil {
		return nil, nil, false
	}
	col = tbl.Column(ref.Column)
	if col == nil {
		return tbl, nil, false
	}
	return tbl, col, true
}
