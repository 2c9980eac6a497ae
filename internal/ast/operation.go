package ast

import (
	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/strutil"
)

// Operation is a single schema change. Each operation renders to exactly one
// DDL statement, except CreateTable which is followed by one CREATE INDEX per
// declared index.
type Operation interface {
	// Type returns the operation type.
	Type() OpType

	// Table returns the (possibly schema-qualified) table name.
	Table() string

	// Validate checks that the operation is well-formed.
	Validate() error
}

// TableOp provides the Name field for table-level operations.
type TableOp struct {
	Name string
}

// Table returns the table name.
func (t TableOp) Table() string { return t.Name }

// TableRef provides the Table_ field for column and index operations.
type TableRef struct {
	Table_ string
}

// Table returns the table name.
func (t TableRef) Table() string { return t.Table_ }

// -----------------------------------------------------------------------------
// CreateTable
// -----------------------------------------------------------------------------

// CreateTable creates a new table with columns and trailing indexes.
type CreateTable struct {
	TableOp
	Columns     []*ColumnDef
	Indexes     []*IndexDef
	IfNotExists bool
}

func (op *CreateTable) Type() OpType { return OpCreateTable }

func (op *CreateTable) Validate() error {
	def := &TableDef{Name: op.Name, Columns: op.Columns, Indexes: op.Indexes}
	return def.Validate()
}

// IndexOps returns one CreateIndex per declared index, in declaration order.
func (op *CreateTable) IndexOps() []*CreateIndex {
	out := make([]*CreateIndex, 0, len(op.Indexes))
	for _, idx := range op.Indexes {
		out = append(out, &CreateIndex{
			TableRef:     TableRef{Table_: op.Name},
			Columns:      idx.Columns,
			IndexOptions: idx.IndexOptions,
		})
	}
	return out
}

// -----------------------------------------------------------------------------
// DropTable
// -----------------------------------------------------------------------------

// DropTable removes a table.
type DropTable struct {
	TableOp
	IfExists bool
}

func (op *DropTable) Type() OpType { return OpDropTable }

func (op *DropTable) Validate() error {
	if op.Name == "" {
		return alerr.New(alerr.ErrSchemaInvalid, "table name is required for drop")
	}
	return ValidateQualifiedName(op.Name)
}

// -----------------------------------------------------------------------------
// AddColumn
// -----------------------------------------------------------------------------

// AddColumn adds a column to an existing table.
type AddColumn struct {
	TableRef
	Column *ColumnDef
}

func (op *AddColumn) Type() OpType { return OpAddColumn }

func (op *AddColumn) Validate() error {
	if op.Table_ == "" {
		return alerr.New(alerr.ErrSchemaInvalid, "table name is required for add column")
	}
	if err := ValidateQualifiedName(op.Table_); err != nil {
		return err
	}
	if op.Column == nil {
		return alerr.New(alerr.ErrSchemaInvalid, "column definition is required").WithTable(op.Table_)
	}
	if err := op.Column.Validate(); err != nil {
		return alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid column").
			WithTable(op.Table_).
			WithColumn(op.Column.Name)
	}
	return nil
}

// -----------------------------------------------------------------------------
// DropColumn
// -----------------------------------------------------------------------------

// DropColumn removes a column from a table.
type DropColumn struct {
	TableRef
	Name string
}

func (op *DropColumn) Type() OpType { return OpDropColumn }

func (op *DropColumn) Validate() error {
	if op.Table_ == "" {
		return alerr.New(alerr.ErrSchemaInvalid, "table name is required for drop column")
	}
	if op.Name == "" {
		return alerr.New(alerr.ErrSchemaInvalid, msgColumnNameRequired).WithTable(op.Table_)
	}
	return ValidateIdentifier(op.Name)
}

// -----------------------------------------------------------------------------
// RenameColumn
// -----------------------------------------------------------------------------

// RenameColumn renames a column.
type RenameColumn struct {
	TableRef
	OldName string
	NewName string
}

func (op *RenameColumn) Type() OpType { return OpRenameColumn }

func (op *RenameColumn) Validate() error {
	if op.Table_ == "" {
		return alerr.New(alerr.ErrSchemaInvalid, "table name is required for rename column")
	}
	if op.OldName == "" || op.NewName == "" {
		return alerr.New(alerr.ErrSchemaInvalid, "old and new column names are required").
			WithTable(op.Table_)
	}
	if op.OldName == op.NewName {
		return alerr.New(alerr.ErrSchemaInvalid, "old and new column names must be different").
			WithTable(op.Table_).
			WithColumn(op.OldName)
	}
	if err := ValidateIdentifier(op.OldName); err != nil {
		return err
	}
	return ValidateIdentifier(op.NewName)
}

// -----------------------------------------------------------------------------
// CreateIndex
// -----------------------------------------------------------------------------

// CreateIndex creates an index.
type CreateIndex struct {
	TableRef
	Columns []string
	IndexOptions
}

func (op *CreateIndex) Type() OpType { return OpCreateIndex }

func (op *CreateIndex) Validate() error {
	if op.Table_ == "" {
		return alerr.New(alerr.ErrSchemaInvalid, "table name is required for create index")
	}
	def := IndexDef{Columns: op.Columns, IndexOptions: op.IndexOptions}
	if err := def.Validate(); err != nil {
		return alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid index").WithTable(op.Table_)
	}
	return nil
}

// IndexName returns the explicit name or the <table>_<columns>_index default.
func (op *CreateIndex) IndexName() string {
	if op.Name != "" {
		return op.Name
	}
	return strutil.IndexName(op.Table_, op.Columns...)
}

// -----------------------------------------------------------------------------
// DropIndex
// -----------------------------------------------------------------------------

// DropIndex removes an index. Table is required by MySQL (DROP INDEX i ON t).
type DropIndex struct {
	TableRef
	Name     string
	IfExists bool
}

func (op *DropIndex) Type() OpType { return OpDropIndex }

func (op *DropIndex) Validate() error {
	if op.Name == "" {
		return alerr.New(alerr.ErrSchemaInvalid, "index name is required for drop index")
	}
	return ValidateIdentifier(op.Name)
}
