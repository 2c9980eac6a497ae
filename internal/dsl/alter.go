package dsl

import (
	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
)

// AlterTableBuilder collects the operations of one ALTER TABLE block, in
// declaration order. Like TableBuilder it records the first error and
// reports it from Operations.
type AlterTableBuilder struct {
	table string
	ops   []ast.Operation
	added map[string]bool
	err   error
}

// NewAlterTableBuilder creates a builder for alterations to table.
func NewAlterTableBuilder(table string) *AlterTableBuilder {
	return &AlterTableBuilder{
		table: table,
		ops:   make([]ast.Operation, 0),
		added: make(map[string]bool),
	}
}

// Name returns the table name.
func (a *AlterTableBuilder) Name() string {
	return a.table
}

// Err returns the first error recorded by the builder.
func (a *AlterTableBuilder) Err() error {
	return a.err
}

// Operations returns the collected operations, or the first recorded error.
func (a *AlterTableBuilder) Operations() ([]ast.Operation, error) {
	if a.err != nil {
		return nil, a.err
	}
	for _, op := range a.ops {
		if err := op.Validate(); err != nil {
			return nil, err
		}
	}
	return a.ops, nil
}

func (a *AlterTableBuilder) fail(err error) {
	if a.err == nil {
		a.err = withTable(err, a.table)
	}
}

func (a *AlterTableBuilder) ref() ast.TableRef {
	return ast.TableRef{Table_: a.table}
}

// AddColumnDef appends an add-column operation for col, followed by a
// create-index operation when col carries Index options.
func (a *AlterTableBuilder) AddColumnDef(col *ast.ColumnDef) {
	if a.err != nil {
		return
	}
	if a.added[col.Name] {
		a.fail(alerr.New(alerr.ErrColumnDuplicate, "column added more than once").WithColumn(col.Name))
		return
	}
	a.added[col.Name] = true

	a.ops = append(a.ops, &ast.AddColumn{TableRef: a.ref(), Column: col})
	if col.Index != nil {
		a.ops = append(a.ops, &ast.CreateIndex{
			TableRef:     a.ref(),
			Columns:      []string{col.Name},
			IndexOptions: *col.Index,
		})
	}
}

func (a *AlterTableBuilder) add(col *ast.ColumnDef, err error) *AlterTableBuilder {
	if err != nil {
		a.fail(err)
		return a
	}
	a.AddColumnDef(col)
	return a
}

// AddColumn adds a column with a type literal. With an As option the column
// is generated.
func (a *AlterTableBuilder) AddColumn(name, typ string, opts ...ColumnOption) *AlterTableBuilder {
	if a.err != nil {
		return a
	}
	ct, err := parseType(name, typ)
	if err != nil {
		a.fail(err)
		return a
	}
	return a.add(newColumn(name, ct, opts))
}

// AddGeneratedColumn adds a column computed from expression. It accepts the
// same options as TableBuilder.GeneratedColumn and renders the same clause.
//
//	t.AddGeneratedColumn("a2", "integer", "a * 2", dsl.Stored(), dsl.Index())
func (a *AlterTableBuilder) AddGeneratedColumn(name, typ string, expression any, opts ...ColumnOption) *AlterTableBuilder {
	if a.err != nil {
		return a
	}
	ct, err := parseType(name, typ)
	if err != nil {
		a.fail(err)
		return a
	}
	return a.add(newGeneratedColumn(name, ct, expression, opts))
}

// DropColumn removes a column.
func (a *AlterTableBuilder) DropColumn(name string) *AlterTableBuilder {
	if a.err != nil {
		return a
	}
	a.ops = append(a.ops, &ast.DropColumn{TableRef: a.ref(), Name: name})
	return a
}

// RenameColumn renames a column.
func (a *AlterTableBuilder) RenameColumn(oldName, newName string) *AlterTableBuilder {
	if a.err != nil {
		return a
	}
	a.ops = append(a.ops, &ast.RenameColumn{TableRef: a.ref(), OldName: oldName, NewName: newName})
	return a
}

// AddIndex creates an index over existing columns.
func (a *AlterTableBuilder) AddIndex(columns []string, opts ...IndexOption) *AlterTableBuilder {
	if a.err != nil {
		return a
	}
	op := &ast.CreateIndex{TableRef: a.ref(), Columns: columns}
	for _, opt := range opts {
		if err := opt(&op.IndexOptions); err != nil {
			a.fail(err)
			return a
		}
	}
	a.ops = append(a.ops, op)
	return a
}

// DropIndex drops an index by name.
func (a *AlterTableBuilder) DropIndex(name string, ifExists bool) *AlterTableBuilder {
	if a.err != nil {
		return a
	}
	a.ops = append(a.ops, &ast.DropIndex{TableRef: a.ref(), Name: name, IfExists: ifExists})
	return a
}
