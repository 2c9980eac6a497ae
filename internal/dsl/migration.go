package dsl

import (
	"github.com/hlop3z/gencol/internal/ast"
)

// MigrationBuilder collects the operations of a whole schema script, in
// declaration order.
type MigrationBuilder struct {
	operations []ast.Operation
	err        error
}

// NewMigrationBuilder creates a new MigrationBuilder.
func NewMigrationBuilder() *MigrationBuilder {
	return &MigrationBuilder{
		operations: make([]ast.Operation, 0),
	}
}

// Operations returns all operations, or the first error recorded while
// building them.
func (m *MigrationBuilder) Operations() ([]ast.Operation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.operations, nil
}

// Err returns the first recorded error.
func (m *MigrationBuilder) Err() error {
	return m.err
}

// CreateTable creates a new table.
func (m *MigrationBuilder) CreateTable(name string, fn func(*TableBuilder)) error {
	tb := NewTableBuilder(name)
	fn(tb)
	op, err := tb.Operation()
	if err != nil {
		m.record(err)
		return err
	}
	m.operations = append(m.operations, op)
	return nil
}

// AlterTable appends the alterations declared by fn.
func (m *MigrationBuilder) AlterTable(name string, fn func(*AlterTableBuilder)) error {
	ab := NewAlterTableBuilder(name)
	fn(ab)
	ops, err := ab.Operations()
	if err != nil {
		m.record(err)
		return err
	}
	m.operations = append(m.operations, ops...)
	return nil
}

// DropTable drops an existing table.
func (m *MigrationBuilder) DropTable(name string, ifExists bool) error {
	op := &ast.DropTable{TableOp: ast.TableOp{Name: name}, IfExists: ifExists}
	if err := op.Validate(); err != nil {
		m.record(err)
		return err
	}
	m.operations = append(m.operations, op)
	return nil
}

func (m *MigrationBuilder) record(err error) {
	if m.err == nil {
		m.err = err
	}
}
