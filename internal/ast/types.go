// Package ast defines the schema operations that gencol renders to DDL.
// A table builder produces operations; a dialect turns each one into SQL.
package ast

// OpType represents the type of a schema operation.
type OpType int

const (
	// OpCreateTable creates a table with its columns and indexes.
	OpCreateTable OpType = iota

	// OpDropTable removes a table.
	OpDropTable

	// OpAddColumn adds a column (ordinary or generated) to an existing table.
	OpAddColumn

	// OpDropColumn removes a column.
	OpDropColumn

	// OpRenameColumn renames a column.
	OpRenameColumn

	// OpCreateIndex creates an index over one or more columns.
	OpCreateIndex

	// OpDropIndex removes an index.
	OpDropIndex
)

// String returns the string representation of an OpType.
func (o OpType) String() string {
	switch o {
	case OpCreateTable:
		return "CreateTable"
	case OpDropTable:
		return "DropTable"
	case OpAddColumn:
		return "AddColumn"
	case OpDropColumn:
		return "DropColumn"
	case OpRenameColumn:
		return "RenameColumn"
	case OpCreateIndex:
		return "CreateIndex"
	case OpDropIndex:
		return "DropIndex"
	default:
		return "Unknown"
	}
}
