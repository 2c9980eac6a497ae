package ast

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/expr"
)

const (
	msgTableNameRequired  = "table name is required"
	msgColumnNameRequired = "column name is required"
	msgTableNeedsColumn   = "table must have at least one column"
	msgIndexNeedsColumn   = "index must have at least one column"
)

var validIdentifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// ValidateIdentifier checks that a name is a plain SQL identifier.
func ValidateIdentifier(name string) error {
	if !validIdentifierPattern.MatchString(name) {
		return alerr.New(alerr.ErrInvalidIdentifier,
			fmt.Sprintf("invalid identifier %q; must match [A-Za-z_][A-Za-z0-9_$]*", name))
	}
	return nil
}

// ValidateQualifiedName checks a "schema.table" or "table" reference.
func ValidateQualifiedName(name string) error {
	parts := strings.Split(name, ".")
	switch len(parts) {
	case 1:
		return ValidateIdentifier(parts[0])
	case 2:
		if err := ValidateIdentifier(parts[0]); err != nil {
			return err
		}
		return ValidateIdentifier(parts[1])
	default:
		return alerr.New(alerr.ErrInvalidIdentifier,
			fmt.Sprintf("invalid qualified name %q; expected 'table' or 'schema.table'", name))
	}
}

// -----------------------------------------------------------------------------
// ColumnType
// -----------------------------------------------------------------------------

// Generic type names. A generic type is mapped to a concrete SQL type by each
// dialect; any other type name is rendered as written.
const (
	TypeString   = "string"
	TypeText     = "text"
	TypeInteger  = "integer"
	TypeBigInt   = "bigint"
	TypeFloat    = "float"
	TypeDecimal  = "decimal"
	TypeBoolean  = "boolean"
	TypeDate     = "date"
	TypeDateTime = "datetime"
	TypeTime     = "time"
	TypeBlob     = "blob"
	TypeJSON     = "json"
)

// ColumnType describes the SQL type of a column.
type ColumnType struct {
	Name    string // SQL type name as written, or a generic type name
	Size    []int  // Optional size arguments: varchar(255), decimal(10, 2)
	Generic bool   // Name is a generic type resolved by the dialect
}

// NamedType returns a type rendered verbatim: NamedType("varchar", 255) -> varchar(255).
func NamedType(name string, size ...int) ColumnType {
	return ColumnType{Name: name, Size: size}
}

// GenericType returns a dialect-mapped type.
func GenericType(name string, size ...int) ColumnType {
	return ColumnType{Name: name, Size: size, Generic: true}
}

var validTypeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_ ]*$`)

var typeWithSizePattern = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_ ]*?)\s*(?:\(\s*([0-9]+(?:\s*,\s*[0-9]+)*)\s*\))?\s*$`)

// ParseType parses a type literal such as "integer" or "varchar(255)".
func ParseType(s string) (ColumnType, error) {
	m := typeWithSizePattern.FindStringSubmatch(s)
	if m == nil {
		return ColumnType{}, alerr.New(alerr.ErrInvalidType,
			fmt.Sprintf("invalid type %q; expected name or name(size[, size])", s))
	}
	t := ColumnType{Name: m[1]}
	if m[2] != "" {
		for _, part := range strings.Split(m[2], ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return ColumnType{}, alerr.Wrap(alerr.ErrInvalidType, err, "invalid type size").
					With("type", s)
			}
			t.Size = append(t.Size, n)
		}
	}
	return t, nil
}

// Validate checks that the type name is safe to splice into DDL.
func (t ColumnType) Validate() error {
	if t.Name == "" {
		return alerr.New(alerr.ErrInvalidType, "column type is required")
	}
	if !validTypeNamePattern.MatchString(t.Name) {
		return alerr.New(alerr.ErrInvalidType,
			fmt.Sprintf("invalid type name %q; must match [a-zA-Z_][a-zA-Z0-9_ ]*", t.Name))
	}
	for _, n := range t.Size {
		if n < 0 {
			return alerr.New(alerr.ErrInvalidType, "type size must not be negative").
				With("type", t.Name)
		}
	}
	return nil
}

// String renders the type as written, without dialect mapping.
func (t ColumnType) String() string {
	if len(t.Size) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Size))
	for i, n := range t.Size {
		parts[i] = strconv.Itoa(n)
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}

// -----------------------------------------------------------------------------
// ColumnDef
// -----------------------------------------------------------------------------

// ColumnDef is one column being defined by a create-table or alter-table builder.
//
// A column with an Expression is a generated column; everything else is an
// ordinary column. Generated columns render through the generated-column
// clause; ordinary columns through the dialect's base column renderer.
type ColumnDef struct {
	Name string
	Type ColumnType

	// Generated columns
	Expression expr.Expr // Computed value; non-nil iff the column is generated
	Stored     bool      // Persist the computed value (STORED) instead of computing on read

	// Constraints shared by both kinds of column
	Unique     bool
	PrimaryKey bool
	Null       *bool // nil: dialect default, true: NULL, false: NOT NULL
	AllowNull  *bool // Legacy spelling of Null, read only when Null is nil

	// Ordinary columns only
	Default    any
	DefaultSet bool

	// Index requests a secondary index over this column once it exists.
	// It never contributes to the column clause itself.
	Index *IndexOptions
}

// IsGenerated reports whether the column is computed from an expression.
func (c *ColumnDef) IsGenerated() bool {
	return c.Expression != nil
}

// ResolveNullability returns the explicit nullability of the column, falling
// back to AllowNull when Null is unset. nil means no preference.
func (c *ColumnDef) ResolveNullability() *bool {
	if c.Null != nil {
		return c.Null
	}
	return c.AllowNull
}

// Validate checks that the column definition is well-formed.
func (c *ColumnDef) Validate() error {
	if c.Name == "" {
		return alerr.New(alerr.ErrSchemaInvalid, msgColumnNameRequired)
	}
	if err := ValidateIdentifier(c.Name); err != nil {
		return err
	}
	if err := c.Type.Validate(); err != nil {
		return alerr.Wrap(alerr.ErrInvalidType, err, "invalid column type").WithColumn(c.Name)
	}
	if c.IsGenerated() && c.DefaultSet {
		return alerr.New(alerr.ErrSchemaInvalid, "generated column cannot have a default value").
			WithColumn(c.Name)
	}
	if !c.IsGenerated() && c.Stored {
		return alerr.New(alerr.ErrMissingExpr, "stored is only valid for generated columns").
			WithColumn(c.Name).
			WithHelp("pass an expression to make the column generated")
	}
	if c.Index != nil {
		if err := c.Index.Validate(); err != nil {
			return alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid index options").WithColumn(c.Name)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Indexes
// -----------------------------------------------------------------------------

// IndexOptions configures a CREATE INDEX statement.
type IndexOptions struct {
	Name        string    // Index name; defaults to <table>_<columns>_index
	Unique      bool      // CREATE UNIQUE INDEX
	IfNotExists bool      // CREATE INDEX IF NOT EXISTS (where supported)
	Where       expr.Expr // Partial index predicate (where supported)
}

// Validate checks the index options.
func (o *IndexOptions) Validate() error {
	if o.Name != "" {
		return ValidateIdentifier(o.Name)
	}
	return nil
}

// IndexDef is an index declared inside a create-table builder.
type IndexDef struct {
	Columns []string
	IndexOptions
}

// Validate checks that the index definition is well-formed.
func (i *IndexDef) Validate() error {
	if len(i.Columns) == 0 {
		return alerr.New(alerr.ErrSchemaInvalid, msgIndexNeedsColumn)
	}
	for _, col := range i.Columns {
		if err := ValidateIdentifier(col); err != nil {
			return err
		}
	}
	return i.IndexOptions.Validate()
}

// -----------------------------------------------------------------------------
// TableDef
// -----------------------------------------------------------------------------

// TableDef is the accumulated definition of a table under construction.
type TableDef struct {
	Name    string
	Columns []*ColumnDef
	Indexes []*IndexDef
}

// GetColumn returns the column with the given name, or nil.
func (t *TableDef) GetColumn(name string) *ColumnDef {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Validate checks the table definition: a valid name, at least one column,
// unique column names, and indexes over declared columns.
func (t *TableDef) Validate() error {
	if t.Name == "" {
		return alerr.New(alerr.ErrSchemaInvalid, msgTableNameRequired)
	}
	if err := ValidateQualifiedName(t.Name); err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return alerr.New(alerr.ErrSchemaInvalid, msgTableNeedsColumn).WithTable(t.Name)
	}

	seen := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		if err := col.Validate(); err != nil {
			return alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid column").
				WithTable(t.Name).
				WithColumn(col.Name)
		}
		if seen[col.Name] {
			return alerr.New(alerr.ErrColumnDuplicate, "column declared more than once").
				WithTable(t.Name).
				WithColumn(col.Name)
		}
		seen[col.Name] = true
	}

	for _, idx := range t.Indexes {
		if err := idx.Validate(); err != nil {
			return alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid index").WithTable(t.Name)
		}
		for _, col := range idx.Columns {
			if !seen[col] {
				return alerr.Newf(alerr.ErrSchemaInvalid, "index references unknown column %q", col).
					WithTable(t.Name)
			}
		}
	}
	return nil
}
