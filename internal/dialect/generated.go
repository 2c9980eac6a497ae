package dialect

import (
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/sqlgen"
)

// Modifier is one optional fragment of a generated-column clause.
type Modifier int

const (
	// ModifierStored appends STORED when the computed value is persisted.
	ModifierStored Modifier = iota
	// ModifierUnique appends UNIQUE.
	ModifierUnique
	// ModifierNull appends NULL or NOT NULL when nullability is explicit.
	ModifierNull
	// ModifierPrimaryKey appends PRIMARY KEY.
	ModifierPrimaryKey
)

// String returns the option name of the modifier.
func (m Modifier) String() string {
	switch m {
	case ModifierStored:
		return "stored"
	case ModifierUnique:
		return "unique"
	case ModifierNull:
		return "null"
	case ModifierPrimaryKey:
		return "primary_key"
	default:
		return "unknown"
	}
}

// modifierFunc appends at most one fragment for col to b.
type modifierFunc func(b *sqlgen.Builder, col *ast.ColumnDef)

// generatedModifiers is the order in which generated-column modifiers are
// written after the AS clause. The order is part of the output format.
var generatedModifiers = []struct {
	mod    Modifier
	render modifierFunc
}{
	{ModifierStored, writeStored},
	{ModifierUnique, writeUnique},
	{ModifierNull, writeNullability},
	{ModifierPrimaryKey, writePrimaryKey},
}

// GeneratedModifierOrder returns the modifier order for generated columns:
// stored, unique, null, primary_key. Each call returns a fresh slice.
func GeneratedModifierOrder() []Modifier {
	out := make([]Modifier, len(generatedModifiers))
	for i, m := range generatedModifiers {
		out[i] = m.mod
	}
	return out
}

func writeStored(b *sqlgen.Builder, col *ast.ColumnDef) {
	if col.Stored {
		b.Stored()
	}
}

func writeUnique(b *sqlgen.Builder, col *ast.ColumnDef) {
	if col.Unique {
		b.Unique()
	}
}

// writeNullability writes NULL or NOT NULL. Null takes precedence over the
// legacy AllowNull; with neither set nothing is written.
func writeNullability(b *sqlgen.Builder, col *ast.ColumnDef) {
	n := col.ResolveNullability()
	if n == nil {
		return
	}
	if *n {
		b.Null()
	} else {
		b.NotNull()
	}
}

func writePrimaryKey(b *sqlgen.Builder, col *ast.ColumnDef) {
	if col.PrimaryKey {
		b.PrimaryKey()
	}
}

// ColumnDefinitionSQL renders a column clause.
//
// Ordinary columns are rendered by the base column renderer and returned
// unchanged. Generated columns render as
//
//	<name> <type> AS (<expression>)[ STORED][ UNIQUE][ NULL| NOT NULL][ PRIMARY KEY]
//
// with PostgreSQL spelling the AS clause GENERATED ALWAYS AS. Errors from
// type or expression literalization are returned as is.
func (d *base) ColumnDefinitionSQL(col *ast.ColumnDef) (string, error) {
	if !col.IsGenerated() {
		return d.baseColumnSQL(col)
	}

	typ, err := d.TypeLiteral(col)
	if err != nil {
		return "", err
	}
	as, err := d.Literal(col.Expression)
	if err != nil {
		return "", err
	}

	b := d.builder().Column(col.Name, typ).GeneratedAs(as)
	for _, m := range generatedModifiers {
		m.render(b, col)
	}
	return b.String(), nil
}
