package dialect

import (
	"fmt"

	"github.com/hlop3z/gencol/internal/sqlgen"
)

// postgres implements the Dialect interface for PostgreSQL.
//
// Generated columns are written as GENERATED ALWAYS AS (...). PostgreSQL
// before 18 only accepts STORED generated columns; virtual ones are passed
// through and left for the server to reject.
type postgres struct {
	base
}

// Postgres returns the PostgreSQL dialect implementation.
func Postgres(opts ...Option) Dialect {
	d := &postgres{base: base{
		name:             "postgres",
		kind:             sqlgen.Postgres,
		quote:            true,
		types:            postgresTypes{},
		bools:            StandardBooleans,
		transactional:    true,
		partialIndexes:   true,
		indexIfNotExists: true,
	}}
	d.apply(opts)
	return d
}

// -----------------------------------------------------------------------------
// Type mappings
// -----------------------------------------------------------------------------

type postgresTypes struct{}

func (postgresTypes) StringType(length int) string {
	return fmt.Sprintf("VARCHAR(%d)", length)
}

func (postgresTypes) TextType() string    { return "TEXT" }
func (postgresTypes) IntegerType() string { return "INTEGER" }
func (postgresTypes) BigIntType() string  { return "BIGINT" }
func (postgresTypes) FloatType() string   { return "DOUBLE PRECISION" }

func (postgresTypes) DecimalType(precision, scale int) string {
	return fmt.Sprintf("DECIMAL(%d, %d)", precision, scale)
}

func (postgresTypes) BooleanType() string  { return "BOOLEAN" }
func (postgresTypes) DateType() string     { return "DATE" }
func (postgresTypes) DateTimeType() string { return "TIMESTAMPTZ" }
func (postgresTypes) TimeType() string     { return "TIME" }
func (postgresTypes) BlobType() string     { return "BYTEA" }
func (postgresTypes) JSONType() string     { return "JSONB" }
