package dialect

import (
	"fmt"

	"github.com/hlop3z/gencol/internal/sqlgen"
)

// generic renders portable DDL without targeting a particular server. It is
// the dialect of mock connections: identifiers are left unquoted unless
// WithQuoteIdentifiers(true) is given, and generic types use lowercase
// standard SQL names.
type generic struct {
	base
}

// Generic returns the generic dialect implementation.
func Generic(opts ...Option) Dialect {
	d := &generic{base: base{
		name:           "generic",
		kind:           sqlgen.Generic,
		types:          genericTypes{},
		bools:          StandardBooleans,
		partialIndexes: true,
	}}
	d.apply(opts)
	return d
}

type genericTypes struct{}

func (genericTypes) StringType(length int) string {
	return fmt.Sprintf("varchar(%d)", length)
}

func (genericTypes) TextType() string    { return "text" }
func (genericTypes) IntegerType() string { return "integer" }
func (genericTypes) BigIntType() string  { return "bigint" }
func (genericTypes) FloatType() string   { return "double precision" }

func (genericTypes) DecimalType(precision, scale int) string {
	return fmt.Sprintf("numeric(%d, %d)", precision, scale)
}

func (genericTypes) BooleanType() string  { return "boolean" }
func (genericTypes) DateType() string     { return "date" }
func (genericTypes) DateTimeType() string { return "timestamp" }
func (genericTypes) TimeType() string     { return "time" }
func (genericTypes) BlobType() string     { return "blob" }
func (genericTypes) JSONType() string     { return "json" }
