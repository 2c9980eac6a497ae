package dialect

import (
	"fmt"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/sqlgen"
)

// mysql implements the Dialect interface for MySQL and MariaDB.
// DDL statements commit implicitly, so migrations cannot be wrapped in a
// transaction.
type mysql struct {
	base
}

// MySQL returns the MySQL dialect implementation.
func MySQL(opts ...Option) Dialect {
	d := &mysql{base: base{
		name:  "mysql",
		kind:  sqlgen.MySQL,
		quote: true,
		types: mysqlTypes{},
		bools: StandardBooleans,
	}}
	d.apply(opts)
	return d
}

// DropIndexSQL generates DROP INDEX i ON t; MySQL indexes are scoped to their table.
func (d *mysql) DropIndexSQL(op *ast.DropIndex) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	if op.Table() == "" {
		return "", alerr.New(alerr.ErrSchemaInvalid, "mysql requires the table to drop an index").
			With("index", op.Name)
	}
	return d.builder().DropIndex(op.Name, false).On(op.Table()).String(), nil
}

// -----------------------------------------------------------------------------
// Type mappings
// -----------------------------------------------------------------------------

type mysqlTypes struct{}

func (mysqlTypes) StringType(length int) string {
	return fmt.Sprintf("VARCHAR(%d)", length)
}

func (mysqlTypes) TextType() string    { return "TEXT" }
func (mysqlTypes) IntegerType() string { return "INT" }
func (mysqlTypes) BigIntType() string  { return "BIGINT" }
func (mysqlTypes) FloatType() string   { return "DOUBLE" }

func (mysqlTypes) DecimalType(precision, scale int) string {
	return fmt.Sprintf("DECIMAL(%d, %d)", precision, scale)
}

func (mysqlTypes) BooleanType() string  { return "TINYINT(1)" }
func (mysqlTypes) DateType() string     { return "DATE" }
func (mysqlTypes) DateTimeType() string { return "DATETIME" }
func (mysqlTypes) TimeType() string     { return "TIME" }
func (mysqlTypes) BlobType() string     { return "BLOB" }
func (mysqlTypes) JSONType() string     { return "JSON" }
