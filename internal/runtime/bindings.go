package runtime

import (
	"github.com/dop251/goja"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/dsl"
	"github.com/hlop3z/gencol/internal/expr"
)

// bind installs the script globals:
//
//	create_table(name, t => { ... }, {if_not_exists})
//	alter_table(name, t => { ... })
//	drop_table(name, {if_exists})
//	sql("a * 2")  col("a")  fn("sqrt", col("a"))
func (s *Sandbox) bind() {
	s.vm.Set("sql", func(src string) expr.Expr {
		return expr.SQL(src)
	})
	s.vm.Set("col", func(name string) expr.Expr {
		return expr.Col(name)
	})
	s.vm.Set("fn", func(call goja.FunctionCall) goja.Value {
		name := s.requireString(call, 0, "fn", "function name")
		args := make([]any, 0, len(call.Arguments))
		for i := 1; i < len(call.Arguments); i++ {
			args = append(args, call.Arguments[i].Export())
		}
		return s.vm.ToValue(expr.Fn(name, args...))
	})

	s.vm.Set("create_table", s.createTable)
	s.vm.Set("alter_table", s.alterTable)
	s.vm.Set("drop_table", s.dropTable)
}

func (s *Sandbox) createTable(call goja.FunctionCall) goja.Value {
	name := s.requireString(call, 0, "create_table", "name")
	builderFn := s.requireFunc(call, 1, "create_table")
	opts := s.optionsMap(call.Argument(2))

	err := s.migration.CreateTable(name, func(tb *dsl.TableBuilder) {
		if v, ok := opts["if_not_exists"].(bool); ok && v {
			tb.IfNotExists()
		}
		if _, err := builderFn(goja.Undefined(), s.tableObject(tb)); err != nil {
			s.rethrow(err)
		}
	})
	if err != nil {
		s.throw(err)
	}
	return goja.Undefined()
}

func (s *Sandbox) alterTable(call goja.FunctionCall) goja.Value {
	name := s.requireString(call, 0, "alter_table", "name")
	builderFn := s.requireFunc(call, 1, "alter_table")

	err := s.migration.AlterTable(name, func(ab *dsl.AlterTableBuilder) {
		if _, err := builderFn(goja.Undefined(), s.alterObject(ab)); err != nil {
			s.rethrow(err)
		}
	})
	if err != nil {
		s.throw(err)
	}
	return goja.Undefined()
}

func (s *Sandbox) dropTable(call goja.FunctionCall) goja.Value {
	name := s.requireString(call, 0, "drop_table", "name")
	opts := s.optionsMap(call.Argument(1))
	ifExists, _ := opts["if_exists"].(bool)

	if err := s.migration.DropTable(name, ifExists); err != nil {
		s.throw(err)
	}
	return goja.Undefined()
}

// tableObject exposes a TableBuilder as the `t` argument of create_table.
func (s *Sandbox) tableObject(tb *dsl.TableBuilder) *goja.Object {
	obj := s.vm.NewObject()

	_ = obj.Set("column", func(call goja.FunctionCall) goja.Value {
		name := s.requireString(call, 0, "column", "name")
		typ := s.requireString(call, 1, "column", "type")
		tb.Column(name, typ, s.columnOptions(call.Argument(2))...)
		return obj
	})

	_ = obj.Set("generated_column", func(call goja.FunctionCall) goja.Value {
		name := s.requireString(call, 0, "generated_column", "name")
		typ := s.requireString(call, 1, "generated_column", "type")
		tb.GeneratedColumn(name, typ, exportExpr(call.Argument(2)), s.columnOptions(call.Argument(3))...)
		return obj
	})

	typed := map[string]func(string, ...dsl.ColumnOption) *dsl.TableBuilder{
		"string":   tb.String,
		"text":     tb.Text,
		"integer":  tb.Integer,
		"bigint":   tb.BigInt,
		"float":    tb.Float,
		"boolean":  tb.Boolean,
		"date":     tb.Date,
		"datetime": tb.DateTime,
		"time":     tb.Time,
		"blob":     tb.Blob,
		"json":     tb.JSON,
	}
	for method, add := range typed {
		_ = obj.Set(method, func(call goja.FunctionCall) goja.Value {
			name := s.requireString(call, 0, method, "name")
			add(name, s.columnOptions(call.Argument(1))...)
			return obj
		})
	}

	_ = obj.Set("decimal", func(call goja.FunctionCall) goja.Value {
		name := s.requireString(call, 0, "decimal", "name")
		precision := int(call.Argument(1).ToInteger())
		scale := int(call.Argument(2).ToInteger())
		tb.Decimal(name, precision, scale, s.columnOptions(call.Argument(3))...)
		return obj
	})

	_ = obj.Set("index", func(call goja.FunctionCall) goja.Value {
		tb.Index(s.columnList(call.Argument(0), "index"), s.indexOptions(call.Argument(1))...)
		return obj
	})

	return obj
}

// alterObject exposes an AlterTableBuilder as the `t` argument of alter_table.
func (s *Sandbox) alterObject(ab *dsl.AlterTableBuilder) *goja.Object {
	obj := s.vm.NewObject()

	_ = obj.Set("add_column", func(call goja.FunctionCall) goja.Value {
		name := s.requireString(call, 0, "add_column", "name")
		typ := s.requireString(call, 1, "add_column", "type")
		ab.AddColumn(name, typ, s.columnOptions(call.Argument(2))...)
		return obj
	})

	_ = obj.Set("add_generated_column", func(call goja.FunctionCall) goja.Value {
		name := s.requireString(call, 0, "add_generated_column", "name")
		typ := s.requireString(call, 1, "add_generated_column", "type")
		ab.AddGeneratedColumn(name, typ, exportExpr(call.Argument(2)), s.columnOptions(call.Argument(3))...)
		return obj
	})

	_ = obj.Set("drop_column", func(call goja.FunctionCall) goja.Value {
		ab.DropColumn(s.requireString(call, 0, "drop_column", "name"))
		return obj
	})

	_ = obj.Set("rename_column", func(call goja.FunctionCall) goja.Value {
		from := s.requireString(call, 0, "rename_column", "old name")
		to := s.requireString(call, 1, "rename_column", "new name")
		ab.RenameColumn(from, to)
		return obj
	})

	_ = obj.Set("add_index", func(call goja.FunctionCall) goja.Value {
		ab.AddIndex(s.columnList(call.Argument(0), "add_index"), s.indexOptions(call.Argument(1))...)
		return obj
	})

	_ = obj.Set("drop_index", func(call goja.FunctionCall) goja.Value {
		name := s.requireString(call, 0, "drop_index", "name")
		opts := s.optionsMap(call.Argument(1))
		ifExists, _ := opts["if_exists"].(bool)
		ab.DropIndex(name, ifExists)
		return obj
	})

	return obj
}

// -----------------------------------------------------------------------------
// Argument decoding
// -----------------------------------------------------------------------------

func isMissing(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

// exportExpr returns the Go value of an expression argument: a string, an
// expr.Expr from sql()/col()/fn(), or nil when absent.
func exportExpr(v goja.Value) any {
	if isMissing(v) {
		return nil
	}
	return v.Export()
}

func (s *Sandbox) requireString(call goja.FunctionCall, i int, fn, what string) string {
	v := call.Argument(i)
	if isMissing(v) {
		s.throw(alerr.Newf(alerr.ErrInvalidOption, "%s() requires a %s", fn, what))
	}
	str, ok := v.Export().(string)
	if !ok {
		s.throw(alerr.Newf(alerr.ErrInvalidOption, "%s() %s must be a string", fn, what))
	}
	return str
}

func (s *Sandbox) requireFunc(call goja.FunctionCall, i int, fn string) goja.Callable {
	f, ok := goja.AssertFunction(call.Argument(i))
	if !ok {
		s.throw(alerr.Newf(alerr.ErrInvalidOption, "%s() requires a builder function", fn))
	}
	return f
}

// optionsMap exports an options object. A missing argument yields an empty map.
func (s *Sandbox) optionsMap(v goja.Value) map[string]any {
	if isMissing(v) {
		return map[string]any{}
	}
	m, ok := v.Export().(map[string]any)
	if !ok {
		s.throw(alerr.Newf(alerr.ErrInvalidOption, "options must be an object, got %s", v.String()))
	}
	return m
}

func (s *Sandbox) columnOptions(v goja.Value) []dsl.ColumnOption {
	opts, err := dsl.ParseOptions(s.optionsMap(v))
	if err != nil {
		s.throw(err)
	}
	return opts
}

func (s *Sandbox) indexOptions(v goja.Value) []dsl.IndexOption {
	opts, err := dsl.ParseIndexOptions(s.optionsMap(v))
	if err != nil {
		s.throw(err)
	}
	return opts
}

// columnList accepts a column name or an array of names.
func (s *Sandbox) columnList(v goja.Value, fn string) []string {
	if isMissing(v) {
		s.throw(alerr.Newf(alerr.ErrInvalidOption, "%s() requires columns", fn))
	}
	switch cols := v.Export().(type) {
	case string:
		return []string{cols}
	case []any:
		out := make([]string, 0, len(cols))
		for _, c := range cols {
			name, ok := c.(string)
			if !ok {
				s.throw(alerr.Newf(alerr.ErrInvalidOption, "%s() columns must be strings", fn))
			}
			out = append(out, name)
		}
		return out
	default:
		s.throw(alerr.Newf(alerr.ErrInvalidOption, "%s() columns must be a string or an array", fn))
		return nil
	}
}

// rethrow propagates an exception raised inside a builder callback.
func (s *Sandbox) rethrow(err error) {
	if ex, ok := err.(*goja.Exception); ok {
		panic(ex)
	}
	s.throw(alerr.Wrap(alerr.ErrJSExecution, err, "error in table builder"))
}
