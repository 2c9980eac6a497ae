package ast

import (
	"testing"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/expr"
)

func TestOpTypeString(t *testing.T) {
	tests := []struct {
		op   OpType
		want string
	}{
		{OpCreateTable, "CreateTable"},
		{OpDropTable, "DropTable"},
		{OpAddColumn, "AddColumn"},
		{OpDropColumn, "DropColumn"},
		{OpRenameColumn, "RenameColumn"},
		{OpCreateIndex, "CreateIndex"},
		{OpDropIndex, "DropIndex"},
		{OpType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("OpType(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestOperationTypesAndTables(t *testing.T) {
	ops := []struct {
		op    Operation
		typ   OpType
		table string
	}{
		{&CreateTable{TableOp: TableOp{Name: "nums"}}, OpCreateTable, "nums"},
		{&DropTable{TableOp: TableOp{Name: "nums"}}, OpDropTable, "nums"},
		{&AddColumn{TableRef: TableRef{Table_: "nums"}}, OpAddColumn, "nums"},
		{&DropColumn{TableRef: TableRef{Table_: "nums"}}, OpDropColumn, "nums"},
		{&RenameColumn{TableRef: TableRef{Table_: "nums"}}, OpRenameColumn, "nums"},
		{&CreateIndex{TableRef: TableRef{Table_: "nums"}}, OpCreateIndex, "nums"},
		{&DropIndex{TableRef: TableRef{Table_: "nums"}}, OpDropIndex, "nums"},
	}
	for _, tt := range ops {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if tt.op.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", tt.op.Type(), tt.typ)
			}
			if tt.op.Table() != tt.table {
				t.Errorf("Table() = %q, want %q", tt.op.Table(), tt.table)
			}
		})
	}
}

func TestOperationValidate(t *testing.T) {
	a2 := &ColumnDef{Name: "a2", Type: NamedType("integer"), Expression: expr.Mul(expr.Col("a"), 2), Stored: true}

	tests := []struct {
		name string
		op   Operation
		code alerr.Code
	}{
		{"create table", &CreateTable{TableOp: TableOp{Name: "nums"}, Columns: []*ColumnDef{{Name: "a", Type: NamedType("integer")}, a2}}, ""},
		{"create table without columns", &CreateTable{TableOp: TableOp{Name: "nums"}}, alerr.ErrSchemaInvalid},
		{"drop table", &DropTable{TableOp: TableOp{Name: "nums"}}, ""},
		{"drop table without name", &DropTable{}, alerr.ErrSchemaInvalid},
		{"add column", &AddColumn{TableRef: TableRef{Table_: "nums"}, Column: a2}, ""},
		{"add column without table", &AddColumn{Column: a2}, alerr.ErrSchemaInvalid},
		{"add column without column", &AddColumn{TableRef: TableRef{Table_: "nums"}}, alerr.ErrSchemaInvalid},
		{"add invalid column", &AddColumn{TableRef: TableRef{Table_: "nums"}, Column: &ColumnDef{Name: "x"}}, alerr.ErrSchemaInvalid},
		{"drop column", &DropColumn{TableRef: TableRef{Table_: "nums"}, Name: "a2"}, ""},
		{"drop column without name", &DropColumn{TableRef: TableRef{Table_: "nums"}}, alerr.ErrSchemaInvalid},
		{"drop column bad name", &DropColumn{TableRef: TableRef{Table_: "nums"}, Name: "a 2"}, alerr.ErrInvalidIdentifier},
		{"rename column", &RenameColumn{TableRef: TableRef{Table_: "nums"}, OldName: "a", NewName: "b"}, ""},
		{"rename to same name", &RenameColumn{TableRef: TableRef{Table_: "nums"}, OldName: "a", NewName: "a"}, alerr.ErrSchemaInvalid},
		{"rename missing new name", &RenameColumn{TableRef: TableRef{Table_: "nums"}, OldName: "a"}, alerr.ErrSchemaInvalid},
		{"create index", &CreateIndex{TableRef: TableRef{Table_: "nums"}, Columns: []string{"a2"}}, ""},
		{"create index without columns", &CreateIndex{TableRef: TableRef{Table_: "nums"}}, alerr.ErrSchemaInvalid},
		{"drop index", &DropIndex{TableRef: TableRef{Table_: "nums"}, Name: "nums_a2_index"}, ""},
		{"drop index without name", &DropIndex{TableRef: TableRef{Table_: "nums"}}, alerr.ErrSchemaInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !alerr.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCreateIndexName(t *testing.T) {
	tests := []struct {
		name string
		op   *CreateIndex
		want string
	}{
		{"default", &CreateIndex{TableRef: TableRef{Table_: "nums"}, Columns: []string{"a2"}}, "nums_a2_index"},
		{"multi column", &CreateIndex{TableRef: TableRef{Table_: "nums"}, Columns: []string{"a", "b"}}, "nums_a_b_index"},
		{"qualified table", &CreateIndex{TableRef: TableRef{Table_: "app.nums"}, Columns: []string{"a2"}}, "nums_a2_index"},
		{"explicit", &CreateIndex{TableRef: TableRef{Table_: "nums"}, Columns: []string{"a2"}, IndexOptions: IndexOptions{Name: "by_a2"}}, "by_a2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.IndexName(); got != tt.want {
				t.Errorf("IndexName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateTableIndexOps(t *testing.T) {
	op := &CreateTable{
		TableOp: TableOp{Name: "nums"},
		Indexes: []*IndexDef{
			{Columns: []string{"a2"}},
			{Columns: []string{"a", "b"}, IndexOptions: IndexOptions{Name: "ab", Unique: true}},
		},
	}

	got := op.IndexOps()
	if len(got) != 2 {
		t.Fatalf("IndexOps() returned %d ops, want 2", len(got))
	}
	if got[0].Table() != "nums" || got[0].IndexName() != "nums_a2_index" {
		t.Errorf("first index = %s on %s", got[0].IndexName(), got[0].Table())
	}
	if !got[1].Unique || got[1].IndexName() != "ab" {
		t.Errorf("second index = %+v", got[1])
	}

	empty := &CreateTable{TableOp: TableOp{Name: "nums"}}
	if n := len(empty.IndexOps()); n != 0 {
		t.Errorf("IndexOps() on table without indexes = %d, want 0", n)
	}
}
