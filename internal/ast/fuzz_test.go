package ast

import "testing"

func FuzzValidateIdentifier(f *testing.F) {
	f.Add("nums")
	f.Add("a2")
	f.Add("")
	f.Add("Robert'; DROP TABLE students;--")
	f.Add("UNION")

	f.Fuzz(func(t *testing.T, name string) {
		_ = ValidateIdentifier(name)
	})
}

func FuzzParseType(f *testing.F) {
	f.Add("integer")
	f.Add("varchar(255)")
	f.Add("decimal(10, 2)")
	f.Add("double precision")
	f.Add("int); DROP TABLE t; --")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		typ, err := ParseType(s)
		if err == nil && typ.Validate() == nil && typ.Name == "" {
			t.Errorf("ParseType(%q) accepted an empty type name", s)
		}
	})
}
