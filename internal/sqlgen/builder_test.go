package sqlgen

import (
	"testing"
)

// -----------------------------------------------------------------------------
// Dialect Tests
// -----------------------------------------------------------------------------

func TestDialectString(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{Generic, "generic"},
		{MySQL, "mysql"},
		{Postgres, "postgres"},
		{SQLite, "sqlite"},
		{Dialect(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.dialect.String()
			if got != tt.want {
				t.Errorf("Dialect.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// QuoteIdent Tests
// -----------------------------------------------------------------------------

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		ident   string
		want    string
	}{
		// MySQL uses backticks
		{"mysql_simple", MySQL, "nums", "`nums`"},
		{"mysql_escape", MySQL, "nu`ms", "`nu``ms`"},

		// PostgreSQL uses double quotes
		{"postgres_simple", Postgres, "nums", `"nums"`},
		{"postgres_escape", Postgres, `nu"ms`, `"nu""ms"`},

		// SQLite uses double quotes (like PostgreSQL)
		{"sqlite_simple", SQLite, "nums", `"nums"`},

		// Generic and unknown dialects use double quotes
		{"generic_simple", Generic, "nums", `"nums"`},
		{"unknown_simple", Dialect(99), "nums", `"nums"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuoteIdent(tt.dialect, tt.ident)
			if got != tt.want {
				t.Errorf("QuoteIdent(%v, %q) = %q, want %q", tt.dialect, tt.ident, got, tt.want)
			}
		})
	}
}

func TestQuoteString(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{Generic, "plain", `'plain'`},
		{Postgres, "it's", `'it''s'`},
		{SQLite, `a\`, `'a\'`},
		{MySQL, `a\`, `'a\\'`},
		{MySQL, `it's\n`, `'it''s\\n'`},
	}
	for _, tt := range tests {
		if got := QuoteString(tt.dialect, tt.in); got != tt.want {
			t.Errorf("QuoteString(%s, %q) = %s, want %s", tt.dialect, tt.in, got, tt.want)
		}
	}
}

func TestQuoteQualified(t *testing.T) {
	if got := QuoteQualified(Postgres, "app.nums"); got != `"app"."nums"` {
		t.Errorf("QuoteQualified(postgres) = %s", got)
	}
	if got := QuoteQualified(MySQL, "app.nums"); got != "`app`.`nums`" {
		t.Errorf("QuoteQualified(mysql) = %s", got)
	}
	if got := QuoteQualified(SQLite, "nums"); got != `"nums"` {
		t.Errorf("QuoteQualified(sqlite) = %s", got)
	}
}

// -----------------------------------------------------------------------------
// Builder Tests
// -----------------------------------------------------------------------------

func TestBuilderCreateTable(t *testing.T) {
	got := New(Generic).Unquoted().
		CreateTable("nums", false).
		OpenParen().
		Column("a", "integer").Comma().
		Column("a2", "integer").GeneratedAs("(a * 2)").Stored().
		CloseParen().
		String()

	want := "CREATE TABLE nums (a integer, a2 integer AS ((a * 2)) STORED)"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestBuilderGeneratedAs(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{Generic, `"c" integer AS (a + b)`},
		{MySQL, "`c` integer AS (a + b)"},
		{SQLite, `"c" integer AS (a + b)`},
		{Postgres, `"c" integer GENERATED ALWAYS AS (a + b)`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			got := New(tt.dialect).Column("c", "integer").GeneratedAs("a + b").String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilderModifiers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*Builder) *Builder
		want string
	}{
		{"stored", (*Builder).Stored, " STORED"},
		{"unique", (*Builder).Unique, " UNIQUE"},
		{"null", (*Builder).Null, " NULL"},
		{"not_null", (*Builder).NotNull, " NOT NULL"},
		{"primary_key", (*Builder).PrimaryKey, " PRIMARY KEY"},
		{"default", func(b *Builder) *Builder { return b.Default("0") }, " DEFAULT 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(New(Generic)).String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilderAlterTable(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		want string
	}{
		{
			"add column",
			New(Generic).Unquoted().AlterTable("nums").AddColumn().Column("a2", "integer"),
			"ALTER TABLE nums ADD COLUMN a2 integer",
		},
		{
			"drop column",
			New(Postgres).AlterTable("nums").DropColumn("a2"),
			`ALTER TABLE "nums" DROP COLUMN "a2"`,
		},
		{
			"rename column",
			New(MySQL).AlterTable("nums").RenameColumn("a", "b"),
			"ALTER TABLE `nums` RENAME COLUMN `a` TO `b`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilderIndexes(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		want string
	}{
		{
			"plain",
			New(Generic).Unquoted().CreateIndex("nums_a2_index", false, false).On("nums", "a2"),
			"CREATE INDEX nums_a2_index ON nums (a2)",
		},
		{
			"unique if not exists",
			New(SQLite).CreateIndex("i", true, true).On("nums", "a", "b"),
			`CREATE UNIQUE INDEX IF NOT EXISTS "i" ON "nums" ("a", "b")`,
		},
		{
			"partial",
			New(Postgres).CreateIndex("i", false, false).On("nums", "a").Where("a > 0"),
			`CREATE INDEX "i" ON "nums" ("a") WHERE a > 0`,
		},
		{
			"drop mysql",
			New(MySQL).DropIndex("i", false).On("nums"),
			"DROP INDEX `i` ON `nums`",
		},
		{
			"drop if exists",
			New(Postgres).DropIndex("i", true),
			`DROP INDEX IF EXISTS "i"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilderTableStatements(t *testing.T) {
	if got := New(Postgres).CreateTable("app.nums", true).String(); got != `CREATE TABLE IF NOT EXISTS "app"."nums"` {
		t.Errorf("CreateTable = %q", got)
	}
	if got := New(Generic).Unquoted().DropTable("nums", true).String(); got != "DROP TABLE IF EXISTS nums" {
		t.Errorf("DropTable = %q", got)
	}
}

func TestBuilderResetAndLen(t *testing.T) {
	b := New(Generic).Raw("abc")
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if got := b.Reset().Raw("x").String(); got != "x" {
		t.Errorf("after Reset, String() = %q", got)
	}
	if b.Dialect() != Generic {
		t.Errorf("Dialect() = %v", b.Dialect())
	}
}

func TestList(t *testing.T) {
	if got := List("a", "b", "c"); got != "a, b, c" {
		t.Errorf("List() = %q", got)
	}
	if got := List(); got != "" {
		t.Errorf("List() empty = %q", got)
	}
}
