package dsl

import (
	"fmt"
	"sort"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/strutil"
)

// Option keys accepted by ParseOptions. camelCase spellings (primaryKey,
// allowNull) are accepted and normalized to snake_case.
const (
	OptAs         = "as"
	OptStored     = "stored"
	OptUnique     = "unique"
	OptNull       = "null"
	OptAllowNull  = "allow_null"
	OptPrimaryKey = "primary_key"
	OptIndex      = "index"
	OptDefault    = "default"
)

var optionKeys = []string{OptAs, OptStored, OptUnique, OptNull, OptAllowNull, OptPrimaryKey, OptIndex, OptDefault}

var indexOptionKeys = []string{"name", "unique", "if_not_exists", "where"}

// ParseOptions decodes an options map, as written in a schema script or
// YAML file, into column options:
//
//	{stored: true, unique: true, null: false, primary_key: true, index: true}
//
// The index value may be true or an object with name, unique, if_not_exists
// and where. Unknown keys and values of the wrong type are errors. Keys are
// processed in sorted order so the reported error is deterministic.
func ParseOptions(m map[string]any) ([]ColumnOption, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make([]ColumnOption, 0, len(m))
	for _, raw := range keys {
		v := m[raw]
		key := strutil.ToSnakeCase(raw)

		switch key {
		case OptAs:
			if v == nil {
				return nil, alerr.New(alerr.ErrMissingExpr, "option 'as' requires an expression").
					With("option", raw)
			}
			opts = append(opts, As(v))

		case OptStored, OptUnique, OptPrimaryKey:
			b, err := boolOption(raw, v)
			if err != nil {
				return nil, err
			}
			if !b {
				continue
			}
			switch key {
			case OptStored:
				opts = append(opts, Stored())
			case OptUnique:
				opts = append(opts, Unique())
			default:
				opts = append(opts, PrimaryKey())
			}

		case OptNull, OptAllowNull:
			if v == nil {
				continue
			}
			b, err := boolOption(raw, v)
			if err != nil {
				return nil, err
			}
			if key == OptNull {
				opts = append(opts, Null(b))
			} else {
				opts = append(opts, AllowNull(b))
			}

		case OptIndex:
			opt, err := indexOption(raw, v)
			if err != nil {
				return nil, err
			}
			if opt != nil {
				opts = append(opts, opt)
			}

		case OptDefault:
			opts = append(opts, Default(v))

		default:
			return nil, unknownOption(raw, key, optionKeys)
		}
	}
	return opts, nil
}

func boolOption(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, alerr.Newf(alerr.ErrInvalidOption, "option %q must be a boolean, got %T", key, v).
			With("option", key).
			With("value", fmt.Sprint(v))
	}
	return b, nil
}

func stringOption(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", alerr.Newf(alerr.ErrInvalidOption, "option %q must be a string, got %T", key, v).
			With("option", key).
			With("value", fmt.Sprint(v))
	}
	return s, nil
}

// indexOption decodes `index: true` or `index: {name: ..., unique: ...}`.
// It returns nil for `index: false`.
func indexOption(key string, v any) (ColumnOption, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if !val {
			return nil, nil
		}
		return Index(), nil
	case map[string]any:
		opts, err := ParseIndexOptions(val)
		if err != nil {
			return nil, err
		}
		return Index(opts...), nil
	default:
		return nil, alerr.Newf(alerr.ErrInvalidOption, "option %q must be a boolean or an object, got %T", key, v).
			With("option", key)
	}
}

// ParseIndexOptions decodes an index options object.
func ParseIndexOptions(m map[string]any) ([]IndexOption, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make([]IndexOption, 0, len(m))
	for _, raw := range keys {
		v := m[raw]
		key := strutil.ToSnakeCase(raw)

		switch key {
		case "name":
			s, err := stringOption(raw, v)
			if err != nil {
				return nil, err
			}
			opts = append(opts, IndexName(s))
		case "unique":
			b, err := boolOption(raw, v)
			if err != nil {
				return nil, err
			}
			if b {
				opts = append(opts, IndexUnique())
			}
		case "if_not_exists":
			b, err := boolOption(raw, v)
			if err != nil {
				return nil, err
			}
			if b {
				opts = append(opts, IndexIfNotExists())
			}
		case "where":
			opts = append(opts, IndexWhere(v))
		default:
			return nil, unknownOption(raw, key, indexOptionKeys)
		}
	}
	return opts, nil
}

func unknownOption(raw, key string, known []string) error {
	err := alerr.Newf(alerr.ErrInvalidOption, "unknown option %q", raw).With("option", raw)
	if hint := alerr.SuggestSimilar(key, known); hint != "" {
		err.WithHelp(hint)
	}
	return err
}
