// Package table holds the in-memory feature table the modeling pipeline
// consumes, plus the numeric/categorical role partition derived from it.
package table

import (
	"fmt"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
)

// Role classifies a column as numeric or categorical.
type Role int

const (
	RoleNumeric Role = iota
	RoleCategorical
)

func (r Role) String() string {
	if r == RoleNumeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named, typed column. Exactly one of Floats or Labels is
// populated, matching Role.
type Column struct {
	Name   string
	Role   Role
	Floats []float64
	Labels []string
}

// NumericColumn builds a numeric column.
func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Role: RoleNumeric, Floats: values}
}

// CategoricalColumn builds a categorical column.
func CategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Role: RoleCategorical, Labels: values}
}

// Len returns the number of observations in the column.
func (c Column) Len() int {
	if c.Role == RoleNumeric {
		return len(c.Floats)
	}
	return len(c.Labels)
}

// FeatureTable is an ordered collection of named columns over N observations.
// Columns are typed at load time and never re-typed afterwards.
type FeatureTable struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a FeatureTable from columns. All columns must share the same
// length and have unique names.
func New(cols ...Column) (*FeatureTable, error) {
	t := &FeatureTable{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), t.rows)
		}
		t.index[c.Name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// NumRows returns the number of observations.
func (t *FeatureTable) NumRows() int { return t.rows }

// Names returns column names in table order.
func (t *FeatureTable) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column and whether it exists.
func (t *FeatureTable) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// Numeric returns the named column's values, failing with a schema mismatch
// when the column is absent or not numeric.
func (t *FeatureTable) Numeric(name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, &mlerr.SchemaMismatchError{Column: name, Reason: "column not present"}
	}
	if c.Role != RoleNumeric {
		return nil, &mlerr.SchemaMismatchError{Column: name, Reason: "expected numeric, got categorical"}
	}
	return c.Floats, nil
}

// Categorical returns the named column's labels, failing with a schema
// mismatch when the column is absent or not categorical.
func (t *FeatureTable) Categorical(name string) ([]string, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, &mlerr.SchemaMismatchError{Column: name, Reason: "column not present"}
	}
	if c.Role != RoleCategorical {
		return nil, &mlerr.SchemaMismatchError{Column: name, Reason: "expected categorical, got numeric"}
	}
	return c.Labels, nil
}

// SelectRows returns a new table containing the given rows, in the given
// order. Indices may repeat.
func (t *FeatureTable) SelectRows(idx []int) *FeatureTable {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		nc := Column{Name: c.Name, Role: c.Role}
		if c.Role == RoleNumeric {
			nc.Floats = make([]float64, len(idx))
			for j, r := range idx {
				nc.Floats[j] = c.Floats[r]
			}
		} else {
			nc.Labels = make([]string, len(idx))
			for j, r := range idx {
				nc.Labels[j] = c.Labels[r]
			}
		}
		cols[i] = nc
	}
	out, _ := New(cols...)
	return out
}

// RoleSet is the numeric/categorical partition of a table's modeling
// columns. It is computed once per session and treated as immutable.
type RoleSet struct {
	Numeric     []string
	Categorical []string
}

// Partition splits a table's columns into numeric and categorical modeling
// sets, excluding the identifier and target columns. Classification follows
// the declared column type, so it is deterministic across tables sharing a
// schema.
func Partition(t *FeatureTable, idCol, target string) RoleSet {
	var rs RoleSet
	for _, c := range t.cols {
		if c.Name == idCol || c.Name == target {
			continue
		}
		if c.Role == RoleNumeric {
			rs.Numeric = append(rs.Numeric, c.Name)
		} else {
			rs.Categorical = append(rs.Categorical, c.Name)
		}
	}
	return rs
}

// Check verifies that every column in the role set exists in t with the same
// role. Used by fitted components before touching downstream tables.
func (rs RoleSet) Check(t *FeatureTable) error {
	for _, name := range rs.Numeric {
		c, ok := t.Column(name)
		if !ok {
			return &mlerr.SchemaMismatchError{Column: name, Reason: "column not present"}
		}
		if c.Role != RoleNumeric {
			return &mlerr.SchemaMismatchError{Column: name, Reason: "expected numeric, got categorical"}
		}
	}
	for _, name := range rs.Categorical {
		c, ok := t.Column(name)
		if !ok {
			return &mlerr.SchemaMismatchError{Column: name, Reason: "column not present"}
		}
		if c.Role != RoleCategorical {
			return &mlerr.SchemaMismatchError{Column: name, Reason: "expected categorical, got numeric"}
		}
	}
	return nil
}
