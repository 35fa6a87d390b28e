// Package querysql compiles filter predicates to parameterized SQLite SQL.
//
// It is the push-down backend for the SQLite material source: a FilterSpec
// compiled here selects the same rows, in the same order, as the in-memory
// engine evaluating the same spec.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/queryir"
)

// DefaultTable is the SQLite table holding material rows.
const DefaultTable = "materials"

// Columns is the fixed column list of every compiled query, in scan order.
var Columns = []string{
	"id",
	"formula",
	string(material.FieldBandGap),
	string(material.FieldDensity),
	string(material.FieldEnergyAboveHull),
	string(material.FieldFormationEnergy),
}

// elementSep delimits symbols in the elements column: "|Fe|O|".
const elementSep = "|"

// SQLCompiler compiles predicates to parameterized SQL for SQLite.
//
// CRITICAL: every query ends with ORDER BY seq, id so results follow
// insertion order deterministically.
// CRITICAL: values are always parameterized, never interpolated. Column
// names come only from the closed material.Field set.
type SQLCompiler struct {
	// Table is the source table name. Defaults to DefaultTable.
	Table string
}

// NewSQLCompiler creates a new SQLCompiler for the materials table.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{Table: DefaultTable}
}

// CompileSpec validates a FilterSpec and compiles its predicate.
func (c *SQLCompiler) CompileSpec(spec queryir.FilterSpec) (string, []any, error) {
	if result := queryir.Validate(spec); !result.Valid {
		return "", nil, fmt.Errorf("invalid filter spec: %s", strings.Join(result.Problems, "; "))
	}
	return c.Compile(spec.Predicate())
}

// Compile converts a predicate to a SELECT statement.
// Returns (sql, params, error). A nil or empty predicate selects every row.
func (c *SQLCompiler) Compile(p queryir.Predicate) (string, []any, error) {
	table := c.Table
	if table == "" {
		table = DefaultTable
	}

	where, params, err := c.compilePredicate(p)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	sb.WriteString(" ORDER BY seq ASC, id COLLATE BINARY ASC")

	return sb.String(), params, nil
}

// compilePredicate returns a WHERE fragment, or "" when p constrains nothing.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "", nil, nil
	case queryir.Range:
		return c.compileRange(pred)
	case *queryir.Range:
		return c.compileRange(*pred)
	case queryir.Contains:
		return c.compileContains(pred)
	case *queryir.Contains:
		return c.compileContains(*pred)
	case queryir.HasElements:
		return c.compileHasElements(pred)
	case *queryir.HasElements:
		return c.compileHasElements(*pred)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileRange compiles inclusive bounds to "f >= ? AND f <= ?".
func (c *SQLCompiler) compileRange(r queryir.Range) (string, []any, error) {
	if !r.Field.Valid() {
		return "", nil, fmt.Errorf("unknown field %q", string(r.Field))
	}

	var parts []string
	var params []any
	if r.Min != nil {
		parts = append(parts, string(r.Field)+" >= ?")
		params = append(params, *r.Min)
	}
	if r.Max != nil {
		parts = append(parts, string(r.Field)+" <= ?")
		params = append(params, *r.Max)
	}
	return strings.Join(parts, " AND "), params, nil
}

// compileContains compiles a case-insensitive substring match.
// instr is used rather than LIKE so '%' and '_' in the pattern are literal.
// SQLite's lower() folds ASCII only, which covers chemical formulas.
func (c *SQLCompiler) compileContains(ct queryir.Contains) (string, []any, error) {
	if ct.Pattern == "" {
		return "", nil, nil
	}
	return "instr(lower(formula), lower(?)) > 0", []any{ct.Pattern}, nil
}

// compileHasElements requires each "|Sym|" token in the elements column.
func (c *SQLCompiler) compileHasElements(he queryir.HasElements) (string, []any, error) {
	var parts []string
	var params []any
	for _, sym := range he.Symbols {
		if !material.ValidSymbol(sym) {
			return "", nil, fmt.Errorf("malformed element symbol %q", sym)
		}
		parts = append(parts, "instr(elements, ?) > 0")
		params = append(params, ElementParam(sym))
	}
	return strings.Join(parts, " AND "), params, nil
}

// compileAnd joins the non-empty fragments of every sub-predicate.
func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	var parts []string
	var params []any
	for _, sub := range and.Predicates {
		sql, subParams, err := c.compilePredicate(sub)
		if err != nil {
			return "", nil, err
		}
		if sql == "" {
			continue
		}
		parts = append(parts, sql)
		params = append(params, subParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// EncodeElements renders a formula's element symbols for the elements
// column: "Fe2O3" → "|Fe|O|". A formula with no symbols encodes as "|".
func EncodeElements(formula string) string {
	symbols := material.Elements(formula)
	if len(symbols) == 0 {
		return elementSep
	}
	return elementSep + strings.Join(symbols, elementSep) + elementSep
}

// ElementParam is the instr() needle for one symbol: "Fe" → "|Fe|".
func ElementParam(sym string) string {
	return elementSep + sym + elementSep
}
