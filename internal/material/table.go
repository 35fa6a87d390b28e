package material

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// Table is an ordered, immutable sequence of records.
//
// Table values are cheap to copy: copies share the underlying rows and the
// lazily built index. The zero Table is empty and valid.
type Table struct {
	snapshot string
	rows     []Record
	idx      *index
}

// index is built once per table on first lookup.
type index struct {
	once     sync.Once
	byID     map[string]int
	elements map[string]*roaring.Bitmap
}

// NewTable builds a table from records, copying the slice.
//
// Returns an error if any id is empty or duplicated, or if any numeric
// field is NaN or infinite.
func NewTable(records []Record) (Table, error) {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if r.ID == "" {
			return Table{}, fmt.Errorf("record %d: empty id", i)
		}
		if prev, dup := seen[r.ID]; dup {
			return Table{}, fmt.Errorf("record %d: duplicate id %q (first at %d)", i, r.ID, prev)
		}
		seen[r.ID] = i
		for _, f := range Fields {
			v := f.Value(r)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Table{}, fmt.Errorf("record %q: %s is not finite", r.ID, f)
			}
		}
	}

	return Table{
		rows: slices.Clone(records),
		idx:  &index{},
	}, nil
}

// MustNewTable is like NewTable but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNewTable(records []Record) Table {
	t, err := NewTable(records)
	if err != nil {
		panic(err)
	}
	return t
}

// WithSnapshot returns a copy of t stamped with a snapshot id.
// Rows and index are shared with t.
func (t Table) WithSnapshot(id string) Table {
	t.snapshot = id
	return t
}

// Snapshot returns the snapshot id assigned when the table was loaded.
// Derived tables keep their parent's snapshot id.
func (t Table) Snapshot() string {
	return t.snapshot
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// At returns the record at row position i.
func (t Table) At(i int) Record {
	return t.rows[i]
}

// Records returns a copy of the rows in table order.
func (t Table) Records() []Record {
	return slices.Clone(t.rows)
}

// IDs returns the record ids in table order.
func (t Table) IDs() []string {
	ids := make([]string, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.ID
	}
	return ids
}

// Head returns a table holding the first n rows (all rows if n exceeds Len).
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n >= len(t.rows) {
		return t
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	return t.Subset(positions)
}

// Subset returns a derived table holding the rows at the given positions.
// Positions must be strictly ascending so the derived table preserves the
// parent's order. The parent is not modified.
func (t Table) Subset(positions []int) Table {
	rows := make([]Record, len(positions))
	for i, p := range positions {
		rows[i] = t.rows[p]
	}
	return Table{
		snapshot: t.snapshot,
		rows:     rows,
		idx:      &index{},
	}
}

// Position returns the row position of the record with the given id.
func (t Table) Position(id string) (int, bool) {
	p, ok := t.index().byID[id]
	return p, ok
}

// Lookup returns the record with the given id.
func (t Table) Lookup(id string) (Record, bool) {
	p, ok := t.Position(id)
	if !ok {
		return Record{}, false
	}
	return t.rows[p], true
}

// RowsWithElements returns a new bitmap of the row positions whose formula
// contains every given element symbol. With no symbols, every row matches.
func (t Table) RowsWithElements(symbols []string) *roaring.Bitmap {
	out := roaring.New()
	out.AddRange(0, uint64(len(t.rows)))
	if len(symbols) == 0 {
		return out
	}

	idx := t.index()
	for _, sym := range symbols {
		bm, ok := idx.elements[sym]
		if !ok {
			return roaring.New()
		}
		out.And(bm)
	}
	return out
}

// ElementSymbols returns every element symbol present in the table, sorted.
func (t Table) ElementSymbols() []string {
	idx := t.index()
	out := make([]string, 0, len(idx.elements))
	for sym := range idx.elements {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether t and other hold the same records in the same order.
// Snapshot ids are not compared.
func (t Table) Equal(other Table) bool {
	return slices.Equal(t.rows, other.rows)
}

var emptyIndex = func() *index {
	idx := &index{}
	idx.build(nil)
	return idx
}()

func (t Table) index() *index {
	if t.idx == nil {
		return emptyIndex
	}
	t.idx.once.Do(func() { t.idx.build(t.rows) })
	return t.idx
}

func (idx *index) build(rows []Record) {
	idx.byID = make(map[string]int, len(rows))
	idx.elements = make(map[string]*roaring.Bitmap)
	for i, r := range rows {
		idx.byID[r.ID] = i
		for _, sym := range Elements(r.Formula) {
			bm, ok := idx.elements[sym]
			if !ok {
				bm = roaring.New()
				idx.elements[sym] = bm
			}
			bm.Add(uint32(i))
		}
	}
}
