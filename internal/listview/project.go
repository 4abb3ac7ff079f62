package listview

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
)

// missingOrderIndex sorts rows without a type order index after every
// row that has one.
const missingOrderIndex = 1 << 30

// Value is a single cell value used for sorting. Numeric values compare
// numerically, everything else by locale-aware collation of Text.
type Value struct {
	Text  string
	Num   float64
	IsNum bool
}

// TextValue wraps a plain string cell.
func TextValue(s string) Value { return Value{Text: s} }

// NumValue wraps a numeric cell. Text carries the display form so
// renderers never re-format.
func NumValue(n float64) Value {
	return Value{Text: strconv.FormatFloat(n, 'f', -1, 64), Num: n, IsNum: true}
}

// Accessor resolves a row's value for a column key.
type Accessor[T any] func(row T, key string) Value

// Searcher concatenates a row's searchable fields into one string.
type Searcher[T any] func(row T) string

// DefaultSort is the two-level rule applied when no explicit sort is
// set: primary is a denormalized type order index (rows without one sort
// last), secondary is a display text compared with Czech collation.
type DefaultSort[T any] struct {
	OrderIndex func(row T) (int, bool)
	Text       func(row T) string
}

// Project filters and sorts rows for display. The empty filter is the
// identity on membership. Filtering is a case- and diacritics-insensitive
// substring match against the row's searchable text. Sorting is stable:
// rows with equal keys keep their relative order from the input slice.
// The input slice is never mutated.
func Project[T any](rows []T, filter string, sortKey *SortKey, get Accessor[T], search Searcher[T], def DefaultSort[T]) []T {
	out := make([]T, 0, len(rows))
	if q := Normalize(strings.TrimSpace(filter)); q == "" {
		out = append(out, rows...)
	} else {
		for _, r := range rows {
			if strings.Contains(Normalize(search(r)), q) {
				out = append(out, r)
			}
		}
	}

	coll := newCollator()
	if sortKey == nil {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := defaultRank(out[i], def), defaultRank(out[j], def)
			if a != b {
				return a < b
			}
			return coll.CompareString(def.Text(out[i]), def.Text(out[j])) < 0
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		va, vb := get(out[i], sortKey.Key), get(out[j], sortKey.Key)
		cmp := compareValues(va, vb, coll)
		if sortKey.Dir == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func defaultRank[T any](row T, def DefaultSort[T]) int {
	if def.OrderIndex == nil {
		return missingOrderIndex
	}
	idx, ok := def.OrderIndex(row)
	if !ok {
		return missingOrderIndex
	}
	return idx
}

func compareValues(a, b Value, coll *collate.Collator) int {
	if a.IsNum && b.IsNum {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}
	return coll.CompareString(a.Text, b.Text)
}

// NextSort cycles a column's sort state the way the list header toggles:
// default -> asc -> desc -> default. Clicking a different column always
// starts at asc.
func NextSort(cur *SortKey, key string) *SortKey {
	if cur == nil || cur.Key != key {
		return &SortKey{Key: key, Dir: SortAsc}
	}
	if cur.Dir == SortAsc {
		return &SortKey{Key: key, Dir: SortDesc}
	}
	return nil
}
