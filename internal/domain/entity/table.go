package entity

// AlignedTable is the full outer join of a group's sample streams. The
// timestamp axis is the sorted union of every input stream's timestamps;
// each column maps timestamp to value, and a missing map entry is an
// explicit absence, never a fabricated value.
type AlignedTable struct {
	Key        GroupKey
	Timestamps []int64
	Columns    map[string]map[int64]float64
}

// Value returns the cell for (variable, timestamp) and whether it is present.
func (t *AlignedTable) Value(variable string, ts int64) (float64, bool) {
	col, ok := t.Columns[variable]
	if !ok {
		return 0, false
	}
	v, ok := col[ts]
	return v, ok
}

// FilledTable has the same shape as AlignedTable after last-observation
// carry-forward. Cells before a column's first real value remain absent.
type FilledTable struct {
	Key        GroupKey
	Timestamps []int64
	Columns    map[string]map[int64]float64
}

func (t *FilledTable) Value(variable string, ts int64) (float64, bool) {
	col, ok := t.Columns[variable]
	if !ok {
		return 0, false
	}
	v, ok := col[ts]
	return v, ok
}
