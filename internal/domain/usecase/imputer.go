package usecase

import "fleetfuel/internal/domain/entity"

// FillTable carries the last observed value forward through each column
// independently, one ascending pass per column. Cells before a column's
// first real value stay absent: the pipeline never extrapolates backward,
// and a column with zero real values comes out entirely absent.
func FillTable(table *entity.AlignedTable) *entity.FilledTable {
	filled := &entity.FilledTable{
		Key:        table.Key,
		Timestamps: table.Timestamps,
		Columns:    make(map[string]map[int64]float64, len(table.Columns)),
	}

	for name, col := range table.Columns {
		out := make(map[int64]float64, len(table.Timestamps))
		var last float64
		seen := false
		for _, ts := range table.Timestamps {
			if v, ok := col[ts]; ok {
				last = v
				seen = true
			}
			if seen {
				out[ts] = last
			}
		}
		filled.Columns[name] = out
	}

	return filled
}
