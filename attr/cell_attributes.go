package attr

import (
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"gonum.org/v1/gonum/stat"
)

type IAttributes interface {
	CellCount() int
	GetValue(cell int32, name string) float64
	GetColumn(name string) Optional[Array[float64]]
	Columns() List[string]
}

// CellAttributes stores the numeric abundance columns column-wise,
// indexed by the cell position in the table.
type CellAttributes struct {
	count   int
	columns Dict[string, Array[float64]]
}

func New(cells []structs.Cell) *CellAttributes {
	columns := NewDict[string, Array[float64]](len(REQUIRED_COLUMNS))
	for _, name := range REQUIRED_COLUMNS {
		columns[name] = NewArray[float64](len(cells))
	}
	for i, cell := range cells {
		for name, value := range cell.Attributes {
			if !columns.ContainsKey(name) {
				columns[name] = NewArray[float64](len(cells))
			}
			columns[name][i] = value
		}
	}
	return &CellAttributes{
		count:   len(cells),
		columns: columns,
	}
}

func (self *CellAttributes) CellCount() int {
	return self.count
}
func (self *CellAttributes) GetValue(cell int32, name string) float64 {
	column, ok := self.columns[name]
	if !ok {
		return 0
	}
	return column[cell]
}
func (self *CellAttributes) GetColumn(name string) Optional[Array[float64]] {
	column, ok := self.columns[name]
	if !ok {
		return None[Array[float64]]()
	}
	return Some(column)
}
func (self *CellAttributes) Columns() List[string] {
	return SortedKeys(self.columns)
}

//*******************************************
// column statistics
//*******************************************

// Mean of a column, zero for an unknown or empty column.
func Mean(att IAttributes, name string) float64 {
	column := att.GetColumn(name)
	if !column.HasValue() || att.CellCount() == 0 {
		return 0
	}
	return stat.Mean(column.Value, nil)
}

// Minimum and maximum of a column.
func Range(att IAttributes, name string) (float64, float64) {
	column := att.GetColumn(name)
	if !column.HasValue() || column.Value.Length() == 0 {
		return 0, 0
	}
	min := column.Value[0]
	max := column.Value[0]
	for _, v := range column.Value {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
