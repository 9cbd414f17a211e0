// Package calendar renders the month grid behind the date-range picker and
// holds the two-click range selection logic. Weeks start on Monday.
package calendar

import (
	"fmt"

	"github.com/reservacitas/frontdesk/internal/caldate"
)

// GridSize is the fixed cell count of a rendered month: 6 weeks of 7 days,
// padded with trailing days of the previous month and leading days of the
// next one.
const GridSize = 42

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// DayNames are the weekday column headers, Monday first.
var DayNames = [7]string{"L", "M", "X", "J", "V", "S", "D"}

// Month is the reference month the grid is rendered for.
type Month struct {
	Year  int
	Month int
}

// MonthOf builds a reference month. Out-of-range month indexes are
// normalized into the adjacent year.
func MonthOf(year, month int) Month {
	for month < 1 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	return Month{Year: year, Month: month}
}

// MonthContaining is the reference month of a given date.
func MonthContaining(d caldate.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// Prev shifts the reference month back one month, wrapping January to the
// previous December.
func (m Month) Prev() Month {
	return MonthOf(m.Year, m.Month-1)
}

// Next shifts the reference month forward one month, wrapping December to
// the next January.
func (m Month) Next() Month {
	return MonthOf(m.Year, m.Month+1)
}

// Contains reports whether d falls inside the reference month.
func (m Month) Contains(d caldate.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Label renders the header text, e.g. "Octubre 2025".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", monthNames[m.Month-1], m.Year)
}

// Cell is one slot of the rendered grid. InMonth is false for the padding
// days borrowed from the adjacent months.
type Cell struct {
	Date    caldate.Date
	InMonth bool
}

// Grid returns the 42 cells of the month in render order. The first row
// starts on the Monday at or before day 1; the remainder is filled with
// days of the following month.
func (m Month) Grid() []Cell {
	first := caldate.New(m.Year, m.Month, 1)
	leading := first.Weekday()

	cells := make([]Cell, 0, GridSize)

	prev := m.Prev()
	prevLast := caldate.DaysInMonth(prev.Year, prev.Month)
	for i := leading - 1; i >= 0; i-- {
		cells = append(cells, Cell{
			Date: caldate.New(prev.Year, prev.Month, prevLast-i),
		})
	}

	for day := 1; day <= caldate.DaysInMonth(m.Year, m.Month); day++ {
		cells = append(cells, Cell{
			Date:    caldate.New(m.Year, m.Month, day),
			InMonth: true,
		})
	}

	next := m.Next()
	for day := 1; len(cells) < GridSize; day++ {
		cells = append(cells, Cell{
			Date: caldate.New(next.Year, next.Month, day),
		})
	}

	return cells
}
