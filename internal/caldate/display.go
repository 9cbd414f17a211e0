package caldate

import (
	"fmt"
	"time"
)

var (
	shortDayNames  = [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	longDayNames   = [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	longMonthNames = [12]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	shortMonthNames = [12]string{
		"ene", "feb", "mar", "abr", "may", "jun",
		"jul", "ago", "sep", "oct", "nov", "dic",
	}
)

func (d Date) weekdayIndex() int {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return int(t.Weekday())
}

// DisplayShort renders "lun, 6 oct" for compact date pickers.
func (d Date) DisplayShort() string {
	return fmt.Sprintf("%s, %d %s", shortDayNames[d.weekdayIndex()], d.Day, shortMonthNames[d.Month-1])
}

// DisplayLong renders "lunes, 6 de octubre de 2025" for summaries.
func (d Date) DisplayLong() string {
	return fmt.Sprintf("%s, %d de %s de %d",
		longDayNames[d.weekdayIndex()], d.Day, longMonthNames[d.Month-1], d.Year)
}
