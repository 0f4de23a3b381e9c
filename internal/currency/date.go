package currency

import (
	"fmt"
	"time"
)

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// MonthName returns the French name of month (1..12), or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return frenchMonths[month-1]
}

// FormatDate renders t as a long French date: "15 janvier 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(int(t.Month())), t.Year())
}

// FormatShortDate renders t as "15/01/2024".
func FormatShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}
