// Package calendar builds the month-grid view model and the iCalendar
// export payload from homework due dates.
package calendar

import "time"

// EmptySlot marks a grid cell outside the month.
const EmptySlot = 0

// MonthGrid lays out a month as week rows of 7 day slots (Sunday first).
// The first week is left-padded with EmptySlot before the 1st, the last
// week is right-padded after the final day.
func MonthGrid(year, month int) [][]int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	firstWeekday := int(first.Weekday())
	daysInMonth := DaysIn(year, month)

	var weeks [][]int

	week := make([]int, 7)
	day := 1
	for i := firstWeekday; i < 7; i++ {
		week[i] = day
		day++
	}
	weeks = append(weeks, week)

	for day <= daysInMonth {
		week = make([]int, 7)
		for i := 0; i < 7 && day <= daysInMonth; i++ {
			week[i] = day
			day++
		}
		weeks = append(weeks, week)
	}

	return weeks
}

// DaysIn returns the number of days of the given month.
func DaysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// PrevMonth returns the (year, month) pair preceding the given one,
// rolling the year back at January.
func PrevMonth(year, month int) (int, int) {
	if month <= 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth returns the (year, month) pair following the given one,
// rolling the year forward at December.
func NextMonth(year, month int) (int, int) {
	if month >= 12 {
		return year + 1, 1
	}
	return year, month + 1
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// MonthName returns the French name of a 1-based month.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return frenchMonths[month-1]
}
