package dto

import "monagenda.fr/myagenda/internal/model"

type AgendaFilter struct {
	Year  int `form:"year"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// AgendaResponse is the month view: week rows of 7 day slots (0 = slot
// outside the month) plus the month's homework bucketed by day number.
type AgendaResponse struct {
	Year        int                      `json:"year"`
	Month       int                      `json:"month"`
	MonthName   string                   `json:"month_name"`
	Weeks       [][]int                  `json:"weeks"`
	EventsByDay map[int][]model.Homework `json:"events_by_day"`
	// TodayDay is set only when the requested month is the current one.
	TodayDay  *int `json:"today_day,omitempty"`
	PrevYear  int  `json:"prev_year"`
	PrevMonth int  `json:"prev_month"`
	NextYear  int  `json:"next_year"`
	NextMonth int  `json:"next_month"`
}
