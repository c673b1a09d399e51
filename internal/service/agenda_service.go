package service

import (
	"context"
	"time"

	"monagenda.fr/myagenda/internal/calendar"
	"monagenda.fr/myagenda/internal/dto"
	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
)

type AgendaService interface {
	MonthView(ctx context.Context, user *model.User, year, month int) (*dto.AgendaResponse, error)
}

type agendaService struct {
	homeworkRepo repository.HomeworkRepository
	now          func() time.Time
}

func NewAgendaService(homeworkRepo repository.HomeworkRepository) AgendaService {
	return &agendaService{
		homeworkRepo: homeworkRepo,
		now:          time.Now,
	}
}

func (s *agendaService) MonthView(ctx context.Context, user *model.User, year, month int) (*dto.AgendaResponse, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	filter := repository.HomeworkFilter{}
	if !user.IsAdmin {
		filter.Class = user.Classe
		filter.CreatorID = &user.ID
	}

	homeworks, err := s.homeworkRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := time.Date(year, time.Month(month), calendar.DaysIn(year, month), 23, 59, 59, 0, time.Local)

	eventsByDay := make(map[int][]model.Homework)
	for _, hw := range homeworks {
		if hw.DueDate == nil {
			continue
		}
		due := hw.DueDate.In(time.Local)
		if due.Before(monthStart) || due.After(monthEnd) {
			continue
		}
		day := due.Day()
		eventsByDay[day] = append(eventsByDay[day], hw)
	}

	var todayDay *int
	if now.Year() == year && int(now.Month()) == month {
		day := now.Day()
		todayDay = &day
	}

	prevYear, prevMonth := calendar.PrevMonth(year, month)
	nextYear, nextMonth := calendar.NextMonth(year, month)

	return &dto.AgendaResponse{
		Year:        year,
		Month:       month,
		MonthName:   calendar.MonthName(month),
		Weeks:       calendar.MonthGrid(year, month),
		EventsByDay: eventsByDay,
		TodayDay:    todayDay,
		PrevYear:    prevYear,
		PrevMonth:   prevMonth,
		NextYear:    nextYear,
		NextMonth:   nextMonth,
	}, nil
}
