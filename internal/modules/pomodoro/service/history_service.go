package service

import (
	"time"

	"zenith/internal/modules/pomodoro/domain"
	pomodoroout "zenith/internal/modules/pomodoro/port/out"
)

type HistoryService struct {
	store pomodoroout.HistoryStore
}

func NewHistoryService(store pomodoroout.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

func (s *HistoryService) List() []domain.Log {
	return s.store.Items()
}

func (s *HistoryService) Today(now time.Time) []domain.Log {
	return domain.Today(s.store.Items(), now)
}

func (s *HistoryService) FocusSecondsToday(now time.Time) int {
	return domain.FocusSeconds(s.Today(now))
}

func (s *HistoryService) Listen(fn func([]domain.Log)) func() {
	return s.store.Listen(fn)
}
