package httpapi

import (
	"time"

	"github.com/studyloop/studyloop/internal/domain"
)

type sessionDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Subject     string  `json:"subject"`
	StartedAt   string  `json:"started_at"`
	EndedAt     *string `json:"ended_at"`
	DurationMin int     `json:"duration_min"`
}

func toSessionDTO(s *domain.StudySession) sessionDTO {
	dto := sessionDTO{
		ID:          s.ID,
		Name:        s.Name,
		Subject:     s.Subject,
		StartedAt:   s.StartedAt.Format(time.RFC3339),
		DurationMin: s.DurationMin,
	}
	if s.EndedAt != nil {
		ended := s.EndedAt.Format(time.RFC3339)
		dto.EndedAt = &ended
	}
	return dto
}

type todoDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

func toTodoDTO(t *domain.Todo) todoDTO {
	dto := todoDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.CompletedAt != nil {
		done := t.CompletedAt.Format(time.RFC3339)
		dto.CompletedAt = &done
	}
	return dto
}

type aggregateDTO struct {
	TotalSessions       int            `json:"total_sessions"`
	TotalStudyMin       int            `json:"total_study_min"`
	TotalCompletedTasks int            `json:"total_completed_tasks"`
	SubjectsBreakdown   map[string]int `json:"subjects_breakdown"`
}

func toAggregateDTO(a *domain.Aggregate) aggregateDTO {
	subjects := a.Subjects
	if subjects == nil {
		subjects = domain.SubjectMinutes{}
	}
	return aggregateDTO{
		TotalSessions:       a.TotalSessions,
		TotalStudyMin:       a.TotalStudyMin,
		TotalCompletedTasks: a.TotalCompletedTasks,
		SubjectsBreakdown:   subjects,
	}
}
