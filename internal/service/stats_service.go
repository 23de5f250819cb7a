package service

import (
	"context"
	"fmt"

	"projecthub/internal/model"
	"projecthub/internal/repository"
)

// Stats summarises the caller's workload.
type Stats struct {
	OwnedProjects int64                      `json:"owned_projects"`
	TasksByStatus map[model.TaskStatus]int64 `json:"tasks_by_status"`
	AssignedTasks int64                      `json:"assigned_tasks"`
}

// StatsService computes dashboard figures.
type StatsService interface {
	ForUser(ctx context.Context, actor *model.User) (*Stats, error)
}

type statsService struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(projects repository.ProjectRepository, tasks repository.TaskRepository) StatsService {
	return &statsService{projects: projects, tasks: tasks}
}

func (s *statsService) ForUser(ctx context.Context, actor *model.User) (*Stats, error) {
	owned, err := s.projects.CountByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	counts, err := s.tasks.CountByStatusForOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	assigned, err := s.tasks.CountAssignedTo(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count assigned tasks: %w", err)
	}

	byStatus := map[model.TaskStatus]int64{
		model.TaskStatusTodo:       0,
		model.TaskStatusInProgress: 0,
		model.TaskStatusDone:       0,
	}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	return &Stats{
		OwnedProjects: owned,
		TasksByStatus: byStatus,
		AssignedTasks: assigned,
	}, nil
}
