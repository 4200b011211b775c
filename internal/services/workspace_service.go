package services

import (
	"context"
	"errors"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/cache"
	"casa_arbol_gateway/internal/models"
)

var (
	ErrNameRequired    = errors.New("project name is required")
	ErrContentRequired = errors.New("message content is required")
)

const (
	resourceProjects = "projects"
	resourceTasks    = "tasks"
	resourceMessages = "messages"
)

// WorkspaceService manages the staff workspace: projects, their tasks and
// chat messages.
type WorkspaceService interface {
	ListProjects(ctx context.Context) (*models.ProjectsPage, error)
	CreateProject(ctx context.Context, p backend.CreateProjectParams) (*models.Project, error)
	ListTasks(ctx context.Context, projectID string) (*models.TasksPage, error)
	CreateTask(ctx context.Context, projectID string, p backend.CreateTaskParams) (*models.Task, error)
	ListMessages(ctx context.Context, p backend.ListMessagesParams) (*models.MessagesPage, error)
	PostMessage(ctx context.Context, chatID string, p backend.PostMessageParams) (*models.Message, error)
}

type workspaceService struct {
	backend *backend.Client
	cache   *cache.Coordinator
}

// NewWorkspaceService creates the workspace service.
func NewWorkspaceService(b *backend.Client, c *cache.Coordinator) WorkspaceService {
	return &workspaceService{backend: b, cache: c}
}

func (s *workspaceService) ListProjects(ctx context.Context) (*models.ProjectsPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceProjects, orgScope{Org: org})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListProjects(fctx)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.ProjectsPage), nil
}

func (s *workspaceService) CreateProject(ctx context.Context, p backend.CreateProjectParams) (*models.Project, error) {
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreateProject(mctx, p)
	}, cache.ResourceKey(resourceProjects))
	if err != nil {
		return nil, err
	}
	return v.(*models.Project), nil
}

func (s *workspaceService) ListTasks(ctx context.Context, projectID string) (*models.TasksPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceTasks, struct {
		orgScope
		ProjectID string `json:"project_id"`
	}{orgScope{Org: org}, projectID})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListTasks(fctx, projectID)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.TasksPage), nil
}

func (s *workspaceService) CreateTask(ctx context.Context, projectID string, p backend.CreateTaskParams) (*models.Task, error) {
	if p.Title == "" {
		return nil, ErrTitleRequired
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.CreateTask(mctx, projectID, p)
	}, cache.ResourceKey(resourceTasks))
	if err != nil {
		return nil, err
	}
	return v.(*models.Task), nil
}

func (s *workspaceService) ListMessages(ctx context.Context, p backend.ListMessagesParams) (*models.MessagesPage, error) {
	sc, org, err := orgOf(ctx)
	if err != nil {
		return nil, err
	}
	key := cache.NewKey(resourceMessages, struct {
		orgScope
		backend.ListMessagesParams
	}{orgScope{Org: org}, p})
	v, err := s.cache.Get(ctx, key, rebind(sc, func(fctx context.Context) (any, error) {
		return s.backend.ListMessages(fctx, p)
	}))
	if err != nil {
		return nil, err
	}
	return v.(*models.MessagesPage), nil
}

func (s *workspaceService) PostMessage(ctx context.Context, chatID string, p backend.PostMessageParams) (*models.Message, error) {
	if p.Content == "" {
		return nil, ErrContentRequired
	}
	v, err := s.cache.Mutate(ctx, func(mctx context.Context) (any, error) {
		return s.backend.PostMessage(mctx, chatID, p)
	}, cache.ResourceKey(resourceMessages))
	if err != nil {
		return nil, err
	}
	return v.(*models.Message), nil
}
