package backend

import (
	"context"

	"casa_arbol_gateway/internal/models"
)

// ListProjects lists projects. GET /api/v1/projects, errors: 401, 403.
func (c *Client) ListProjects(ctx context.Context) (*models.ProjectsPage, error) {
	op := operation{name: "list_projects", method: "GET", path: "/api/v1/projects", auth: true, useOrg: true}
	var page models.ProjectsPage
	if err := c.do(ctx, op, nil, nil, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateProjectParams creates a project.
type CreateProjectParams struct {
	Name string `json:"name"`
}

// CreateProject creates a project. POST /api/v1/projects,
// errors: 401, 403, 422.
func (c *Client) CreateProject(ctx context.Context, p CreateProjectParams) (*models.Project, error) {
	op := operation{name: "create_project", method: "POST", path: "/api/v1/projects", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var project models.Project
	if err := c.do(ctx, op, nil, nil, body, "application/json", &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListTasks lists a project's tasks. GET /api/v1/projects/{project_id}/tasks,
// errors: 401, 403, 404.
func (c *Client) ListTasks(ctx context.Context, projectID string) (*models.TasksPage, error) {
	op := operation{name: "list_tasks", method: "GET", path: "/api/v1/projects/{project_id}/tasks", auth: true, useOrg: true}
	var page models.TasksPage
	if err := c.do(ctx, op, map[string]string{"project_id": projectID}, nil, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateTaskParams creates a task inside a project.
type CreateTaskParams struct {
	Title string `json:"title"`
}

// CreateTask creates a task. POST /api/v1/projects/{project_id}/tasks,
// errors: 401, 403, 404, 422.
func (c *Client) CreateTask(ctx context.Context, projectID string, p CreateTaskParams) (*models.Task, error) {
	op := operation{name: "create_task", method: "POST", path: "/api/v1/projects/{project_id}/tasks", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var task models.Task
	if err := c.do(ctx, op, map[string]string{"project_id": projectID}, nil, body, "application/json", &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListMessagesParams paginates a chat's messages.
type ListMessagesParams struct {
	ChatID string `json:"chat_id"`
	Skip   int    `json:"skip"`
	Limit  int    `json:"limit"`
}

// ListMessages lists chat messages. GET /api/v1/chats/{chat_id}/messages,
// errors: 401, 403, 404, 422.
func (c *Client) ListMessages(ctx context.Context, p ListMessagesParams) (*models.MessagesPage, error) {
	op := operation{name: "list_messages", method: "GET", path: "/api/v1/chats/{chat_id}/messages", auth: true, useOrg: true}
	var page models.MessagesPage
	if err := c.do(ctx, op, map[string]string{"chat_id": p.ChatID}, pagination(p.Skip, p.Limit), nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PostMessageParams posts a chat message.
type PostMessageParams struct {
	Content string `json:"content"`
}

// PostMessage posts a message. POST /api/v1/chats/{chat_id}/messages,
// errors: 401, 403, 404, 422.
func (c *Client) PostMessage(ctx context.Context, chatID string, p PostMessageParams) (*models.Message, error) {
	op := operation{name: "post_message", method: "POST", path: "/api/v1/chats/{chat_id}/messages", auth: true, useOrg: true}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var message models.Message
	if err := c.do(ctx, op, map[string]string{"chat_id": chatID}, nil, body, "application/json", &message); err != nil {
		return nil, err
	}
	return &message, nil
}
