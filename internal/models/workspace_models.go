package models

import "time"

// Project groups chats and tasks.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Task belongs to a project.
type Task struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// Chat belongs to a project and holds messages.
type Chat struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single chat message.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectsPage is the paginated shape for project listings.
type ProjectsPage struct {
	Data  []Project `json:"data"`
	Count int       `json:"count"`
}

// TasksPage is the paginated shape for task listings.
type TasksPage struct {
	Data  []Task `json:"data"`
	Count int    `json:"count"`
}

// MessagesPage is the paginated shape for message listings.
type MessagesPage struct {
	Data  []Message `json:"data"`
	Count int       `json:"count"`
}
