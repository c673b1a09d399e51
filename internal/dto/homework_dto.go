package dto

import "monagenda.fr/myagenda/internal/model"

type CreateHomeworkRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Subject     string `json:"subject" form:"subject" binding:"required,max=100"`
	DueDate     string `json:"due_date" form:"due_date" binding:"required"`
	Time        string `json:"time" form:"time"`
	Description string `json:"description" form:"description"`
	Attachment  string `json:"attachment" form:"attachment"`
	Class       string `json:"class" form:"class"`
}

// UpdateHomeworkRequest mirrors the edit form: title and subject are always
// submitted; an empty due date keeps the stored one.
type UpdateHomeworkRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Subject     string `json:"subject" form:"subject" binding:"required,max=100"`
	DueDate     string `json:"due_date" form:"due_date"`
	Time        string `json:"time" form:"time"`
	Description string `json:"description" form:"description"`
	Attachment  string `json:"attachment" form:"attachment"`
	Class       string `json:"class" form:"class"`
}

type HomeworkFilter struct {
	Subject string `form:"subject"`
	Sort    string `form:"sort" binding:"omitempty,oneof=asc desc"`
	Search  string `form:"search"`
}

// HomeworkListItem annotates a homework row with the requesting user's own
// completion state.
type HomeworkListItem struct {
	model.Homework
	Completed bool `json:"completed"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

type HomeworkDetail struct {
	model.Homework
	Comments []CommentResponse `json:"comments"`
}

type CreateCommentRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

type ToggleCompletionResponse struct {
	Success   bool `json:"success"`
	Completed bool `json:"completed"`
}
