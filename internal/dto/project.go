package dto

// CreateProjectRequest represents the body of a project creation request
type CreateProjectRequest struct {
	Title string `json:"title"`
}

// DeleteProjectRequest carries the title typed by the user to confirm a deletion
type DeleteProjectRequest struct {
	ConfirmTitle string `json:"confirmTitle"`
}
