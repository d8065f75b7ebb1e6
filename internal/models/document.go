package models

import "time"

// Document is one serialized collection stored by the database backend.
type Document struct {
	Collection string    `gorm:"primarykey;type:varchar(64)" json:"collection"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	UpdatedAt  time.Time `json:"updated_at"`
}
