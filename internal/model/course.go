package model

import "time"

type Course struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	EstimatedTime   string    `gorm:"size:255" json:"estimatedTime,omitempty"`
	MaterialsNeeded string    `gorm:"type:text" json:"materialsNeeded,omitempty"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// CourseView is the response shape for course reads, with the owner's
// public fields embedded.
type CourseView struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EstimatedTime   string     `json:"estimatedTime,omitempty"`
	MaterialsNeeded string     `json:"materialsNeeded,omitempty"`
	UserID          uint       `json:"userId"`
	Owner           PublicUser `json:"user"`
}

func (c *Course) View() CourseView {
	view := CourseView{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
	}
	if c.User != nil {
		view.Owner = c.User.Public()
	}
	return view
}
