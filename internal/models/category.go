package models

type Category struct {
	Base
	Name  string `gorm:"type:varchar(64);not null;default:''" json:"name"`
	Index int    `gorm:"column:display_index;not null;default:0" json:"index"`

	// ParentID forms the category tree; nil for a root category.
	ParentID *uint `json:"parent_id"`
}
