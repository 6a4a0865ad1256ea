package models

// Slide is a homepage carousel item.
type Slide struct {
	Base
	Title string `gorm:"type:varchar(64);not null;default:''" json:"title"`
	URL   string `gorm:"type:varchar(128);not null" json:"url"`
	Image string `gorm:"type:varchar(128);not null" json:"image"`
	Order int    `gorm:"column:display_order;not null;default:0" json:"order"`
}
