package models

type Comment struct {
	Base
	Content string `gorm:"type:varchar(1024);not null" json:"content"`
	LikeNum int    `gorm:"not null;default:0" json:"like_num"`

	AuthorID uint `gorm:"index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"-"`

	PostID uint `gorm:"index" json:"post_id"`
	Post   Post `gorm:"foreignKey:PostID" json:"-"`

	// ParentID forms the reply tree; nil for a top-level comment.
	ParentID *uint `gorm:"index" json:"parent_id"`
}
