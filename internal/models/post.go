package models

type Post struct {
	Base
	Title        string `gorm:"type:varchar(256);not null" json:"title"`
	Author       string `gorm:"type:varchar(64);not null;default:''" json:"author"`
	Content      string `gorm:"type:text;not null" json:"content"`
	CoverImage   string `gorm:"type:varchar(128);not null;default:''" json:"cover_image"`
	LikeNum      int    `gorm:"not null;default:0" json:"like_num"`
	ViewNum      int    `gorm:"not null;default:0" json:"view_num"`
	CoinNum      int    `gorm:"not null;default:0" json:"coin_num"`
	CollectedNum int    `gorm:"not null;default:0" json:"collected_num"`
	CommentNum   int    `gorm:"not null;default:0" json:"comment_num"`

	CategoryID uint     `json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`

	UploaderID uint `gorm:"index" json:"uploader_id"`
	Uploader   User `gorm:"foreignKey:UploaderID" json:"-"`

	// Per-viewer flag derived from the liked-set, never persisted.
	Liked bool `gorm:"-" json:"like"`
}
