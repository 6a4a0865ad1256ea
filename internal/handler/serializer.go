package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/models"
)

// Payload builders shape entities for the envelope. The password hash is
// never serialized and the coin balance is exposed in whole coins.

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"bio":      u.Bio,
		"avatar":   u.Avatar,
		"coin_num": u.CoinNum(),
		"post_num": u.PostNum,
		"identity": u.Role.Name,
		"add_time": u.CreatedAt,
	}
}

func postPayload(p *models.Post) gin.H {
	return gin.H{
		"id":            p.ID,
		"title":         p.Title,
		"author":        p.Author,
		"content":       p.Content,
		"cover_image":   p.CoverImage,
		"like_num":      p.LikeNum,
		"view_num":      p.ViewNum,
		"coin_num":      p.CoinNum,
		"collected_num": p.CollectedNum,
		"comment_num":   p.CommentNum,
		"category_id":   p.CategoryID,
		"uploader_id":   p.UploaderID,
		"like":          p.Liked,
		"add_time":      p.CreatedAt,
	}
}

func postPayloads(posts []models.Post) []gin.H {
	result := make([]gin.H, 0, len(posts))
	for i := range posts {
		result = append(result, postPayload(&posts[i]))
	}
	return result
}

func categoryPayload(c *models.Category) gin.H {
	return gin.H{
		"id":        c.ID,
		"name":      c.Name,
		"index":     c.Index,
		"parent_id": c.ParentID,
	}
}

func categoryPayloads(categories []models.Category) []gin.H {
	result := make([]gin.H, 0, len(categories))
	for i := range categories {
		result = append(result, categoryPayload(&categories[i]))
	}
	return result
}

func commentPayload(c *models.Comment) gin.H {
	return gin.H{
		"id":        c.ID,
		"content":   c.Content,
		"like_num":  c.LikeNum,
		"author_id": c.AuthorID,
		"post_id":   c.PostID,
		"parent_id": c.ParentID,
		"add_time":  c.CreatedAt,
	}
}

func commentPayloads(comments []models.Comment) []gin.H {
	result := make([]gin.H, 0, len(comments))
	for i := range comments {
		result = append(result, commentPayload(&comments[i]))
	}
	return result
}

func slidePayload(s *models.Slide) gin.H {
	return gin.H{
		"id":    s.ID,
		"title": s.Title,
		"url":   s.URL,
		"image": s.Image,
		"order": s.Order,
	}
}

func slidePayloads(slides []models.Slide) []gin.H {
	result := make([]gin.H, 0, len(slides))
	for i := range slides {
		result = append(result, slidePayload(&slides[i]))
	}
	return result
}
