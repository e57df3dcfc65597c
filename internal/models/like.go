package models

import (
	"time"
)

// LikeOnComment is one author's reaction to one comment. The (author, comment) pair is unique.
type LikeOnComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"not null;index;uniqueIndex:idx_like_author_comment" json:"author_id"`
	Author     *Author   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CommentID  uint      `gorm:"not null;index;uniqueIndex:idx_like_author_comment" json:"comment_id"`
	Comment    *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reaction   Reaction  `gorm:"type:varchar(50);not null" json:"reaction"`
	CreateDate time.Time `gorm:"autoCreateTime" json:"create_date"`
}
