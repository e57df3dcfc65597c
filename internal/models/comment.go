package models

import (
	"time"
)

const CommentTextMaxLen = 100

type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CommentText     string    `gorm:"size:100;not null" json:"comment_text"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	Author          *Author   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ArticleID       uint      `gorm:"not null;index" json:"article_id"`
	Article         *Article  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment"` // Nullable for top-level comments
	ParentComment   *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CountOfLikes    uint      `gorm:"not null;default:0" json:"count_of_likes"`
	CreateDate      time.Time `gorm:"autoCreateTime" json:"create_date"`
	UpdateDate      time.Time `gorm:"autoUpdateTime" json:"update_date"`
}

func (c *Comment) IsTopLevel() bool {
	return c.ParentCommentID == nil
}

func (c *Comment) IsUpdated() bool {
	return !c.CreateDate.Equal(c.UpdateDate)
}
