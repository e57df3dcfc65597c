package models

import (
	"time"
)

const ArticleTitleMaxLen = 100

type Article struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:100;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     *Author   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreateDate time.Time `gorm:"autoCreateTime" json:"create_date"`
	UpdateDate time.Time `gorm:"autoUpdateTime" json:"update_date"`
}

// IsUpdated reports whether the article was saved again after creation.
func (a *Article) IsUpdated() bool {
	return !a.CreateDate.Equal(a.UpdateDate)
}
