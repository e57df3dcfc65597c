package models

import (
	"strings"
	"time"
)

type Author struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	FirstName        string    `gorm:"size:150" json:"first_name"`
	LastName         string    `gorm:"size:150" json:"last_name"`
	FullName         string    `gorm:"size:255;not null" json:"full_name"`
	Password         string    `gorm:"not null" json:"-"` // Hash
	RegistrationDate time.Time `gorm:"<-:create;autoCreateTime" json:"registration_date"`
}

// ComposeFullName fills FullName from the first and last name when it was not given explicitly.
func (a *Author) ComposeFullName() {
	if strings.TrimSpace(a.FullName) != "" {
		return
	}
	a.FullName = strings.TrimSpace(a.FirstName + " " + a.LastName)
}
