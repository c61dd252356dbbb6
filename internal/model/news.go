package model

import (
	"errors"
	"time"
)

// 新闻分类常量
const (
	NewsCategoryAnnouncement = "announcement"
	NewsCategoryEvent        = "event"
	NewsCategoryDeadline     = "deadline"
	NewsCategoryUpdate       = "update"
)

// NewsModel 新闻公告数据模型
type NewsModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Content     string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(32);not null;index"` // announcement/event/deadline/update
	AuthorID    string    `gorm:"type:varchar(64);not null;index"`
	IsPublished bool      `gorm:"not null;default:true;index"`
	PublishedAt time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName 指定表名
func (NewsModel) TableName() string {
	return "news"
}

// Validate 验证新闻模型
func (nm *NewsModel) Validate() error {
	if nm.ID == "" {
		return errors.New("news ID is required")
	}
	if nm.Title == "" {
		return errors.New("news title is required")
	}
	if nm.Content == "" {
		return errors.New("news content is required")
	}
	switch nm.Category {
	case NewsCategoryAnnouncement, NewsCategoryEvent, NewsCategoryDeadline, NewsCategoryUpdate:
	default:
		return errors.New("invalid news category")
	}
	if nm.AuthorID == "" {
		return errors.New("news author is required")
	}
	return nil
}
