package repository

import (
	"github.com/bernaba123/Clearance/internal/model"
	"gorm.io/gorm"
)

// NewsRepository 新闻仓储接口
type NewsRepository interface {
	Save(news *model.NewsModel) error
	FindByID(id string) (*model.NewsModel, error)
	FindPublished(category string, offset, limit int) ([]*model.NewsModel, int64, error)
	FindAll() ([]*model.NewsModel, error)
	Delete(id string) error
}

// newsRepository 新闻仓储实现
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository 创建新闻仓储
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Save 保存新闻
func (r *newsRepository) Save(news *model.NewsModel) error {
	if err := news.Validate(); err != nil {
		return err
	}
	return r.db.Save(news).Error
}

// FindByID 根据 ID 查找新闻
func (r *newsRepository) FindByID(id string) (*model.NewsModel, error) {
	var news model.NewsModel
	if err := r.db.Where("id = ?", id).First(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// FindPublished 分页查找已发布的新闻,可按分类过滤
// 返回当前页数据与满足条件的总条数
func (r *newsRepository) FindPublished(category string, offset, limit int) ([]*model.NewsModel, int64, error) {
	query := r.db.Model(&model.NewsModel{}).Where("is_published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.NewsModel
	err := query.Order("published_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// FindAll 查找全部新闻(含未发布)
func (r *newsRepository) FindAll() ([]*model.NewsModel, error) {
	var items []*model.NewsModel
	err := r.db.Order("published_at DESC").Find(&items).Error
	return items, err
}

// Delete 删除新闻
func (r *newsRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.NewsModel{}).Error
}
