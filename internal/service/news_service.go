package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/bernaba123/Clearance/internal/utils"
	"github.com/google/uuid"
)

// NewsService 新闻公告服务接口
type NewsService interface {
	Create(ctx context.Context, authorID string, req *CreateNewsRequest) (*model.NewsModel, error)
	Update(ctx context.Context, id string, req *UpdateNewsRequest) (*model.NewsModel, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.NewsModel, error)
	ListPublished(ctx context.Context, category string, page, pageSize int) ([]*model.NewsModel, int64, error)
	ListAll(ctx context.Context) ([]*model.NewsModel, error)
}

// CreateNewsRequest 创建新闻请求
// @Description 发布新闻公告的请求参数
type CreateNewsRequest struct {
	Title    string `json:"title" binding:"required" example:"Clearance deadline"`   // 标题
	Content  string `json:"content" binding:"required" example:"Apply before June"` // 正文
	Category string `json:"category" binding:"required" example:"deadline"`          // announcement/event/deadline/update
}

// UpdateNewsRequest 更新新闻请求
// @Description 更新新闻公告的请求参数
type UpdateNewsRequest struct {
	Title       string `json:"title"`        // 标题
	Content     string `json:"content"`      // 正文
	Category    string `json:"category"`     // 分类
	IsPublished *bool  `json:"is_published"` // 发布状态
}

const (
	// 标题长度上限,与数据库列宽一致
	maxNewsTitleLen = 255

	defaultNewsPageSize = 20
	maxNewsPageSize     = 100
)

// newsService 新闻公告服务实现
type newsService struct {
	newsRepo repository.NewsRepository
}

// NewNewsService 创建新闻公告服务
func NewNewsService(newsRepo repository.NewsRepository) NewsService {
	return &newsService{newsRepo: newsRepo}
}

// Create 发布新闻
func (s *newsService) Create(ctx context.Context, authorID string, req *CreateNewsRequest) (*model.NewsModel, error) {
	title, err := utils.TrimAndValidate(req.Title, maxNewsTitleLen)
	if err != nil {
		return nil, fmt.Errorf("%w: title %s", clearance.ErrValidation, err)
	}

	now := time.Now()
	news := &model.NewsModel{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     utils.SanitizeString(req.Content),
		Category:    req.Category,
		AuthorID:    authorID,
		IsPublished: true,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := news.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", clearance.ErrValidation, err)
	}
	if err := s.newsRepo.Save(news); err != nil {
		return nil, err
	}
	return news, nil
}

// Update 更新新闻
func (s *newsService) Update(ctx context.Context, id string, req *UpdateNewsRequest) (*model.NewsModel, error) {
	news, err := s.newsRepo.FindByID(id)
	if err != nil {
		return nil, clearance.ErrNotFound
	}

	if req.Title != "" {
		title, err := utils.TrimAndValidate(req.Title, maxNewsTitleLen)
		if err != nil {
			return nil, fmt.Errorf("%w: title %s", clearance.ErrValidation, err)
		}
		news.Title = title
	}
	if req.Content != "" {
		news.Content = utils.SanitizeString(req.Content)
	}
	if req.Category != "" {
		news.Category = req.Category
	}
	if req.IsPublished != nil {
		news.IsPublished = *req.IsPublished
	}
	news.UpdatedAt = time.Now()

	if err := news.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", clearance.ErrValidation, err)
	}
	if err := s.newsRepo.Save(news); err != nil {
		return nil, err
	}
	return news, nil
}

// Delete 删除新闻
func (s *newsService) Delete(ctx context.Context, id string) error {
	if _, err := s.newsRepo.FindByID(id); err != nil {
		return clearance.ErrNotFound
	}
	return s.newsRepo.Delete(id)
}

// Get 获取单条新闻
func (s *newsService) Get(ctx context.Context, id string) (*model.NewsModel, error) {
	news, err := s.newsRepo.FindByID(id)
	if err != nil {
		return nil, clearance.ErrNotFound
	}
	return news, nil
}

// ListPublished 分页列出已发布新闻
// page 从 1 开始,pageSize 超出上限时收敛到上限
func (s *newsService) ListPublished(ctx context.Context, category string, page, pageSize int) ([]*model.NewsModel, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultNewsPageSize
	}
	if pageSize > maxNewsPageSize {
		pageSize = maxNewsPageSize
	}
	return s.newsRepo.FindPublished(category, (page-1)*pageSize, pageSize)
}

// ListAll 列出全部新闻(管理端)
func (s *newsService) ListAll(ctx context.Context) ([]*model.NewsModel, error) {
	return s.newsRepo.FindAll()
}
