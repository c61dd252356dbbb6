package service

import (
	"context"
	"testing"

	"github.com/bernaba123/Clearance/internal/clearance"
	"github.com/bernaba123/Clearance/internal/model"
	"github.com/bernaba123/Clearance/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNewsService(t *testing.T) NewsService {
	db := setupServiceTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.NewsModel{}))
	return NewNewsService(repository.NewNewsRepository(db))
}

// TestNewsService_CreateAndList 测试发布与列表
func TestNewsService_CreateAndList(t *testing.T) {
	svc := newTestNewsService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-001", &CreateNewsRequest{
		Title:    "Clearance deadline",
		Content:  "Submit your application before June 30.",
		Category: model.NewsCategoryDeadline,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsPublished)

	items, total, err := svc.ListPublished(ctx, "", 1, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), total)

	// 按分类过滤
	items, total, err = svc.ListPublished(ctx, model.NewsCategoryEvent, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

// TestNewsService_CreateInvalidCategory 测试非法分类
func TestNewsService_CreateInvalidCategory(t *testing.T) {
	svc := newTestNewsService(t)

	_, err := svc.Create(context.Background(), "admin-001", &CreateNewsRequest{
		Title:    "Hello",
		Content:  "World",
		Category: "gossip",
	})
	assert.ErrorIs(t, err, clearance.ErrValidation)
}

// TestNewsService_ListPagination 测试分页
func TestNewsService_ListPagination(t *testing.T) {
	svc := newTestNewsService(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := svc.Create(ctx, "admin-001", &CreateNewsRequest{
			Title:    title,
			Content:  "content",
			Category: model.NewsCategoryAnnouncement,
		})
		require.NoError(t, err)
	}

	items, total, err := svc.ListPublished(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(3), total)

	items, total, err = svc.ListPublished(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(3), total)

	// 非法页码参数收敛到默认值
	items, _, err = svc.ListPublished(ctx, "", 0, -5)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

// TestNewsService_CreateBlankTitle 测试空白标题
func TestNewsService_CreateBlankTitle(t *testing.T) {
	svc := newTestNewsService(t)

	_, err := svc.Create(context.Background(), "admin-001", &CreateNewsRequest{
		Title:    "   ",
		Content:  "World",
		Category: model.NewsCategoryAnnouncement,
	})
	assert.ErrorIs(t, err, clearance.ErrValidation)
}

// TestNewsService_CreateSanitizesContent 测试内容清理
func TestNewsService_CreateSanitizesContent(t *testing.T) {
	svc := newTestNewsService(t)

	created, err := svc.Create(context.Background(), "admin-001", &CreateNewsRequest{
		Title:    "<script>alert(1)</script>",
		Content:  "safe content",
		Category: model.NewsCategoryAnnouncement,
	})
	require.NoError(t, err)
	assert.NotContains(t, created.Title, "<script>")
}

// TestNewsService_UpdateAndUnpublish 测试更新与下线
func TestNewsService_UpdateAndUnpublish(t *testing.T) {
	svc := newTestNewsService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-001", &CreateNewsRequest{
		Title:    "Registration open",
		Content:  "Registration is now open.",
		Category: model.NewsCategoryUpdate,
	})
	require.NoError(t, err)

	unpublish := false
	updated, err := svc.Update(ctx, created.ID, &UpdateNewsRequest{
		Title:       "Registration closed",
		IsPublished: &unpublish,
	})
	require.NoError(t, err)
	assert.Equal(t, "Registration closed", updated.Title)
	assert.False(t, updated.IsPublished)

	// 下线后不再出现在公开列表
	items, total, err := svc.ListPublished(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// TestNewsService_Delete 测试删除
func TestNewsService_Delete(t *testing.T) {
	svc := newTestNewsService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-001", &CreateNewsRequest{
		Title:    "Temp",
		Content:  "Temp",
		Category: model.NewsCategoryAnnouncement,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, clearance.ErrNotFound)

	err = svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, clearance.ErrNotFound)
}
