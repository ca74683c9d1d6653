// viewstate реализует клиентское состояние списка статей: стор со
// снапшотом, координатор загрузок и наложение локальных правок
// (read/saved) поверх серверной выдачи.
package viewstate

import (
	"context"

	"github.com/pribylovaa/go-reader-client/internal/models"
)

//go:generate mockgen -source=api.go -destination=../../mocks/mock_article_api.go -package=mocks

// ArticleAPI — операции бэкенда, нужные стору.
// Боевая реализация — internal/client; в тестах — mocks.MockArticleAPI.
type ArticleAPI interface {
	// ListArticles возвращает страницу статей коллекции.
	ListArticles(ctx context.Context, collectionID int64, opts models.ListOptions) (*models.Page, error)
	// MarkRead отмечает статью прочитанной; возвращает подтверждённое состояние.
	MarkRead(ctx context.Context, articleID int64) (*models.ArticleState, error)
	// MarkUnread отмечает статью непрочитанной.
	MarkUnread(ctx context.Context, articleID int64) (*models.ArticleState, error)
	// SaveArticle сохраняет статью.
	SaveArticle(ctx context.Context, articleID int64) (*models.ArticleState, error)
	// UnsaveArticle убирает статью из сохранённых.
	UnsaveArticle(ctx context.Context, articleID int64) (*models.ArticleState, error)
}
