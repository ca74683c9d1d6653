// models содержит доменные сущности клиентского слоя ридера.
// Эти типы используются remote-клиентом и view-state-стором.
package models

import "time"

// Article — статья, как её отдаёт бэкенд в списочной выдаче.
//
// Особенности:
//   - запись неизменяема на клиенте: создаёт её только remote-клиент;
//   - признаков "прочитано/сохранено" в списочной выдаче нет —
//     их несёт локальный Overlay.
type Article struct {
	// ID — идентификатор статьи.
	ID int64 `json:"id"`
	// FeedID — фид-источник, из которого статья попала в коллекцию.
	FeedID int64 `json:"feed_id"`
	// Title — заголовок.
	Title string `json:"title"`
	// URL — каноническая ссылка на статью.
	URL string `json:"url"`
	// GUID — идентификатор записи в фиде (если источник его отдал).
	GUID string `json:"guid"`
	// Summary — краткое описание/тизер.
	Summary string `json:"summary"`
	// Author — автор (если источник его отдал).
	Author string `json:"author"`
	// PublishedAt — время публикации у источника; nil, если неизвестно.
	PublishedAt *time.Time `json:"published_at"`
	// CreatedAt — время появления статьи в БД бэкенда (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// Page — страница списочной выдачи статей.
//
// Порядок Items — серверный (published_at по убыванию, created_at
// как tie-breaker); клиент его не пересортировывает.
type Page struct {
	Items  []Article `json:"items"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// ArticleState — подтверждённое сервером пользовательское состояние статьи.
// Ответ всех четырёх мутационных вызовов.
type ArticleState struct {
	ArticleID int64      `json:"article_id"`
	IsRead    bool       `json:"is_read"`
	IsSaved   bool       `json:"is_saved"`
	ReadAt    *time.Time `json:"read_at"`
	SavedAt   *time.Time `json:"saved_at"`
}

// Overlay — локально подтверждённая правка (read/saved) поверх серверной выдачи.
// Создаётся только после успешного мутационного вызова.
type Overlay struct {
	IsRead  bool
	IsSaved bool
}

// DisplayArticle — статья с применённым Overlay; то, что видит
// презентационный слой.
type DisplayArticle struct {
	Article
	IsRead  bool
	IsSaved bool
}
