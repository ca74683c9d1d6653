package viewstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pribylovaa/go-reader-client/internal/client"
	"github.com/pribylovaa/go-reader-client/internal/models"
	logctx "github.com/pribylovaa/go-reader-client/pkg/log"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ErrUnknownArticle — мутация для статьи, которой нет в загруженном списке.
// Локальная правка может существовать только для загруженной статьи.
var ErrUnknownArticle = errors.New("article not loaded in current scope")

// Store — клиентское состояние списка статей одного активного скоупа
// (коллекция + фильтр).
//
// Все поля защищены мьютексом; на время сетевых вызовов мьютекс
// отпускается, а принадлежность результата проверяется по поколению
// скоупа и номеру загрузки (поздние результаты чужого скоупа молча
// отбрасываются).
type Store struct {
	api      ArticleAPI
	pageSize int

	mu       sync.Mutex
	scope    models.Scope
	items    []models.Article
	loaded   map[int64]struct{}
	total    int
	offset   int
	overlays map[int64]models.Overlay
	loading  bool
	errMsg   string

	// lastDispatched — скоуп последней реально отправленной загрузки;
	// ключ дедупликации повторных запросов от перерисовок.
	lastDispatched *models.Scope
	// scopeGen растёт на каждой смене скоупа.
	scopeGen uint64
	// fetchSeq / activeFetch: номер последней запущенной загрузки и
	// номер загрузки, владеющей loading-флагом.
	fetchSeq    uint64
	activeFetch uint64
}

// Option — настройка Store при создании.
type Option func(*Store)

// WithPageSize задаёт размер страницы.
// Нормализация: <= 0 -> default; > max -> max.
func WithPageSize(n int) Option {
	return func(s *Store) { s.pageSize = n }
}

// New создаёт Store поверх реализации ArticleAPI.
// Начальный скоуп — (0, all), список пуст.
func New(api ArticleAPI, opts ...Option) *Store {
	s := &Store{
		api:      api,
		pageSize: defaultPageSize,
		scope:    models.Scope{Filter: models.FilterAll},
		loaded:   make(map[int64]struct{}),
		overlays: make(map[int64]models.Overlay),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.pageSize <= 0 {
		s.pageSize = defaultPageSize
	}
	if s.pageSize > maxPageSize {
		s.pageSize = maxPageSize
	}

	return s
}

// Snapshot — наблюдаемое состояние стора.
type Snapshot struct {
	Items     []models.DisplayArticle
	Total     int
	IsLoading bool
	Err       string
	HasMore   bool
	Filter    models.Filter
}

// Snapshot возвращает текущее состояние списка с применёнными правками.
//
// Чистая проекция: два вызова без промежуточной мутации дают
// структурно равные результаты. HasMore всегда выводится из
// len(items) и total, отдельно не хранится.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Items:     Reconcile(s.items, s.overlays),
		Total:     s.total,
		IsLoading: s.loading,
		Err:       s.errMsg,
		HasMore:   len(s.items) < s.total,
		Filter:    s.scope.Filter,
	}
}

// SetFilter меняет фильтр активного скоупа.
//
// Смена фильтра — это смена скоупа: список, total, окно пагинации и
// карта правок очищаются; загрузка НЕ запускается (это отдельный
// явный вызов FetchPage). Повторная установка того же фильтра — no-op.
func (s *Store) SetFilter(filter models.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filter == s.scope.Filter {
		return
	}

	s.resetScopeLocked(models.Scope{CollectionID: s.scope.CollectionID, Filter: filter})
}

// ClearError сбрасывает показанное сообщение об ошибке.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = ""
}

// FetchPage загружает первую страницу для коллекции в текущем фильтре.
//
// Дедупликация: если (коллекция, фильтр) совпадает с последней
// отправленной загрузкой и reset == false — no-op без сетевого вызова
// (типовой случай: родительский UI перерисовался с теми же входами).
// Изменение любой из двух компонент пары форсирует reset-загрузку.
// При reset == true загрузка идёт всегда, с offset 0, результат
// замещает список.
func (s *Store) FetchPage(ctx context.Context, collectionID int64, reset bool) error {
	const op = "viewstate.store.FetchPage"

	s.mu.Lock()

	target := models.Scope{CollectionID: collectionID, Filter: s.scope.Filter}

	if !reset && s.lastDispatched != nil && *s.lastDispatched == target {
		metricDedupSuppressed.Inc()
		s.mu.Unlock()

		logctx.From(ctx).Debug("fetch_dedup_suppressed",
			slog.String("op", op),
			slog.Int64("collection_id", collectionID),
		)

		return nil
	}

	if target != s.scope {
		s.resetScopeLocked(target)
	}

	return s.dispatchLocked(ctx, op, target, 0, true)
}

// LoadMore догружает следующую страницу текущего скоупа.
//
// Молча завершается (no-op), если загрузка уже идёт или страниц
// больше нет; быстрые повторные клики отбрасываются, а не ставятся
// в очередь. Вызов для другой коллекции форсирует первую страницу
// нового скоупа.
func (s *Store) LoadMore(ctx context.Context, collectionID int64) error {
	const op = "viewstate.store.LoadMore"

	s.mu.Lock()

	if s.loading {
		metricLoadMoreDropped.Inc()
		s.mu.Unlock()

		return nil
	}

	target := models.Scope{CollectionID: collectionID, Filter: s.scope.Filter}
	if target != s.scope {
		s.resetScopeLocked(target)

		return s.dispatchLocked(ctx, op, target, 0, true)
	}

	if len(s.items) >= s.total {
		s.mu.Unlock()

		return nil
	}

	return s.dispatchLocked(ctx, op, target, s.offset, false)
}

// MarkRead отмечает статью прочитанной.
// Правка фиксируется только после подтверждения сервером.
func (s *Store) MarkRead(ctx context.Context, articleID int64) error {
	return s.mutate(ctx, "viewstate.store.MarkRead", articleID, s.api.MarkRead, axisRead, true)
}

// MarkUnread отмечает статью непрочитанной.
func (s *Store) MarkUnread(ctx context.Context, articleID int64) error {
	return s.mutate(ctx, "viewstate.store.MarkUnread", articleID, s.api.MarkUnread, axisRead, false)
}

// Save сохраняет статью.
func (s *Store) Save(ctx context.Context, articleID int64) error {
	return s.mutate(ctx, "viewstate.store.Save", articleID, s.api.SaveArticle, axisSaved, true)
}

// Unsave убирает статью из сохранённых.
func (s *Store) Unsave(ctx context.Context, articleID int64) error {
	return s.mutate(ctx, "viewstate.store.Unsave", articleID, s.api.UnsaveArticle, axisSaved, false)
}

// resetScopeLocked активирует новый скоуп: список, total, окно
// пагинации, правки и ключ дедупликации очищаются. Правки скоуп-
// относительны: на повторном входе в ту же коллекцию источником
// истины становится серверная выдача.
func (s *Store) resetScopeLocked(target models.Scope) {
	s.scope = target
	s.items = nil
	s.loaded = make(map[int64]struct{})
	s.total = 0
	s.offset = 0
	s.overlays = make(map[int64]models.Overlay)
	s.errMsg = ""
	s.loading = false
	s.lastDispatched = nil
	s.scopeGen++
}

// dispatchLocked выполняет одну сетевую загрузку страницы.
// Мьютекс взят вызывающим; на время запроса он отпускается.
func (s *Store) dispatchLocked(ctx context.Context, op string, target models.Scope, offset int, replace bool) error {
	gen := s.scopeGen
	s.fetchSeq++
	seq := s.fetchSeq
	s.activeFetch = seq
	s.loading = true

	dispatched := target
	s.lastDispatched = &dispatched

	limit := s.pageSize
	s.mu.Unlock()

	lg := logctx.From(ctx)
	lg.Info("fetch_dispatch",
		slog.String("op", op),
		slog.Int64("collection_id", target.CollectionID),
		slog.String("filter", string(target.Filter)),
		slog.Int("offset", offset),
		slog.Bool("replace", replace),
	)

	page, err := s.api.ListArticles(ctx, target.CollectionID, models.OptionsForScope(target, limit, offset))

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.scopeGen || seq != s.activeFetch {
		// Скоуп сменился (или загрузку перегнал более новый reset),
		// пока шёл запрос: поздний результат не должен попасть в
		// чужой список. Это не ошибка — молча отбрасываем, не трогая
		// ни loading-флаг, ни сообщение об ошибке нового скоупа.
		metricFetches.WithLabelValues("stale").Inc()
		lg.Info("fetch_stale_dropped", slog.String("op", op))

		return nil
	}

	s.loading = false

	if err != nil {
		// Прежний список остаётся нетронутым; операция ретраится
		// повторным вызовом.
		s.errMsg = client.Message(err)
		metricFetches.WithLabelValues("error").Inc()
		lg.Error("fetch_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w", op, err)
	}

	if replace {
		s.items = append([]models.Article(nil), page.Items...)
		s.loaded = make(map[int64]struct{}, len(page.Items))
		s.offset = len(page.Items)
	} else {
		s.items = append(s.items, page.Items...)
		s.offset += len(page.Items)
	}
	for _, item := range page.Items {
		s.loaded[item.ID] = struct{}{}
	}
	s.total = page.Total
	s.errMsg = ""

	metricFetches.WithLabelValues("ok").Inc()
	lg.Info("fetch_ok",
		slog.String("op", op),
		slog.Int("items", len(page.Items)),
		slog.Int("total", page.Total),
		slog.Int("offset", s.offset),
	)

	return nil
}

// overlayAxis — независимая ось локальной правки.
type overlayAxis int

const (
	axisRead overlayAxis = iota
	axisSaved
)

// mutate — общий путь четырёх мутаций: remote-вызов, затем фиксация
// правки по затронутой оси. Оси независимы: правка одной не трогает
// другую. При ошибке правка НЕ применяется (без optimistic-rollback),
// сообщение уходит в снапшот, вызов ретраится повторно.
func (s *Store) mutate(ctx context.Context, op string, articleID int64, call func(context.Context, int64) (*models.ArticleState, error), axis overlayAxis, value bool) error {
	s.mu.Lock()

	if _, ok := s.loaded[articleID]; !ok {
		s.mu.Unlock()

		return fmt.Errorf("%s: article %d: %w", op, articleID, ErrUnknownArticle)
	}

	gen := s.scopeGen
	s.mu.Unlock()

	state, err := call(ctx, articleID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if gen == s.scopeGen {
			s.errMsg = client.Message(err)
		}

		logctx.From(ctx).Error("mutation_failed",
			slog.String("op", op),
			slog.Int64("article_id", articleID),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w", op, err)
	}

	if gen != s.scopeGen {
		// Подтверждение пришло после смены скоупа: карта правок уже
		// очищена и принадлежит другому скоупу — не воссоздаём запись.
		metricStaleMutations.Inc()

		return nil
	}

	ov := s.overlays[articleID]
	switch axis {
	case axisRead:
		ov.IsRead = value
	case axisSaved:
		ov.IsSaved = value
	}
	s.overlays[articleID] = ov

	logctx.From(ctx).Info("mutation_ok",
		slog.String("op", op),
		slog.Int64("article_id", articleID),
		slog.Bool("is_read", state.IsRead),
		slog.Bool("is_saved", state.IsSaved),
	)

	return nil
}
