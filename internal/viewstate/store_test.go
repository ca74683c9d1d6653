package viewstate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-reader-client/internal/client"
	"github.com/pribylovaa/go-reader-client/internal/models"
	"github.com/pribylovaa/go-reader-client/mocks"
)

// Файл unit-тестов стора (store.go).
//
// Покрываем ключевые инварианты:
//   - Snapshot — чистая проекция (повторный вызов без мутаций равен предыдущему);
//   - смена скоупа (SetFilter/смена коллекции) очищает список, total, окно
//     пагинации и правки ДО какой-либо загрузки;
//   - дедупликация FetchPage по последнему отправленному скоупу;
//   - LoadMore: in-flight guard, остановка на total, монотонный offset;
//   - поздний результат чужого скоупа молча отбрасывается;
//   - мутации: фиксация правки только после подтверждения сервером,
//     независимость осей read/saved, отбрасывание поздних подтверждений.

func article(id int64) models.Article {
	pub := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(id) * time.Hour)
	return models.Article{
		ID:          id,
		FeedID:      1,
		Title:       fmt.Sprintf("article #%d", id),
		URL:         fmt.Sprintf("https://example.org/articles/%d", id),
		PublishedAt: &pub,
		CreatedAt:   pub,
	}
}

func pageOf(total int, ids ...int64) *models.Page {
	items := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		items = append(items, article(id))
	}
	return &models.Page{Items: items, Total: total, Limit: len(ids)}
}

func newStoreForTest(t *testing.T) (*Store, *mocks.MockArticleAPI) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := mocks.NewMockArticleAPI(ctrl)
	return New(api, WithPageSize(2)), api
}

// TestSnapshot_InitialEmpty — стор до первой загрузки: пустой список,
// total 0, hasMore false, фильтр all.
func TestSnapshot_InitialEmpty(t *testing.T) {
	t.Parallel()

	st, _ := newStoreForTest(t)

	snap := st.Snapshot()
	require.Empty(t, snap.Items)
	require.Zero(t, snap.Total)
	require.False(t, snap.HasMore)
	require.False(t, snap.IsLoading)
	require.Empty(t, snap.Err)
	require.Equal(t, models.FilterAll, snap.Filter)
}

// TestSnapshot_Idempotent — два вызова Snapshot без промежуточной
// мутации структурно равны.
func TestSnapshot_Idempotent(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	api.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(pageOf(2, 1, 2), nil)

	require.NoError(t, st.FetchPage(context.Background(), 1, false))

	first := st.Snapshot()
	second := st.Snapshot()
	require.Equal(t, first, second)
}

// TestFetchPage_FirstPage — коллекция 1, фильтр all: сервер вернул одну
// статью при total 1 -> снапшот показывает её, hasMore false.
func TestFetchPage_FirstPage(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)

	var captured models.ListOptions
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, opts models.ListOptions) (*models.Page, error) {
			captured = opts
			return pageOf(1, 7), nil
		})

	require.NoError(t, st.FetchPage(context.Background(), 1, false))

	require.Equal(t, 2, captured.Limit)
	require.Zero(t, captured.Offset)
	require.False(t, captured.UnreadOnly)
	require.False(t, captured.SavedOnly)

	snap := st.Snapshot()
	require.Len(t, snap.Items, 1)
	require.Equal(t, int64(7), snap.Items[0].ID)
	require.Equal(t, 1, snap.Total)
	require.False(t, snap.HasMore)
	require.False(t, snap.IsLoading)
}

// TestFetchPage_Dedup — повторный FetchPage того же скоупа без reset
// не порождает второй сетевой вызов.
func TestFetchPage_Dedup(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		Return(pageOf(1, 1), nil).
		Times(1)

	require.NoError(t, st.FetchPage(context.Background(), 1, false))
	require.NoError(t, st.FetchPage(context.Background(), 1, false))
}

// TestFetchPage_ResetRefetches — явный reset загружает заново даже для
// неизменного скоупа; результат замещает список.
func TestFetchPage_ResetRefetches(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	gomock.InOrder(
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(2, 1, 2), nil),
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(1, 3), nil),
	)

	require.NoError(t, st.FetchPage(context.Background(), 1, false))
	require.NoError(t, st.FetchPage(context.Background(), 1, true))

	snap := st.Snapshot()
	require.Len(t, snap.Items, 1)
	require.Equal(t, int64(3), snap.Items[0].ID)
	require.Equal(t, 1, snap.Total)
}

// TestFetchPage_CollectionChange — смена коллекции без reset форсирует
// reset-загрузку нового скоупа.
func TestFetchPage_CollectionChange(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	gomock.InOrder(
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(2, 1, 2), nil),
		api.EXPECT().
			ListArticles(gomock.Any(), int64(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, opts models.ListOptions) (*models.Page, error) {
				require.Zero(t, opts.Offset, "new scope must start at offset 0")
				return pageOf(1, 10), nil
			}),
	)

	require.NoError(t, st.FetchPage(context.Background(), 1, false))
	require.NoError(t, st.FetchPage(context.Background(), 2, false))

	snap := st.Snapshot()
	require.Len(t, snap.Items, 1)
	require.Equal(t, int64(10), snap.Items[0].ID)
}

// TestLoadMore_AdvancesWindow — offset после n успешных дозагрузок равен
// сумме размеров полученных страниц; страницы аппендятся по порядку.
func TestLoadMore_AdvancesWindow(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)

	var offsets []int
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, opts models.ListOptions) (*models.Page, error) {
			offsets = append(offsets, opts.Offset)
			base := int64(opts.Offset)
			return pageOf(6, base+1, base+2), nil
		}).
		Times(3)

	ctx := context.Background()
	require.NoError(t, st.FetchPage(ctx, 1, false))
	require.NoError(t, st.LoadMore(ctx, 1))
	require.NoError(t, st.LoadMore(ctx, 1))

	require.Equal(t, []int{0, 2, 4}, offsets)

	snap := st.Snapshot()
	require.Len(t, snap.Items, 6)
	require.False(t, snap.HasMore)

	ids := make([]int64, 0, len(snap.Items))
	for _, item := range snap.Items {
		ids = append(ids, item.ID)
	}
	require.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids)

	// Страниц больше нет — дальнейший LoadMore не ходит в сеть.
	require.NoError(t, st.LoadMore(ctx, 1))
}

// TestLoadMore_InFlightGuard — LoadMore во время активной загрузки
// не порождает второй сетевой вызов.
func TestLoadMore_InFlightGuard(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)

	release := make(chan struct{})
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ models.ListOptions) (*models.Page, error) {
			<-release
			return pageOf(4, 1, 2), nil
		}).
		Times(1)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- st.FetchPage(ctx, 1, false) }()

	require.Eventually(t, func() bool { return st.Snapshot().IsLoading },
		time.Second, time.Millisecond)

	// Второй вызов молча завершается без сети (Times(1) выше).
	require.NoError(t, st.LoadMore(ctx, 1))

	close(release)
	require.NoError(t, <-done)
	require.True(t, st.Snapshot().HasMore)
}

// TestSetFilter_ResetsScope — смена фильтра очищает состояние до любой
// загрузки, а следующий FetchPage уходит с unread_only=true.
func TestSetFilter_ResetsScope(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	gomock.InOrder(
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(2, 1, 2), nil),
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, opts models.ListOptions) (*models.Page, error) {
				require.True(t, opts.UnreadOnly)
				require.False(t, opts.SavedOnly)
				require.Zero(t, opts.Offset)
				return pageOf(1, 2), nil
			}),
	)

	ctx := context.Background()
	require.NoError(t, st.FetchPage(ctx, 1, false))

	st.SetFilter(models.FilterUnread)

	snap := st.Snapshot()
	require.Empty(t, snap.Items)
	require.Zero(t, snap.Total)
	require.False(t, snap.HasMore)
	require.Equal(t, models.FilterUnread, snap.Filter)

	require.NoError(t, st.FetchPage(ctx, 1, false))
	require.Len(t, st.Snapshot().Items, 1)
}

// TestSetFilter_SameValueNoop — повторная установка текущего фильтра
// не сбрасывает загруженный список.
func TestSetFilter_SameValueNoop(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		Return(pageOf(1, 1), nil)

	require.NoError(t, st.FetchPage(context.Background(), 1, false))

	st.SetFilter(models.FilterAll)
	require.Len(t, st.Snapshot().Items, 1)
}

// TestFetchFailure_PreservesPriorState — ошибка загрузки не трогает уже
// загруженный список, loading снимается, сообщение уходит в Err и
// снимается ClearError; повторный reset-вызов ретраит.
func TestFetchFailure_PreservesPriorState(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	gomock.InOrder(
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(2, 1, 2), nil),
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(nil, &client.APIError{StatusCode: 503, Message: "service unavailable"}),
	)

	ctx := context.Background()
	require.NoError(t, st.FetchPage(ctx, 1, false))
	require.Error(t, st.FetchPage(ctx, 1, true))

	snap := st.Snapshot()
	require.Len(t, snap.Items, 2, "prior items must survive a failed fetch")
	require.Equal(t, 2, snap.Total)
	require.False(t, snap.IsLoading)
	require.Equal(t, "service unavailable", snap.Err)

	st.ClearError()
	require.Empty(t, st.Snapshot().Err)
}

// TestScopeChange_DropsStaleFetch — результат, пришедший после смены
// скоупа, молча отбрасывается и не попадает в новый список.
func TestScopeChange_DropsStaleFetch(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)

	release := make(chan struct{})
	gomock.InOrder(
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ models.ListOptions) (*models.Page, error) {
				<-release
				return pageOf(2, 1, 2), nil
			}),
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(1, 9), nil),
	)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- st.FetchPage(ctx, 1, false) }()

	require.Eventually(t, func() bool { return st.Snapshot().IsLoading },
		time.Second, time.Millisecond)

	st.SetFilter(models.FilterSaved)
	close(release)

	// Поздний результат — не ошибка: вызов завершается nil.
	require.NoError(t, <-done)

	snap := st.Snapshot()
	require.Empty(t, snap.Items, "stale page must not leak into the new scope")
	require.Zero(t, snap.Total)
	require.False(t, snap.IsLoading)
	require.Empty(t, snap.Err)
	require.Equal(t, models.FilterSaved, snap.Filter)

	// Ключ дедупликации сброшен: новый скоуп честно загружается.
	require.NoError(t, st.FetchPage(ctx, 1, false))
	require.Len(t, st.Snapshot().Items, 1)
}

// TestMarkRead_OverlayApplied — успешная мутация видна в снапшоте сразу,
// без новой загрузки.
func TestMarkRead_OverlayApplied(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		Return(pageOf(1, 1), nil).
		Times(1)
	api.EXPECT().
		MarkRead(gomock.Any(), int64(1)).
		Return(&models.ArticleState{ArticleID: 1, IsRead: true}, nil)

	ctx := context.Background()
	require.NoError(t, st.FetchPage(ctx, 1, false))
	require.NoError(t, st.MarkRead(ctx, 1))

	snap := st.Snapshot()
	require.True(t, snap.Items[0].IsRead)
	require.False(t, snap.Items[0].IsSaved)
}

// TestMarkRead_FailureDoesNotApply — при отказе сервера правка не
// фиксируется, сообщение уходит в Err.
func TestMarkRead_FailureDoesNotApply(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		Return(pageOf(1, 1), nil)
	api.EXPECT().
		MarkRead(gomock.Any(), int64(1)).
		Return(nil, &client.APIError{StatusCode: 500, Message: "Failed to mark article as read"})

	ctx := context.Background()
	require.NoError(t, st.FetchPage(ctx, 1, false))

	err := st.MarkRead(ctx, 1)
	require.Error(t, err)

	snap := st.Snapshot()
	require.False(t, snap.Items[0].IsRead, "overlay must not apply on failure")
	require.Equal(t, "Failed to mark article as read", snap.Err)
}

// TestMutationAxes_Independent — оси read/saved не влияют друг на друга.
func TestMutationAxes_Independent(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)
	api.EXPECT().
		ListArticles(gomock.Any(), int64(1), gomock.Any()).
		Return(pageOf(1, 1), nil)
	api.EXPECT().
		MarkRead(gomock.Any(), int64(1)).
		Return(&models.ArticleState{ArticleID: 1, IsRead: true}, nil)
	api.EXPECT().
		SaveArticle(gomock.Any(), int64(1)).
		Return(&models.ArticleState{ArticleID: 1, IsRead: true, IsSaved: true}, nil)
	api.EXPECT().
		UnsaveArticle(gomock.Any(), int64(1)).
		Return(&models.ArticleState{ArticleID: 1, IsRead: true}, nil)

	ctx := context.Background()
	require.NoError(t, st.FetchPage(ctx, 1, false))
	require.NoError(t, st.MarkRead(ctx, 1))
	require.NoError(t, st.Save(ctx, 1))
	require.NoError(t, st.Unsave(ctx, 1))

	snap := st.Snapshot()
	require.True(t, snap.Items[0].IsRead, "unsave must not touch the read axis")
	require.False(t, snap.Items[0].IsSaved)
}

// TestMutation_UnknownArticle — правка допустима только для загруженной
// статьи; сетевой вызов не выполняется.
func TestMutation_UnknownArticle(t *testing.T) {
	t.Parallel()

	st, _ := newStoreForTest(t)

	err := st.MarkRead(context.Background(), 99)
	require.ErrorIs(t, err, ErrUnknownArticle)
}

// TestMutation_StaleScopeDropped — подтверждение, пришедшее после смены
// скоупа, не воссоздаёт запись в очищенной карте правок.
func TestMutation_StaleScopeDropped(t *testing.T) {
	t.Parallel()

	st, api := newStoreForTest(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(1, 1), nil),
		api.EXPECT().
			MarkRead(gomock.Any(), int64(1)).
			DoAndReturn(func(_ context.Context, _ int64) (*models.ArticleState, error) {
				close(entered)
				<-release
				return &models.ArticleState{ArticleID: 1, IsRead: true}, nil
			}),
		api.EXPECT().
			ListArticles(gomock.Any(), int64(1), gomock.Any()).
			Return(pageOf(1, 1), nil),
	)

	ctx := context.Background()
	require.NoError(t, st.FetchPage(ctx, 1, false))

	done := make(chan error, 1)
	go func() { done <- st.MarkRead(ctx, 1) }()

	// Дожидаемся входа мутации в сетевой вызов, затем меняем скоуп.
	<-entered
	st.SetFilter(models.FilterUnread)
	close(release)
	require.NoError(t, <-done)

	require.NoError(t, st.FetchPage(ctx, 1, false))
	require.False(t, st.Snapshot().Items[0].IsRead,
		"stale confirmation must not recreate an overlay entry")
}
