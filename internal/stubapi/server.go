// stubapi — in-memory реализация REST-поверхности бэкенда ридера.
//
// Поднимается локально (cmd/reader-stubd) для разработки и используется
// интеграционными тестами клиента. Семантика повторяет боевой бэкенд:
//   - GET  /collections
//   - GET  /collections/{id}/articles?limit=&offset=&unread_only=&saved_only=
//   - PUT/DELETE /articles/{id}/read
//   - PUT/DELETE /articles/{id}/saved
//
// Мутации идемпотентны: повторная установка уже выставленного флага
// сохраняет исходные read_at/saved_at.
package stubapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-reader-client/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Options — параметры сборки стаба.
type Options struct {
	Logger *slog.Logger
	// Token — единственный валидный bearer-токен; пустой отключает проверку.
	Token string
}

// Server — in-memory состояние стаба: коллекции, статьи и
// пользовательские read/saved-флаги (один пользователь).
type Server struct {
	log   *slog.Logger
	token string

	mu          sync.Mutex
	collections []models.Collection
	articles    map[int64][]models.Article // коллекция -> статьи, новые первыми
	known       map[int64]struct{}         // все известные article id
	states      map[int64]*models.ArticleState
}

// New создаёт пустой стаб; данные заливаются через SeedCollection.
func New(opts Options) *Server {
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}

	return &Server{
		log:      l,
		token:    opts.Token,
		articles: make(map[int64][]models.Article),
		known:    make(map[int64]struct{}),
		states:   make(map[int64]*models.ArticleState),
	}
}

// SeedCollection регистрирует коллекцию и её статьи.
// Порядок items — порядок выдачи (ожидается: новые первыми).
func (s *Server) SeedCollection(c models.Collection, items []models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = append(s.collections, c)
	s.articles[c.ID] = append(s.articles[c.ID], items...)
	for _, item := range items {
		s.known[item.ID] = struct{}{}
	}
}

// Router собирает http.Handler с chi и цепочкой middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	r.Use(
		recoverer(),
		requestID(),
		logging(s.log),
		authBearer(s.token),
	)

	r.Get("/collections", s.listCollections)
	r.Get("/collections/{id}/articles", s.listArticles)
	r.Put("/articles/{id}/read", s.mutateState(axisRead, true))
	r.Delete("/articles/{id}/read", s.mutateState(axisRead, false))
	r.Put("/articles/{id}/saved", s.mutateState(axisSaved, true))
	r.Delete("/articles/{id}/saved", s.mutateState(axisSaved, false))

	return r
}

func (s *Server) listCollections(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := append([]models.Collection(nil), s.collections...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	collectionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid collection id")
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			writeError(w, http.StatusBadRequest, "invalid_argument", "invalid limit")
			return
		}
		limit = n
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_argument", "invalid offset")
			return
		}
		offset = n
	}

	unreadOnly := r.URL.Query().Get("unread_only") == "true"
	savedOnly := r.URL.Query().Get("saved_only") == "true"

	s.mu.Lock()
	defer s.mu.Unlock()

	all, ok := s.articles[collectionID]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "collection not found")
		return
	}

	// Фильтры: unread — нет записи состояния или is_read=false;
	// saved — is_saved=true; оба сразу — пересечение.
	filtered := make([]models.Article, 0, len(all))
	for _, a := range all {
		st := s.states[a.ID]
		if unreadOnly && st != nil && st.IsRead {
			continue
		}
		if savedOnly && (st == nil || !st.IsSaved) {
			continue
		}
		filtered = append(filtered, a)
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, models.Page{
		Items:  filtered[offset:end],
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

type stateAxis int

const (
	axisRead stateAxis = iota
	axisSaved
)

// mutateState — общий хендлер четырёх мутаций состояния статьи.
func (s *Server) mutateState(axis stateAxis, value bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_argument", "invalid article id")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if _, ok := s.known[articleID]; !ok {
			writeError(w, http.StatusNotFound, "not_found", "article not found")
			return
		}

		st := s.states[articleID]
		if st == nil {
			st = &models.ArticleState{ArticleID: articleID}
			s.states[articleID] = st
		}

		now := time.Now().UTC()
		switch axis {
		case axisRead:
			if value && !st.IsRead {
				st.ReadAt = &now
			}
			st.IsRead = value
		case axisSaved:
			if value && !st.IsSaved {
				st.SavedAt = &now
			}
			st.IsSaved = value
		}

		writeJSON(w, http.StatusOK, st)
	}
}

// errorResponse — формат тела ошибки боевого бэкенда.
type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{ErrorCode: code, Message: message})
}
