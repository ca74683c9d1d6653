package viewstate

import "github.com/pribylovaa/go-reader-client/internal/models"

// Reconcile накладывает локальные правки на серверную выдачу.
//
// Для каждой статьи: если в overlays есть запись — её флаги имеют
// приоритет над чем угодно, что мог бы сообщить сервер (серверное
// per-user состояние может отставать от только что подтверждённой
// мутации); если записи нет — оба флага по умолчанию false.
//
// Функция чистая: аргументы не мутируются, результат детерминирован.
func Reconcile(items []models.Article, overlays map[int64]models.Overlay) []models.DisplayArticle {
	out := make([]models.DisplayArticle, 0, len(items))
	for _, item := range items {
		ov := overlays[item.ID]
		out = append(out, models.DisplayArticle{
			Article: item,
			IsRead:  ov.IsRead,
			IsSaved: ov.IsSaved,
		})
	}

	return out
}
