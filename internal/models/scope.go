package models

import "fmt"

// Filter — фильтр списочной выдачи.
type Filter string

const (
	// FilterAll — все статьи коллекции.
	FilterAll Filter = "all"
	// FilterUnread — только непрочитанные.
	FilterUnread Filter = "unread"
	// FilterSaved — только сохранённые.
	FilterSaved Filter = "saved"
)

// ParseFilter валидирует строковое значение фильтра.
// Пустая строка трактуется как FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUnread, FilterSaved:
		return Filter(s), nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Scope — пара (коллекция, фильтр), определяющая, какой список
// статей сейчас просматривается. Сравнение — пополевое.
type Scope struct {
	CollectionID int64
	Filter       Filter
}

// ListOptions — параметры выборки страницы статей.
type ListOptions struct {
	Limit      int
	Offset     int
	UnreadOnly bool
	SavedOnly  bool
}

// OptionsForScope переводит фильтр скоупа в пару серверных флагов.
func OptionsForScope(scope Scope, limit, offset int) ListOptions {
	return ListOptions{
		Limit:      limit,
		Offset:     offset,
		UnreadOnly: scope.Filter == FilterUnread,
		SavedOnly:  scope.Filter == FilterSaved,
	}
}
