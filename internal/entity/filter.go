package entity

import (
	"fmt"
	"net/url"
	"strconv"
)

// TaskFilter отбирает задачи по точному совпадению исполнителя и категории. Пустая строка
// означает отсутствие фильтра. Пагинация применяется, только если заданы и Offset, и Limit.
type TaskFilter struct {
	AssignedTo string
	Category   string
	Offset     *int
	Limit      *int
}

func (f TaskFilter) Matches(t Task) bool {
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

func (f TaskFilter) Paginated() bool {
	return f.Offset != nil && f.Limit != nil
}

// Window возвращает границы страницы [start, end) для последовательности из total элементов.
// Смещение за концом дает пустое окно.
func (f TaskFilter) Window(total int) (start, end int) {
	if !f.Paginated() {
		return 0, total
	}
	offset, limit := max(*f.Offset, 0), max(*f.Limit, 0)
	if offset >= total {
		return total, total
	}
	remaining := total - offset
	return offset, offset + min(limit, remaining)
}

// Apply фильтрует задачи с сохранением порядка, затем применяет пагинацию.
// Результат не разделяет память с входным срезом.
func (f TaskFilter) Apply(tasks []Task) []Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	start, end := f.Window(len(filtered))
	return filtered[start:end]
}

// Key стабильное текстовое представление фильтра для ключей кэша.
func (f TaskFilter) Key() string {
	v := url.Values{}
	if f.AssignedTo != "" {
		v.Set("assignedTo", f.AssignedTo)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Paginated() {
		v.Set("offset", strconv.Itoa(*f.Offset))
		v.Set("limit", strconv.Itoa(*f.Limit))
	}
	return v.Encode()
}

func (f TaskFilter) String() string {
	offset, limit := "-", "-"
	if f.Offset != nil {
		offset = strconv.Itoa(*f.Offset)
	}
	if f.Limit != nil {
		limit = strconv.Itoa(*f.Limit)
	}
	return fmt.Sprintf("assignedTo=%q category=%q offset=%s limit=%s", f.AssignedTo, f.Category, offset, limit)
}
