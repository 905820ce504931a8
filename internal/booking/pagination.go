package booking

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`     // номер страницы (с 1)
	PageSize int `json:"pageSize"` // количество элементов на странице
	HasNext  bool `json:"hasNext"`
	HasPrev  bool `json:"hasPrev"`
	Total    int `json:"total"` // общее количество элементов
}

const defaultPageSize = 20

// NormalizePage приводит номер страницы и размер к допустимым значениям
// и возвращает offset для SQL-запроса. page нумеруется с 1.
func NormalizePage(page, pageSize int) (p, size, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize, (page - 1) * pageSize
}

// NewPage собирает метаданные страницы по уже отрезанному в SQL срезу items
// и общему количеству total.
func NewPage[T any](items []T, total, page, pageSize int) Page[T] {
	page, pageSize, offset := NormalizePage(page, pageSize)

	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasPrev:  page > 1,
		HasNext:  offset+len(items) < total,
		Total:    total,
	}
}
