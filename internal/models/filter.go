package models

// PetFilter описывает параметры выборки питомцев: необязательный фильтр
// по виду (точное совпадение без учёта регистра) и необязательная пагинация.
// Page и Limit имеют смысл только при Paginated = true, оба начинаются с 1.
type PetFilter struct {
	Type      string
	Page      int
	Limit     int
	Paginated bool
}

// Offset возвращает смещение выборки для текущей страницы.
func (f PetFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
