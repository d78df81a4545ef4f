package models

// PetTypes — допустимые виды питомцев. Значение хранится в нижнем регистре.
var PetTypes = []string{"dog", "cat", "bird", "fish", "hamster"}

// Pet представляет питомца и его набор тегов.
// OwnerID — слабая ссылка на пользователя: при удалении владельца
// ссылка обнуляется, питомец остаётся.
type Pet struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Age     int    `json:"age"`
	OwnerID *int   `json:"user_id,omitempty"`
	Tags    []Tag  `json:"tags"`
}

// Tag представляет тег, который можно присвоить питомцу.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
