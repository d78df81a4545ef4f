// Package models содержит доменные структуры приложения: пользователей,
// питомцев, теги и вспомогательные типы фильтрации. Структуры используются
// в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int    // Уникальный идентификатор пользователя
	Email        string // Электронная почта (уникальная)
	FullName     string // Полное имя пользователя
	PasswordHash string // Хэш пароля; открытый пароль не хранится никогда
	IsSuperadmin bool   // Признак суперадмина
}

// UserInfo — безопасное представление пользователя для ответов API,
// без хэша пароля.
type UserInfo struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"fullname"`
	IsSuperadmin bool   `json:"issuperadmin"`
}

// Info возвращает представление пользователя без чувствительных полей.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		IsSuperadmin: u.IsSuperadmin,
	}
}
