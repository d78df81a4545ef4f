// Package access реализует проверку прав доступа поверх установленной личности.
//
// Каждый маршрут объявляет требуемую политику как данные; одна функция Check
// решает, разрешена ли операция. Аутентификация (превращение токена в
// пользователя) выполняется раньше, в middleware.
package access

import "errors"

// ErrDenied возвращается, когда личность установлена, но прав недостаточно.
var ErrDenied = errors.New("access denied")

// Policy — требование маршрута к личности вызывающего.
type Policy int

const (
	// PolicyOpen — личность не требуется.
	PolicyOpen Policy = iota
	// PolicyAuthenticated — достаточно любой установленной личности.
	PolicyAuthenticated
	// PolicySelfOrSuperadmin — вызывающий владеет целевым ресурсом либо суперадмин.
	PolicySelfOrSuperadmin
	// PolicySuperadmin — только суперадмин.
	PolicySuperadmin
)

// Actor — минимальный срез личности, нужный для решения о доступе.
type Actor struct {
	UserID       int
	IsSuperadmin bool
}

// Check решает, разрешает ли политика действие данного вызывающего
// над ресурсом пользователя targetUserID (0, если ресурс не принадлежит
// конкретному пользователю). Возвращает nil либо ErrDenied.
func Check(actor Actor, policy Policy, targetUserID int) error {
	switch policy {
	case PolicyOpen:
		return nil
	case PolicyAuthenticated:
		return nil
	case PolicySelfOrSuperadmin:
		if actor.IsSuperadmin || actor.UserID == targetUserID {
			return nil
		}
		return ErrDenied
	case PolicySuperadmin:
		if actor.IsSuperadmin {
			return nil
		}
		return ErrDenied
	default:
		return ErrDenied
	}
}
