package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		policy  Policy
		target  int
		allowed bool
	}{
		{"открытый маршрут без личности", Actor{}, PolicyOpen, 0, true},
		{"аутентифицированный пользователь", Actor{UserID: 1}, PolicyAuthenticated, 0, true},
		{"владелец ресурса", Actor{UserID: 7}, PolicySelfOrSuperadmin, 7, true},
		{"суперадмин над чужим ресурсом", Actor{UserID: 1, IsSuperadmin: true}, PolicySelfOrSuperadmin, 7, true},
		{"чужой ресурс без прав", Actor{UserID: 2}, PolicySelfOrSuperadmin, 7, false},
		{"суперадминский маршрут для суперадмина", Actor{UserID: 1, IsSuperadmin: true}, PolicySuperadmin, 0, true},
		{"суперадминский маршрут для обычного", Actor{UserID: 1}, PolicySuperadmin, 0, false},
		{"неизвестная политика", Actor{UserID: 1, IsSuperadmin: true}, Policy(99), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.actor, tt.policy, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrDenied)
			}
		})
	}
}
