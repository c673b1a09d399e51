package policy_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/policy"
)

func TestCanAccess(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name     string
		user     *model.User
		homework *model.Homework
		want     bool
	}{
		{
			name:     "admin always allowed",
			user:     &model.User{ID: otherID, Classe: "6B", IsAdmin: true},
			homework: &model.Homework{Class: "3A", CreatorID: &ownerID},
			want:     true,
		},
		{
			name:     "same class allowed",
			user:     &model.User{ID: otherID, Classe: "3A"},
			homework: &model.Homework{Class: "3A", CreatorID: &ownerID},
			want:     true,
		},
		{
			name:     "creator allowed even in another class",
			user:     &model.User{ID: ownerID, Classe: "6B"},
			homework: &model.Homework{Class: "3A", CreatorID: &ownerID},
			want:     true,
		},
		{
			name:     "different class and not creator denied",
			user:     &model.User{ID: otherID, Classe: "6B"},
			homework: &model.Homework{Class: "3A", CreatorID: &ownerID},
			want:     false,
		},
		{
			name:     "homework without creator, different class denied",
			user:     &model.User{ID: otherID, Classe: "6B"},
			homework: &model.Homework{Class: "3A"},
			want:     false,
		},
		{
			name:     "homework without creator, same class allowed",
			user:     &model.User{ID: otherID, Classe: "3A"},
			homework: &model.Homework{Class: "3A"},
			want:     true,
		},
		{
			name:     "nil user denied",
			user:     nil,
			homework: &model.Homework{Class: "3A"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanAccess(tt.user, tt.homework))
		})
	}
}

// CanModify intentionally mirrors CanAccess: class membership grants write
// access too. Pin that equivalence so a future change is deliberate.
func TestCanModifyMatchesCanAccess(t *testing.T) {
	ownerID := uuid.New()

	users := []*model.User{
		{ID: ownerID, Classe: "3A"},
		{ID: uuid.New(), Classe: "3A"},
		{ID: uuid.New(), Classe: "6B"},
		{ID: uuid.New(), Classe: "6B", IsAdmin: true},
	}
	homeworks := []*model.Homework{
		{Class: "3A", CreatorID: &ownerID},
		{Class: "6B"},
	}

	for _, u := range users {
		for _, h := range homeworks {
			assert.Equal(t, policy.CanAccess(u, h), policy.CanModify(u, h))
		}
	}
}
