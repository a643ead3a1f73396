package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/smartbodega-api/internal/application/guard"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

func sessionFor(role string) *entity.Session {
	return &entity.Session{IsAuthenticated: true, User: entity.User{Role: role}}
}

func TestDecide_SinSesion_RedirigeALogin(t *testing.T) {
	assert.Equal(t, guard.RedirectLogin, guard.Decide(nil, nil))
	assert.Equal(t, guard.RedirectLogin, guard.Decide(&entity.Session{User: entity.User{Role: entity.RoleAdmin}}, nil))
}

func TestDecide_PorDefectoSoloAdministrador(t *testing.T) {
	assert.Equal(t, guard.Allow, guard.Decide(sessionFor(entity.RoleAdmin), nil))
	assert.Equal(t, guard.RedirectHome, guard.Decide(sessionFor(entity.RoleSupervisor), nil))
}

func TestDecide_ConjuntoDeRoles(t *testing.T) {
	allowed := []string{entity.RoleAdmin, entity.RoleSupervisor}
	assert.Equal(t, guard.Allow, guard.Decide(sessionFor(entity.RoleSupervisor), allowed))
	assert.Equal(t, guard.RedirectHome, guard.Decide(sessionFor(entity.RoleGuest), allowed))
	assert.Equal(t, guard.RedirectHome, guard.Decide(sessionFor(""), allowed))
}

func TestScreens_TodasLasPantallas(t *testing.T) {
	for _, s := range []string{"dashboard", "users", "roles", "products", "categories", "entries", "exits",
		"sites", "centers", "areas", "municipalities", "reports", "statistics"} {
		assert.NotEmpty(t, guard.Screens[s], s)
	}
	assert.Equal(t, guard.RedirectHome, guard.Decide(sessionFor(entity.RoleOperator), guard.Screens["users"]))
	assert.Equal(t, guard.Allow, guard.Decide(sessionFor(entity.RoleOperator), guard.Screens["exits"]))
}

func TestWriteRoles(t *testing.T) {
	assert.Equal(t, []string{entity.RoleAdmin}, guard.WriteRoles(entity.KindUser))
	assert.Contains(t, guard.WriteRoles(entity.KindEntry), entity.RoleOperator)
	assert.NotContains(t, guard.WriteRoles(entity.KindProduct), entity.RoleOperator)
	assert.Nil(t, guard.WriteRoles("reports"))
	assert.Equal(t, "redirect_home", guard.RedirectHome.String())
}
