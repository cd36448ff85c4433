package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/domain"
	"github.com/hawlader/taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(id, role string) error {
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

var testJWT = JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "taller-api-test"}

func newTestUseCase() (*UseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUseCase(repo, testJWT), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_HasheaPasswordYAsignaRolPorDefecto(t *testing.T) {
	uc, repo := newTestUseCase()

	out, err := uc.Register(dto.RegisterRequest{Username: "ana", Password: "secreta"})
	require.NoError(t, err)

	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, entity.RoleUser, out.Role, "sin rol explícito se asigna user")

	stored, _ := repo.GetByUsername("ana")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta", stored.PasswordHash, "la password nunca se guarda en claro")
	assert.NotEmpty(t, stored.ID)
}

func TestRegister_UsernameDuplicadoRechazado(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Register(dto.RegisterRequest{Username: "ana", Password: "secreta"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_RolDesconocidoRechazado(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Register(dto.RegisterRequest{Username: "ana", Password: "secreta", Role: "superroot"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesCorrectasDevuelveToken(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Register(dto.RegisterRequest{Username: "ana", Password: "secreta", Role: entity.RoleManager})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secreta"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana", out.User.Username)
	assert.Equal(t, entity.RoleManager, out.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Register(dto.RegisterRequest{Username: "ana", Password: "secreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "ana", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests administración de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteUser_NoPuedeEliminarseASiMismo(t *testing.T) {
	uc, repo := newTestUseCase()
	admin, err := uc.Register(dto.RegisterRequest{Username: "admin", Password: "x", Role: entity.RoleAdmin})
	require.NoError(t, err)

	err = uc.DeleteUser(admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, _ := repo.GetByID(admin.ID)
	assert.NotNil(t, stored, "el usuario debe seguir existiendo")
}

func TestDeleteUser_EliminaAOtro(t *testing.T) {
	uc, repo := newTestUseCase()
	admin, _ := uc.Register(dto.RegisterRequest{Username: "admin", Password: "x", Role: entity.RoleAdmin})
	other, _ := uc.Register(dto.RegisterRequest{Username: "ana", Password: "x"})

	require.NoError(t, uc.DeleteUser(admin.ID, other.ID))

	stored, _ := repo.GetByID(other.ID)
	assert.Nil(t, stored)
}

func TestDeleteUser_InexistenteDevuelveNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	admin, _ := uc.Register(dto.RegisterRequest{Username: "admin", Password: "x", Role: entity.RoleAdmin})

	err := uc.DeleteUser(admin.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateRole_RolInvalidoRechazado(t *testing.T) {
	uc, _ := newTestUseCase()
	u, _ := uc.Register(dto.RegisterRequest{Username: "ana", Password: "x"})

	err := uc.UpdateRole(u.ID, "superroot")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateRole_Promociona(t *testing.T) {
	uc, repo := newTestUseCase()
	u, _ := uc.Register(dto.RegisterRequest{Username: "ana", Password: "x"})

	require.NoError(t, uc.UpdateRole(u.ID, entity.RoleManager))

	stored, _ := repo.GetByID(u.ID)
	assert.Equal(t, entity.RoleManager, stored.Role)
}
