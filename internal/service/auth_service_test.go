package service_test

import (
	"context"
	"errors"
	"testing"

	"listacomparativa/internal/config"
	"listacomparativa/internal/dto"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(repo *stubUsuarioRepo, email, password, rol string, activo bool) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		Email:        email,
		Nombre:       "Usuario Prueba",
		Empresa:      "Empresa Prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       activo,
	}
	repo.usuarios[u.ID] = u
	return u
}

func TestAuth_LoginExitoso(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "ana@empresa.com", "clave1234", "comprador", true)
	svc := service.NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "  ANA@Empresa.com ", // normalized before lookup
		Password: "clave1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "ana@empresa.com", resp.User.Email)
}

func TestAuth_LoginCredencialesInvalidas(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "ana@empresa.com", "clave1234", "comprador", true)
	seedUsuario(repo, "inactivo@empresa.com", "clave1234", "comprador", false)
	svc := service.NewAuthService(repo, authTestConfig())

	casos := []dto.LoginRequest{
		{Email: "ana@empresa.com", Password: "incorrecta"},
		{Email: "nadie@empresa.com", Password: "clave1234"},
		{Email: "inactivo@empresa.com", Password: "clave1234"},
	}
	// The reason for the rejection is never leaked.
	for _, req := range casos {
		_, err := svc.Login(context.Background(), req)
		assert.EqualError(t, err, "credenciales invalidas")
	}
}

func TestAuth_RegisterCreaCompradorYLoguea(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := service.NewAuthService(repo, authTestConfig())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "Nuevo@Empresa.com",
		Password: "clave12345",
		Nombre:   "Nuevo Usuario",
		Empresa:  "Mi Negocio",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "comprador", resp.User.Rol)
	assert.Equal(t, "nuevo@empresa.com", resp.User.Email)

	// Password is stored hashed, never verbatim.
	stored, err := repo.FindByEmail(context.Background(), "nuevo@empresa.com")
	require.NoError(t, err)
	assert.NotEqual(t, "clave12345", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave12345")))
}

func TestAuth_RegisterEmailDuplicado(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "ana@empresa.com", "clave1234", "comprador", true)
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ANA@empresa.com",
		Password: "clave12345",
		Nombre:   "Ana Dos",
		Empresa:  "Otra Empresa",
	})
	assert.ErrorContains(t, err, "ya existe un usuario con ese email")
}

func TestAuth_RefreshRenuevaTokens(t *testing.T) {
	repo := newStubUsuarioRepo()
	user := seedUsuario(repo, "ana@empresa.com", "clave1234", "admin", true)
	svc := service.NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@empresa.com", Password: "clave1234",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, user.ID.String(), renovado.User.ID)

	// A deactivated user cannot refresh.
	user.Activo = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorContains(t, err, "inactivo")
}

func TestAuth_RefreshTokenInvalido(t *testing.T) {
	svc := service.NewAuthService(newStubUsuarioRepo(), authTestConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorContains(t, err, "invalido o expirado")
}
