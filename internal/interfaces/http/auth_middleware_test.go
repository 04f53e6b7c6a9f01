package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caixa-api/internal/domain/authz"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	apphttp "github.com/jhoicas/caixa-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/caixa-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "caixa-api-test"
	testExpMin    = 60
)

// fakeUsers resuelve usuarios en memoria para LoadActor.
type fakeUsers struct {
	byID map[string]*entity.User
}

func (f *fakeUsers) GetByID(id string) (*entity.User, error) {
	return f.byID[id], nil
}

func testUser(id string, role authz.Role, grants authz.Grants, active bool) *entity.User {
	return &entity.User{
		ID:          id,
		Username:    "user-" + id,
		Email:       "user-" + id + "@test.com",
		Role:        role,
		Permissions: grants,
		Active:      active,
	}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - LoadActor para resolver el usuario contra el almacén fake
//   - RequireAction para autorizar la acción
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(users *fakeUsers, action authz.Action) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.LoadActor(users),
		apphttp.RequireAction(action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario dado.
func tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Username, string(u.Role), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAction
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: admin pasa cualquier acción, incluido el historial de actividades.
func TestRequireAction_AdminAccedeHistorial(t *testing.T) {
	admin := testUser("u1", authz.RoleAdmin, nil, true)
	app := buildTestApp(&fakeUsers{byID: map[string]*entity.User{"u1": admin}}, authz.ActionActivityLogView)

	resp := doRequest(t, app, tokenFor(t, admin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder al historial de actividades")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

// Caso 2: manager bloqueado en el historial de actividades → HTTP 403.
func TestRequireAction_ManagerBloqueadoEnHistorial(t *testing.T) {
	manager := testUser("u2", authz.RoleManager, nil, true)
	app := buildTestApp(&fakeUsers{byID: map[string]*entity.User{"u2": manager}}, authz.ActionActivityLogView)

	resp := doRequest(t, app, tokenFor(t, manager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"manager no debe poder leer el historial de actividades")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: reception sin grant de contas es denegado; con el grant pasa.
func TestRequireAction_ReceptionGrants(t *testing.T) {
	sinGrant := testUser("u3", authz.RoleReception, nil, true)
	app := buildTestApp(&fakeUsers{byID: map[string]*entity.User{"u3": sinGrant}}, authz.ActionBillCreate)

	resp := doRequest(t, app, tokenFor(t, sinGrant))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"reception sin grant de contas debe ser denegado")

	conGrant := testUser("u4", authz.RoleReception, authz.Grants{authz.CapBills: true}, true)
	app = buildTestApp(&fakeUsers{byID: map[string]*entity.User{"u4": conGrant}}, authz.ActionBillCreate)

	resp = doRequest(t, app, tokenFor(t, conGrant))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"reception con grant de contas debe poder crear contas")
}

// Caso 4: los grants se leen de la DB en cada request, no del token. Un grant
// revocado después de emitir el token deniega de inmediato.
func TestRequireAction_GrantRevocadoDespuesDelToken(t *testing.T) {
	user := testUser("u5", authz.RoleReception, authz.Grants{authz.CapBills: true}, true)
	store := &fakeUsers{byID: map[string]*entity.User{"u5": user}}
	app := buildTestApp(store, authz.ActionBillCreate)

	token := tokenFor(t, user)
	resp := doRequest(t, app, token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Se revoca el grant con el token todavía vigente.
	store.byID["u5"] = testUser("u5", authz.RoleReception, nil, true)
	resp = doRequest(t, app, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el grant revocado debe denegar aunque el token siga vigente")
}

// Caso 5: usuario desactivado → HTTP 403 aunque el token sea válido.
func TestLoadActor_UsuarioInactivoBloqueado(t *testing.T) {
	inactive := testUser("u6", authz.RoleAdmin, nil, false)
	app := buildTestApp(&fakeUsers{byID: map[string]*entity.User{"u6": inactive}}, authz.ActionProductView)

	resp := doRequest(t, app, tokenFor(t, inactive))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INACTIVE_USER")
}

// Caso 6: el usuario del token ya no existe → HTTP 401.
func TestLoadActor_UsuarioEliminadoRetorna401(t *testing.T) {
	ghost := testUser("u7", authz.RoleAdmin, nil, true)
	app := buildTestApp(&fakeUsers{byID: map[string]*entity.User{}}, authz.ActionProductView)

	resp := doRequest(t, app, tokenFor(t, ghost))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 7: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeUsers{byID: map[string]*entity.User{}}, authz.ActionProductView)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 8: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeUsers{byID: map[string]*entity.User{}}, authz.ActionProductView)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	user := testUser("u8", authz.RoleManager, nil, true)
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"role":     apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, user))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u8", body["user_id"])
	assert.Equal(t, "user-u8", body["username"])
	assert.Equal(t, "manager", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "u9", "maria", "reception", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "u9", userID)
	assert.Equal(t, "maria", username)
	assert.Equal(t, "reception", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "u9", "maria", "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "u9", "maria", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
