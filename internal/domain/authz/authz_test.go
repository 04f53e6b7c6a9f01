package authz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/authz"
)

func actor(role authz.Role) authz.Actor {
	return authz.Actor{ID: "actor-1", Role: role}
}

// TestAuthorize_AdminPasaTodo: el admin no tiene ninguna acción denegada,
// incluidas las exclusivas (eliminar usuarios, historial de actividades).
func TestAuthorize_AdminPasaTodo(t *testing.T) {
	acciones := []authz.Action{
		authz.ActionUserCreate, authz.ActionUserDelete, authz.ActionUserResetPassword,
		authz.ActionProductCreate, authz.ActionProductDelete,
		authz.ActionBillCreate, authz.ActionBillCancel, authz.ActionInstallmentPay,
		authz.ActionTransactionCancel, authz.ActionClientPayment,
		authz.ActionReportView, authz.ActionDashboardView,
		authz.ActionActivityLogView,
	}
	for _, a := range acciones {
		assert.NoError(t, authz.Authorize(actor(authz.RoleAdmin), a, nil), string(a))
	}
	// Incluso sobre otro admin.
	err := authz.Authorize(actor(authz.RoleAdmin), authz.ActionUserUpdate,
		&authz.Target{UserID: "otro", Role: authz.RoleAdmin})
	assert.NoError(t, err)
}

// TestAuthorize_ManagerUsuarios: manager gestiona reception/sales pero nunca
// administradores ni otros managers, incluidos reset de contraseña.
func TestAuthorize_ManagerUsuarios(t *testing.T) {
	m := actor(authz.RoleManager)

	assert.NoError(t, authz.Authorize(m, authz.ActionUserCreate,
		&authz.Target{Role: authz.RoleReception}))
	assert.NoError(t, authz.Authorize(m, authz.ActionUserUpdate,
		&authz.Target{UserID: "u1", Role: authz.RoleSales}))
	assert.NoError(t, authz.Authorize(m, authz.ActionUserResetPassword,
		&authz.Target{UserID: "u1", Role: authz.RoleSales}))

	for _, blocked := range []authz.Role{authz.RoleAdmin, authz.RoleManager} {
		err := authz.Authorize(m, authz.ActionUserCreate, &authz.Target{Role: blocked})
		require.Error(t, err, string(blocked))
		assert.True(t, errors.Is(err, domain.ErrForbidden))

		err = authz.Authorize(m, authz.ActionUserResetPassword, &authz.Target{UserID: "x", Role: blocked})
		assert.Error(t, err)
	}

	// Eliminación definitiva es exclusiva del admin.
	assert.Error(t, authz.Authorize(m, authz.ActionUserDelete,
		&authz.Target{UserID: "u1", Role: authz.RoleSales}))
}

// TestAuthorize_ManagerNegocio: productos, clientes, contas y reportes sí;
// historial de actividades no.
func TestAuthorize_ManagerNegocio(t *testing.T) {
	m := actor(authz.RoleManager)
	allowed := []authz.Action{
		authz.ActionProductCreate, authz.ActionProductDelete,
		authz.ActionClientCreate, authz.ActionClientUpdate,
		authz.ActionBillCreate, authz.ActionBillCancel, authz.ActionInstallmentPay,
		authz.ActionTransactionCreate, authz.ActionTransactionCancel, authz.ActionClientPayment,
		authz.ActionReportView, authz.ActionDashboardView,
	}
	for _, a := range allowed {
		assert.NoError(t, authz.Authorize(m, a, nil), string(a))
	}
	assert.Error(t, authz.Authorize(m, authz.ActionActivityLogView, nil))
}

// TestAuthorize_Sales: clientes y ventas propias permitidos; gestión de
// productos/contas/usuarios y todos los reportes denegados.
func TestAuthorize_Sales(t *testing.T) {
	s := actor(authz.RoleSales)

	allowed := []authz.Action{
		authz.ActionClientCreate, authz.ActionClientUpdate, authz.ActionClientView,
		authz.ActionProductView,
		authz.ActionSaleCreate, authz.ActionSaleOwnReport,
	}
	for _, a := range allowed {
		assert.NoError(t, authz.Authorize(s, a, nil), string(a))
	}

	denied := []authz.Action{
		authz.ActionUserCreate, authz.ActionUserList,
		authz.ActionProductCreate, authz.ActionProductDelete,
		authz.ActionBillCreate, authz.ActionBillCancel, authz.ActionInstallmentPay,
		authz.ActionTransactionCreate, authz.ActionClientPayment,
		authz.ActionReportView, authz.ActionDashboardView,
		authz.ActionActivityLogView,
	}
	for _, a := range denied {
		err := authz.Authorize(s, a, nil)
		require.Error(t, err, string(a))
		assert.True(t, errors.Is(err, domain.ErrForbidden), string(a))
	}
}

// TestAuthorize_ReceptionBase: caja y lectura de clientes sin grants.
func TestAuthorize_ReceptionBase(t *testing.T) {
	r := actor(authz.RoleReception)

	assert.NoError(t, authz.Authorize(r, authz.ActionTransactionCreate, nil))
	assert.NoError(t, authz.Authorize(r, authz.ActionTransactionView, nil))
	assert.NoError(t, authz.Authorize(r, authz.ActionClientPayment, nil))
	assert.NoError(t, authz.Authorize(r, authz.ActionClientView, nil))

	// Sin grant, nada de contas ni productos ni reportes.
	assert.Error(t, authz.Authorize(r, authz.ActionBillCreate, nil))
	assert.Error(t, authz.Authorize(r, authz.ActionProductCreate, nil))
	assert.Error(t, authz.Authorize(r, authz.ActionReportView, nil))
	assert.Error(t, authz.Authorize(r, authz.ActionSaleCreate, nil))
}

// TestAuthorize_ReceptionGrants: un grant explícito en true desbloquea la
// capacidad; en false o ausente sigue denegado.
func TestAuthorize_ReceptionGrants(t *testing.T) {
	conBills := authz.Actor{ID: "v1", Role: authz.RoleReception,
		Grants: authz.Grants{authz.CapBills: true}}
	assert.NoError(t, authz.Authorize(conBills, authz.ActionBillCreate, nil))
	assert.NoError(t, authz.Authorize(conBills, authz.ActionInstallmentPay, nil))
	assert.NoError(t, authz.Authorize(conBills, authz.ActionBillCancel, nil))
	// El grant de contas no desbloquea productos.
	assert.Error(t, authz.Authorize(conBills, authz.ActionProductCreate, nil))

	grantFalse := authz.Actor{ID: "v2", Role: authz.RoleReception,
		Grants: authz.Grants{authz.CapBills: false}}
	assert.Error(t, authz.Authorize(grantFalse, authz.ActionBillCreate, nil))

	conReports := authz.Actor{ID: "v3", Role: authz.RoleReception,
		Grants: authz.Grants{authz.CapReports: true}}
	assert.NoError(t, authz.Authorize(conReports, authz.ActionReportView, nil))
	assert.NoError(t, authz.Authorize(conReports, authz.ActionDashboardView, nil))
}

// TestAuthorize_ReceptionNuncaDesbloqueable: usuarios y historial no se
// desbloquean por grant alguno.
func TestAuthorize_ReceptionNuncaDesbloqueable(t *testing.T) {
	full := authz.Actor{ID: "v1", Role: authz.RoleReception, Grants: authz.Grants{
		authz.CapBills: true, authz.CapProducts: true, authz.CapReports: true, authz.CapSales: true,
	}}
	assert.Error(t, authz.Authorize(full, authz.ActionUserCreate, nil))
	assert.Error(t, authz.Authorize(full, authz.ActionActivityLogView, nil))
	assert.Error(t, authz.Authorize(full, authz.ActionTransactionCancel, nil))
}

// TestAuthorize_CambioDePasswordPropio: cualquier rol puede cambiar su propia
// contraseña; la de otro usuario sigue las reglas normales.
func TestAuthorize_CambioDePasswordPropio(t *testing.T) {
	for _, role := range []authz.Role{authz.RoleAdmin, authz.RoleManager, authz.RoleReception, authz.RoleSales} {
		a := authz.Actor{ID: "self", Role: role}
		err := authz.Authorize(a, authz.ActionPasswordChange, &authz.Target{UserID: "self"})
		assert.NoError(t, err, string(role))
	}

	// Sales sobre otro usuario: denegado.
	s := authz.Actor{ID: "self", Role: authz.RoleSales}
	assert.Error(t, authz.Authorize(s, authz.ActionPasswordChange, &authz.Target{UserID: "otro"}))
}

// TestAuthorize_MotivoEstable: la denegación expone un motivo no vacío y
// estable entre llamadas (la capa HTTP lo devuelve en el 403).
func TestAuthorize_MotivoEstable(t *testing.T) {
	s := actor(authz.RoleSales)
	err1 := authz.Authorize(s, authz.ActionReportView, nil)
	err2 := authz.Authorize(s, authz.ActionReportView, nil)
	require.Error(t, err1)
	require.Error(t, err2)

	var denied *authz.DeniedError
	require.True(t, errors.As(err1, &denied))
	assert.NotEmpty(t, denied.Reason)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestParseRole(t *testing.T) {
	for _, ok := range []string{"admin", "manager", "reception", "sales"} {
		r, err := authz.ParseRole(ok)
		require.NoError(t, err)
		assert.Equal(t, authz.Role(ok), r)
	}
	_, err := authz.ParseRole("root")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
