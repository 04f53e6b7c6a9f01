// Package authz implementa la matriz de roles y permisos.
//
// La decisión completa vive en Authorize: un switch por rol sobre un tipo
// cerrado, de modo que la tabla de reglas se revisa en un solo lugar.
// Precedencia (la regla más específica gana):
//
//  1. admin pasa todo, incluido eliminar usuarios y leer el historial de actividades.
//  2. cambio de contraseña propio se permite a cualquier rol sobre sí mismo.
//  3. manager administra usuarios reception/sales (nunca admin ni otros managers),
//     productos, clientes, cuentas y reportes; historial de actividades denegado.
//  4. sales crea/edita clientes, registra ventas y lee productos/clientes;
//     reportes y dashboards denegados.
//  5. reception tiene una base fija (caja y lectura de clientes) más los
//     grants explícitos en true de su mapa de permisos; grant ausente = deny.
package authz

import (
	"fmt"

	"github.com/jhoicas/caixa-api/internal/domain"
)

// Role rol de usuario (conjunto cerrado).
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleReception Role = "reception"
	RoleSales     Role = "sales"
)

// ParseRole valida un rol recibido por la API.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleReception, RoleSales:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, s)
}

// Capability permiso granular otorgable a un usuario reception
// por encima de su base fija.
type Capability string

const (
	CapBills    Capability = "bills"
	CapProducts Capability = "products"
	CapReports  Capability = "reports"
	CapSales    Capability = "sales"
)

// Grants mapa de permisos por usuario. Solo se consulta para reception;
// un grant ausente o en false es una denegación, no un error.
type Grants map[Capability]bool

// Has indica si el grant existe y está en true.
func (g Grants) Has(c Capability) bool {
	return g != nil && g[c]
}

// Action operación autorizable. Cada endpoint mutador o de lectura
// restringida declara exactamente una.
type Action string

const (
	ActionUserCreate        Action = "user_create"
	ActionUserList          Action = "user_list"
	ActionUserUpdate        Action = "user_update"
	ActionUserDelete        Action = "user_delete"
	ActionUserResetPassword Action = "user_reset_password"
	ActionPasswordChange    Action = "password_change"

	ActionProductCreate Action = "product_create"
	ActionProductUpdate Action = "product_update"
	ActionProductDelete Action = "product_delete"
	ActionProductView   Action = "product_view"

	ActionClientCreate Action = "client_create"
	ActionClientUpdate Action = "client_update"
	ActionClientView   Action = "client_view"

	ActionBillCreate     Action = "bill_create"
	ActionBillCancel     Action = "bill_cancel"
	ActionBillView       Action = "bill_view"
	ActionInstallmentPay Action = "installment_pay"

	ActionTransactionCreate Action = "transaction_create"
	ActionTransactionCancel Action = "transaction_cancel"
	ActionTransactionView   Action = "transaction_view"
	ActionClientPayment     Action = "client_payment"

	ActionSaleCreate    Action = "sale_create"
	ActionSaleOwnReport Action = "sale_own_report"

	ActionReportView      Action = "report_view"
	ActionDashboardView   Action = "dashboard_view"
	ActionActivityLogView Action = "activity_log_view"
)

// Actor identidad resuelta del llamador.
type Actor struct {
	ID     string
	Role   Role
	Grants Grants
}

// Target entidad sobre la que recae una operación de gestión de usuarios
// o un cambio de contraseña. Nil cuando la acción no tiene objetivo.
type Target struct {
	UserID string
	Role   Role
}

// DeniedError denegación con motivo estable para la capa HTTP (403).
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

// Unwrap permite errors.Is(err, domain.ErrForbidden).
func (e *DeniedError) Unwrap() error { return domain.ErrForbidden }

func deny(reason string) error { return &DeniedError{Reason: reason} }

// Motivos de denegación estables (la API los expone tal cual en el 403).
const (
	reasonUsers    = "sem permissão para gerenciar usuários"
	reasonUserRole = "manager não pode gerenciar administradores ou outros managers"
	reasonProducts = "sem permissão para gerenciar produtos"
	reasonClients  = "sem permissão para gerenciar clientes"
	reasonBills    = "sem permissão para gerenciar contas"
	reasonCash     = "sem permissão para operações de caixa"
	reasonSales    = "sem permissão para registrar vendas"
	reasonReports  = "sem permissão para visualizar relatórios"
	reasonActivity = "histórico de atividades restrito ao administrador"
	reasonNoGrant  = "permissão não concedida para este usuário"
	reasonUnknown  = "operação não permitida para este perfil"
)

// Authorize decide si actor puede ejecutar action sobre target (opcional).
// Retorna nil (allow) o *DeniedError con motivo estable (deny).
func Authorize(actor Actor, action Action, target *Target) error {
	// Regla 1: admin pasa todo.
	if actor.Role == RoleAdmin {
		return nil
	}

	// Regla 2: autoservicio de contraseña, cualquier rol sobre sí mismo.
	if action == ActionPasswordChange && target != nil && target.UserID == actor.ID {
		return nil
	}

	switch actor.Role {
	case RoleManager:
		return authorizeManager(action, target)
	case RoleSales:
		return authorizeSales(action)
	case RoleReception:
		return authorizeReception(actor.Grants, action)
	}
	return deny(reasonUnknown)
}

// authorizeManager: gestiona usuarios reception/sales, nunca admin ni otros
// managers (incluye reset de contraseña y activación). Historial denegado.
func authorizeManager(action Action, target *Target) error {
	switch action {
	case ActionUserCreate, ActionUserUpdate, ActionUserResetPassword:
		if target != nil && (target.Role == RoleAdmin || target.Role == RoleManager) {
			return deny(reasonUserRole)
		}
		return nil
	case ActionUserList:
		return nil
	case ActionUserDelete:
		// Eliminación definitiva reservada al admin.
		return deny(reasonUsers)
	case ActionProductCreate, ActionProductUpdate, ActionProductDelete, ActionProductView,
		ActionClientCreate, ActionClientUpdate, ActionClientView,
		ActionBillCreate, ActionBillCancel, ActionBillView, ActionInstallmentPay,
		ActionTransactionCreate, ActionTransactionCancel, ActionTransactionView, ActionClientPayment,
		ActionSaleCreate, ActionSaleOwnReport,
		ActionReportView, ActionDashboardView:
		return nil
	case ActionActivityLogView:
		return deny(reasonActivity)
	}
	return deny(reasonUnknown)
}

// authorizeSales: clientes y ventas propias; nada de productos/contas/usuarios
// ni reportes o dashboards.
func authorizeSales(action Action) error {
	switch action {
	case ActionClientCreate, ActionClientUpdate, ActionClientView,
		ActionProductView,
		ActionSaleCreate, ActionSaleOwnReport:
		return nil
	case ActionUserCreate, ActionUserList, ActionUserUpdate, ActionUserDelete, ActionUserResetPassword:
		return deny(reasonUsers)
	case ActionProductCreate, ActionProductUpdate, ActionProductDelete:
		return deny(reasonProducts)
	case ActionBillCreate, ActionBillCancel, ActionBillView, ActionInstallmentPay:
		return deny(reasonBills)
	case ActionTransactionCreate, ActionTransactionCancel, ActionTransactionView, ActionClientPayment:
		return deny(reasonCash)
	case ActionReportView, ActionDashboardView:
		return deny(reasonReports)
	case ActionActivityLogView:
		return deny(reasonActivity)
	}
	return deny(reasonUnknown)
}

// authorizeReception: base fija (caja + lectura de clientes) más grants
// explícitos. Grant ausente = deny con motivo estable.
func authorizeReception(grants Grants, action Action) error {
	switch action {
	// Base fija: operaciones de caja y lectura de clientes.
	case ActionTransactionCreate, ActionTransactionView, ActionClientPayment,
		ActionClientView:
		return nil

	// Desbloqueables por grant.
	case ActionBillCreate, ActionBillCancel, ActionBillView, ActionInstallmentPay:
		if grants.Has(CapBills) {
			return nil
		}
		return deny(reasonNoGrant)
	case ActionProductCreate, ActionProductUpdate, ActionProductDelete, ActionProductView:
		if grants.Has(CapProducts) {
			return nil
		}
		return deny(reasonNoGrant)
	case ActionReportView, ActionDashboardView:
		if grants.Has(CapReports) {
			return nil
		}
		return deny(reasonReports)
	case ActionSaleCreate, ActionSaleOwnReport:
		if grants.Has(CapSales) {
			return nil
		}
		return deny(reasonSales)

	// Nunca desbloqueable para reception.
	case ActionUserCreate, ActionUserList, ActionUserUpdate, ActionUserDelete, ActionUserResetPassword:
		return deny(reasonUsers)
	case ActionTransactionCancel:
		return deny(reasonCash)
	case ActionClientCreate, ActionClientUpdate:
		return deny(reasonClients)
	case ActionActivityLogView:
		return deny(reasonActivity)
	}
	return deny(reasonUnknown)
}
