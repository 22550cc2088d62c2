package models

import "strings"

// ErrorUnauthorized means the action needs an authenticated principal.
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

// ErrorForbidden carries the user-facing reason for a denied decision.
type ErrorForbidden struct {
	Reason string
}

func (e ErrorForbidden) Error() string { return e.Reason }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorConflict is a uniqueness violation surfaced by the store.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

// ErrorValidation holds per-field messages keyed by JSON field name.
type ErrorValidation struct {
	Fields map[string][]string
}

func (e ErrorValidation) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, message string) ErrorValidation {
	return ErrorValidation{Fields: map[string][]string{field: {message}}}
}

// ErrorTooManyRequests is returned by throttled endpoints.
type ErrorTooManyRequests struct {
	Message string
}

func (e ErrorTooManyRequests) Error() string { return e.Message }

const (
	MsgAuthenticationRequired = "Las credenciales de autenticación no se proveyeron."
	MsgCreatorOnly            = "Solo los Cuenteros pueden realizar esta acción."
	MsgNotOwner               = "No tienes permiso para modificar este recurso."
	MsgOwnProfileOnly         = "Solo puedes editar tu propio perfil."
	MsgAdminOnly              = "Solo los administradores pueden acceder a este recurso."
	MsgInactiveAccount        = "Tu cuenta está inactiva."
	MsgNotFound               = "No encontrado."
	MsgConflict               = "La operación entra en conflicto con datos existentes."
	MsgPasswordsDontMatch     = "Las contraseñas no coinciden."
	MsgWrongCurrentPassword   = "La contraseña actual no es correcta."
	MsgInvalidCredentials     = "No se encontró una cuenta activa con las credenciales dadas."
	MsgInvalidToken           = "El token no es válido o ha expirado."
	MsgTooManyLoginAttempts   = "Demasiados intentos. Intenta de nuevo más tarde."
)
