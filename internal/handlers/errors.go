package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/dtos"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/services"
)

// User-facing messages. Raw errors never reach the response body.
const (
	msgLoginRequired   = "Debes iniciar sesión para continuar"
	msgSessionFailed   = "No se pudo verificar la sesión"
	msgForbidden       = "No tienes permisos de administrador"
	msgNotFound        = "No se encontró el recurso solicitado"
	msgInvalidRequest  = "La solicitud no es válida"
	msgInvalidForm     = "Revisa los campos marcados"
	msgInvalidStatus   = "Estado no válido"
	msgInvalidRole     = "Rol no válido"
	msgJobNotOpen      = "Este trabajo ya no acepta solicitudes"
	msgOwnJob          = "No puedes postularte a tu propio trabajo"
	msgAlreadyApplied  = "Ya te has postulado a este trabajo"
	msgApplied         = "¡Solicitud enviada correctamente!"
	msgApplyFailed     = "Error al enviar la solicitud"
	msgJobsLoadFailed  = "Error al cargar trabajos"
	msgJobLoadFailed   = "No se pudo cargar el trabajo"
	msgJobCreated      = "¡Trabajo publicado correctamente!"
	msgJobCreateFailed = "Error al publicar el trabajo"
	msgJobUpdated      = "Trabajo actualizado correctamente"
	msgJobUpdateFailed = "Error al actualizar el trabajo"
	msgJobDeleted      = "Trabajo eliminado"
	msgJobDeleteFailed = "Error al eliminar el trabajo"
	msgStatusUpdated   = "Estado actualizado"
	msgStatusFailed    = "Error al actualizar el estado"
	msgAppsLoadFailed  = "Error al cargar las postulaciones"
	msgProfileLoad     = "Error al cargar el perfil"
	msgProfileUpdated  = "Perfil actualizado correctamente"
	msgProfileFailed   = "Error al actualizar el perfil"
	msgUsersLoadFailed = "Error al cargar usuarios"
	msgUserUpdated     = "Usuario actualizado correctamente"
	msgUserFailed      = "Error al actualizar el usuario"
	msgUserActivated   = "Usuario activado"
	msgUserSuspended   = "Usuario suspendido"
	msgRolesLoadFailed = "Error al cargar los roles"
	msgRoleAdded       = "Rol añadido correctamente"
	msgRoleRemoved     = "Rol eliminado correctamente"
	msgRoleFailed      = "Error al actualizar el rol"
	msgStatsFailed     = "Error al cargar las estadísticas"
)

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// classify maps an error onto a status and body. fallback is the message for unexpected failures.
func classify(err error, fallback string) (int, errorBody) {
	var verr *dtos.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorBody{Error: "validation_failed", Message: msgInvalidForm, Fields: verr.Fields}
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, errorBody{Error: "unauthenticated", Message: msgLoginRequired}
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, errorBody{Error: "forbidden", Message: msgForbidden}
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, errorBody{Error: "not_found", Message: msgNotFound}
	case errors.Is(err, services.ErrAlreadyApplied):
		return http.StatusConflict, errorBody{Error: "already_applied", Message: msgAlreadyApplied}
	case errors.Is(err, services.ErrJobNotOpen):
		return http.StatusConflict, errorBody{Error: "job_not_open", Message: msgJobNotOpen}
	case errors.Is(err, services.ErrOwnJob):
		return http.StatusForbidden, errorBody{Error: "own_job", Message: msgOwnJob}
	case errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest, errorBody{Error: "invalid_status", Message: msgInvalidStatus}
	case errors.Is(err, services.ErrInvalidRole):
		return http.StatusBadRequest, errorBody{Error: "invalid_role", Message: msgInvalidRole}
	}
	return http.StatusInternalServerError, errorBody{Error: "internal", Message: fallback}
}

func respondError(c *gin.Context, err error, fallback string) {
	status, body := classify(err, fallback)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

// respondListError keeps the collection key present and empty next to the error.
func respondListError(c *gin.Context, key string, err error, fallback string) {
	status, body := classify(err, fallback)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	out := gin.H{key: []any{}, "error": body.Error, "message": body.Message}
	if body.Fields != nil {
		out["fields"] = body.Fields
	}
	c.JSON(status, out)
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusBadRequest, errorBody{Error: "invalid_request", Message: msgInvalidRequest})
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorBody{Error: code, Message: msg})
}
