package utils

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexasocial/shared/platform/query"
)

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message: message,
		},
	})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendConflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}

// --- Helpers de listados paginados ---

// ListParams aplana la query string para el motor de paginación.
func ListParams(c *gin.Context) map[string]string {
	return query.FlattenValues(c.Request.URL.Query())
}

// LinkBase es la URL pública del recurso pedido, base del enlace next.
func LinkBase(c *gin.Context, publicBaseURL string) string {
	return strings.TrimRight(publicBaseURL, "/") + c.Request.URL.Path
}

// SendListError responde 400 a los errores de entrada del motor y 500 al resto.
func SendListError(c *gin.Context, err error) {
	if query.IsInputError(err) {
		SendBadRequest(c, err.Error())
		return
	}
	SendInternalServerError(c, err.Error())
}

// ParamID lee un parámetro de ruta como id entero positivo.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		SendBadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
