package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/user-form/log"
)

// ErrorPrefix starts every failure body sent to the client.
const ErrorPrefix = "Error: "

// Will log an error, and send a plain text response with status 500
// carrying the error text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	LogStatusMsg(w, r, http.StatusInternalServerError, log.ErrorLevel, code, "%s", err)
}

// Will log an error code and message at the given level,
// and send a plain text response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	PlainText(w, r, status, ErrorPrefix+errMsg)
}

// PlainText writes body as text/plain with the given status.
func PlainText(w http.ResponseWriter, r *http.Request, status int, body string) {
	render.Status(r, status)
	render.PlainText(w, r, body)
}
