package routes

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/ajg/form"
	"github.com/mbolis/user-form/app"
	"github.com/mbolis/user-form/config"
	"github.com/mbolis/user-form/httpx"
	"github.com/mbolis/user-form/log"
	"github.com/mbolis/user-form/model"
)

const SubmitSuccess = "Data submitted successfully!"

const insertUser = `
	INSERT INTO users (first_name, last_name, email, phone, sex)
	VALUES (?, ?, ?, ?, ?)`

//go:embed public/index.html
var formPage []byte

func FormPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(formPage)
	}
}

func SubmitUser(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, config.MaxFormBytes)

		user := model.UserSubmission{}
		dec := form.NewDecoder(r.Body)
		dec.IgnoreUnknownKeys(true)
		err := dec.Decode(&user)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "invalid form body: %s", err)
			return
		}

		err = user.Validate()
		if err != nil {
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				httpx.LogInternalError(w, r, "request.validate", err)
				return
			}
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.validate", "%s", verr)
			return
		}

		conn, err := app.Conn(r.Context())
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusServiceUnavailable, log.ErrorLevel, "db.conn", "connection failed: %s", err)
			return
		}
		defer conn.Close()

		stmt, err := conn.PrepareContext(r.Context(), insertUser)
		if err != nil {
			httpx.LogInternalError(w, r, "db.users.prepare", err)
			return
		}
		defer stmt.Close()

		_, err = stmt.ExecContext(r.Context(),
			user.FirstName,
			user.LastName,
			user.Email,
			user.Phone,
			user.Sex,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.users.insert", err)
			return
		}

		log.Debugf("submit: stored submission for %s", user.Email)
		httpx.PlainText(w, r, http.StatusOK, SubmitSuccess)
	}
}

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.PingContext(r.Context())
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusServiceUnavailable, log.WarnLevel, "db.ping", "%s", err)
			return
		}
		httpx.PlainText(w, r, http.StatusOK, "OK")
	}
}
