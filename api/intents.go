package api

import (
	"encoding/json"
	"net/http"

	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/shell"
)

type (
	fieldBody struct {
		Value string `json:"value"`
	}
	inviteeBody struct {
		Email string      `json:"email"`
		Role  models.Role `json:"role"`
	}
	phoneBody struct {
		Phone string `json:"phone"`
	}
)

// decode reads a json body into v, answering 400 on failure.
func (a *Api) decode(res http.ResponseWriter, req *http.Request, v interface{}) bool {
	defer req.Body.Close()
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		a.sendError(req.Context(), res, http.StatusBadRequest, STATUS_ERR_DECODING_INTENT, err)
		return false
	}
	return true
}

// GET /v1/state
func (a *Api) GetState(res http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	snapshot, err := a.shell.Snapshot(ctx, locale(req))
	if err != nil {
		code, _ := statusFor(err)
		a.sendError(ctx, res, code, STATUS_ERR_RENDERING, err)
		return
	}
	a.sendModelAsResWithStatus(ctx, res, snapshot, http.StatusOK)
}

// POST /v1/intents
//
// Accepts any intent in its json form, e.g. {"kind":"openModal","modal":"signup"}.
func (a *Api) PostIntent(res http.ResponseWriter, req *http.Request) {
	var intent shell.Intent
	if !a.decode(res, req, &intent) {
		return
	}
	a.dispatch(res, req, intent)
}

func (a *Api) modalIntent(build func(models.ModalName) shell.Intent) varsHandler {
	return func(res http.ResponseWriter, req *http.Request, vars map[string]string) {
		a.dispatch(res, req, build(models.ModalName(vars["modal"])))
	}
}

// PUT /v1/forms/:form/fields/:field
func (a *Api) EditField(res http.ResponseWriter, req *http.Request, vars map[string]string) {
	var body fieldBody
	if !a.decode(res, req, &body) {
		return
	}
	a.dispatch(res, req, shell.EditField(models.FormName(vars["form"]), models.FieldName(vars["field"]), body.Value))
}

// POST /v1/forms/:form/submit
func (a *Api) SubmitForm(res http.ResponseWriter, req *http.Request, vars map[string]string) {
	a.dispatch(res, req, shell.Submit(models.FormName(vars["form"])))
}

// POST /v1/forms/createPage/invitees
func (a *Api) AddInvitee(res http.ResponseWriter, req *http.Request) {
	var body inviteeBody
	if !a.decode(res, req, &body) {
		return
	}
	a.dispatch(res, req, shell.AddInvitee(body.Email, body.Role))
}

// DELETE /v1/forms/createPage/invitees/:email
func (a *Api) RemoveInvitee(res http.ResponseWriter, req *http.Request, vars map[string]string) {
	a.dispatch(res, req, shell.RemoveInvitee(vars["email"]))
}

// POST /v1/sendlink
func (a *Api) SendLink(res http.ResponseWriter, req *http.Request) {
	var body phoneBody
	if !a.decode(res, req, &body) {
		return
	}
	a.dispatch(res, req, shell.SendLink(body.Phone))
}
