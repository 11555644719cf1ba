package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/shell"
)

type (
	Api struct {
		shell      *shell.Shell
		upgrader   websocket.Upgrader
		baseLogger *zap.SugaredLogger
		Config     Config
	}
	Config struct {
		StreamWriteTimeout time.Duration `split_words:"true" default:"10s"`
		ReadyTimeout       time.Duration `split_words:"true" default:"2s"`
		AllowedOrigins     []string      `split_words:"true"`
	}

	// Status is the body of every error response.
	Status struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}

	// this just makes it easier to bind a handler for the Handle function
	varsHandler func(http.ResponseWriter, *http.Request, map[string]string)
)

const (
	STATUS_ERR_DECODING_INTENT = "Error decoding the intent"
	STATUS_ERR_UPGRADING       = "Error upgrading to websocket"
	STATUS_ERR_SUBSCRIBING     = "Error subscribing to state"
	STATUS_ERR_RENDERING       = "Error rendering state"
	STATUS_MODAL_CLOSED        = "The targeted dialog is not open"
	STATUS_SEND_IN_PROGRESS    = "A link is already being sent"
	STATUS_UNMOUNTED           = "The page has been torn down"
	STATUS_UNKNOWN_MODAL       = "No such dialog"
	STATUS_UNKNOWN_FORM        = "No such form"
	STATUS_UNKNOWN_INTENT      = "No such intent"
	STATUS_NOT_READY           = "Event loop is not processing events"
	STATUS_OK                  = "OK"
)

func NewApi(cfg Config, sh *shell.Shell, logger *zap.SugaredLogger) *Api {
	a := &Api{
		shell:      sh,
		baseLogger: logger,
		Config:     cfg,
	}
	a.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     a.checkOrigin,
	}
	return a
}

func apiConfigProvider() (Config, error) {
	var config Config
	err := envconfig.Process("landing_api", &config)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

func routerProvider(api *Api) *mux.Router {
	rtr := mux.NewRouter()
	api.SetHandlers("", rtr)
	return rtr
}

// RouterModule build a router
var RouterModule = fx.Options(fx.Provide(NewApi, routerProvider, apiConfigProvider))

// addPathVarToLogger adds a request's path variable to the logging context.
func (a *Api) addPathVarToLogger(name string) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, orig *http.Request) {
			vars := mux.Vars(orig)
			next := orig
			if value, ok := vars[name]; ok {
				ctxLog := a.logger(orig.Context()).With(zap.String(name, value))
				next = orig.WithContext(context.WithValue(orig.Context(), ctxLoggerKey{}, ctxLog))
			}
			h.ServeHTTP(w, next)
		})
	}
}

type ctxLoggerKey struct{}

func (a *Api) logger(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return a.cloneLogger()
}

func (a *Api) cloneLogger() *zap.SugaredLogger {
	return a.baseLogger.WithOptions()
}

func (a *Api) ctxLoggerHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLog := a.cloneLogger().With(zap.String("locale", locale(r)))
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxLoggerKey{}, ctxLog)))
	})
}

func (a *Api) SetHandlers(prefix string, rtr *mux.Router) {
	rtr.Use(mux.MiddlewareFunc(a.ctxLoggerHandler))
	rtr.Use(a.addPathVarToLogger("modal"))
	rtr.Use(a.addPathVarToLogger("form"))

	rtr.HandleFunc(prefix+"/status", a.IsReady).Methods("GET")
	rtr.HandleFunc(prefix+"/ready", a.IsReady).Methods("GET")
	rtr.HandleFunc(prefix+"/live", a.IsAlive).Methods("GET")

	// vars is a shorthand for applying the varsHandler to an handler.
	type vars = varsHandler

	v1 := rtr.PathPrefix(prefix + "/v1").Subrouter()

	// GET /v1/state
	// GET /v1/state/stream
	v1.HandleFunc("/state", a.GetState).Methods("GET")
	v1.HandleFunc("/state/stream", a.StreamState).Methods("GET")

	// POST /v1/intents
	v1.HandleFunc("/intents", a.PostIntent).Methods("POST")

	// POST /v1/modals/:modal/open
	// POST /v1/modals/:modal/close
	// POST /v1/modals/:modal/overlay
	// POST /v1/modals/:modal/content
	v1.Handle("/modals/{modal}/open", vars(a.modalIntent(shell.OpenModal))).Methods("POST")
	v1.Handle("/modals/{modal}/close", vars(a.modalIntent(shell.CloseModal))).Methods("POST")
	v1.Handle("/modals/{modal}/overlay", vars(a.modalIntent(shell.OverlayClick))).Methods("POST")
	v1.Handle("/modals/{modal}/content", vars(a.modalIntent(shell.ContentClick))).Methods("POST")

	// PUT /v1/forms/:form/fields/:field
	// POST /v1/forms/:form/submit
	v1.Handle("/forms/{form}/fields/{field}", vars(a.EditField)).Methods("PUT")
	v1.Handle("/forms/{form}/submit", vars(a.SubmitForm)).Methods("POST")

	// POST /v1/forms/createPage/invitees
	// DELETE /v1/forms/createPage/invitees/:email
	v1.HandleFunc("/forms/createPage/invitees", a.AddInvitee).Methods("POST")
	v1.Handle("/forms/createPage/invitees/{email}", vars(a.RemoveInvitee)).Methods("DELETE")

	// POST /v1/sendlink
	v1.HandleFunc("/sendlink", a.SendLink).Methods("POST")
}

func (h varsHandler) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	h(res, req, vars)
}

func (a *Api) IsReady(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), a.Config.ReadyTimeout)
	defer cancel()
	if _, err := a.shell.Snapshot(ctx, ""); err != nil {
		a.sendError(ctx, res, http.StatusServiceUnavailable, STATUS_NOT_READY, err)
		return
	}
	res.WriteHeader(http.StatusOK)
	res.Write([]byte(STATUS_OK))
}

func (a *Api) IsAlive(res http.ResponseWriter, req *http.Request) {
	res.WriteHeader(http.StatusOK)
	res.Write([]byte(STATUS_OK))
}

func (a *Api) checkOrigin(req *http.Request) bool {
	if len(a.Config.AllowedOrigins) == 0 {
		return true
	}
	origin := req.Header.Get("Origin")
	for _, allowed := range a.Config.AllowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}

// dispatch runs intent and writes the outcome. Domain failures are answered
// with 422 and the outcome, so the renderer can still show the notice.
func (a *Api) dispatch(res http.ResponseWriter, req *http.Request, intent shell.Intent) {
	ctx := req.Context()
	outcome, err := a.shell.Dispatch(ctx, intent, locale(req))
	if err == nil {
		a.sendModelAsResWithStatus(ctx, res, outcome, http.StatusOK)
		return
	}
	if _, ok := models.NoticeFor(err); ok {
		a.logger(ctx).With(zap.Error(err)).Debugw("intent rejected", "kind", string(intent.Kind))
		a.sendModelAsResWithStatus(ctx, res, outcome, http.StatusUnprocessableEntity)
		return
	}
	code, reason := statusFor(err)
	a.sendError(ctx, res, code, reason, err, zap.String("kind", string(intent.Kind)))
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrModalClosed):
		return http.StatusConflict, STATUS_MODAL_CLOSED
	case errors.Is(err, models.ErrSendInProgress):
		return http.StatusConflict, STATUS_SEND_IN_PROGRESS
	case errors.Is(err, models.ErrUnmounted):
		return http.StatusConflict, STATUS_UNMOUNTED
	case errors.Is(err, models.ErrUnknownModal):
		return http.StatusNotFound, STATUS_UNKNOWN_MODAL
	case errors.Is(err, models.ErrUnknownForm):
		return http.StatusNotFound, STATUS_UNKNOWN_FORM
	case errors.Is(err, shell.ErrUnknownIntent):
		return http.StatusBadRequest, STATUS_UNKNOWN_INTENT
	case errors.Is(err, models.ErrLoopStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, STATUS_NOT_READY
	}
	return http.StatusInternalServerError, err.Error()
}

func (a *Api) sendModelAsResWithStatus(ctx context.Context, res http.ResponseWriter, model interface{}, statusCode int) {
	if jsonDetails, err := json.Marshal(model); err != nil {
		a.logger(ctx).With("model", model, zap.Error(err)).Errorf("trying to send model")
		http.Error(res, "Error marshaling data for response", http.StatusInternalServerError)
	} else {
		res.Header().Set("content-type", "application/json")
		res.WriteHeader(statusCode)
		res.Write(jsonDetails)
	}
}

func (a *Api) sendError(ctx context.Context, res http.ResponseWriter, statusCode int, reason string, extras ...interface{}) {
	a.sendErrorLog(ctx, statusCode, reason, extras...)
	a.sendModelAsResWithStatus(ctx, res, Status{Code: statusCode, Reason: reason}, statusCode)
}

func (a *Api) sendErrorLog(ctx context.Context, code int, reason string, extras ...interface{}) {
	details := splitErrorsAndFields(extras)
	log := a.logger(ctx).WithOptions(zap.AddCallerSkip(2)).
		Desugar().With(details.Fields...).Sugar().
		With(zap.Int("code", code))
	if len(details.Errors) == 1 {
		log = log.With(zap.Error(details.Errors[0]))
	} else if len(details.Errors) > 1 {
		log = log.With(zap.Errors("errors", details.Errors))
	}
	if code < http.StatusInternalServerError || len(details.Errors) == 0 {
		// no stack trace below 500
		log.Info(reason)
	} else {
		log.Error(reason)
	}
}

type extrasDetails struct {
	Errors []error
	Fields []zap.Field
}

// splitErrorsAndFields sorts extras into errors and log fields. Anything
// else is logged under "extra".
func splitErrorsAndFields(extras []interface{}) extrasDetails {
	details := extrasDetails{}
	for _, extra := range extras {
		switch v := extra.(type) {
		case nil:
		case error:
			details.Errors = append(details.Errors, v)
		case zap.Field:
			details.Fields = append(details.Fields, v)
		default:
			details.Fields = append(details.Fields, zap.Any("extra", v))
		}
	}
	return details
}
