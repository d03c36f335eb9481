package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/school"
)

var (
	errActorRequired     = echo.NewHTTPError(http.StatusUnauthorized, "no acting account selected")
	errHttpForbidden     = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errExportNotApproved = echo.NewHTTPError(http.StatusForbidden, "export request has not been approved")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if errors.Cause(err) == school.ErrClassHasStudents {
			code = http.StatusConflict
			message = errors.Cause(err).Error()
			respond(ctx, code, wrap(ctx, err, message))
			return
		}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.NotFoundError:
			code = http.StatusNotFound
			message = origErr.Error()
		case *core.DuplicateKeyError:
			code = http.StatusConflict
			message = origErr.Error()
		case *core.InvalidTransitionError:
			code = http.StatusConflict
			message = origErr.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			if actor, aErr := getContextActor(ctx); aErr == nil {
				logger.Error(msg, errors.Wrap(err, msg), actor)
			} else {
				logger.Error(msg, errors.Wrap(err, msg))
			}

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		respond(ctx, code, wrap(ctx, err, message))
	}
}

func wrap(ctx echo.Context, err error, message interface{}) interface{} {
	if ctx.Echo().Debug {
		return echo.Map{"error": err.Error()}
	}
	if m, ok := message.(string); ok {
		return echo.Map{"error": m}
	}
	return message
}

func respond(ctx echo.Context, code int, message interface{}) {
	if ctx.Response().Committed {
		return
	}
	var err error
	if ctx.Request().Method == http.MethodHead { // Issue #608
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, message)
	}
	if err != nil {
		ctx.Echo().Logger.Error(err)
	}
}
