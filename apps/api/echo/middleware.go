package echoapi

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core/audit"
)

const actorContextKey = "actor"

var errActorNotFoundInCtx = errors.New("actor object not found in echo.Context")

// actorMiddleware resolves the caller-asserted identity headers against the
// known accounts and stashes the Actor in the request context. Requests with
// no headers pass through unauthenticated; handlers that need an identity use
// requireActor.
func actorMiddleware(accounts audit.Directory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id := ctx.Request().Header.Get("X-Actor-ID")
			if id == "" {
				return next(ctx)
			}
			actor, ok := accounts.GetActor(id)
			if !ok {
				// unknown id: keep the asserted identity for audit attribution
				actor = audit.Actor{ID: id, Name: ctx.Request().Header.Get("X-Actor-Name")}
			}
			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func requireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, err := getContextActor(ctx); err != nil {
				return errActorRequired
			}
			return next(ctx)
		}
	}
}

// roleMiddleware gates a route on the asserted account's role. The role comes
// from a caller-selected test account, not a verified credential.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := getContextActor(ctx)
			if err != nil {
				return errActorRequired
			}
			for _, role := range roles {
				if actor.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func getContextActor(ctx echo.Context) (audit.Actor, error) {
	if actor, ok := ctx.Get(actorContextKey).(audit.Actor); ok {
		return actor, nil
	}
	return audit.Actor{}, errActorNotFoundInCtx
}

// auditRecorder writes audit entries for handler mutations. Recording failures
// are logged, never surfaced: the mutation has already been applied.
type auditRecorder struct {
	svc *audit.Service
}

func (rec auditRecorder) record(ctx echo.Context, action audit.Action, entity audit.Entity, entityID, details string) {
	actor, err := getContextActor(ctx)
	if err != nil {
		actor = audit.Actor{Name: "anonymous"}
	}
	if _, err := rec.svc.Record(uuid.NewString(), actor, action, entity, entityID, details, ctx.RealIP()); err != nil {
		ctx.Logger().Errorf("%+v", errors.Wrap(err, fmt.Sprintf("recording %s %s audit entry", action, entity)))
	}
}
