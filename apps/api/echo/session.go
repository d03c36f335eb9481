package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core/audit"
)

type sessionApi struct {
	accounts audit.Directory
	rec      auditRecorder
}

func registerSessionAPI(g *echo.Group, deps ServerDeps) {
	api := sessionApi{
		accounts: deps.Accounts,
		rec:      auditRecorder{svc: deps.AuditSvc},
	}

	sg := g.Group("/session")
	sg.GET("/accounts", api.queryAccounts)
	sg.POST("/select", api.selectAccount)
}

func (api *sessionApi) queryAccounts(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, testAccounts)
}

type selectAccountRequest struct {
	AccountID string `json:"account_id"`
}

// selectAccount acknowledges the caller's chosen identity and records the
// LOGIN. The caller still asserts the identity per request via headers.
func (api *sessionApi) selectAccount(ctx echo.Context) error {
	var data selectAccountRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to selectAccountRequest")
	}

	actor, ok := api.accounts.GetActor(data.AccountID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown account")
	}

	ctx.Set(actorContextKey, actor)
	api.rec.record(ctx, audit.ActionLogin, audit.EntityUser, actor.ID, actor.Name+" signed in as "+actor.Role)

	return ctx.JSON(http.StatusOK, actor)
}
