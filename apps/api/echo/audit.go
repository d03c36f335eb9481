package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core/audit"
)

type auditApi struct {
	svc *audit.Service
}

func registerAuditAPI(g *echo.Group, deps ServerDeps) {
	api := auditApi{svc: deps.AuditSvc}

	ag := g.Group("/audit-logs")
	ag.GET("", api.logQuery)
}

// logQuery returns entries newest-first, optionally narrowed to one user or
// one entity type.
func (api *auditApi) logQuery(ctx echo.Context) error {
	if userID := ctx.QueryParam("user_id"); userID != "" {
		logs, err := api.svc.QueryByUser(userID)
		if err != nil {
			return errors.Wrap(err, "querying audit logs by user")
		}
		return ctx.JSON(http.StatusOK, logs)
	}
	if entity := ctx.QueryParam("entity"); entity != "" {
		logs, err := api.svc.QueryByEntity(audit.Entity(entity))
		if err != nil {
			return errors.Wrap(err, "querying audit logs by entity")
		}
		return ctx.JSON(http.StatusOK, logs)
	}
	logs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying audit logs")
	}
	return ctx.JSON(http.StatusOK, logs)
}
