package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/exports"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
)

type dashboardApi struct {
	schoolSvc    *school.Service
	academicsSvc *academics.Service
	financeSvc   *finance.Service
	exportSvc    *exports.Service
}

func registerDashboardAPI(g *echo.Group, deps ServerDeps) {
	api := dashboardApi{
		schoolSvc:    deps.SchoolSvc,
		academicsSvc: deps.AcademicsSvc,
		financeSvc:   deps.FinanceSvc,
		exportSvc:    deps.ExportSvc,
	}

	g.GET("/dashboard/overview", api.overview)
}

type overviewResponse struct {
	Students        int `json:"students"`
	Teachers        int `json:"teachers"`
	Classes         int `json:"classes"`
	FeesCollected   int `json:"fees_collected"`
	FeesOutstanding int `json:"fees_outstanding"`
	PresentToday    int `json:"present_today"`
	MarkedToday     int `json:"marked_today"`
	PendingExports  int `json:"pending_exports"`
}

func (api *dashboardApi) overview(ctx echo.Context) error {
	students, err := api.schoolSvc.QueryAllStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	teachers, err := api.schoolSvc.QueryAllTeachers()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	classes, err := api.schoolSvc.QueryAllClasses()
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	payments, err := api.financeSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	attendance, err := api.academicsSvc.AllAttendance()
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	requests, err := api.exportSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying export requests")
	}

	resp := overviewResponse{
		Students: len(students),
		Teachers: len(teachers),
		Classes:  len(classes),
	}
	for _, s := range students {
		resp.FeesOutstanding += s.FeeBalance
	}
	for _, p := range payments {
		if p.Status == finance.PaymentCompleted {
			resp.FeesCollected += p.Amount
		}
	}
	today := core.Today()
	for _, a := range attendance {
		if a.Date != today {
			continue
		}
		resp.MarkedToday++
		if a.Status == academics.AttendancePresent {
			resp.PresentToday++
		}
	}
	for _, e := range requests {
		if e.Status == exports.StatusPending {
			resp.PendingExports++
		}
	}

	return ctx.JSON(http.StatusOK, resp)
}
