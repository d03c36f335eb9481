package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/audit"
)

type academicsApi struct {
	svc      *academics.Service
	validate *validator.Validate
	rec      auditRecorder
}

func registerAcademicsAPI(g *echo.Group, deps ServerDeps) {
	api := academicsApi{
		svc:      deps.AcademicsSvc,
		validate: deps.Validate,
		rec:      auditRecorder{svc: deps.AuditSvc},
	}

	ag := g.Group("/attendance")
	ag.GET("", api.attendanceQuery)
	ag.GET("/students/:id", api.attendanceByStudent)
	ag.POST("", api.attendanceMark, requireActor())

	gg := g.Group("/grades")
	gg.GET("", api.gradeQuery)
	gg.GET("/students/:id", api.gradesByStudent)
	gg.POST("", api.gradeAdd, requireActor())
}

// Attendance

// attendanceMark upserts: re-submitting the same (student, class, day) edits
// the existing record instead of duplicating it.
func (api *academicsApi) attendanceMark(ctx echo.Context) error {
	var data academics.MarkAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errActorRequired
	}

	a, err := api.svc.Mark(uuid.NewString(), data, actor.ID)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionUpdate, audit.EntityAttendance, a.ID,
		"Marked attendance "+string(a.Status)+" for "+a.Date)

	return ctx.JSON(http.StatusOK, a)
}

func (api *academicsApi) attendanceQuery(ctx echo.Context) error {
	classID := ctx.QueryParam("class_id")
	if classID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "class_id is required")
	}
	records, err := api.svc.AttendanceByClass(classID, ctx.QueryParam("date"))
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *academicsApi) attendanceByStudent(ctx echo.Context) error {
	records, err := api.svc.AttendanceByStudent(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}

// Grades

// gradeAdd upserts: re-submitting the same (student, subject, term, year)
// replaces the previous score and its derived letter.
func (api *academicsApi) gradeAdd(ctx echo.Context) error {
	var data academics.AddGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errActorRequired
	}

	g, err := api.svc.AddGrade(uuid.NewString(), data, actor.ID)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionUpdate, audit.EntityGrade, g.ID,
		"Recorded "+g.Subject+" grade "+g.Grade)

	return ctx.JSON(http.StatusOK, g)
}

func (api *academicsApi) gradeQuery(ctx echo.Context) error {
	classID := ctx.QueryParam("class_id")
	if classID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "class_id is required")
	}
	grades, err := api.svc.GradesByClass(classID, ctx.QueryParam("subject"))
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *academicsApi) gradesByStudent(ctx echo.Context) error {
	grades, err := api.svc.GradesByStudent(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}
