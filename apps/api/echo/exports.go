package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/exports"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
	exportsvc "github.com/tmwangi/shuledesk/services/export"
)

type exportApi struct {
	svc          *exports.Service
	schoolSvc    *school.Service
	academicsSvc *academics.Service
	financeSvc   *finance.Service
	validate     *validator.Validate
	rec          auditRecorder
}

func registerExportAPI(g *echo.Group, deps ServerDeps) {
	api := exportApi{
		svc:          deps.ExportSvc,
		schoolSvc:    deps.SchoolSvc,
		academicsSvc: deps.AcademicsSvc,
		financeSvc:   deps.FinanceSvc,
		validate:     deps.Validate,
		rec:          auditRecorder{svc: deps.AuditSvc},
	}

	eg := g.Group("/exports")
	eg.GET("", api.exportQuery)
	eg.GET("/:id", api.exportRetrieve)
	eg.POST("", api.exportCreate, requireActor())
	eg.GET("/:id/download", api.exportDownload, requireActor())

	// only the principal decides on export requests
	eg.POST("/:id/approve", api.exportApprove, roleMiddleware("PRINCIPAL"))
	eg.POST("/:id/reject", api.exportReject, roleMiddleware("PRINCIPAL"))
}

func (api *exportApi) exportCreate(ctx echo.Context) error {
	var data exports.NewExport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExport")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errActorRequired
	}

	e, err := api.svc.Create(uuid.NewString(), data, actor.ID)
	if err != nil {
		return errors.Wrap(err, "creating export request")
	}
	api.rec.record(ctx, audit.ActionCreate, audit.EntityExport, e.ID,
		"Requested "+string(e.DataType)+" export as "+string(e.Format))

	return ctx.JSON(http.StatusCreated, e)
}

func (api *exportApi) exportQuery(ctx echo.Context) error {
	requests, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying export requests")
	}
	return ctx.JSON(http.StatusOK, requests)
}

func (api *exportApi) exportRetrieve(ctx echo.Context) error {
	e, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *exportApi) exportApprove(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errActorRequired
	}

	e, err := api.svc.Approve(ctx.Param("id"), actor)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionUpdate, audit.EntityExport, e.ID,
		"Approved "+string(e.DataType)+" export request")

	return ctx.JSON(http.StatusOK, e)
}

type rejectExportRequest struct {
	Reason string `json:"reason"`
}

func (api *exportApi) exportReject(ctx echo.Context) error {
	var data rejectExportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to rejectExportRequest")
	}

	e, err := api.svc.Reject(ctx.Param("id"), data.Reason)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionUpdate, audit.EntityExport, e.ID,
		"Rejected "+string(e.DataType)+" export request: "+e.RejectionReason)

	return ctx.JSON(http.StatusOK, e)
}

// exportDownload renders the approved request's content on the fly. Requests
// still PENDING or REJECTED cannot be downloaded.
func (api *exportApi) exportDownload(ctx echo.Context) error {
	e, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	if e.Status != exports.StatusApproved {
		return errExportNotApproved
	}

	ds, err := api.dataset()
	if err != nil {
		return errors.Wrap(err, "gathering export dataset")
	}
	buf, contentType, filename, err := exportsvc.Render(e, ds)
	if err != nil {
		return errors.Wrap(err, "rendering export")
	}
	api.rec.record(ctx, audit.ActionExport, audit.EntityExport, e.ID,
		"Downloaded "+string(e.DataType)+" export")

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK, contentType, buf.Bytes())
}

func (api *exportApi) dataset() (exportsvc.Dataset, error) {
	students, err := api.schoolSvc.QueryAllStudents()
	if err != nil {
		return exportsvc.Dataset{}, err
	}
	payments, err := api.financeSvc.QueryAll()
	if err != nil {
		return exportsvc.Dataset{}, err
	}
	attendance, err := api.academicsSvc.AllAttendance()
	if err != nil {
		return exportsvc.Dataset{}, err
	}
	grades, err := api.academicsSvc.AllGrades()
	if err != nil {
		return exportsvc.Dataset{}, err
	}
	return exportsvc.Dataset{
		Students:   students,
		Payments:   payments,
		Attendance: attendance,
		Grades:     grades,
	}, nil
}
