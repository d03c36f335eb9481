package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
)

type financeApi struct {
	svc      *finance.Service
	validate *validator.Validate
	rec      auditRecorder
}

func registerFinanceAPI(g *echo.Group, deps ServerDeps) {
	api := financeApi{
		svc:      deps.FinanceSvc,
		validate: deps.Validate,
		rec:      auditRecorder{svc: deps.AuditSvc},
	}

	pg := g.Group("/payments")
	pg.GET("", api.paymentQuery)
	pg.GET("/:id", api.paymentRetrieve)
	pg.GET("/students/:id", api.paymentsByStudent)
	pg.POST("", api.paymentRecord, requireActor())
}

type paymentResponse struct {
	Payment finance.Payment `json:"payment"`
	Student school.Student  `json:"student"`
}

// paymentRecord appends the payment and returns the student with the fee
// balance already adjusted.
func (api *financeApi) paymentRecord(ctx echo.Context) error {
	var data finance.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errActorRequired
	}

	p, s, err := api.svc.Record(uuid.NewString(), data, actor.ID)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionCreate, audit.EntityPayment, p.ID,
		fmt.Sprintf("Recorded %s payment of %d for %s (receipt %s)", p.Method, p.Amount, s.Name, p.ReceiptNo))

	return ctx.JSON(http.StatusCreated, paymentResponse{Payment: p, Student: s})
}

func (api *financeApi) paymentQuery(ctx echo.Context) error {
	payments, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *financeApi) paymentRetrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

type studentPaymentsResponse struct {
	Payments  []finance.Payment `json:"payments"`
	TotalPaid int               `json:"total_paid"`
}

func (api *financeApi) paymentsByStudent(ctx echo.Context) error {
	studentID := ctx.Param("id")
	payments, err := api.svc.QueryByStudent(studentID)
	if err != nil {
		return errors.Wrap(err, "querying student payments")
	}
	total, err := api.svc.TotalPaidByStudent(studentID)
	if err != nil {
		return errors.Wrap(err, "totalling student payments")
	}
	return ctx.JSON(http.StatusOK, studentPaymentsResponse{Payments: payments, TotalPaid: total})
}
