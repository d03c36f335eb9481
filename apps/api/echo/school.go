package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/school"
)

type schoolApi struct {
	svc      *school.Service
	validate *validator.Validate
	rec      auditRecorder
}

func registerSchoolAPI(g *echo.Group, deps ServerDeps) {
	api := schoolApi{
		svc:      deps.SchoolSvc,
		validate: deps.Validate,
		rec:      auditRecorder{svc: deps.AuditSvc},
	}

	tg := g.Group("/teachers")
	tg.GET("", api.teacherQuery)
	tg.GET("/:id", api.teacherRetrieve)
	tg.POST("", api.teacherCreate, requireActor())
	tg.PUT("/:id", api.teacherUpdate, requireActor())
	tg.DELETE("/:id", api.teacherDestroy, requireActor())

	cg := g.Group("/classes")
	cg.GET("", api.classQuery)
	cg.GET("/:id", api.classRetrieve)
	cg.GET("/:id/students", api.classStudents)
	cg.POST("", api.classCreate, requireActor())
	cg.PUT("/:id", api.classUpdate, requireActor())
	cg.DELETE("/:id", api.classDestroy, requireActor())

	sg := g.Group("/students")
	sg.GET("", api.studentQuery)
	sg.GET("/:id", api.studentRetrieve)
	sg.POST("", api.studentCreate, requireActor())
	sg.PUT("/:id", api.studentUpdate, requireActor())
	sg.DELETE("/:id", api.studentDestroy, requireActor())
}

// Teachers

func (api *schoolApi) teacherCreate(ctx echo.Context) error {
	var data school.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	t, err := api.svc.CreateTeacher(uuid.NewString(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	api.rec.record(ctx, audit.ActionCreate, audit.EntityTeacher, t.ID, "Created teacher "+t.Name)

	return ctx.JSON(http.StatusCreated, t)
}

func (api *schoolApi) teacherQuery(ctx echo.Context) error {
	teachers, err := api.svc.QueryAllTeachers()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *schoolApi) teacherRetrieve(ctx echo.Context) error {
	t, err := api.svc.GetTeacherByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *schoolApi) teacherUpdate(ctx echo.Context) error {
	orig, err := api.svc.GetTeacherByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data school.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(api.validate, api.svc, orig); err != nil {
		return err
	}

	t, err := api.svc.UpdateTeacher(orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	api.rec.record(ctx, audit.ActionUpdate, audit.EntityTeacher, t.ID, "Updated teacher "+t.Name)

	return ctx.JSON(http.StatusOK, t)
}

func (api *schoolApi) teacherDestroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteTeacher(id); err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionDelete, audit.EntityTeacher, id, "Deleted teacher")

	return ctx.NoContent(http.StatusNoContent)
}

// Classes

func (api *schoolApi) classCreate(ctx echo.Context) error {
	var data school.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.CreateClass(uuid.NewString(), data)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionCreate, audit.EntityClass, c.ID, "Created class "+c.Name)

	return ctx.JSON(http.StatusCreated, c)
}

func (api *schoolApi) classQuery(ctx echo.Context) error {
	classes, err := api.svc.QueryAllClasses()
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *schoolApi) classRetrieve(ctx echo.Context) error {
	c, err := api.svc.GetClassByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *schoolApi) classStudents(ctx echo.Context) error {
	c, err := api.svc.GetClassByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	students, err := api.svc.QueryStudentsByClass(c.ID)
	if err != nil {
		return errors.Wrap(err, "querying class students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *schoolApi) classUpdate(ctx echo.Context) error {
	var data school.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.UpdateClass(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionUpdate, audit.EntityClass, c.ID, "Updated class "+c.Name)

	return ctx.JSON(http.StatusOK, c)
}

func (api *schoolApi) classDestroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteClass(id); err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionDelete, audit.EntityClass, id, "Deleted class")

	return ctx.NoContent(http.StatusNoContent)
}

// Students

func (api *schoolApi) studentCreate(ctx echo.Context) error {
	var data school.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	s, err := api.svc.CreateStudent(uuid.NewString(), data)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionCreate, audit.EntityStudent, s.ID, "Enrolled student "+s.Name)

	return ctx.JSON(http.StatusCreated, s)
}

func (api *schoolApi) studentQuery(ctx echo.Context) error {
	if classID := ctx.QueryParam("class_id"); classID != "" {
		students, err := api.svc.QueryStudentsByClass(classID)
		if err != nil {
			return errors.Wrap(err, "querying students by class")
		}
		return ctx.JSON(http.StatusOK, students)
	}
	students, err := api.svc.QueryAllStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *schoolApi) studentRetrieve(ctx echo.Context) error {
	s, err := api.svc.GetStudentByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *schoolApi) studentUpdate(ctx echo.Context) error {
	orig, err := api.svc.GetStudentByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data school.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate, api.svc, orig); err != nil {
		return err
	}

	s, err := api.svc.UpdateStudent(orig.ID, data)
	if err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionUpdate, audit.EntityStudent, s.ID, "Updated student "+s.Name)

	return ctx.JSON(http.StatusOK, s)
}

func (api *schoolApi) studentDestroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteStudent(id); err != nil {
		return err
	}
	api.rec.record(ctx, audit.ActionDelete, audit.EntityStudent, id, "Deleted student")

	return ctx.NoContent(http.StatusNoContent)
}
