package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core/leave"
)

type leaveApi struct {
	svc *leave.Service
}

func registerLeaveAPI(g *echo.Group, svc *leave.Service) {
	api := leaveApi{svc: svc}

	ag := g.Group("/attendance")
	ag.POST("/leave-requests", api.create, requireStudent)
	ag.GET("/my-leave-requests", api.queryOwn, requireStudent)
	ag.GET("/leave-requests", api.queryByClass, requireTeacher)
	ag.PUT("/leave-requests/:id/approve", api.approve, requireTeacher)
	ag.PUT("/leave-requests/:id/reject", api.reject, requireTeacher)
}

func (api *leaveApi) create(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data leave.NewLeave
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLeave")
	}

	lv, err := api.svc.Create(ctx.Request().Context(), data, ident.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, lv)
}

func (api *leaveApi) queryOwn(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	classID, err := requiredQueryParam(ctx, "classId")
	if err != nil {
		return err
	}

	leaves, err := api.svc.QueryOwn(ctx.Request().Context(), classID, ident.UserID)
	if err != nil {
		return errors.Wrap(err, "querying own leave requests")
	}
	if leaves == nil {
		leaves = []leave.LeaveRequest{}
	}
	return ctx.JSON(http.StatusOK, leaves)
}

func (api *leaveApi) queryByClass(ctx echo.Context) error {
	classID, err := requiredQueryParam(ctx, "classId")
	if err != nil {
		return err
	}

	var filter leave.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	leaves, err := api.svc.QueryByClass(ctx.Request().Context(), classID, filter)
	if err != nil {
		return errors.Wrap(err, "querying leave requests")
	}
	if leaves == nil {
		leaves = []leave.LeaveRequest{}
	}
	return ctx.JSON(http.StatusOK, leaves)
}

func (api *leaveApi) approve(ctx echo.Context) error {
	return api.decide(ctx, leave.StatusApproved)
}

func (api *leaveApi) reject(ctx echo.Context) error {
	return api.decide(ctx, leave.StatusRejected)
}

func (api *leaveApi) decide(ctx echo.Context, status string) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data DecisionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DecisionRequest")
	}

	lv, err := api.svc.Decide(ctx.Request().Context(), ctx.Param("id"), ident.UserID, status, data.TeacherNote)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lv)
}

type DecisionRequest struct {
	TeacherNote string `json:"teacherNote"`
}
