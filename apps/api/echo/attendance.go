package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core/attendance"
)

type attendanceApi struct {
	svc *attendance.Service
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance")
	ag.POST("/check-in", api.checkIn, requireStudent)
	ag.GET("/my-attendance", api.queryOwn, requireStudent)
	ag.GET("/session-attendees", api.queryBySession, requireTeacher)
}

func (api *attendanceApi) checkIn(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data attendance.CheckIn
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CheckIn")
	}

	res, err := api.svc.CheckIn(ctx.Request().Context(), data, ident.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *attendanceApi) queryOwn(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	classID, err := requiredQueryParam(ctx, "classId")
	if err != nil {
		return err
	}

	records, err := api.svc.QueryOwn(ctx.Request().Context(), classID, ident.UserID)
	if err != nil {
		return errors.Wrap(err, "querying own attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) queryBySession(ctx echo.Context) error {
	sessionID, err := requiredQueryParam(ctx, "sessionId")
	if err != nil {
		return err
	}

	records, err := api.svc.QueryBySession(ctx.Request().Context(), sessionID)
	if err != nil {
		return errors.Wrap(err, "querying session attendees")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}
