package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/session"
)

type sessionApi struct {
	svc *session.Service
}

func registerSessionAPI(g *echo.Group, svc *session.Service) {
	api := sessionApi{svc: svc}

	ag := g.Group("/attendance")
	ag.POST("/sessions", api.create, requireTeacher)
	ag.POST("/sessions/:id/close", api.close, requireTeacher)
	ag.GET("/sessions", api.queryByClass)
	ag.GET("/active-session", api.active)
}

func (api *sessionApi) create(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data session.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}

	s, err := api.svc.Create(ctx.Request().Context(), data, ident.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *sessionApi) close(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	s, err := api.svc.Close(ctx.Request().Context(), ctx.Param("id"), ident.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *sessionApi) queryByClass(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	classID, err := requiredQueryParam(ctx, "classId")
	if err != nil {
		return err
	}

	sessions, err := api.svc.QueryByClass(ctx.Request().Context(), classID, ident)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	if sessions == nil {
		sessions = []session.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) active(ctx echo.Context) error {
	if _, err := getContextIdentity(ctx); err != nil {
		return err
	}

	classID, err := requiredQueryParam(ctx, "classId")
	if err != nil {
		return err
	}

	s, err := api.svc.Active(ctx.Request().Context(), classID)
	if err != nil {
		// no open session is a success value, not an error; pollers rely on it
		if errors.Cause(err) == session.ErrNotFound {
			return ctx.JSON(http.StatusOK, nil)
		}
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func requiredQueryParam(ctx echo.Context, name string) (string, error) {
	val := core.CleanString(ctx.QueryParam(name))
	if val == "" {
		return "", core.NewValidationError(nil, core.FieldError{Field: name, Error: name + " is required"})
	}
	return val, nil
}
