// Package echoapi exposes the attendance core over HTTP.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/attendance"
	"github.com/dnhuan/rollcall/core/class"
	"github.com/dnhuan/rollcall/core/leave"
	"github.com/dnhuan/rollcall/core/profile"
	"github.com/dnhuan/rollcall/core/session"
	"github.com/dnhuan/rollcall/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Logger        core.Logger
		UserSvc       *user.Service
		ProfileSvc    *profile.Service
		ClassSvc      *class.Service
		SessionSvc    *session.Service
		AttendanceSvc *attendance.Service
		LeaveSvc      *leave.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1", identityMiddleware)
	registerAuthAPI(v1, s.opts.UserSvc)
	registerProfileAPI(v1, s.opts.ProfileSvc)
	registerClassAPI(v1, s.opts.ClassSvc)
	registerSessionAPI(v1, s.opts.SessionSvc)
	registerAttendanceAPI(v1, s.opts.AttendanceSvc)
	registerLeaveAPI(v1, s.opts.LeaveSvc)
}

// Start serves until an OS signal or an unrecoverable server error arrives,
// then drains in-flight requests.
func (s *server) Start() error {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- s.app.Start(s.opts.Addr)
	}()

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")
	case sig := <-s.shutdown:
		s.opts.Logger.Info("shutdown started", sig)
		defer s.opts.Logger.Info("shutdown complete", sig)

		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Stop(ctx); err != nil {
			s.app.Server.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}

// signalShutdown sends an application signal to stop the server; used when an
// integrity issue is detected and the app needs to terminate cleanly.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}
