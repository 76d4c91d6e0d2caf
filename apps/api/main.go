package main

import (
	"log"
	"os"

	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/attendance"
	"github.com/dnhuan/rollcall/core/class"
	"github.com/dnhuan/rollcall/core/leave"
	"github.com/dnhuan/rollcall/core/profile"
	"github.com/dnhuan/rollcall/core/session"
	"github.com/dnhuan/rollcall/core/user"

	echoapi "github.com/dnhuan/rollcall/apps/api/echo"
	emailsvc "github.com/dnhuan/rollcall/services/email"
	logsvc "github.com/dnhuan/rollcall/services/logger"
	"github.com/dnhuan/rollcall/storage/database"
	inmemdb "github.com/dnhuan/rollcall/storage/database/inmem"
	sqlxrepos "github.com/dnhuan/rollcall/storage/database/sqlx"
)

type repositories struct {
	user       user.Repository
	profile    profile.Repository
	class      class.Repository
	session    session.Repository
	attendance attendance.Repository
	leave      leave.Repository
}

func main() {
	conf := core.LoadConf()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	if d := conf.Session.DefaultDuration; d > 0 {
		session.DefaultDuration = d
	}

	// set up storage
	var repos repositories
	switch conf.Database.Engine {
	case "postgres":
		sqlDB, err := database.Open(conf)
		if err != nil {
			logger.Fatal("opening database", err)
		}
		defer func() { _ = sqlDB.Close() }()
		if err = database.Migrate(sqlDB); err != nil {
			logger.Fatal("migrating database", err)
		}

		db := sqlxrepos.Wrap(sqlDB)
		repos = repositories{
			user:       sqlxrepos.NewUserRepository(db),
			profile:    sqlxrepos.NewProfileRepository(db),
			class:      sqlxrepos.NewClassRepository(db),
			session:    sqlxrepos.NewSessionRepository(db),
			attendance: sqlxrepos.NewAttendanceRepository(db),
			leave:      sqlxrepos.NewLeaveRepository(db),
		}
	default: // in-memory, the dev default
		db := inmemdb.Open()
		repos = repositories{
			user:       inmemdb.NewUserRepository(db),
			profile:    inmemdb.NewProfileRepository(db),
			class:      inmemdb.NewClassRepository(db),
			session:    inmemdb.NewSessionRepository(db),
			attendance: inmemdb.NewAttendanceRepository(db),
			leave:      inmemdb.NewLeaveRepository(db),
		}
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	sessionSvc := session.NewService(repos.session)
	profileSvc := profile.NewService(repos.profile)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:          conf.Server.Addr,
		Logger:        logger,
		UserSvc:       user.NewService(repos.user),
		ProfileSvc:    profileSvc,
		ClassSvc:      class.NewService(repos.class),
		SessionSvc:    sessionSvc,
		AttendanceSvc: attendance.NewService(repos.attendance, sessionSvc),
		LeaveSvc:      leave.NewService(repos.leave, sessionSvc, profileSvc, mailSvc),
	})
	if err := app.Start(); err != nil {
		logger.Fatal("server stopped", err)
	}
}
