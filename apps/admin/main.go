package main

import (
	"log"
	"os"

	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/user"
	"github.com/dnhuan/rollcall/storage/database"
	sqlxrepos "github.com/dnhuan/rollcall/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.LoadConf()
	if conf.Database.Engine != "postgres" {
		logger.Fatal("admin commands require dbEngine=postgres")
	}

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:     db,
		usrSvc: user.NewService(sqlxrepos.NewUserRepository(sqlxrepos.Wrap(db))),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
