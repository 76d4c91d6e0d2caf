package main

import (
	"context"

	"github.com/dnhuan/rollcall/core/user"
)

func (cli *commandLine) addUser(uname, email, role, pwd string) error {
	nu := user.NewUser{
		Username:        uname,
		Email:           email,
		Password:        pwd,
		PasswordConfirm: pwd,
		Role:            role,
	}
	if err := nu.Validate(); err != nil {
		return err
	}

	usr, err := cli.usrSvc.Register(context.Background(), nu)
	if err != nil {
		return err
	}
	logger.Printf("created %s user %q (%s)", usr.Role, usr.Username, usr.ID)
	return nil
}
