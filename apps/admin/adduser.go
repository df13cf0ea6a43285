package main

import (
	"context"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		if usr, err = cli.usrRepo.GetUserByUsernameOrEmail(ctx, email); err != nil {
			if err != user.ErrNotFound {
				return err
			}
			now := time.Now().UTC()
			usr = user.User{
				Name:      uname,
				Username:  uname,
				Email:     email,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := usr.SetPassword(pwd); err != nil {
				return err
			}
			_, err = cli.usrRepo.CreateUser(ctx, usr)
			return err
		}
	}

	usr.IsActive = true
	usr.UpdatedAt = time.Now().UTC()
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
