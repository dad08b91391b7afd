package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/haidang99/oceanchat/internal/client/api"
	"github.com/haidang99/oceanchat/internal/client/models"
	"github.com/haidang99/oceanchat/internal/common"
)

// Register walks the user through account creation. The account id doubles
// as the login, so it is validated up front; a weak password is refused
// before the server is even asked.
func (a *App) Register(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Choose an account ID (at least 5 characters, save it to log in later)", os.Stdout)
	if err != nil {
		return err
	}
	if len(id) < 5 {
		printlnFn("ID must be at least 5 characters.")
		return common.ErrIDTooShort
	}

	username, err := GetSimpleText(a.reader, "Choose a display name", os.Stdout)
	if err != nil {
		return err
	}
	if username == "" {
		printlnFn("Display name cannot be empty.")
		return errors.New("empty display name")
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if passwordStrength(string(password)) < 2 {
		if len(password) < 6 {
			printlnFn("Password must be at least 6 characters.")
		} else {
			printlnFn("Password too weak: mix letters and digits.")
		}
		return errors.New("weak password")
	}

	candidate := &models.User{
		ID:       id,
		Username: username,
		Password: string(password),
		Avatar:   avatars[rand.Intn(len(avatars))],
		Color:    colors[rand.Intn(len(colors))],
		Credits:  startingCredits,
	}

	user, err := a.session.Register(ctx, candidate)
	if err != nil {
		var rejected *api.RejectedError
		if errors.As(err, &rejected) {
			printlnFn("Registration failed: " + rejected.Error())
		} else {
			printlnFn("Registration failed, server unreachable.")
		}
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s! Your ID is %s — keep it safe. You start with %d credits.",
		user.Username, user.ID, user.Credits))
	return nil
}

func (a *App) Login(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Account ID", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, id, string(password))
	if err != nil {
		var rejected *api.RejectedError
		if errors.As(err, &rejected) {
			printlnFn("Login failed: " + rejected.Error())
		} else {
			printlnFn("Login failed, server unreachable.")
		}
		return err
	}

	printlnFn("Welcome back, " + user.Username + "!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn("Logout failed: " + err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current identity and balance.
func (a *App) Whoami(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(fmt.Sprintf("ID:       %s", user.ID))
	printlnFn(fmt.Sprintf("Name:     %s", user.Username))
	printlnFn(fmt.Sprintf("Avatar:   %s", user.Avatar))
	if user.NameColor != "" {
		printlnFn(fmt.Sprintf("Color:    %s", user.NameColor))
	}
	printlnFn(fmt.Sprintf("Credits:  %d", user.Credits))
	return nil
}
