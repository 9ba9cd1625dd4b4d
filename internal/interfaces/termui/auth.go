package termui

import (
	"context"
	"fmt"

	"github.com/anthonyrs06/poker-league/internal/usecase"
)

// authLoop keeps offering sign-in and registration until one succeeds or the
// player quits.
func (u *UI) authLoop(ctx context.Context) (usecase.AuthSession, error) {
	for {
		if ctx.Err() != nil {
			return usecase.AuthSession{}, ctx.Err()
		}

		fmt.Fprintln(u.out, "\n[1] sign in  [2] create account  [q] quit")
		choice, err := u.prompt.line("choice")
		if err != nil {
			return usecase.AuthSession{}, err
		}

		switch choice {
		case "1":
			session, err := u.signIn(ctx)
			if err != nil {
				u.showError(err)
				continue
			}
			return session, nil
		case "2":
			session, err := u.register(ctx)
			if err != nil {
				u.showError(err)
				continue
			}
			return session, nil
		case "q":
			return usecase.AuthSession{}, errQuit
		default:
			fmt.Fprintln(u.out, "Pick 1, 2 or q.")
		}
	}
}

func (u *UI) signIn(ctx context.Context) (usecase.AuthSession, error) {
	email, err := u.prompt.line("email")
	if err != nil {
		return usecase.AuthSession{}, err
	}
	password, err := u.prompt.line("password")
	if err != nil {
		return usecase.AuthSession{}, err
	}

	session, err := u.sessions.Login(ctx, email, password)
	if err != nil {
		return usecase.AuthSession{}, err
	}

	fmt.Fprintf(u.out, "Signed in as %s.\n", session.User.Name)
	return session, nil
}

func (u *UI) register(ctx context.Context) (usecase.AuthSession, error) {
	name, err := u.prompt.line("name")
	if err != nil {
		return usecase.AuthSession{}, err
	}
	email, err := u.prompt.line("email")
	if err != nil {
		return usecase.AuthSession{}, err
	}
	password, err := u.prompt.line("password")
	if err != nil {
		return usecase.AuthSession{}, err
	}
	avatar, err := u.prompt.line("avatar url (optional)")
	if err != nil {
		return usecase.AuthSession{}, err
	}

	session, err := u.sessions.Register(ctx, name, email, password, avatar)
	if err != nil {
		return usecase.AuthSession{}, err
	}

	fmt.Fprintf(u.out, "Account created, signed in as %s.\n", session.User.Name)
	return session, nil
}
