package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/liftlog/liftlog-go/apierror"
	"github.com/liftlog/liftlog-go/schema"
	"github.com/liftlog/liftlog-go/session"
)

// App binds the parsed options to the session and renders operation results.
type App struct {
	session *session.Session
	options *Options
	out     io.Writer
}

// Dispatch runs one action against the session.
func (a *App) Dispatch(ctx context.Context, action string) error {
	switch action {
	case "signin":
		return a.signIn(ctx)
	case "signup":
		return a.signUp(ctx)
	case "signout":
		return a.session.SignOut(ctx)
	case "whoami":
		return a.whoAmI(ctx)
	case "profile":
		return a.profile(ctx)
	case "avatar":
		return a.avatar(ctx)
	case "groups":
		return a.groups(ctx)
	case "exercises":
		return a.exercises(ctx)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func (a *App) signIn(ctx context.Context) error {
	user, err := a.session.SignIn(ctx, a.options.Email, a.options.Password)
	if err != nil {
		return renderError(err)
	}
	a.printUser(user)
	return nil
}

func (a *App) signUp(ctx context.Context) error {
	user, err := a.session.SignUp(ctx, a.options.Name, a.options.Email, a.options.Password)
	if err != nil {
		return renderError(err)
	}
	a.printUser(user)
	return nil
}

func (a *App) whoAmI(ctx context.Context) error {
	if a.session.Status() != session.StatusSignedIn {
		fmt.Fprintln(a.out, "signed out")
		return nil
	}
	user, err := a.session.Reload(ctx)
	if err != nil {
		return renderError(err)
	}
	a.printUser(user)
	return nil
}

func (a *App) profile(ctx context.Context) error {
	form := session.ProfileForm{
		Name:            a.options.Name,
		Email:           a.options.Email,
		NewPassword:     a.options.NewPassword,
		CurrentPassword: a.options.CurrentPassword,
		ConfirmPassword: a.options.ConfirmPassword,
	}
	user, err := a.session.UpdateProfile(ctx, form)
	if err != nil {
		return renderError(err)
	}
	a.printUser(user)
	return nil
}

func (a *App) avatar(ctx context.Context) error {
	if a.options.Avatar == "" {
		return fmt.Errorf("avatar requires --avatar")
	}
	user, err := a.session.UpdateAvatarFromURL(ctx, a.options.Avatar)
	if err != nil {
		return renderError(err)
	}
	a.printUser(user)
	return nil
}

func (a *App) groups(ctx context.Context) error {
	groups, err := a.session.Client().MuscleGroups(ctx)
	if err != nil {
		return renderError(err)
	}
	for _, group := range groups {
		fmt.Fprintf(a.out, "%s\t%s\n", group.ID, group.Name)
	}
	return nil
}

func (a *App) exercises(ctx context.Context) error {
	groupID, err := uuid.Parse(a.options.Group)
	if err != nil {
		return fmt.Errorf("exercises requires --group with a valid id: %w", err)
	}
	exercises, err := a.session.Client().Exercises(ctx, groupID)
	if err != nil {
		return renderError(err)
	}
	for _, exercise := range exercises {
		fmt.Fprintf(a.out, "%s\t%s\n", exercise.ID, exercise.Name)
	}
	return nil
}

func (a *App) printUser(user *schema.User) {
	fmt.Fprintf(a.out, "id:    %s\nname:  %s\nemail: %s\n", user.ID, user.Name, user.Email)
	if user.AvatarURL != nil {
		fmt.Fprintf(a.out, "avatar: %s\n", *user.AvatarURL)
	}
}

// renderError turns classified errors into the user-facing message the
// screens would show; everything else passes through.
func renderError(err error) error {
	switch apierror.KindOf(err) {
	case apierror.KindSessionExpired:
		return fmt.Errorf("your session expired, sign in again")
	case apierror.KindNetwork:
		return fmt.Errorf("network unavailable, try again later")
	default:
		return fmt.Errorf("%s", apierror.Message(err))
	}
}
