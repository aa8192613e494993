package cli

import (
	"context"
	"fmt"
	"os"
)

// Register prompts for account details and signs the new account in.
func (a *App) Register(ctx context.Context) error {
	email, err := promptText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := promptText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := promptPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Signup(ctx, email, password, name); err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}
	fmt.Printf("Welcome, %s!\n", a.session.User().Name)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := promptText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := promptPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		fmt.Println("Login failed:", err)
		return err
	}
	fmt.Printf("Welcome back, %s!\n", a.session.User().Name)
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}
	user := a.session.User()
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		// Local state is already cleared; the server-side revoke failed.
		fmt.Println("Logged out locally; server revoke failed:", err)
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
