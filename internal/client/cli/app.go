// Package cli implements the interactive taskboard client: a REPL over
// the session controller and the task API.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/taskboard/taskboard-be/internal/client/api"
	"github.com/taskboard/taskboard-be/internal/client/session"
)

// promptText and promptPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var promptText = getSimpleText
var promptPassword = getPassword

// App wires the REPL commands to the session controller and the API
// client.
type App struct {
	reader  *bufio.Reader
	session *session.Controller
	api     api.Client
}

// NewApp creates the CLI application.
func NewApp(sessionCtrl *session.Controller, apiClient api.Client) *App {
	return &App{
		reader:  bufio.NewReader(os.Stdin),
		session: sessionCtrl,
		api:     apiClient,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt segment describing the current session.
func (a *App) status() string {
	if a.session.IsAuthenticated() {
		return a.session.User().Email
	}
	return a.session.State().String()
}

// Run rehydrates a persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	a.session.Rehydrate()
	if a.session.IsAuthenticated() {
		fmt.Printf("Resumed session for %s\n", a.session.User().Email)
	}
	runREPL(ctx, a, a.status, a.reader)
}
