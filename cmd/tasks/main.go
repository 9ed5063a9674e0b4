// Command tasks is a terminal client for the task API. It keeps the session
// in a credentials file, so login survives between invocations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/xyz-asif/gotasks/internal/app"
	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/features/auth"
	"github.com/xyz-asif/gotasks/internal/features/tasks"
)

const usage = `Usage: tasks <command> [flags]

Commands:
  register  -email <addr>                 create an account and log in
  login     -email <addr>                 log in to an existing account
  logout                                  drop the stored session
  whoami                                  show the logged-in user
  list                                    list your tasks
  add       -title <t> [-desc <d>]        create a task
  edit      -id <id> [-title] [-desc]     update a task
  done      -id <id>                      toggle completion
  rm        -id <id>                      delete a task
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	a := app.New(cfg, app.Options{})
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "register":
		err = runAuth(ctx, a, os.Args[2:], "register")
	case "login":
		err = runAuth(ctx, a, os.Args[2:], "login")
	case "logout":
		a.Auth.Logout()
		fmt.Println("Logged out.")
	case "whoami":
		err = runWhoami(a)
	case "list":
		err = runList(ctx, a)
	case "add":
		err = runAdd(ctx, a, os.Args[2:])
	case "edit":
		err = runEdit(ctx, a, os.Args[2:])
	case "done":
		err = runDone(ctx, a, os.Args[2:])
	case "rm":
		err = runRemove(ctx, a, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runAuth(ctx context.Context, a *app.App, args []string, mode string) error {
	fs := flag.NewFlagSet(mode, flag.ExitOnError)
	email := fs.String("email", "", "account email address")
	fs.Parse(args)

	var err error
	if mode == "register" {
		var req auth.RegisterRequest
		if req, err = auth.NewRegisterRequest(*email); err == nil {
			err = a.Auth.Register(ctx, req)
		}
	} else {
		var req auth.LoginRequest
		if req, err = auth.NewLoginRequest(*email); err == nil {
			err = a.Auth.Login(ctx, req)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", a.Auth.Current().User.Email)
	return nil
}

func runWhoami(a *app.App) error {
	user, err := currentUser(a)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}

func runList(ctx context.Context, a *app.App) error {
	user, err := currentUser(a)
	if err != nil {
		return err
	}

	state, err := loadTasks(ctx, a, user.ID)
	if err != nil {
		return err
	}
	if len(state.Tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, task := range state.Tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\n", mark, task.ID, task.Title, task.Description)
	}
	return w.Flush()
}

func runAdd(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	fs.Parse(args)

	user, err := currentUser(a)
	if err != nil {
		return err
	}

	req, err := tasks.NewCreateTaskRequest(*title, *desc, user.ID)
	if err != nil {
		return err
	}
	task, err := a.Tasks.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", task.ID)
	return nil
}

func runEdit(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	title := fs.String("title", "", "new title (unchanged if omitted)")
	desc := fs.String("desc", "", "new description (unchanged if omitted)")
	fs.Parse(args)

	user, current, err := findTask(ctx, a, *id)
	if err != nil {
		return err
	}

	newTitle := current.Title
	newDesc := current.Description
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			newTitle = *title
		case "desc":
			newDesc = *desc
		}
	})

	req, err := tasks.NewUpdateTaskRequest(*id, newTitle, newDesc, current.Completed, user.ID)
	if err != nil {
		return err
	}
	if _, err := a.Tasks.Update(ctx, req); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", *id)
	return nil
}

func runDone(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("done", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	fs.Parse(args)

	if _, _, err := findTask(ctx, a, *id); err != nil {
		return err
	}
	task, err := a.Tasks.ToggleCompletion(ctx, *id)
	if err != nil {
		return err
	}
	state := "open"
	if task.Completed {
		state = "done"
	}
	fmt.Printf("Task %s is now %s\n", task.ID, state)
	return nil
}

func runRemove(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	id := fs.String("id", "", "task id")
	fs.Parse(args)

	if _, _, err := findTask(ctx, a, *id); err != nil {
		return err
	}
	if err := a.Tasks.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", *id)
	return nil
}

func currentUser(a *app.App) (*auth.User, error) {
	state := a.Auth.Current()
	if !state.IsAuthenticated || state.User == nil {
		return nil, fmt.Errorf("not logged in, run 'tasks login' first")
	}
	return state.User, nil
}

// loadTasks refreshes the task list and surfaces the store's error field as
// a regular error so the command can exit non-zero.
func loadTasks(ctx context.Context, a *app.App, userID string) (tasks.TaskState, error) {
	a.Tasks.Load(ctx, userID)
	state := a.Tasks.Current()
	if state.Err != "" {
		return tasks.TaskState{}, fmt.Errorf("%s", state.Err)
	}
	return state, nil
}

func findTask(ctx context.Context, a *app.App, id string) (*auth.User, tasks.Task, error) {
	if id == "" {
		return nil, tasks.Task{}, fmt.Errorf("missing -id flag")
	}
	user, err := currentUser(a)
	if err != nil {
		return nil, tasks.Task{}, err
	}
	state, err := loadTasks(ctx, a, user.ID)
	if err != nil {
		return nil, tasks.Task{}, err
	}
	for _, task := range state.Tasks {
		if task.ID == id {
			return user, task, nil
		}
	}
	return nil, tasks.Task{}, fmt.Errorf("no task with id %s", id)
}
