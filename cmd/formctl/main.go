// Package main is a terminal client for the Formdesk API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/formdesk/formdesk/internal/client"
	"github.com/formdesk/formdesk/internal/model"
	"github.com/formdesk/formdesk/internal/view"
)

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	api := client.New(baseURL, nil)
	ctrl := view.NewController(api)
	in := bufio.NewScanner(os.Stdin)

	fmt.Printf("formdesk client, connected to %s\n", baseURL)

	state := ctrl.Load(context.Background())
	render(state)

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		switch cmd {
		case "help":
			usage()
		case "list":
			state = ctrl.Load(ctx)
			render(state)
		case "users":
			renderUsers(ctrl.State())
		case "new":
			ctrl.CancelEdit()
			ctrl.SetBuffer(promptInput(in, model.FormInput{}))
			state = ctrl.Submit(ctx)
			render(state)
		case "edit":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Println("usage: edit <id>")
				break
			}
			st, ok := ctrl.StartEdit(id)
			if !ok {
				fmt.Printf("no listed form with id %d\n", id)
				break
			}
			ctrl.SetBuffer(promptInput(in, st.Buffer))
			state = ctrl.Submit(ctx)
			render(state)
		case "cancel":
			state = ctrl.CancelEdit()
			fmt.Println("edit cancelled")
		case "delete":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Println("usage: delete <id>")
				break
			}
			state = ctrl.Delete(ctx, id, func(id int64) bool {
				fmt.Printf("delete form %d? [y/N] ", id)
				if !in.Scan() {
					return false
				}
				answer := strings.ToLower(strings.TrimSpace(in.Text()))
				return answer == "y" || answer == "yes"
			})
			render(state)
		case "quit", "exit":
			cancel()
			return
		default:
			fmt.Printf("unknown command %q (try help)\n", cmd)
		}

		cancel()
	}
}

func usage() {
	fmt.Println(`commands:
  list          reload and show users and forms
  users         show the loaded user list
  new           submit a new form (prompts for fields)
  edit <id>     edit a listed form (prompts, empty input keeps the value)
  cancel        leave edit mode without saving
  delete <id>   delete a form (asks for confirmation)
  quit          exit`)
}

// promptInput reads the three form fields. An empty answer keeps the
// current buffer value, which matters when editing.
func promptInput(in *bufio.Scanner, current model.FormInput) model.FormInput {
	current.Name = promptField(in, "name", current.Name)
	current.Email = promptField(in, "email", current.Email)
	current.Message = promptField(in, "message", current.Message)
	return current
}

func promptField(in *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !in.Scan() {
		return current
	}
	if text := strings.TrimSpace(in.Text()); text != "" {
		return text
	}
	return current
}

func render(s view.State) {
	if s.Status != "" {
		fmt.Printf("status: %s\n", s.Status)
	}
	if s.Phase == view.PhaseError {
		fmt.Println("initial load failed; try list to retry")
		return
	}

	fmt.Printf("%d form(s):\n", len(s.Forms))
	for _, f := range s.Forms {
		marker := " "
		if s.Editing && s.EditID == f.ID {
			marker = "*"
		}
		fmt.Printf("%s #%d  %s <%s>  %s  %s\n",
			marker, f.ID, f.Name, f.Email,
			f.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(f.Message, 48),
		)
	}
}

func renderUsers(s view.State) {
	fmt.Printf("%d user(s):\n", len(s.Users))
	for _, u := range s.Users {
		fmt.Printf("  #%d  %s <%s>\n", u.ID, u.Name, u.Email)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
