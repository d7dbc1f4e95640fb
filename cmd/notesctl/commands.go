package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func client() *resty.Client {
	c := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(30 * time.Second)
	if token != "" {
		c.SetAuthToken(token)
	}
	return c
}

// envelope mirrors the API's response shape.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Count   *int   `json:"count"`
}

func call(req func(*resty.Request) (*resty.Response, error)) (*envelope, error) {
	var env envelope
	r := client().R().SetResult(&env).SetError(&env)
	resp, err := req(r)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	if resp.IsError() {
		return nil, errors.Errorf("%s (%d)", env.Message, resp.StatusCode())
	}
	return &env, nil
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service and database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := call(func(r *resty.Request) (*resty.Response, error) {
				return r.Get("/health")
			})
			if err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := call(func(r *resty.Request) (*resty.Response, error) {
				return r.SetBody(map[string]string{
					"username": username,
					"password": password,
				}).Post("/api/auth/login")
			})
			if err != nil {
				return err
			}
			data, _ := env.Data.(map[string]any)
			fmt.Println(data["token"])
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newNotesCmd() *cobra.Command {
	notes := &cobra.Command{Use: "notes", Short: "Work with notes"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := call(func(r *resty.Request) (*resty.Response, error) {
				return r.Get("/api/notes")
			})
			if err != nil {
				return err
			}
			items, _ := env.Data.([]any)
			for _, it := range items {
				n, _ := it.(map[string]any)
				fmt.Printf("%v  %v  %v\n", n["id"], n["category"], n["title"])
			}
			if env.Count != nil {
				fmt.Printf("%d notes\n", *env.Count)
			}
			return nil
		},
	}

	var title, category string
	add := &cobra.Command{
		Use:   "add <content>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"content": args[0]}
			if title != "" {
				body["title"] = title
			}
			if category != "" {
				body["category"] = category
			}
			env, err := call(func(r *resty.Request) (*resty.Response, error) {
				return r.SetBody(body).Post("/api/notes")
			})
			if err != nil {
				return err
			}
			fmt.Println(env.Message)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "note title")
	add.Flags().StringVar(&category, "category", "", "note category")

	notes.AddCommand(list, add)
	return notes
}

func newTodosCmd() *cobra.Command {
	todos := &cobra.Command{Use: "todos", Short: "Work with todos"}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := call(func(r *resty.Request) (*resty.Response, error) {
				return r.SetQueryParam("filter", filter).Get("/api/todos")
			})
			if err != nil {
				return err
			}
			items, _ := env.Data.([]any)
			for _, it := range items {
				td, _ := it.(map[string]any)
				mark := " "
				if done, _ := td["completed"].(bool); done {
					mark = "x"
				}
				fmt.Printf("[%s] %v  %v\n", mark, td["priority"], td["text"])
			}
			return nil
		},
	}
	list.Flags().StringVar(&filter, "filter", "", `"active" or "completed"`)

	var priority string
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := call(func(r *resty.Request) (*resty.Response, error) {
				return r.SetBody(map[string]string{
					"text":     args[0],
					"priority": priority,
				}).Post("/api/todos")
			})
			if err != nil {
				return err
			}
			fmt.Println(env.Message)
			return nil
		},
	}
	add.Flags().StringVar(&priority, "priority", "normal", "low, normal, high, or urgent")

	todos.AddCommand(list, add)
	return todos
}
