package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbaille/things/internal/fetcher"
	"github.com/pbaille/things/internal/todos"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		req  todos.CreateRequest
		link string
	)

	cmd := &cobra.Command{
		Use:   "add [name or URL]",
		Short: "Add a new to-do",
		Long: `Add a new to-do. A single URL argument is captured like --url: the
page title becomes the name and the link goes into the notes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name, link = splitLinkArg(args, link)

			if link != "" {
				if err := captureLink(cmd.Context(), fetcher.New(), &req, link); err != nil {
					return err
				}
			}

			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := todos.NewService(s, logger).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Notes, "notes", "", "notes")
	f.StringSliceVar(&req.Tags, "tags", nil, "tags (comma separated)")
	f.StringVar(&req.ActivationDate, "when", "", "activation date (YYYY-MM-DD)")
	f.StringVar(&req.DueDate, "deadline", "", "due date (YYYY-MM-DD)")
	f.StringVar(&req.ListID, "list", "", "built-in list id (Today or Inbox only)")
	f.StringVar(&req.ProjectID, "project", "", "project id")
	f.StringVar(&req.AreaID, "area", "", "area id")
	f.StringVar(&req.ListTitle, "list-title", "", "list, project or area name")
	f.StringVar(&req.Heading, "heading", "", "heading inside --project to place the to-do under")
	f.StringVar(&link, "url", "", "capture a link: page title becomes the name, URL goes into notes")
	return cmd
}

// splitLinkArg returns the to-do name and link for the add arguments.
// A lone URL argument is a link when --url was not given
func splitLinkArg(args []string, link string) (string, string) {
	if link == "" && len(args) == 1 && fetcher.IsURL(args[0]) {
		return "", args[0]
	}
	return strings.Join(args, " "), link
}

// captureLink fills the name from the page title and prepends the link and
// the page text to the notes. A failed fetch still records the link
func captureLink(ctx context.Context, c *fetcher.Client, req *todos.CreateRequest, link string) error {
	u, err := fetcher.Normalize(link)
	if err != nil {
		return err
	}

	parts := []string{u}
	page, err := c.Fetch(ctx, u)
	if err != nil {
		logger.Warn("link capture failed", "url", u, "err", err)
	} else {
		if req.Name == "" {
			req.Name = page.Title
		}
		if page.Text != "" {
			parts = append(parts, page.Text)
		}
	}
	if req.Name == "" {
		req.Name = u
	}
	if req.Notes != "" {
		parts = append(parts, req.Notes)
	}
	req.Notes = strings.Join(parts, "\n\n")
	return nil
}

func updateCmd() *cobra.Command {
	var (
		name, notes, when, deadline string
		tags                        []string
		req                         todos.UpdateRequest
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a to-do or project",
		Long: `Update a to-do or project. Only flags that are given are applied;
pass an empty value (e.g. --when "" or --tags "") to clear a field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ID = args[0]
			f := cmd.Flags()
			if f.Changed("name") {
				req.Name = &name
			}
			if f.Changed("notes") {
				req.Notes = &notes
			}
			if f.Changed("tags") {
				req.Tags = &tags
			}
			if f.Changed("when") {
				req.ActivationDate = &when
			}
			if f.Changed("deadline") {
				req.DueDate = &deadline
			}

			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := todos.NewService(s, logger).Update(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "new name")
	f.StringVar(&notes, "notes", "", "new notes")
	f.StringSliceVar(&tags, "tags", nil, "replace tags (empty clears)")
	f.StringVar(&when, "when", "", "activation date (YYYY-MM-DD, empty clears)")
	f.StringVar(&deadline, "deadline", "", "due date (YYYY-MM-DD, empty clears)")
	f.StringVar(&req.ListID, "list", "", "move to built-in list id (Today or Inbox only)")
	f.StringVar(&req.ProjectID, "project", "", "move to project id")
	f.StringVar(&req.AreaID, "area", "", "move to area id")
	f.BoolVar(&req.Completed, "completed", false, "mark completed")
	f.BoolVar(&req.Canceled, "canceled", false, "mark canceled")
	return cmd
}

func listCmd() *cobra.Command {
	var (
		project string
		summary bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List to-dos",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			include := !summary
			items, err := todos.NewService(s, logger).ListAll(cmd.Context(), todos.ListFilter{
				ProjectUUID:  project,
				IncludeItems: &include,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON || !isTerminal(out) {
				return printJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No to-dos.")
				return nil
			}
			printTable(out, items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "only to-dos of this project id")
	cmd.Flags().BoolVar(&summary, "summary", false, "only id, name and status")
	cmd.Flags().BoolVar(&asJSON, "json", false, "always print JSON")
	return cmd
}
