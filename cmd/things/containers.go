package main

import (
	"fmt"
	"strings"

	"github.com/pbaille/things/internal/domain"
	"github.com/spf13/cobra"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var areaID string
	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.AddProject(cmd.Context(), strings.Join(args, " "), areaID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added project: %s\n", p.ID)
			return nil
		},
	}
	add.Flags().StringVar(&areaID, "area", "", "area id")

	cmd.AddCommand(add, containerListCmd(domain.KindProject, "projects"))
	return cmd
}

func areaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Manage areas",
	}

	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an area",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := s.AddArea(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added area: %s\n", a.ID)
			return nil
		},
	}

	cmd.AddCommand(add, containerListCmd(domain.KindArea, "areas"))
	return cmd
}

func containerListCmd(kind domain.Kind, plural string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			objs, err := s.Enumerate(cmd.Context(), kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(objs) == 0 {
				fmt.Fprintf(out, "No %s yet.\n", plural)
				return nil
			}
			for _, o := range objs {
				fmt.Fprintf(out, "%s  %s\n", o.ID, o.Name)
			}
			return nil
		},
	}
}
