package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	goalsCmd := &cobra.Command{Use: "goals", Short: "Goal operations"}

	var status string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if status != "" {
				req.SetQueryParam("status", status)
			}
			resp, err := checkStatus(req.Get("/api/goals"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	listCmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (pending, complete, past due)")
	goalsCmd.AddCommand(listCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark pending goals past due where the due time has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := checkStatus(newClient().R().Post("/api/goals/sweep"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	goalsCmd.AddCommand(sweepCmd)

	rootCmd.AddCommand(goalsCmd)
}
