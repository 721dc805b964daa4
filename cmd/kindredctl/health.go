package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := checkStatus(newClient().R().Get("/api/health"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	rootCmd.AddCommand(healthCmd)
}
