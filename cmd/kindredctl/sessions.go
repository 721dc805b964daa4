package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var username, password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Open a session and print the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password required")
			}
			resp, err := checkStatus(newClient().R().
				SetBody(map[string]string{"username": username, "password": password}).
				Post("/api/sessions"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := checkStatus(newClient().R().Delete("/api/sessions")); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "logged out")
			return nil
		},
	}
	rootCmd.AddCommand(logoutCmd)
}
