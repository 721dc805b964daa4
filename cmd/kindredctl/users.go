package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// register
	var username, password string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password required")
			}
			resp, err := checkStatus(newClient().R().
				SetBody(map[string]string{"username": username, "password": password}).
				Post("/api/users"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(registerCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := checkStatus(newClient().R().Get("/api/users/" + args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	usersCmd.AddCommand(getCmd)

	// lookup by username
	lookupCmd := &cobra.Command{
		Use:   "lookup USERNAME",
		Short: "Look up user by username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := checkStatus(newClient().R().
				SetQueryParam("username", args[0]).
				Get("/api/users"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, resp.String())
			return nil
		},
	}
	usersCmd.AddCommand(lookupCmd)

	rootCmd.AddCommand(usersCmd)
}
