package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := startupContext()
		defer cancel()

		s, err := buildStack(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		reader := bufio.NewReader(cmd.InOrStdin())
		if username == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			username = strings.TrimSpace(line)
		}
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if username == "" || password == "" {
			return fmt.Errorf("username and password are required")
		}

		token, err := s.service.Login(ctx, username, password)
		if err != nil {
			return err
		}
		if err := s.session.Login(ctx, token); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("username", "", "account username")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
	_ = loginCmd.Flags().MarkHidden("password")

	rootCmd.AddCommand(loginCmd)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := startupContext()
		defer cancel()

		s, err := buildStack(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if !s.session.IsLoggedIn() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		if err := s.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := startupContext()
		defer cancel()

		s, err := buildStack(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if username == "" || email == "" || password == "" {
			return fmt.Errorf("--username, --email and --password are required")
		}

		if err := s.service.Register(ctx, username, email, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account %s created, run 'revue login' to sign in\n", username)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("username", "", "account username")
	registerCmd.Flags().String("email", "", "account email address")
	registerCmd.Flags().String("password", "", "account password")

	rootCmd.AddCommand(registerCmd)
}
