package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xpanvictor/voicetaker/internal/client"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
)

var (
	authUsername string
	authPassword string
	authConfirm  string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ask(&authUsername, "Username", false); err != nil {
			return err
		}
		if err := ask(&authPassword, "Password", true); err != nil {
			return err
		}
		if err := ask(&authConfirm, "Confirm password", true); err != nil {
			return err
		}

		_, err := env.api.SignUp(cmd.Context(), authUsername, authPassword, authConfirm)
		switch {
		case err == nil:
			fmt.Fprintln(cmd.OutOrStdout(), "Sign up successful! Please log in.")
			return nil
		case errors.Is(err, client.ErrPasswordMismatch):
			return fail("Please enter your password correctly!")
		case errors.Is(err, user.ErrUsernameTaken):
			return fail("Username already exists.")
		case errors.Is(err, user.ErrInvalidUserData):
			return fail("Username and password are required.")
		case errors.Is(err, user.ErrPasswordTooLong):
			return fail("Password is too long (72 bytes at most).")
		default:
			env.logger.Errorf("signup: %v", err)
			return fail("There was an issue saving your credentials.")
		}
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session on this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ask(&authUsername, "Username", false); err != nil {
			return err
		}
		if err := ask(&authPassword, "Password", true); err != nil {
			return err
		}

		u, err := env.api.Login(cmd.Context(), authUsername, authPassword)
		switch {
		case err == nil:
		case errors.Is(err, user.ErrUserNotFound):
			return fail("User not found!")
		case errors.Is(err, user.ErrIncorrectPassword):
			return fail("Incorrect password. Please try again.")
		case errors.Is(err, user.ErrInvalidCredentials):
			return fail("Invalid username or password.")
		default:
			return err
		}

		if err := env.sessions.Login(u.Username); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Login successful!")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := env.sessions.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVarP(&authUsername, "username", "u", "", "account username (prompted when empty)")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "account password (prompted when empty)")
	}
	signupCmd.Flags().StringVar(&authConfirm, "confirm", "", "password confirmation (prompted when empty)")

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd)
}
