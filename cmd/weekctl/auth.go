package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-weeks-service/internal/apiclient"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Login(cmd.Context(), apiclient.LoginRequest{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			h, _ := a.session()
			if err := h.Login(resp.User, resp.Token); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("logged in as "+resp.User.Username))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.session()
			if err != nil {
				return err
			}
			if err := h.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.session()
			if err != nil {
				return err
			}
			st := h.State()
			if !st.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			user := *st.User
			if !offline {
				c, err := a.client()
				if err != nil {
					return err
				}
				fresh, err := c.CurrentUser(cmd.Context())
				if errors.Is(err, apiclient.ErrUnauthorized) {
					fmt.Fprintln(cmd.OutOrStdout(), "session expired, log in again")
					return nil
				}
				if err != nil {
					return err
				}
				if err := h.UpdateUser(fresh); err != nil {
					return err
				}
				user = fresh
			}
			rows := [][]string{
				{"ID", fmt.Sprint(user.ID)},
				{"Username", user.Username},
				{"Email", user.Email},
				{"Admin", fmt.Sprint(user.IsAdmin)},
				{"Session", st.ID},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, -1))
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "print the stored user without calling the backend")
	return cmd
}
