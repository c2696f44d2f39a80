package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-weeks-service/internal/validation"
)

var errInvalidSignup = errors.New("signup is invalid")

func newValidateCmd() *cobra.Command {
	var form validation.Signup
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check signup fields against the account rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := form.Validate()
			if errs == nil {
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("valid"))
				return nil
			}
			fields := make([]string, 0, len(errs))
			for field := range errs {
				fields = append(fields, field)
			}
			sort.Strings(fields)

			var rows [][]string
			for _, field := range fields {
				for _, msg := range errs[field] {
					rows = append(rows, []string{field, msg})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Problem"}, rows, -1))
			return errInvalidSignup
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Username, "username", "", "username")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	return cmd
}
