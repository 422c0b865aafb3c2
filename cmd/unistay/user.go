package main

import (
	"fmt"

	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/pkg/models/passwd"
	"github.com/spf13/cobra"
)

func newUserCmd(c *cli) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	userCmd.AddCommand(newUserAddCmd(c))
	return userCmd
}

func newUserAddCmd(c *cli) *cobra.Command {
	var (
		name     string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "add [email]",
		Short: "Add an account, typically a warden or admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := models.Role(role)
			if !r.IsValid() {
				return fmt.Errorf("invalid role %q, expected one of %v", role, models.ListRoles())
			}
			if err := passwd.Validate(password); err != nil {
				return err
			}

			s, closeDB, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := s.Auth.CreateUser(cmd.Context(), models.CreateUserParams{
				Email:    args[0],
				Name:     name,
				Password: &password,
				Role:     r,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password (at least 8 bytes)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleStudent), "one of student, warden, admin")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
