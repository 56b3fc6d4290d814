package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/it-institute-cms/internal/dto"
)

var (
	userName     string
	userEmail    string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage CMS operators",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an operator account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logr, err := bootstrap()
		if err != nil {
			return err
		}
		defer logr.Sync() //nolint:errcheck

		a, err := newApp(cmd.Context(), cfg, logr, false)
		if err != nil {
			return err
		}
		defer a.close()

		user, err := a.svc.users.Create(cmd.Context(), dto.AdminUserForm{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s>\n", user.ID, user.Email)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "login email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "login password")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)
}
