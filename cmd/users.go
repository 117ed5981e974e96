package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobimat/workshop-tasks/internal/services"
)

var (
	userName     string
	userEmail    string
	userPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage administrator accounts",
}

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Register or replace an administrator's password",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := services.NewUserService(store).SetPassword(cmd.Context(), userEmail, userPassword); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", userEmail)
		return nil
	},
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the first administrator of an empty directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		user, err := services.NewUserService(store).Bootstrap(cmd.Context(), userName, userEmail, userPassword)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	setPasswordCmd.Flags().StringVar(&userEmail, "email", "", "administrator email")
	setPasswordCmd.Flags().StringVar(&userPassword, "password", "", "new password")
	_ = setPasswordCmd.MarkFlagRequired("email")
	_ = setPasswordCmd.MarkFlagRequired("password")

	bootstrapCmd.Flags().StringVar(&userName, "name", "", "administrator name")
	bootstrapCmd.Flags().StringVar(&userEmail, "email", "", "administrator email")
	bootstrapCmd.Flags().StringVar(&userPassword, "password", "", "administrator password")
	_ = bootstrapCmd.MarkFlagRequired("name")
	_ = bootstrapCmd.MarkFlagRequired("email")
	_ = bootstrapCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(setPasswordCmd, bootstrapCmd)
	rootCmd.AddCommand(usersCmd)
}
