package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/civic-reports/internal/client"
	"github.com/oksasatya/civic-reports/internal/domain/entity"
)

var (
	accountName     string
	accountEmail    string
	accountPassword string
	accountPhone    string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE:  runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check account credentials",
	RunE:  runLogin,
}

func init() {
	signupCmd.Flags().StringVar(&accountName, "name", "", "display name")
	signupCmd.Flags().StringVar(&accountEmail, "email", "", "account email")
	signupCmd.Flags().StringVar(&accountPassword, "password", "", "account password")
	signupCmd.Flags().StringVar(&accountPhone, "phone", "", "optional phone number")

	loginCmd.Flags().StringVar(&accountEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&accountPassword, "password", "", "account password")
}

func runSignup(cmd *cobra.Command, args []string) error {
	user, err := newClient().SignUp(cmd.Context(), client.SignUp{
		Name:     accountName,
		Email:    accountEmail,
		Password: accountPassword,
		Phone:    accountPhone,
	})
	if err != nil {
		return err
	}
	printAccount(cmd, "Signed up", user)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	user, err := newClient().Login(cmd.Context(), accountEmail, accountPassword)
	if err != nil {
		return err
	}
	printAccount(cmd, "Logged in", user)
	return nil
}

func printAccount(cmd *cobra.Command, verb string, u *entity.PublicAccount) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s as %s <%s>\n", verb, u.Name, u.Email)
}
