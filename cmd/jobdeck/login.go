package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authConfirm  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session",
	Long:  "Exchanges email and password for a token and persists it, so later commands and the TUI start authenticated.",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session",
	RunE:  runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the logged-in account email",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&authConfirm, "confirm", "", "repeat the password")
	rootCmd.AddCommand(loginCmd, registerCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if authEmail == "" || authPassword == "" {
		return fmt.Errorf("--email and --password are required")
	}

	env, err := newEnv(setupLogger(os.Stdout, debug))
	if err != nil {
		return err
	}
	defer env.close()

	sess, err := env.client.Login(cmd.Context(), authEmail, authPassword)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := env.store.Save(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	fmt.Printf("Logged in as %s\n", sess.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	if authEmail == "" || authPassword == "" {
		return fmt.Errorf("--email and --password are required")
	}
	if authPassword != authConfirm {
		return fmt.Errorf("passwords do not match")
	}

	env, err := newEnv(setupLogger(os.Stdout, debug))
	if err != nil {
		return err
	}
	defer env.close()

	sess, err := env.client.Register(cmd.Context(), authEmail, authPassword)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := env.store.Save(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	fmt.Printf("Registered and logged in as %s\n", sess.Email)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	env, err := newEnv(setupLogger(os.Stdout, debug))
	if err != nil {
		return err
	}
	defer env.close()

	sess, err := env.store.Load()
	if err != nil {
		return err
	}
	if !sess.Active() {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Println(sess.Email)
	return nil
}
