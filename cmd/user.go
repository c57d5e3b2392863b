package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/frahmantamala/smartexpense/internal/auth"
	"github.com/frahmantamala/smartexpense/internal/user"
	userPostgres "github.com/frahmantamala/smartexpense/internal/user/postgres"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

var (
	userEmail string
	userName  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user, prompting for the password",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd.ErrOrStderr(), os.Stdin)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg, lg)
		if err != nil {
			return err
		}
		defer closeDB(db, lg)

		authService, err := newAuthService(cfg, db, lg)
		if err != nil {
			return err
		}

		resp, err := authService.Register(cmd.Context(), auth.RegisterDTO{
			Email:    userEmail,
			Name:     userName,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", resp.User.ID, resp.User.Email)
		return nil
	},
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user together with their expenses and budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg, lg)
		if err != nil {
			return err
		}
		defer closeDB(db, lg)

		svc := user.NewService(userPostgres.NewUserRepository(db), lg)
		if err := svc.DeleteByEmail(cmd.Context(), userEmail); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return fmt.Errorf("no user with email %s", userEmail)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", userEmail)
		return nil
	},
}

// readPassword prompts without echo on a terminal and otherwise reads the
// first line of stdin, so the command also works in scripts.
func readPassword(prompt io.Writer, in *os.File) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		first, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}

		fmt.Fprint(prompt, "Repeat password: ")
		second, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}

		if string(first) != string(second) {
			return "", errors.New("passwords do not match")
		}
		return string(first), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password on stdin")
	}
	return password, nil
}

func init() {
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "email address of the account")
	createUserCmd.Flags().StringVar(&userName, "name", "", "display name of the account")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("name")

	deleteUserCmd.Flags().StringVar(&userEmail, "email", "", "email address of the account")
	_ = deleteUserCmd.MarkFlagRequired("email")

	userCmd.AddCommand(createUserCmd)
	userCmd.AddCommand(deleteUserCmd)
}
