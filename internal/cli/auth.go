package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd(s *session) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			var err error
			if email == "" {
				if email, err = promptLine(s.in, out, "Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword(s.in, out, cmd.InOrStdin()); err != nil {
					return err
				}
			}
			sess, err := s.store.LoginUser(cmd.Context(), email, password).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Welcome back, %s\n", displayName(sess.User.FullName, sess.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func registerCmd(s *session) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			var err error
			if name == "" {
				if name, err = promptLine(s.in, out, "Full name"); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine(s.in, out, "Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword(s.in, out, cmd.InOrStdin()); err != nil {
					return err
				}
			}
			sess, err := s.store.RegisterUser(cmd.Context(), email, password, name).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Account created. Signed in as %s\n", sess.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "full name")
	return cmd
}

func logoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.store.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func whoamiCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := s.store.CurrentUser()
			if !s.store.IsAuthenticated() || u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s)\n", displayName(u.FullName, u.Email), u.Email, u.ID)
			return nil
		},
	}
}

func displayName(full, email string) string {
	if full != "" {
		return full
	}
	return email
}
