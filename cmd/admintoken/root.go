package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/portfolio-backend/internal/config"
	"github.com/iliyamo/portfolio-backend/internal/router"
	"github.com/iliyamo/portfolio-backend/internal/utils"
)

func newRootCommand() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "admintoken",
		Short: "Mint an admin bearer token for GET /admin/contacts",
		Long: `admintoken signs an HS256 token with role ADMIN using the same secret the
server reads from ADMIN_JWT_SECRET. The token is printed to stdout.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return fmt.Errorf("no secret: set ADMIN_JWT_SECRET or pass --secret")
			}
			tok, err := utils.NewAccessToken(secret, subject, router.AdminRole, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", tok.Exp.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("ADMIN_JWT_SECRET"), "HMAC signing secret")
	cmd.Flags().StringVar(&subject, "subject", "admin", "sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", config.AdminTokenTTL(), "token lifetime")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print expiry to stderr")
	return cmd
}
