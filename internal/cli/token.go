package cli

import (
	"fmt"
	"strings"

	"talent-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development access token for the API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rawSub, _ := cmd.Flags().GetString("sub")
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")

		sub := uuid.New()
		if strings.TrimSpace(rawSub) != "" {
			id, err := uuid.Parse(strings.TrimSpace(rawSub))
			if err != nil {
				return fmt.Errorf("invalid --sub: %w", err)
			}
			sub = id
		}

		cfg, _, err := setup()
		if err != nil {
			return err
		}

		svc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiresIn)
		tok, err := svc.GenerateAccessToken(sub, email, role)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("sub", "", "user id to put in the sub claim (random when empty)")
	tokenCmd.Flags().String("email", "", "email claim")
	tokenCmd.Flags().String("role", jwt.RoleAuthenticated, "role claim")
}
