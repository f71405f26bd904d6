package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bill-detail/pkg/jwt"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		userID  string
		role    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT para la API (requiere JWT_SECRET)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET vacío: la API no exige token")
			}
			if role != jwt.RoleViewer && role != jwt.RoleOperator {
				return fmt.Errorf("rol inválido %q (viewer|operator)", role)
			}
			tok, err := jwt.Generate(c.cfg.JWT.Secret, userID, role, c.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "billctl", "user_id del token")
	cmd.Flags().StringVar(&role, "role", jwt.RoleViewer, "viewer|operator")
	cmd.Flags().IntVar(&minutes, "ttl", 60, "vigencia en minutos")
	return cmd
}
