package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/walletnames/registrar/internal/interfaces/cli/migrate"
	"github.com/walletnames/registrar/internal/interfaces/cli/server"
	"github.com/walletnames/registrar/internal/interfaces/cli/token"
	"github.com/walletnames/registrar/internal/shared/version"
)

//	@title						Registrar API
//	@version					1.0
//	@description				Referral wallet name purchases.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	rootCmd := &cobra.Command{
		Use:     "registrar",
		Short:   "Registrar - referral wallet name purchases",
		Long:    `Registrar sells blockchain domains and name@domain addresses on behalf of referral wallets.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
