package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oksasatya/civic-reports/pkg/helpers"
)

var (
	keygenSecret string
	keygenIssuer string
	keygenTTL    time.Duration
)

// keygenCmd mints the shared anon key the API expects as bearer token
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Mint an anon key for ANON_KEY_SECRET",
	RunE:  runKeygen,
}

func init() {
	keygenCmd.Flags().StringVar(&keygenSecret, "secret", "", "server ANON_KEY_SECRET")
	keygenCmd.Flags().StringVar(&keygenIssuer, "issuer", "civic-reports", "issuer claim (server APP_NAME)")
	keygenCmd.Flags().DurationVar(&keygenTTL, "ttl", 0, "key lifetime; 0 never expires")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if keygenSecret == "" {
		return errors.New("--secret is required")
	}
	key, err := helpers.NewAnonKeyManager(keygenSecret, keygenIssuer).Mint(keygenTTL)
	if err != nil {
		return fmt.Errorf("failed to mint key: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), key)
	return nil
}
