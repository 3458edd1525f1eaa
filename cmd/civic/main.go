// Command civic is a terminal client for the civic reports API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oksasatya/civic-reports/internal/client"
)

var (
	apiURL  string
	anonKey string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "civic",
	Short:         "Report and browse civic issues",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("CIVIC_API_URL", "http://localhost:8080"), "API base URL (or set CIVIC_API_URL)")
	rootCmd.PersistentFlags().StringVar(&anonKey, "key", os.Getenv("CIVIC_ANON_KEY"), "anon key sent as bearer token (or set CIVIC_ANON_KEY)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(uploadCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(apiURL, anonKey, timeout)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
