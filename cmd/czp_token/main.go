// Command czp_token mints a bearer token for a user id using the server's JWT settings.
// Identity is managed outside this service; the token subject is the history owner.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/HPG21/czp-releases/internal/platform/config"
	"github.com/HPG21/czp-releases/internal/utils"
)

func main() {
	userID := flag.String("user", "", "user id to put in the token subject")
	expiry := flag.Duration("expiry", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: czp_token -user <id> [-expiry 24h]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	lifetime := cfg.JWTExpiryDuration
	if *expiry > 0 {
		lifetime = *expiry
	}

	token, err := utils.GenerateJWT(*userID, cfg.JWTSecret, lifetime, cfg.JWTIssuer)
	if err != nil {
		slog.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
