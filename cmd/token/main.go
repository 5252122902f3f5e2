// Command token mints capability tokens signed with the configured secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/yigit/unicatalog/internal/app/auth"
	"github.com/yigit/unicatalog/internal/bootstrap"
	"github.com/yigit/unicatalog/internal/config"
	pkgAuth "github.com/yigit/unicatalog/internal/pkg/auth"
	"github.com/yigit/unicatalog/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	subject := flag.String("subject", "admin", "token subject")
	caps := flag.String("capabilities", pkgAuth.AllCapabilities, "comma-separated capabilities, or * for all")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var granted []string
	for _, c := range strings.Split(*caps, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if c != pkgAuth.AllCapabilities && !slices.Contains(auth.Capabilities, c) {
			logger.Fatal().Str("capability", c).Strs("known", auth.Capabilities).Msg("Unknown capability")
		}
		granted = append(granted, c)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Auth.Secret,
		TokenIssuer: cfg.Auth.Issuer,
		TokenTTL:    cfg.TokenTTL(),
	})
	token, err := jwtService.GenerateToken(*subject, granted...)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to sign token")
	}
	fmt.Fprintln(os.Stdout, token)
}
