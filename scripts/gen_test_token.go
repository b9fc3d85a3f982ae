package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/tanker327/react-project-structure-best-practices/internal/auth"
	"github.com/tanker327/react-project-structure-best-practices/internal/config"
)

// prints a token signed with the server's JWT_SECRET. Product writes only
// check the claims, so the user does not need to exist in the running server.
func main() {
	username := flag.String("username", "test-user", "username claim")
	userID := flag.String("id", "", "user id claim (random when empty)")
	admin := flag.Bool("admin", false, "set the is_admin claim")
	flag.Parse()

	// load environment (.env is optional)
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to create signer: %v", err)
	}

	if *userID == "" {
		*userID = uuid.New().String()
	}

	token, err := signer.GenerateJWT(*userID, *username, *admin)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\n🔑 Test JWT Token (user %s, admin=%t, expires in %s):\n%s\n\n", *username, *admin, signer.TTL(), token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
