package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	subject := flag.String("sub", "cli", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	// Use the same secret the server reads from JWT_SECRET.
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("Usage: JWT_SECRET=<secret> go run main.go [-sub name] [-ttl 24h]")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   *subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	// Pass it as "Authorization: Bearer <token>" to the /ai routes.
	fmt.Println(signed)
}
