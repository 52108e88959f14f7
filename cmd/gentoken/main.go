// Development helper that mints a bearer token for manual API testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eventbook/server/internal/auth"
)

func main() {
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "signing secret (defaults to JWT_SECRET)")
	subject := flag.String("subject", "dev-account", "token subject (account id)")
	email := flag.String("email", "dev@example.com", "token email claim")
	issuer := flag.String("issuer", "eventbook", "token issuer")
	expiry := flag.Duration("expiry", time.Hour, "token lifetime")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: no signing secret (set JWT_SECRET or pass --secret)")
		os.Exit(1)
	}

	manager := auth.NewJWTManager(*secret, *expiry, *issuer)
	token, err := manager.Generate(*subject, *email, []string{"USER"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("JWT Token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/events\n", token)
}
