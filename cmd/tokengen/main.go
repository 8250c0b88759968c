// tokengen mints a development bearer token for the gated statistics
// routes. In deployment tokens come from the platform's auth service; this
// tool only stands in for it against a shared secret.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	commonauth "lodging_server/server/common/auth"
	cmnenv "lodging_server/server/common/env"
)

func main() {
	subject := flag.String("sub", "dev-user", "token subject (user id)")
	roles := flag.String("roles", "Guest", "comma-separated role claim values")
	ttl := flag.Int("ttl", 60, "token lifetime in minutes")
	flag.Parse()

	roleList := []string{}
	for _, role := range strings.Split(*roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roleList = append(roleList, role)
		}
	}
	if len(roleList) == 0 {
		log.Fatal("at least one role is required")
	}

	authSvc := commonauth.NewService(cmnenv.String("JWT_SECRET", "change-me-in-production"), *ttl)
	token, err := authSvc.GenerateToken(*subject, roleList...)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Printf("Bearer %s\n", token)
}
