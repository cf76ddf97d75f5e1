// Command promote-admin grants the admin role to an existing user.
//
//	promote-admin -email someone@example.com
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"rent-property-service/internal/config"
	"rent-property-service/internal/model"
	mongostore "rent-property-service/internal/mongo"
	"rent-property-service/internal/repository"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	revoke := flag.Bool("revoke", false, "remove the admin role instead")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer mongostore.Disconnect(client, 5*time.Second)

	role := model.RoleAdmin
	if *revoke {
		role = ""
	}

	users := repository.NewUserRepository(client.Database(cfg.Mongo.Database))
	res, err := users.SetRole(ctx, *email, role)
	if err != nil {
		log.Fatalf("set role: %v", err)
	}
	if res.MatchedCount == 0 {
		log.Fatalf("no user with email %s", *email)
	}
	log.Printf("%s role set to %q", *email, role)
}
