package main

import (
	"fmt"
	"log"
	"os"

	"github.com/okravets/institutions-api/utils/auth"
)

// Prints the bcrypt hash of a password, for building AUTH_USERS entries.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}
