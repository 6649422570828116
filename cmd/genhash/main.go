package main

import (
	"flag"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "cruzroja2026", "password a hashear")
	flag.Parse()

	h, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
