package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/bookshelf-api/fixtures"
)

/* validate-fixtures - Standalone CLI tool to validate a fixtures file
 * Usage: go run ./cmd/validate-fixtures [fixtures.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	fixturesFile := "fixtures.yaml"
	if len(os.Args) > 1 {
		fixturesFile = os.Args[1]
	}

	fmt.Printf("Validating fixtures file: %s\n", fixturesFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := fixtures.NewLoader()
	if err := loader.Load(fixturesFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d book(s):\n", len(loader.Books()))
	for i, b := range loader.Books() {
		fmt.Printf("%d. %s, %s (%g)\n", i+1, b.Titulo, b.Autor, b.Ano)
	}
	fmt.Printf("\nLoaded %d user(s):\n", len(loader.Users()))
	for i, u := range loader.Users() {
		saldo := "-"
		if u.Saldo != nil {
			saldo = fmt.Sprintf("%.2f", *u.Saldo)
		}
		fmt.Printf("%d. %s  ativo=%t  saldo=%s\n", i+1, u.Nome, u.Ativo, saldo)
	}
	os.Exit(0)
}
