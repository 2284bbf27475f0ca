package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/grovetools/dilemma/pkg/config"
)

func main() {
	schema := config.Schema()

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	// Write to the module root
	if err := os.WriteFile("dilemma.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated config schema at dilemma.schema.json")
}
