// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

// Command gen-schema writes the request and response JSON Schema documents
// served under /v1/docs to the schemas directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/authd/authd/internal/web"
)

func main() {
	schemas, err := web.NewSchemas()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating schemas: %v\n", err)
		os.Exit(1)
	}

	outDir := "schemas"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, name := range schemas.Names() {
		doc, _ := schemas.Document(name)
		outPath := filepath.Join(outDir, name+".schema.json")
		if err := os.WriteFile(outPath, doc, 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", outPath)
	}
}
