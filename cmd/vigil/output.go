package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VerificationResult compares a store index count against the seed data.
type VerificationResult struct {
	Index    string `json:"index"`
	Count    int    `json:"count"`
	Expected int    `json:"expected"`
	Pass     bool   `json:"pass"`
}

// printVerificationHuman prints one verification line in the PASS/FAIL format.
func printVerificationHuman(v VerificationResult) {
	status := "PASS"
	if !v.Pass {
		status = "FAIL"
	}
	outputHuman("%s: %s - %d documents (expected >= %d)\n", status, v.Index, v.Count, v.Expected)
}
