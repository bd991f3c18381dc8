// Package main provides the CLI entry point for validating a JSON instance document
// against a JSON Schema document and printing the result in one of the standard output
// formats.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	jsonschema "github.com/schemaforge/jsonschema"
)

const (
	exitValid = iota
	exitInvalid
	exitUsage
	exitSchemaError
)

func main() {
	var (
		format       string
		assertFormat bool
	)

	rootCmd := &cobra.Command{
		Use:           "jsonschema <schema.json> <instance.json>",
		Short:         "Validate a JSON instance against a JSON Schema",
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], args[1], format, assertFormat)
		},
	}

	rootCmd.Flags().StringVarP(&format, "format", "f", "flag", "output format: flag, basic, detailed, verbose")
	rootCmd.Flags().BoolVar(&assertFormat, "assert-format", false, "treat the \"format\" keyword as an assertion rather than an annotation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitUsage)
	}
}

func run(schemaPath, instancePath, format string, assertFormat bool) error {
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read schema: %v\n", err)
		os.Exit(exitSchemaError)
	}

	instanceBytes, err := os.ReadFile(instancePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read instance: %v\n", err)
		os.Exit(exitUsage)
	}

	catalogue := jsonschema.CreateCatalogue()
	catalogue.Compiler().AssertFormat = assertFormat

	schema, err := catalogue.Compiler().Compile(schemaBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile schema: %v\n", err)
		os.Exit(exitSchemaError)
	}

	schemaURI := schema.GetSchemaURI()
	if schemaURI == "" {
		schemaURI = "urn:jsonschema:cli:" + schemaPath
	}
	if err := catalogue.AddSchema(schemaURI, schema); err != nil {
		fmt.Fprintf(os.Stderr, "register schema: %v\n", err)
		os.Exit(exitSchemaError)
	}

	schema, err = catalogue.GetSchema(schemaURI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "look up schema: %v\n", err)
		os.Exit(exitSchemaError)
	}

	var instance any
	if err := json.Unmarshal(instanceBytes, &instance); err != nil {
		fmt.Fprintf(os.Stderr, "parse instance: %v\n", err)
		os.Exit(exitUsage)
	}

	result := schema.Validate(instance)

	var payload any
	switch format {
	case "flag":
		payload = result.ToFlag()
	case "basic":
		payload = result.ToBasic()
	case "detailed":
		payload = result.ToDetailed()
	case "verbose":
		payload = result.ToVerbose()
	default:
		fmt.Fprintf(os.Stderr, "unknown output format %q\n", format)
		os.Exit(exitUsage)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))

	if !result.IsValid() {
		os.Exit(exitInvalid)
	}
	return nil
}
