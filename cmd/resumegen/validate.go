package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/record"
	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume record against the embedded JSON schemas",
	Long: "Checks a resume record file: JSON syntax, the schema for its layout (standard or .NET) " +
		"and the fields a render needs. With --print-schema the embedded schema is written to stdout instead.",
	RunE: runValidate,
}

var (
	validateInputFile   string
	validateFormat      string
	validatePrintSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "input", "i", "", "Path to resume record JSON file")
	validateCmd.Flags().StringVar(&validateFormat, "format", "auto", "Record format: auto, standard or dotnet")
	validateCmd.Flags().StringVar(&validatePrintSchema, "print-schema", "", "Print the embedded schema for a format (standard or dotnet) and exit")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if validatePrintSchema != "" {
		return printSchema(validatePrintSchema)
	}
	if validateInputFile == "" {
		return fmt.Errorf("required flag(s) \"input\" not set")
	}

	format, err := record.ParseFormat(validateFormat)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(validateInputFile)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}
	if format == record.FormatAuto {
		format = record.Detect(content)
	}

	rec, err := record.Parse(content, format)
	if err != nil {
		var schemaErr *schemas.ValidationError
		var fieldErr *types.ValidationError
		switch {
		case errors.As(err, &schemaErr):
			_, _ = fmt.Fprintf(os.Stderr, "Validation failed (%s format):\n", format)
			for i, fe := range schemaErr.Errors {
				_, _ = fmt.Fprintf(os.Stderr, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
			}
			return fmt.Errorf("record does not match the %s schema", format)
		case errors.As(err, &fieldErr):
			return fmt.Errorf("record cannot be rendered: %w", err)
		default:
			return err
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed (format: %s, name: %s)\n", format, rec.Name)
	_, _ = fmt.Fprintf(os.Stdout, "Sections: %d summary, %d skill categories, %d jobs, %d education, %d certifications\n",
		len(rec.ProfessionalSummary), len(rec.TechnicalSkills), len(rec.Experience), len(rec.Education), len(rec.Certifications))
	return nil
}

func printSchema(name string) error {
	format, err := record.ParseFormat(name)
	if err != nil {
		return err
	}

	schemaName := schemas.ResumeRecordSchema
	if format == record.FormatDotNet {
		schemaName = schemas.DotNetResumeSchema
	}

	data, err := schemas.Source(schemaName)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
