// quote renders flight-quote messages from the terminal and offers the
// same airport autocomplete as the web form.
//
// Usage:
//
//	quote render [--one-way] [--checked-baggage] [--copy] --field name=value...
//	quote suggest [--airports file|url] [--add city=CODE]... <text>
//	quote templates
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cx-tal-miterani/flight-quote/internal/airport"
	"github.com/cx-tal-miterani/flight-quote/internal/clipboard"
	"github.com/cx-tal-miterani/flight-quote/internal/config"
	"github.com/cx-tal-miterani/flight-quote/internal/quote"
	"github.com/cx-tal-miterani/flight-quote/internal/service"
	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "render":
		return runRender(args[1:], stdout, stderr, clipboard.NewTerminal(stderr))
	case "suggest":
		return runSuggest(args[1:], stdout, stderr)
	case "templates":
		return runTemplates(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}

	printUsage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  quote render [--one-way] [--checked-baggage] [--copy] --field name=value...
  quote suggest [--airports file|url] [--add city=CODE]... <text>
  quote templates
`)
}

func parseFields(pairs []string) (models.Fields, error) {
	var fields models.Fields
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", pair)
		}
		fields.Set(name, value)
	}
	return fields, nil
}

func runRender(args []string, stdout, stderr io.Writer, copier clipboard.Copier) error {
	var req models.QuoteRequest
	var pairs []string
	var copyText bool

	flagSet := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringArrayVarP(&pairs, "field", "f", nil, "form field as name=value (repeatable, order is kept)")
	flagSet.BoolVar(&req.OneWay, "one-way", false, "use the one-way template")
	flagSet.BoolVar(&req.CheckedBaggage, "checked-baggage", false, "quote includes checked baggage")
	flagSet.StringSliceVar(&req.DateFields, "date-field", quote.DefaultDateFields, "fields given as yyyy-mm-dd dates")
	flagSet.BoolVar(&copyText, "copy", false, "copy the quote to the clipboard")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	fields, err := parseFields(pairs)
	if err != nil {
		return err
	}
	req.Fields = fields

	svc := service.NewQuoteService(airport.NewList(), nil, nil)
	q, err := svc.RenderQuote(context.Background(), &req)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, q.Text)

	if copyText {
		if err := copier.Copy(q.Text); err != nil {
			return err
		}
		fmt.Fprintln(stderr, clipboard.CopiedMessage)
	}
	return nil
}

func runSuggest(args []string, stdout, stderr io.Writer) error {
	var source string
	var additions []string

	flagSet := pflag.NewFlagSet("suggest", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&source, "airports", config.DefaultAirportsSource, "airport dataset (JSON or CSV file, or http(s) URL)")
	flagSet.StringArrayVar(&additions, "add", nil, "extra airport as city=CODE (repeatable)")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("expected exactly one search text")
	}

	ctx := context.Background()
	svc := service.NewQuoteService(airport.NewList(), nil, nil)
	// Without a dataset, suggestions still cover the --add airports
	if err := svc.LoadAirports(ctx, source); err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}

	for _, add := range additions {
		city, code, _ := strings.Cut(add, "=")
		if _, err := svc.AddAirport(ctx, &models.AddAirportRequest{City: city, Code: code}); err != nil {
			return fmt.Errorf("cannot add %q: %w", add, err)
		}
	}

	for _, a := range svc.SuggestAirports(ctx, rest[0]) {
		fmt.Fprintln(stdout, airport.Label(a))
	}
	return nil
}

func runTemplates(stdout io.Writer) error {
	for _, info := range quote.Templates() {
		fmt.Fprintf(stdout, "%s: %s\n", info.Mode, strings.Join(info.Placeholders, ", "))
	}
	return nil
}
