// Command lookup fetches books from a running books service and prints
// either the book or the error body the server answered with.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"bookfixture/internal/platform/booksapi"
	"bookfixture/internal/platform/validation"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOr("BOOKS_API_URL", "http://localhost:8080"), "base URL of the books service")
	timeout := fs.Duration("timeout", 15*time.Second, "per-request timeout")
	retries := fs.Int("retries", 3, "retries on 429 and 5xx responses")
	strict := fs.Bool("strict", false, "reject identifiers that are not ISBN-10 or ISBN-13 before sending")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: lookup [flags] ISBN...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	client, err := booksapi.NewClient(*addr,
		booksapi.WithTimeout(*timeout),
		booksapi.WithMaxRetries(*retries),
		booksapi.WithUserAgent("bookfixture-lookup/1.0"),
	)
	if err != nil {
		fmt.Fprintf(stderr, "lookup: %v\n", err)
		return exitUsage
	}

	code := exitOK
	for _, isbn := range fs.Args() {
		if *strict && !validation.IsISBN(isbn) {
			fmt.Fprintf(stderr, "%s: not a valid ISBN\n", isbn)
			code = exitFailure
			continue
		}
		if err := lookup(ctx, client, isbn, stdout); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", isbn, err)
			code = exitFailure
		}
	}
	return code
}

func lookup(ctx context.Context, client *booksapi.Client, isbn string, stdout io.Writer) error {
	b, err := client.Find(ctx, isbn)
	if err != nil {
		var respErr *booksapi.ResponseError
		if errors.As(err, &respErr) && respErr.Body != nil {
			body := respErr.Body
			fmt.Fprintf(stdout, "%s\tstatus=%d error=%q message=%q path=%q\n",
				isbn, body.Status, body.Error, body.Message, body.Path)
		}
		return err
	}

	out, err := json.Marshal(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s\t%s\n", isbn, out)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
