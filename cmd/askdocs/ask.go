package main

import (
	"fmt"

	"github.com/fwojciec/askdocs"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	result, err := deps.Chat.Chat(deps.Ctx, &askdocs.ChatRequest{Query: c.Question})
	if err != nil {
		if askdocs.ErrorCode(err) == askdocs.EUNAVAILABLE {
			fmt.Fprintf(deps.Stderr, "error: %s\nHint: run 'askdocs build <url>' first\n", askdocs.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", askdocs.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Response)

	if len(result.ScrapedURLs) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for _, u := range result.ScrapedURLs {
			fmt.Fprintf(deps.Stdout, "  - %s\n", u)
		}
	}

	return nil
}
