package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// runMenu loops an interactive prompt over the three operations. Errors are
// printed and the menu continues; only EOF or the exit choice ends it.
func (e *env) runMenu(ctx context.Context) error {
	in := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println()
		fmt.Println("1. Wrap native to wrapped")
		fmt.Println("2. Unwrap wrapped to native")
		fmt.Println("3. Check balances")
		fmt.Println("4. Exit")

		choice, ok := prompt(in, "Choice [1-4]")
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			amount, ok := prompt(in, "Amount to wrap")
			if !ok {
				return nil
			}
			err = e.runWrap(ctx, amount)
		case "2":
			amount, ok := prompt(in, "Amount to unwrap")
			if !ok {
				return nil
			}
			err = e.runUnwrap(ctx, amount)
		case "3":
			err = e.runBalance(ctx)
		case "4":
			return nil
		default:
			fmt.Println("Please choose 1-4.")
			continue
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func prompt(in *bufio.Scanner, label string) (string, bool) {
	fmt.Printf("%s -> ", label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
