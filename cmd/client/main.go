// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zerovault/zerovault/internal/client"
	"github.com/zerovault/zerovault/internal/config"
	"github.com/zerovault/zerovault/internal/crypto"
	"github.com/zerovault/zerovault/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: zerovault <command> [args]

commands:
  enroll <identifier>                create an account and unlock the vault
  put    <identifier> <name> <file>  seal a file and store it under name
  get    <identifier> <name>         fetch and open a blob, write to stdout
  list   <identifier>                list stored blob names
  delete <identifier> <name>         remove a stored blob
  rotate <identifier> [new-id]       change the password (and optionally the handle)

The password is read from ZEROVAULT_PASSWORD, or prompted on stdin.
`

func main() {
	printBuildInfo()

	log := logger.NewLogger("zerovault-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api, err := client.NewClient(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client")
	}

	if err = run(context.Background(), client.NewVault(api)); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(ctx context.Context, vault *client.Vault) error {
	// configuration flags were parsed by GetClientConfig; the remainder is
	// the subcommand and its positional arguments
	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command, identifier := args[0], args[1]

	switch command {
	case "enroll":
		return vault.Enroll(ctx, identifier, readPassword("password: "), crypto.DefaultKDFParams())

	case "put":
		if len(args) < 4 {
			return fmt.Errorf("put needs a blob name and a file")
		}
		plaintext, err := os.ReadFile(args[3])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[3], err)
		}
		if err = vault.Unlock(ctx, identifier, readPassword("password: ")); err != nil {
			return err
		}
		saved, err := vault.Put(ctx, args[2], plaintext, 1)
		if err != nil {
			return err
		}
		fmt.Printf("stored %s (version %d)\n", saved.Name, saved.Version)
		return nil

	case "get":
		if len(args) < 3 {
			return fmt.Errorf("get needs a blob name")
		}
		if err := vault.Unlock(ctx, identifier, readPassword("password: ")); err != nil {
			return err
		}
		plaintext, err := vault.Get(ctx, args[2])
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(plaintext)
		return err

	case "list":
		if err := vault.Unlock(ctx, identifier, readPassword("password: ")); err != nil {
			return err
		}
		var offset int64
		for {
			page, err := vault.List(ctx, 0, offset)
			if err != nil {
				return err
			}
			for _, item := range page.Items {
				fmt.Printf("%s\tv%s\t%s\n", item.Name, strconv.FormatInt(item.Version, 10), item.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			if page.NextOffset == nil {
				return nil
			}
			offset = *page.NextOffset
		}

	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("delete needs a blob name")
		}
		if err := vault.Unlock(ctx, identifier, readPassword("password: ")); err != nil {
			return err
		}
		return vault.Delete(ctx, args[2])

	case "rotate":
		if err := vault.Unlock(ctx, identifier, readPassword("current password: ")); err != nil {
			return err
		}
		newIdentifier := ""
		if len(args) > 2 {
			newIdentifier = args[2]
		}
		return vault.RotatePassword(ctx, newIdentifier, readPassword("new password: "))

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func readPassword(prompt string) string {
	if pw := os.Getenv("ZEROVAULT_PASSWORD"); pw != "" {
		return pw
	}

	fmt.Fprint(os.Stderr, prompt)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
