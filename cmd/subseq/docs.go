package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsDir string

// front matter for the generated command pages
const docHeader = `---
title: %s
nav_order: %d
---
`

// docsCmd writes one Markdown page per command.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown documentation for every command",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(docsDir, 0o755); err != nil {
			return fmt.Errorf("creating docs directory: %w", err)
		}
		return doc.GenMarkdownTreeCustom(rootCmd, docsDir, filePrepender, linkHandler)
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsDir, "dir", "d", "./docs", "directory to write the pages to")
	rootCmd.AddCommand(docsCmd)
}

// navOrder places the root page first and the commands in the order they
// are listed by cobra.
func navOrder(base string) int {
	if base == rootCmd.Name() {
		return 0
	}
	for i, c := range rootCmd.Commands() {
		if rootCmd.Name()+"_"+c.Name() == base {
			return i + 1
		}
	}
	return len(rootCmd.Commands()) + 1
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	title := strings.TrimPrefix(strings.ReplaceAll(base, "_", " "), rootCmd.Name()+" ")
	return fmt.Sprintf(docHeader, title, navOrder(base))
}

func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	if base == rootCmd.Name() {
		return "/"
	}
	return base
}
