// Package main prints translation coverage for the console catalogs.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	i18ncatalog "github.com/myhome/console/internal/platform/i18n/catalog"
	"github.com/myhome/console/internal/tools/i18nstatus"
)

func main() {
	var baseLocale, format string
	var strict bool
	flag.StringVar(&baseLocale, "base-locale", i18ncatalog.BaseLocale, "base locale used as translation source of truth")
	flag.StringVar(&format, "format", "markdown", "output format: markdown or json")
	flag.BoolVar(&strict, "strict", false, "exit non-zero when a locale is missing keys")
	flag.Parse()
	log.SetPrefix("[I18N-STATUS] ")
	log.SetFlags(0)

	rep, err := i18nstatus.Build(i18ncatalog.Default(), baseLocale)
	if err != nil {
		log.Fatalf("build report: %v", err)
	}
	var write func(io.Writer, i18nstatus.Report) error
	switch format {
	case "markdown":
		write = i18nstatus.WriteMarkdown
	case "json":
		write = i18nstatus.WriteJSON
	default:
		log.Fatalf("unknown format %q", format)
	}
	if err := write(os.Stdout, rep); err != nil {
		log.Fatalf("write report: %v", err)
	}
	if strict && !rep.Complete() {
		os.Exit(1)
	}
}
