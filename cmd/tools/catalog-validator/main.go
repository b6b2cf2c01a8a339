// cmd/tools/catalog-validator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"govmatch-workers/pkg/catalog"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/set-aside-catalog.json", "Path to catalog file")

	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	showPath := showCmd.String("path", "", "Path to catalog file (empty shows the built-in catalog)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		cat, err := catalog.Load(*validatePath)
		if err != nil {
			fmt.Printf("Catalog invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog %s is valid (version %s, %d set-asides)\n",
			*validatePath, cat.Version(), len(cat.All()))

	case "show":
		showCmd.Parse(os.Args[2:])
		var cat *catalog.Catalog
		var err error
		if *showPath == "" {
			cat = catalog.Default()
		} else {
			cat, err = catalog.Load(*showPath)
			if err != nil {
				fmt.Printf("Error loading catalog: %v\n", err)
				os.Exit(1)
			}
		}
		printCatalog(cat)

	case "help", "-h", "--help":
		help()

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		help()
		os.Exit(1)
	}
}

func printCatalog(cat *catalog.Catalog) {
	fmt.Printf("Catalog version: %s\n\n", cat.Version())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tCODE\tTYPE\tNAME\tCERTIFICATIONS")
	for _, def := range cat.All() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n",
			def.Priority, def.Code, def.Type, def.Name, def.RelatedCertifications)
	}
	w.Flush()
}

func help() {
	fmt.Println(`Usage: catalog-validator <command> [flags]

Commands:
  validate   Validate a catalog override file against the schema
             -path string   Path to catalog file (default "configs/set-aside-catalog.json")
  show       Print the catalog contents sorted by priority
             -path string   Path to catalog file (empty shows the built-in catalog)
  help       Show this help`)
}
