package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/idimitrov/docsorter/internal/config"
	"github.com/idimitrov/docsorter/internal/docgen"
)

func main() {
	invoices := flag.Int("invoices", 4, "number of sample invoices to generate")
	protocols := flag.Int("protocols", 3, "number of sample protocols to generate")
	reports := flag.Int("reports", 3, "number of sample reports to generate")
	year := flag.Int("year", 2024, "year used for random document dates")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	gen, err := docgen.New(cfg.InputDir, 0)
	if err != nil {
		log.Fatalf("docgen error: %v", err)
	}

	total, err := gen.GenerateSet(*year, *invoices, *protocols, *reports)
	if err != nil {
		log.Fatalf("generation error after %d documents: %v", total, err)
	}
	fmt.Printf("created %d sample documents in %s\n", total, cfg.InputDir)
}
