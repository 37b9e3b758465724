package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/agentflare-ai/sdmx-go/sdmx/reader"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sdmxread <sdmx-ml-file>")
		os.Exit(1)
	}

	xmlFile := os.Args[1]

	f, err := os.Open(xmlFile)
	if err != nil {
		log.Fatalf("Failed to open SDMX-ML file: %v", err)
	}
	defer f.Close()

	ctx := context.Background()
	msg, warnings, err := reader.ReadMessage(ctx, f, reader.Options{})
	if err != nil {
		log.Fatalf("Parse error: %v", err)
	}

	if len(warnings) == 0 {
		fmt.Printf("✅ %s parsed as a %s message, no warnings\n", xmlFile, msg.Kind)
	} else {
		fmt.Printf("⚠️  %s parsed as a %s message, %d warning(s)\n", xmlFile, msg.Kind, len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %v\n", w)
		}
	}

	var obsCount int
	for _, ds := range msg.Data {
		obsCount += len(ds.Obs)
	}

	fmt.Printf("  codelists:        %d\n", len(msg.Codelist))
	fmt.Printf("  concept schemes:  %d\n", len(msg.ConceptScheme))
	fmt.Printf("  data structures:  %d\n", len(msg.Structure))
	fmt.Printf("  dataflows:        %d\n", len(msg.Dataflow))
	fmt.Printf("  constraints:      %d\n", len(msg.Constraint))
	fmt.Printf("  data sets:        %d (%d observations)\n", len(msg.Data), obsCount)
}
