// Command perspgrid converts a room/camera configuration into
// perspective-accurate 2D grid lines and writes them out as JSON for
// rendering tools to consume.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/smasonuk/perspgrid"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file (default: built-in standard preset)")
	outPath := flag.String("out", "", "output path for the scene grid JSON (default: stdout)")
	stats := flag.Bool("stats", false, "print per-panel line counts to stderr")
	flag.Parse()

	cfg := perspgrid.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("read config: %v", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("parse config: %v", err)
		}
	}

	scene, err := perspgrid.GenerateSceneGrid(cfg)
	if err != nil {
		log.Fatalf("generate scene grid: %v", err)
	}

	if *stats {
		s := scene.Stats()
		fmt.Fprintf(os.Stderr, "total lines: %d (horizontal %d, vertical %d, boundary %d)\n",
			s.TotalLines, s.Horizontal, s.Vertical, s.Boundary)
		for _, label := range scene.Order {
			fmt.Fprintf(os.Stderr, "  %-12s %d\n", label, s.PerPanel[label])
		}
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scene); err != nil {
		log.Fatalf("write scene grid: %v", err)
	}
}
