// Command spillover-analyze runs the analytics pipelines over JSON input
// rows and writes the results as JSON, one document per requested view.
// Fetching rows from a data store and rendering output are both left to
// the surrounding tooling.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adhummel/spillover-analytics/pkg/analytics"
	"github.com/adhummel/spillover-analytics/pkg/config"
	"github.com/adhummel/spillover-analytics/pkg/validation"
)

// inputFile is the expected shape of the -input document.
type inputFile struct {
	Edges  []validation.EdgeRecord    `json:"edges"`
	Groups []validation.FeatureRecord `json:"groups"`
	Yearly []validation.YearlyRecord  `json:"yearly"`
}

type output struct {
	Network    *networkOutput             `json:"network,omitempty"`
	Clustering *analytics.ClusteringResult `json:"clustering,omitempty"`
	Predictive *analytics.PredictiveResult `json:"predictive,omitempty"`
}

type networkOutput struct {
	RunID string                  `json:"runId"`
	Nodes []analytics.NetworkNode `json:"nodes"`
	Edges int                     `json:"edges"`
}

func main() {
	configPath := flag.String("config", "", "Path to YAML engine config (defaults used when empty)")
	inputPath := flag.String("input", "", "Path to JSON input rows (required)")
	view := flag.String("view", "all", "View to compute: network, clusters, risk, or all")
	topN := flag.Int("top", 0, "Number of ranked risk rows (0 = configured default)")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	var input inputFile
	if err := json.Unmarshal(data, &input); err != nil {
		log.Fatalf("Failed to parse input: %v", err)
	}

	engine, err := analytics.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	var out output

	if *view == "all" || *view == "network" {
		result, err := engine.NetworkView(input.Edges)
		if err != nil {
			log.Fatalf("Network view failed: %v", err)
		}
		out.Network = &networkOutput{
			RunID: result.RunID,
			Nodes: result.Nodes,
			Edges: result.Graph.EdgeCount(),
		}
	}

	if *view == "all" || *view == "clusters" {
		result, err := engine.ClusteringView(input.Groups)
		if err != nil {
			log.Fatalf("Clustering view failed: %v", err)
		}
		out.Clustering = result
	}

	if *view == "all" || *view == "risk" {
		result, err := engine.PredictiveView(input.Yearly, *topN)
		if err != nil {
			log.Fatalf("Predictive view failed: %v", err)
		}
		out.Predictive = result
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(encoded))
}
