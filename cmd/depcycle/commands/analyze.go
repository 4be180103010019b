package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhpq/depcycle/internal/config"
	"github.com/minhpq/depcycle/internal/log"
	"github.com/minhpq/depcycle/pkg/cache"
	"github.com/minhpq/depcycle/pkg/candl"
	"github.com/minhpq/depcycle/pkg/depgraph"
	"github.com/minhpq/depcycle/pkg/loopnest"
	"github.com/minhpq/depcycle/pkg/matrix"
	"github.com/minhpq/depcycle/pkg/report"
	"github.com/minhpq/depcycle/pkg/scc"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <candl-output>",
	Short: "Build the annotated cycle matrix for every variable",
	Long: `Parses a candl dependence output file ("-" for stdin), builds one
dependence graph per variable, decomposes each into strongly connected
components and renders the annotated cycle matrix.

Cells read: "." not applicable (diagonal, no common cycle, or equal
nesting depth), "-" cyclic pair with no shared iterator, otherwise the
comma-joined shared iterator names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourcePath, _ := cmd.Flags().GetString("source")
		useCache, _ := cmd.Flags().GetBool("cache")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		width, _ := cmd.Flags().GetInt("width")
		return runAnalyze(cmd, args[0], sourcePath, useCache, jsonOutput, width)
	},
}

func runAnalyze(cmd *cobra.Command, inputPath, sourcePath string, useCache, jsonOutput bool, width int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := log.Default()
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if width <= 0 {
		width = cfg.CellWidth
	}

	input, err := readInput(inputPath)
	if err != nil {
		return err
	}

	var store *cache.Store
	digest := ""
	if useCache || cfg.CacheEnabled {
		store, err = cache.NewStore(cfg.CacheDir)
		if err != nil {
			return err
		}
		digest = cache.Digest(input)
		if entry, err := store.Get(digest); err == nil {
			logger.Debug("cache hit", "digest", digest[:12])
			fmt.Fprint(cmd.OutOrStdout(), entry.Output)
			return nil
		} else if !errors.Is(err, cache.ErrNotFound) {
			return err
		}
	}

	result, err := analyzeInput(input, sourcePath, cfg, logger)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result.matrices, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	var buf bytes.Buffer
	renderer := report.NewRenderer(&buf, width)
	for _, m := range result.matrices {
		if err := renderer.Matrix(m); err != nil {
			return err
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), buf.String())

	if store != nil {
		entry := &cache.Entry{Digest: digest, Vars: result.vars, Output: buf.String()}
		if err := store.Put(entry); err != nil {
			logger.Warn("storing cache entry failed", "err", err)
		}
	}
	return nil
}

type analysisResult struct {
	vars     []string
	matrices []*matrix.Matrix
}

// analyzeInput runs the full pipeline over an in-memory candl output.
func analyzeInput(input []byte, sourcePath string, cfg *config.Config, logger log.Logger) (*analysisResult, error) {
	edges, err := candl.ParseEdges(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	stmts, err := candl.ParseStatements(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed input", "edges", len(edges), "statements", stmts.Len())

	if stmts.Len() == 0 && sourcePath != "" && cfg.SourceFallback {
		stmts, err = loopnest.ScanFile(sourcePath)
		if err != nil {
			return nil, err
		}
		logger.Info("recovered statement nesting from source",
			"source", sourcePath, "statements", stmts.Len())
	}

	graphs := depgraph.Build(edges)
	result := &analysisResult{vars: graphs.Vars()}
	for _, v := range graphs.Vars() {
		g := graphs.Graph(v)
		comps := scc.Decompose(g.Nodes(), g.Succs)
		result.matrices = append(result.matrices, matrix.Build(g, comps, stmts))
	}
	return result, nil
}

func init() {
	analyzeCmd.Flags().String("source", "", "C source file for nesting recovery when metadata is absent")
	analyzeCmd.Flags().Bool("cache", false, "Cache the rendered report keyed by input digest")
	analyzeCmd.Flags().BoolP("json", "j", false, "Output matrices as JSON")
	analyzeCmd.Flags().Int("width", 0, "Matrix cell width (default from config)")
	RootCmd.AddCommand(analyzeCmd)
}
