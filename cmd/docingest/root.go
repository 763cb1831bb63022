package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/docingest/internal/chunker"
	"github.com/dshills/docingest/internal/embedder"
	"github.com/dshills/docingest/internal/httpapi"
	"github.com/dshills/docingest/internal/ingest"
	"github.com/dshills/docingest/internal/mcp"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docingest",
		Short:         "Document ingestion service",
		Long:          "Extract text from documents, split it into overlapping chunks and embed each chunk.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringSlice("env-file", nil, "Environment files to load (default .env when present)")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	root.AddCommand(
		serveCmd(),
		mcpCmd(),
		chunkCmd(),
		embedCmd(),
		versionCmd(),
	)
	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if f := cmd.Flags().Lookup("port"); f.Changed {
				port, err := cmd.Flags().GetInt("port")
				if err != nil {
					return fmt.Errorf("failed to get port flag: %w", err)
				}
				a.cfg.Server.Port = port
			}

			srv := httpapi.New(a.service,
				httpapi.WithLogger(a.logger),
				httpapi.WithMaxBodyBytes(a.cfg.Server.MaxBodyBytes),
			)
			return srv.ListenAndServe(cmd.Context(), listenAddr(a.cfg))
		},
	}
	cmd.Flags().Int("port", 8000, "Port to listen on (overrides PORT)")
	return cmd
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			return mcp.NewServer(a.service, a.logger).Serve(cmd.Context())
		},
	}
}

func chunkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk FILE",
		Short: "Extract and chunk a document, printing the chunks as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			docType, err := cmd.Flags().GetString("type")
			if err != nil {
				return fmt.Errorf("failed to get type flag: %w", err)
			}

			cfg := a.service.ChunkingConfig()
			if f := cmd.Flags().Lookup("target"); f.Changed {
				if cfg.TargetChars, err = cmd.Flags().GetInt("target"); err != nil {
					return err
				}
			}
			if f := cmd.Flags().Lookup("overlap"); f.Changed {
				if cfg.OverlapChars, err = cmd.Flags().GetInt("overlap"); err != nil {
					return err
				}
			}
			c, err := chunker.New(cfg)
			if err != nil {
				return err
			}

			raw, err := a.extractor.Extract(cmd.Context(), args[0], docType)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), ingest.ChunkResponse{
				TargetChars:  cfg.TargetChars,
				OverlapChars: cfg.OverlapChars,
				Chunks:       c.Chunk(chunker.Normalize(raw)),
			})
		},
	}
	cmd.Flags().String("type", "", "Declared document type (pdf, markdown, text)")
	cmd.Flags().Int("target", chunker.DefaultTargetChars, "Target chunk size in characters (overrides TARGET_CHARS)")
	cmd.Flags().Int("overlap", chunker.DefaultOverlapChars, "Overlap in characters (overrides OVERLAP_CHARS)")
	return cmd
}

func embedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embed TEXT...",
		Short: "Embed text and print the vector as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			resp, err := a.service.Embed(cmd.Context(), ingest.EmbedRequest{Text: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "docingest %s\n", version)
			fmt.Fprintf(out, "Build Time: %s\n", buildTime)
			fmt.Fprintf(out, "MCP Server: %s %s\n", mcp.ServerName, mcp.ServerVersion)
			fmt.Fprintf(out, "Default Model: %s\n", embedder.DefaultModel)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
