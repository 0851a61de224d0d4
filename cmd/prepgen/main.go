package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prepgen/backend/internal/generator"
	"github.com/prepgen/backend/internal/models"
	"github.com/prepgen/backend/internal/questions"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prepgen",
		Short: "AI question paper generator for competitive exams",
	}

	serve := serveCmd()
	root.AddCommand(serve, generateCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func llmFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("backend", "anthropic", "LLM backend (anthropic, openai, cli, mock)")
	f.String("model", "", "Model name (empty = backend default)")
	f.String("api-key", "", "API key (or set PREPGEN_API_KEY)")
	f.String("base-url", "", "OpenAI-compatible API base URL override")
	f.String("cli-path", "claude", "Path to the claude CLI binary")
	f.Bool("cache", true, "Cache LLM responses by prompt")
	f.Duration("cache-ttl", time.Hour, "Cached response lifetime")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP question server",
		RunE:  runServe,
	}
	cmd.Flags().StringP("addr", "a", ":8080", "HTTP listen address")
	llmFlags(cmd)
	return cmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a question paper and print it as JSON",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("exam", "e", "JEE", "Exam type")
	f.StringP("subject", "s", "", "Subject name (required)")
	f.IntP("count", "n", 10, "Number of questions")
	f.StringSliceP("chapters", "c", nil, "Chapters to cover (empty = full syllabus)")
	f.StringP("difficulty", "d", "Medium", "Difficulty (Easy, Medium, Hard)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	llmFlags(cmd)

	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

// viperForCmd binds a command's flags and environment to a fresh viper
// instance so every setting can come from flag, env or config file.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("PREPGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("prepgen")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/prepgen")
	v.AddConfigPath("/etc/prepgen")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("WARN: error reading config file: %v", err)
		}
	} else {
		log.Printf("loaded config file: %s", v.ConfigFileUsed())
	}

	return v
}

// buildService assembles the LLM client stack (backend, cache, timing)
// and the question service on top of it.
func buildService(v *viper.Viper) (*questions.Service, *generator.Metrics, error) {
	client, model, err := generator.BuildClient(generator.ClientConfig{
		Backend: v.GetString("backend"),
		Model:   v.GetString("model"),
		APIKey:  v.GetString("api-key"),
		BaseURL: v.GetString("base-url"),
		CLIPath: v.GetString("cli-path"),
	})
	if err != nil {
		return nil, nil, err
	}

	metrics := generator.NewMetrics()
	client = generator.NewTimedClient(client, metrics)
	if v.GetBool("cache") {
		client = generator.NewCachedClient(client, generator.NewCache(0, v.GetDuration("cache-ttl")))
	}

	return questions.NewService(generator.NewGenerator(client, model)), metrics, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)

	service, metrics, err := buildService(v)
	if err != nil {
		return err
	}
	handler := questions.NewHandler(service, metrics)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	handler.Routes(api)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	addr := v.GetString("addr")
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, c.Handler(r))
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)

	service, _, err := buildService(v)
	if err != nil {
		return err
	}

	resp, err := service.Generate(cmd.Context(), models.GenerateRequest{
		Exam: v.GetString("exam"),
		SubjectData: map[string]models.SubjectConfig{
			v.GetString("subject"): {
				Chapters:     v.GetStringSlice("chapters"),
				NumQuestions: v.GetInt("count"),
				Difficulty:   models.Difficulty(v.GetString("difficulty")),
			},
		},
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	if outPath == "" || outPath == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("wrote %d questions to %s", resp.Total, outPath)
	return nil
}
