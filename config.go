package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	apiKey         string
	bind           string
	envFile        string
	extractTimeout time.Duration
	maxUpload      int64
	metrics        bool
	model          string
	pollInterval   time.Duration
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	strictCodes    bool
	tempDir        string
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.pollInterval <= 0 {
		return fmt.Errorf("invalid poll interval (must be positive): %s", c.pollInterval)
	}
	if c.extractTimeout <= 0 {
		return fmt.Errorf("invalid extract timeout (must be positive): %s", c.extractTimeout)
	}
	if c.maxUpload <= 0 {
		return fmt.Errorf("invalid max upload size (must be positive): %d", c.maxUpload)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// resolveAPIKey falls back from the flag to GEMINI_API_KEY, then to the
// env file, which is meant for local development only.
func (c *Config) resolveAPIKey() string {
	if c.apiKey != "" {
		return c.apiKey
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	if c.envFile == "" {
		return ""
	}

	values, err := godotenv.Read(c.envFile)
	if err != nil {
		return ""
	}

	for _, name := range []string{"GROOMGAME_API_KEY", "GEMINI_API_KEY"} {
		if key := values[name]; key != "" {
			return key
		}
	}

	return ""
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GROOMGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "groomgame",
		Short:         "A bachelor party quiz built from a video of the bride answering questions.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.apiKey, "api-key", "", "Gemini API key used for video analysis (env: GROOMGAME_API_KEY, falls back to GEMINI_API_KEY)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: GROOMGAME_BIND)")
	fs.StringVar(&cfg.envFile, "env-file", ".env", "dotenv file checked for an API key during local development (env: GROOMGAME_ENV_FILE)")
	fs.DurationVar(&cfg.extractTimeout, "extract-timeout", 10*time.Minute, "time to wait for the provider to process a video (env: GROOMGAME_EXTRACT_TIMEOUT)")
	fs.Int64Var(&cfg.maxUpload, "max-upload", 2<<30, "maximum video upload size in bytes (env: GROOMGAME_MAX_UPLOAD)")
	fs.BoolVar(&cfg.metrics, "metrics", false, "expose prometheus metrics at /metrics (env: GROOMGAME_METRICS)")
	fs.StringVar(&cfg.model, "model", "gemini-2.5-flash", "model used for video analysis (env: GROOMGAME_MODEL)")
	fs.DurationVar(&cfg.pollInterval, "poll-interval", 2*time.Second, "delay between video processing status checks (env: GROOMGAME_POLL_INTERVAL)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: GROOMGAME_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: GROOMGAME_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: GROOMGAME_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: GROOMGAME_SESSION_TIMEOUT)")
	fs.BoolVar(&cfg.strictCodes, "strict-codes", false, "only allow joining codes hosted by this server (env: GROOMGAME_STRICT_CODES)")
	fs.StringVar(&cfg.tempDir, "temp-dir", "", "directory for transient video copies (default: system temp dir) (env: GROOMGAME_TEMP_DIR)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: GROOMGAME_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: GROOMGAME_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: GROOMGAME_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: GROOMGAME_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("groomgame v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
