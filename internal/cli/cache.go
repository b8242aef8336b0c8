package cli

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/utilkit/pkg/cache"
	"github.com/dmitrymomot/utilkit/pkg/config"
	"github.com/dmitrymomot/utilkit/pkg/logger"
)

func newCacheCmd(a *app) *cobra.Command {
	var dir string

	open := func(cmd *cobra.Command) (*cache.FileCache, error) {
		var cfg cache.FileConfig
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("dir") {
			cfg.Dir = dir
		}
		return cache.NewFileCacheFromConfig(cfg, cache.WithLogger(a.log))
	}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the file cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "cache directory (default $CACHE_DIR)")

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the JSON value stored under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			var raw json.RawMessage
			if err := store.Get(cmd.Context(), args[0], &raw); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(raw))
			return err
		},
	}

	var ttl time.Duration
	put := &cobra.Command{
		Use:   "put KEY VALUE",
		Short: "Store VALUE under KEY; VALUE is taken as JSON when it parses, else as a string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			var value any = args[1]
			if json.Valid([]byte(args[1])) {
				value = json.RawMessage(args[1])
			}
			if err := store.Put(cmd.Context(), args[0], value, ttl); err != nil {
				return err
			}
			a.log.InfoContext(cmd.Context(), "cache entry stored", logger.Key(args[0]), logger.Duration(ttl))
			return nil
		},
	}
	put.Flags().DurationVar(&ttl, "ttl", 0, "lifetime of the entry; 0 uses $CACHE_DEFAULT_TTL, negative keeps it forever")

	forget := &cobra.Command{
		Use:   "forget KEY",
		Short: "Remove KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			return store.Forget(cmd.Context(), args[0])
		},
	}

	flush := &cobra.Command{
		Use:   "flush",
		Short: "Remove every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			if err := store.Flush(cmd.Context()); err != nil {
				return err
			}
			a.log.InfoContext(cmd.Context(), "cache flushed", logger.Path(store.Dir()))
			return nil
		},
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove expired entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			n, err := store.Prune(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "pruned %d entries\n", n)
			return err
		},
	}

	cmd.AddCommand(get, put, forget, flush, prune)
	return cmd
}
