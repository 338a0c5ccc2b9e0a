package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emrgen/wiki"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	contextDir      = "./.tmp"
	contextFileName = "wiki"
	defaultURL      = "http://localhost:4001"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

// Context is the server the remote commands talk to.
type Context struct {
	URL      string `mapstructure:"url" json:"url"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
}

// saves the context info to ./.tmp/wiki.yml
func setContextCommand() *cobra.Command {
	var ctx Context

	var required = []string{"username", "password"}

	command := &cobra.Command{
		Use:     "set",
		Short:   "set context",
		Example: "wiki context set --url http://localhost:4001 --username admin --password admin",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			if err := writeContext(ctx); err != nil {
				color.Red("error writing config file: %v", err)
				return
			}
			fmt.Println("context saved")
		},
	}

	command.Flags().StringVarP(&ctx.URL, "url", "s", defaultURL, "server url")
	command.Flags().StringVarP(&ctx.Username, "username", "u", "", "username (required)")
	command.Flags().StringVarP(&ctx.Password, "password", "w", "", "password (required)")

	command.Flags().SortFlags = false

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, err := readContext()
			if err != nil {
				color.Red("error reading config file: %v", err)
				return
			}

			printField("URL", ctx.URL)
			printField("Username", ctx.Username)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			err := os.Remove(contextPath())
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				color.Red("error removing config file: %v", err)
				return
			}
			fmt.Println("context reset")
		},
	}

	return command
}

func contextPath() string {
	return filepath.Join(contextDir, contextFileName+".yml")
}

func contextViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(contextFileName)
	v.AddConfigPath(contextDir)
	v.SetConfigType("yml")
	return v
}

func writeContext(ctx Context) error {
	if err := os.MkdirAll(contextDir, 0o700); err != nil {
		return err
	}

	v := contextViper()
	v.Set("context.url", ctx.URL)
	v.Set("context.username", ctx.Username)
	v.Set("context.password", ctx.Password)

	return v.WriteConfigAs(contextPath())
}

// readContext returns the saved context, or the default server without
// credentials when none was saved.
func readContext() (Context, error) {
	ctx := Context{URL: defaultURL}

	v := contextViper()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return ctx, nil
		}
		return ctx, err
	}

	if err := v.UnmarshalKey("context", &ctx); err != nil {
		return ctx, err
	}
	if ctx.URL == "" {
		ctx.URL = defaultURL
	}

	return ctx, nil
}

// remoteClient builds a client for the saved context.
func remoteClient() (wiki.Client, error) {
	ctx, err := readContext()
	if err != nil {
		return nil, err
	}

	return wiki.NewClient(ctx.URL, ctx.Username, ctx.Password)
}
