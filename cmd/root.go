package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wiki",
	Short: "wiki server and management tool",
	Example: `wiki serve --port 4001
wiki initadmin
wiki context set --url http://localhost:4001 --username admin --password admin
wiki article list
wiki article create --title Home --content "# Welcome"
wiki article update -a <article-id> -c <content>
wiki tag create --name go
wiki attachment add -a <article-id> -f <file>`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(initAdminCmd())
	rootCmd.AddCommand(contextCommand)
	rootCmd.AddCommand(articleCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(attachmentCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
