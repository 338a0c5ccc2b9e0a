package cmd

import (
	"context"
	"strconv"

	"github.com/emrgen/wiki/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "tag commands",
}

func init() {
	tagCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	tagCmd.AddCommand(listTagsCmd())
	tagCmd.AddCommand(createTagCmd())
}

func listTagsCmd() *cobra.Command {
	var counts bool

	command := &cobra.Command{
		Use:     "list",
		Short:   "list tags, or the number of tags on each article",
		Example: "wiki tag list --counts",
		Run: func(cmd *cobra.Command, args []string) {
			app, closeApp, err := localApp(config.LoadConfig())
			if err != nil {
				logrus.Error(err)
				return
			}
			defer closeApp()

			ctx := context.Background()
			if counts {
				rows, err := app.Services.Tags.CountArticleTags(ctx)
				if err != nil {
					logrus.Error(err)
					return
				}

				table := newTable("Article", "Title", "Tags")
				for _, row := range rows {
					table.Append([]string{strconv.FormatUint(uint64(row.ArticleID), 10), row.Title, strconv.FormatInt(row.Count, 10)})
				}
				table.Render()
				return
			}

			tags, err := app.Services.Tags.ListTags(ctx)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := newTable("ID", "Name", "Slug")
			for _, tag := range tags {
				table.Append([]string{strconv.FormatUint(uint64(tag.ID), 10), tag.Name, tag.Slug})
			}
			table.Render()
		},
	}

	command.Flags().BoolVarP(&counts, "counts", "c", false, "show the number of tags on each article")

	return command
}

func createTagCmd() *cobra.Command {
	var name string
	var slug string

	var required = []string{"name"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a tag",
		Example: "wiki tag create -n <name> -s <slug>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			app, closeApp, err := localApp(config.LoadConfig())
			if err != nil {
				logrus.Error(err)
				return
			}
			defer closeApp()

			tag, err := app.Services.Tags.CreateTag(context.Background(), name, slug)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("tag created with id: %d (%s)", tag.ID, tag.Slug)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "tag name (required)")
	command.Flags().StringVarP(&slug, "slug", "s", "", "tag slug, defaults to the slugified name")

	return command
}
