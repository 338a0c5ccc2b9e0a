package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/emrgen/wiki/internal/config"
	"github.com/emrgen/wiki/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var attachmentCmd = &cobra.Command{
	Use:   "attachment",
	Short: "attachment commands",
}

func init() {
	attachmentCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	attachmentCmd.AddCommand(addAttachmentCmd())
}

func addAttachmentCmd() *cobra.Command {
	var params service.UploadParams
	var file string

	var required = []string{"article-id", "file"}

	command := &cobra.Command{
		Use:     "add",
		Short:   "attach a file to an article",
		Long:    "attach a file to an article. A file with the name of an existing attachment becomes its next revision",
		Example: "wiki attachment add -a <article-id> -f <file> -d <description>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			f, err := os.Open(file)
			if err != nil {
				logrus.Error(err)
				return
			}
			defer f.Close()

			app, closeApp, err := localApp(config.LoadConfig())
			if err != nil {
				logrus.Error(err)
				return
			}
			defer closeApp()

			params.Filename = filepath.Base(file)
			params.Body = f

			attachment, err := app.Services.Attachments.Upload(context.Background(), params)
			if err != nil {
				logrus.Error(err)
				return
			}

			revision := 0
			if attachment.CurrentRevision != nil {
				revision = attachment.CurrentRevision.RevisionNumber
			}
			logrus.Infof("attachment %d saved as revision %d", attachment.ID, revision)
		},
	}

	command.Flags().UintVarP(&params.ArticleID, "article-id", "a", 0, "article id (required)")
	command.Flags().StringVarP(&file, "file", "f", "", "path of the file (required)")
	command.Flags().StringVarP(&params.Description, "description", "d", "", "description of the attachment")
	command.Flags().StringVarP(&params.UserMessage, "message", "m", "", "revision message")

	command.Flags().SortFlags = false

	return command
}
