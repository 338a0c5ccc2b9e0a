package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/emrgen/wiki"
	"github.com/emrgen/wiki/internal/api"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "article commands",
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "url path commands",
}

func init() {
	articleCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	articleCmd.AddCommand(listArticlesCmd())
	articleCmd.AddCommand(getArticleCmd())
	articleCmd.AddCommand(createArticleCmd())
	articleCmd.AddCommand(updateArticleCmd())
	articleCmd.AddCommand(articleHTMLCmd())

	urlCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	urlCmd.AddCommand(listURLsCmd())
}

func listArticlesCmd() *cobra.Command {
	var page int

	command := &cobra.Command{
		Use:     "list",
		Short:   "list articles",
		Example: "wiki article list --page 2",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := remoteClient()
			if err != nil {
				logrus.Error(err)
				return
			}

			res, err := client.ListArticles(context.Background(), page)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := newTable("ID", "Title", "Revision")
			for _, article := range res.Results {
				title, revision := "", ""
				if r := article.CurrentRevision; r != nil {
					title, revision = r.Title, strconv.Itoa(r.RevisionNumber)
				}
				table.Append([]string{strconv.FormatUint(uint64(article.ID), 10), title, revision})
			}
			table.Render()
			fmt.Printf("%d articles\n", res.Count)
		},
	}

	command.Flags().IntVarP(&page, "page", "n", 1, "page number")

	return command
}

func getArticleCmd() *cobra.Command {
	var articleID uint

	var required = []string{"article-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get an article",
		Example: "wiki article get -a <article-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := remoteClient()
			if err != nil {
				logrus.Error(err)
				return
			}

			article, err := client.GetArticle(context.Background(), articleID)
			if err != nil {
				logrus.Error(err)
				return
			}

			printArticle(article)
		},
	}

	command.Flags().UintVarP(&articleID, "article-id", "a", 0, "article id (required)")

	return command
}

func createArticleCmd() *cobra.Command {
	var parentID uint
	var in wiki.CreateArticleInput

	var required = []string{"title"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create an article",
		Long:    "create an article under a parent, or the root article when no parent is given",
		Example: "wiki article create -p <parent-id> -t <title> -s <slug> -c <content>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}
			if cmd.Flag("parent-id").Changed {
				in.Parent = &parentID
			}

			client, err := remoteClient()
			if err != nil {
				logrus.Error(err)
				return
			}

			article, err := client.CreateArticle(context.Background(), in)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("article created with id: %d", article.ID)
		},
	}

	command.Flags().UintVarP(&parentID, "parent-id", "p", 0, "parent article id")
	command.Flags().StringVarP(&in.Title, "title", "t", "", "title (required)")
	command.Flags().StringVarP(&in.Slug, "slug", "s", "", "slug, defaults to the slugified title")
	command.Flags().StringVarP(&in.Content, "content", "c", "", "markdown content")
	command.Flags().StringVarP(&in.Summary, "summary", "m", "", "summary of the first revision")

	command.Flags().SortFlags = false

	return command
}

func updateArticleCmd() *cobra.Command {
	var articleID uint
	var in wiki.UpdateArticleInput

	var required = []string{"article-id", "title", "content"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "add a revision to an article",
		Example: "wiki article update -a <article-id> -c <content> -t <title> -m <message>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}
			client, err := remoteClient()
			if err != nil {
				logrus.Error(err)
				return
			}

			article, err := client.UpdateArticle(context.Background(), articleID, in)
			if err != nil {
				logrus.Error(err)
				return
			}

			printArticle(article)
		},
	}

	command.Flags().UintVarP(&articleID, "article-id", "a", 0, "article id (required)")
	command.Flags().StringVarP(&in.Title, "title", "t", "", "title (required)")
	command.Flags().StringVarP(&in.Content, "content", "c", "", "markdown content (required)")
	command.Flags().StringVarP(&in.UserMessage, "message", "m", "", "revision message")

	command.Flags().SortFlags = false

	return command
}

func articleHTMLCmd() *cobra.Command {
	var articleID uint

	var required = []string{"article-id"}

	command := &cobra.Command{
		Use:     "html",
		Short:   "print the rendered html of an article",
		Example: "wiki article html -a <article-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, err := remoteClient()
			if err != nil {
				logrus.Error(err)
				return
			}

			html, err := client.ArticleHTML(context.Background(), articleID)
			if err != nil {
				logrus.Error(err)
				return
			}

			fmt.Println(html)
		},
	}

	command.Flags().UintVarP(&articleID, "article-id", "a", 0, "article id (required)")

	return command
}

func listURLsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list url paths",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := remoteClient()
			if err != nil {
				logrus.Error(err)
				return
			}

			paths, err := client.ListURLPaths(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			table := newTable("ID", "Slug", "Level", "Parent", "Article")
			for _, p := range paths {
				parent, article := "", ""
				if p.Parent != nil {
					parent = strconv.FormatUint(uint64(*p.Parent), 10)
				}
				if p.Article != nil {
					article = strconv.FormatUint(uint64(p.Article.ID), 10)
				}
				table.Append([]string{strconv.FormatUint(uint64(p.ID), 10), p.Slug, strconv.Itoa(p.Level), parent, article})
			}
			table.Render()
		},
	}

	return command
}

func printArticle(article *api.ArticleView) {
	table := newTable("ID", "Revision", "Attachments", "Modified")
	revision := ""
	if r := article.CurrentRevision; r != nil {
		revision = strconv.Itoa(r.RevisionNumber)
	}
	table.Append([]string{
		strconv.FormatUint(uint64(article.ID), 10),
		revision,
		strconv.Itoa(len(article.Attachments)),
		article.Modified.Format(time.RFC3339),
	})
	table.Render()

	if r := article.CurrentRevision; r != nil {
		printField("Title", r.Title)
	}
	if article.Owner != nil {
		printField("Owner", article.Owner.Username)
	}
	printField("URL", article.URL)
}
