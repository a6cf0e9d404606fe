package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/inkwell/internal/api/validate"
	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/blog"
	"github.com/baharkarakas/inkwell/internal/models"
)

var errNothingToChange = errors.New("nothing to change: pass at least one field flag")

func postsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and manage posts",
	}
	cmd.AddCommand(
		postsListCmd(s),
		postsShowCmd(s),
		postsCreateCmd(s),
		postsEditCmd(s),
		postsDeleteCmd(s),
		postsMineCmd(s),
	)
	return cmd
}

func postsListCmd(s *session) *cobra.Command {
	var q blog.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := s.store.FetchPosts(cmd.Context()).Wait(cmd.Context())
			if err != nil {
				return err
			}
			page := blog.List(posts, q)
			out := cmd.OutOrStdout()
			if page.Total == 0 {
				fmt.Fprintln(out, "No posts found")
				return nil
			}
			printCards(out, page.Items)
			fmt.Fprintf(out, "\nPage %d of %d (%d posts)\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "search title, excerpt and category")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PerPage, "per-page", blog.DefaultPerPage, "posts per page")
	return cmd
}

func postsShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|slug>",
		Short: "Print one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := s.store.FetchPosts(cmd.Context()).Wait(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := findPost(posts, args[0])
			if !ok {
				return apperr.ErrPostNotFound
			}
			out := cmd.OutOrStdout()
			name := blog.AuthorName(p)
			fmt.Fprintf(out, "%s\n%s\n", p.Title, strings.Repeat("=", len([]rune(p.Title))))
			fmt.Fprintf(out, "[%s] %s · %s · %d min read\n", blog.Initials(name), name, blog.FormatDate(p.CreatedAt), blog.ReadingTime(p.Content))
			fmt.Fprintf(out, "Category: %s\n\n%s\n", blog.Category(p.Post), p.Content)
			return nil
		},
	}
}

func postsCreateCmd(s *session) *cobra.Command {
	var in models.NewPost
	var excerpt, image, category string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.requireLogin(); err != nil {
				return err
			}
			var err error
			if in.Content, err = readBody(in.Content, cmd.InOrStdin()); err != nil {
				return err
			}
			if cmd.Flags().Changed("excerpt") {
				in.Excerpt = &excerpt
			}
			in.Image = &image
			in.Category = &category
			if err := validate.Post(in); err != nil {
				return err
			}
			p, err := s.store.AddPost(cmd.Context(), in).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %q (id %s, slug %s)\n", p.Title, p.ID, blog.Slug(p.Title))
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "post title")
	cmd.Flags().StringVar(&in.Content, "content", "", `post body (HTML); "-" reads stdin`)
	cmd.Flags().StringVar(&excerpt, "excerpt", "", "short summary")
	cmd.Flags().StringVar(&image, "image", "", "cover image URL or data URI")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category")
	return cmd
}

func postsEditCmd(s *session) *cobra.Command {
	var title, content, excerpt, image, category string
	var clearExcerpt, clearImage bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.ownPost(cmd, args[0]); err != nil {
				return err
			}
			f := cmd.Flags()
			var patch models.PostPatch
			if f.Changed("title") {
				patch.Title = &title
			}
			if f.Changed("content") {
				body, err := readBody(content, cmd.InOrStdin())
				if err != nil {
					return err
				}
				patch.Content = &body
			}
			switch {
			case clearExcerpt:
				patch.Excerpt = models.Clear[string]()
			case f.Changed("excerpt"):
				patch.Excerpt = models.Set(excerpt)
			}
			switch {
			case clearImage:
				patch.Image = models.Clear[string]()
			case f.Changed("image"):
				patch.Image = models.Set(image)
			}
			if f.Changed("category") {
				patch.Category = models.Set(category)
			}
			if patch.Empty() {
				return errNothingToChange
			}
			if err := validate.Patch(patch); err != nil {
				return err
			}
			p, err := s.store.UpdatePost(cmd.Context(), args[0], patch).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", p.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", `new body; "-" reads stdin`)
	cmd.Flags().StringVar(&excerpt, "excerpt", "", "new summary")
	cmd.Flags().StringVar(&image, "image", "", "new cover image")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().BoolVar(&clearExcerpt, "clear-excerpt", false, "remove the summary")
	cmd.Flags().BoolVar(&clearImage, "clear-image", false, "remove the cover image")
	cmd.MarkFlagsMutuallyExclusive("excerpt", "clear-excerpt")
	cmd.MarkFlagsMutuallyExclusive("image", "clear-image")
	return cmd
}

func postsDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.ownPost(cmd, args[0]); err != nil {
				return err
			}
			id, err := s.store.DeletePost(cmd.Context(), args[0]).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}

func postsMineCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.requireLogin(); err != nil {
				return err
			}
			if _, err := s.store.FetchPosts(cmd.Context()).Wait(cmd.Context()); err != nil {
				return err
			}
			mine := s.store.MyPosts()
			out := cmd.OutOrStdout()
			if len(mine) == 0 {
				fmt.Fprintln(out, "You have not written any posts yet")
				return nil
			}
			cards := make([]blog.Card, 0, len(mine))
			for _, p := range mine {
				cards = append(cards, blog.CardOf(p))
			}
			printCards(out, cards)
			return nil
		},
	}
}

// ownPost loads the posts and checks that id is one of the caller's.
func (s *session) ownPost(cmd *cobra.Command, id string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if _, err := s.store.FetchPostsIfIdle(cmd.Context()).Wait(cmd.Context()); err != nil {
		return err
	}
	for _, p := range s.store.State().Posts.Items {
		if p.ID != id {
			continue
		}
		if u := s.store.CurrentUser(); u == nil || p.AuthorID != u.ID {
			return apperr.ErrNotPostAuthor
		}
		return nil
	}
	return apperr.ErrPostNotFound
}

func findPost(posts []models.EnrichedPost, key string) (models.EnrichedPost, bool) {
	for _, p := range posts {
		if p.ID == key {
			return p, true
		}
	}
	return blog.FindBySlug(posts, key)
}

func printCards(w io.Writer, cards []blog.Card) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tAUTHOR\tDATE")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Category, c.Author, c.Date)
	}
	_ = tw.Flush()
}
