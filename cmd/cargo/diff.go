package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	difflib "github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/dom"
	"github.com/vango-dev/cargo/pkg/render"
	"github.com/vango-dev/cargo/pkg/vdom"
)

type diffOptions struct {
	apply   bool
	unified bool
	target  string
	context int
}

func diffCmd() *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff OLD.html NEW.html",
		Short: "Print the changes that turn OLD into NEW",
		Long: `Hydrate the markup of OLD against the virtual tree of NEW and print
the resulting change-set, one change per line.

By default the <body> elements are compared; --id compares the elements
with that id instead.

With --apply the changes are applied to OLD and the resulting markup is
printed. With --unified a unified diff of OLD before and after applying
is printed instead.

Examples:
  cargo diff before.html after.html
  cargo diff --id app before.html after.html
  cargo diff --unified before.html after.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			return runDiff(cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.apply, "apply", "a", false, "Apply the changes and print the resulting markup")
	cmd.Flags().BoolVarP(&opts.unified, "unified", "u", false, "Apply the changes and print a unified diff")
	cmd.Flags().StringVar(&opts.target, "id", "", "Compare the elements with this id instead of <body>")
	cmd.Flags().IntVarP(&opts.context, "context", "C", 3, "Context lines for --unified")

	return cmd
}

func runDiff(stdout, stderr io.Writer, logger *slog.Logger, oldPath, newPath string, opts diffOptions) error {
	doc, oldNode, err := loadTarget(oldPath, opts.target)
	if err != nil {
		return err
	}
	_, newNode, err := loadTarget(newPath, opts.target)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.RendererConfig{Pretty: true, Indent: "  "})
	before, err := renderer.RenderToString(vdom.FromHTML(oldNode))
	if err != nil {
		return errors.New("E080").Wrap(err)
	}

	changes := vdom.Diff(vdom.DiffProps{Node: oldNode, VNode: vdom.FromHTML(newNode)})

	if !opts.apply && !opts.unified {
		if len(changes) > 0 {
			fmt.Fprintln(stdout, changes.String())
		}
		fmt.Fprintf(stderr, "%d changes\n", len(changes))
		return nil
	}

	if err := vdom.NewApplier(doc, vdom.WithLogger(logger)).ApplyAll(changes); err != nil {
		return errors.New("E060").WithSubject(oldPath).Wrap(err)
	}
	after, err := renderer.RenderToString(vdom.FromHTML(oldNode))
	if err != nil {
		return errors.New("E080").Wrap(err)
	}

	if !opts.unified {
		_, err := io.WriteString(stdout, after)
		return err
	}

	patch, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: oldPath,
		ToFile:   newPath,
		Context:  opts.context,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, patch)
	return err
}

// loadTarget parses the document at path and returns the element to
// compare: the element with id, or <body>.
func loadTarget(path, id string) (*dom.Document, *html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.New("E140").WithSubject(path).Wrap(err)
	}
	defer f.Close()

	doc, err := dom.Load(f)
	if err != nil {
		return nil, nil, errors.New("E141").WithSubject(path).Wrap(err)
	}

	var node *html.Node
	if id != "" {
		node = doc.GetElementByID(id)
	} else {
		node = doc.Body()
	}
	if node == nil {
		e := errors.New("E141").WithSubject(path)
		if id != "" {
			e.WithDetail(fmt.Sprintf("No element with id %q.", id))
		}
		return nil, nil, e
	}
	return doc, node, nil
}
