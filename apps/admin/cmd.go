package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/masomo-apply/apps/shared"
	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/core/document"
	"github.com/trezcool/masomo-apply/core/export"
	"github.com/trezcool/masomo-apply/core/profile"
	"github.com/trezcool/masomo-apply/storage/database"
)

var (
	isTerminalFunc = term.IsTerminal // mockable
	migrateFunc    = database.Migrate // mockable

	errTerminalOutput = errors.New("refusing to write a PDF to a terminal, use --output")
	errNotSQLStorage  = errors.New("migrations only apply to the sqlite and postgres storage drivers")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	out    io.Writer
	app    *shared.App
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Masomo Apply administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.AddCommand(cli.migrateCmd(), cli.exportCmd(), cli.programsCmd(), cli.applicationsCmd())
	return root
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadApp hydrates the stores on first use.
func (cli *commandLine) loadApp(ctx context.Context) (*shared.App, error) {
	if cli.app != nil {
		return cli.app, nil
	}
	app, err := shared.Open(ctx, cli.conf, cli.logger)
	if err != nil {
		return nil, err
	}
	cli.app = app
	return app, nil
}

func (cli *commandLine) close() {
	if cli.app != nil {
		if err := cli.app.Close(); err != nil {
			cli.logger.Error("failed to close storage", err)
		}
	}
}

// Migrations

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, down, status, version, redo, reset, ...)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch cli.conf.Storage.Driver {
			case core.StorageSQLite, core.StoragePostgres:
			default:
				return errNotSQLStorage
			}
			db, err := database.Open(cli.conf)
			if err != nil {
				return err
			}
			defer db.Close()
			return cli.migrate(cmd.Context(), db.DB, args)
		},
	}
}

func (cli *commandLine) migrate(ctx context.Context, db *sql.DB, args []string) error {
	return migrateFunc(ctx, db, database.Dialect(cli.conf), args[0], args[1:]...)
}

// Exports

func (cli *commandLine) exportCmd() *cobra.Command {
	var output string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the profile or an application as PDF",
	}
	exportCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file; \"-\" writes to stdout")

	exportCmd.AddCommand(
		&cobra.Command{
			Use:   "profile",
			Short: "Export the student profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := cli.loadApp(cmd.Context())
				if err != nil {
					return err
				}
				data := app.Profile.Data()
				desc := export.RenderProfile(data, app.Documents.List())
				name := export.ProfileFilename(data.Personal.FirstName, data.Personal.LastName)
				return cli.writePDF(app, "profile", desc, output, name)
			},
		},
		&cobra.Command{
			Use:   "application ID",
			Short: "Export one application",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := cli.loadApp(cmd.Context())
				if err != nil {
					return err
				}
				appl, err := app.Applications.Get(args[0])
				if err != nil {
					return errors.Wrapf(err, "application %q", args[0])
				}
				src := export.ResolveApplication(appl, app.Catalog, app.Programs, app.Profile.Data().Personal)
				var ids []string
				for _, s := range appl.Supplements {
					if s.LinkedDocumentID != nil {
						ids = append(ids, *s.LinkedDocumentID)
					}
				}
				desc := export.RenderApplication(src, document.Linked(app.Documents, ids))
				name := export.ApplicationFilename(src.TargetName(), src.Student.LastName)
				return cli.writePDF(app, "application", desc, output, name)
			},
		},
	)
	return exportCmd
}

// writePDF writes to output, to the derived filename when output is empty, or to stdout when it is "-".
func (cli *commandLine) writePDF(app *shared.App, kind string, desc export.Description, output, filename string) error {
	data, err := export.SerializePDF(desc)
	app.Metrics.Exported(kind, err)
	if err != nil {
		return errors.Wrapf(err, "exporting %s", kind)
	}

	switch output {
	case "-":
		if f, ok := cli.out.(*os.File); ok && isTerminalFunc(int(f.Fd())) {
			return errTerminalOutput
		}
		_, err = cli.out.Write(data)
		return err
	case "":
		output = filename
	}
	if err = os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(err, "writing export")
	}
	fmt.Fprintf(cli.out, "wrote %s (%d bytes)\n", output, len(data))
	return nil
}

// Listings

func (cli *commandLine) programsCmd() *cobra.Command {
	programsCmd := &cobra.Command{Use: "programs", Short: "Manage programs"}
	programsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := cli.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tUNIVERSITY\tCOUNTRY\tDEADLINE")
			for _, p := range app.Programs.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.University, p.Country, p.Deadline)
			}
			return w.Flush()
		},
	})
	return programsCmd
}

func (cli *commandLine) applicationsCmd() *cobra.Command {
	applicationsCmd := &cobra.Command{Use: "applications", Short: "Manage applications"}
	applicationsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := cli.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTARGET\tSTATUS\tSUPPLEMENTS")
			for _, a := range app.Applications.List() {
				target := a.UniversityID
				src := export.ResolveApplication(a, app.Catalog, app.Programs, profile.Personal{})
				if name := src.TargetName(); name != "" {
					target = name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.ID, target, a.Status, len(a.Supplements))
			}
			return w.Flush()
		},
	})
	return applicationsCmd
}
