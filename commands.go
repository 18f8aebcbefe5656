package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"modual-backend/internal/geo"
)

// keyLister wird vom SQLite-Speicher erfüllt.
type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

func newClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "cache-leeren [produkte|docs|alle]",
		Short:     "Zwischengespeicherte API-Antworten löschen",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"produkte", "docs", "alle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "alle"
			if len(args) == 1 {
				target = args[0]
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if target == "produkte" || target == "alle" {
				a.products.ClearCache(ctx)
			}
			if target == "docs" || target == "alle" {
				a.docs.ClearCache(ctx)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cache geleert: %s\n", target)
			if kl, ok := a.store.(keyLister); ok {
				keys, err := kl.Keys(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "verbleibende einträge: %d\n", len(keys))
				for _, k := range keys {
					fmt.Fprintf(out, "  %s\n", k)
				}
			}
			return nil
		},
	}
}

func newInstallersCmd() *cobra.Command {
	var f geo.Filter
	cmd := &cobra.Command{
		Use:   "installateure",
		Short: "Installateure nach PLZ-Umkreis und Suchtext filtern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.installers.Filter(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printInstallers(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&f.PostalCode, "plz", "", "Postleitzahl, filtert im Umkreis von 30 km")
	cmd.Flags().StringVar(&f.Search, "suche", "", "Suchtext in Name, Ort und Kontaktperson")
	cmd.Flags().BoolVar(&f.CertifiedOnly, "zertifiziert", false, "nur zertifizierte Installateure")
	return cmd
}

func printInstallers(out io.Writer, res geo.Result) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPLZ\tORT\tZERTIFIZIERT\tDISTANZ")
	for _, inst := range res.Installers {
		distance := "–"
		if res.Origin != nil {
			distance = fmt.Sprintf("%.1f km", geo.DistanceKm(*res.Origin, inst.Location()))
		}
		certified := "nein"
		if inst.Certified {
			certified = "ja"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", inst.ID, inst.Name, inst.PostalCode, inst.City, certified, distance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d treffer\n", len(res.Installers))
	return err
}

func newSearchCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "suche <anfrage>",
		Short: "Wissensdatenbank durchsuchen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if refresh {
				if _, _, err := a.docs.Overview(ctx, true); err != nil {
					return err
				}
			}
			res, meta, err := a.docs.Search(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if meta.Stale() {
				fmt.Fprintf(out, "hinweis: veralteter stand vom %s\n", meta.FetchedAt.Format("02.01.2006 15:04"))
			}
			if !res.Active {
				fmt.Fprintln(out, "anfrage zu kurz, mindestens zwei zeichen")
				return nil
			}
			if len(res.Results) == 0 {
				fmt.Fprintln(out, "keine treffer")
				return nil
			}
			for _, r := range res.Results {
				fmt.Fprintf(out, "%.2f  %s  %s\n", r.Score, r.ID, r.Title)
				if ex := strings.TrimSpace(r.Excerpt); ex != "" {
					fmt.Fprintf(out, "      %s\n", ex)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "cache umgehen und neu laden")
	return cmd
}
