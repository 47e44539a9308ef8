package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/cleanup"
	"go.trai.ch/shelf/internal/ui/style"
)

type resolvedLibrary struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Trusted       bool   `json:"trusted"`
	Resolver      string `json:"resolver"`
	Source        string `json:"source"`
	DirectoryName string `json:"directoryName"`
}

func resolvedView(libs []domain.ResolvedLibrary) []resolvedLibrary {
	out := make([]resolvedLibrary, 0, len(libs))
	for _, lib := range libs {
		out = append(out, resolvedLibrary{
			Name:          lib.Config.Name,
			Version:       lib.Version,
			Trusted:       lib.Trusted,
			Resolver:      lib.Resolver,
			Source:        lib.Config.Source.Description(),
			DirectoryName: lib.DirectoryName,
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func trustLabel(trusted bool) string {
	if trusted {
		return style.Caution.Render("trusted")
	}
	return style.Muted.Render("untrusted")
}

func renderResolved(w io.Writer, libs []domain.ResolvedLibrary) error {
	if len(libs) == 0 {
		_, err := fmt.Fprintln(w, style.Muted.Render("no libraries"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, lib := range libs {
		_, _ = fmt.Fprintf(tw, "%s %s@%s\t%s\t%s resolver\t%s\n",
			style.Success.Render(style.Check), lib.Config.Name, lib.Version,
			trustLabel(lib.Trusted), lib.Resolver, lib.Config.Source.Description())
	}
	return tw.Flush()
}

func renderLoad(w io.Writer, result *domain.LoadResult) error {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Header.Render("Execution"), result.ExecutionID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, lib := range result.Libraries {
		_, _ = fmt.Fprintf(tw, "%s %s@%s\t%s\t%s\n",
			style.Success.Render(style.Check), lib.Name, lib.Version, trustLabel(lib.Trusted), lib.DirectoryName)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, style.Header.Render("Classpath"))
	for _, url := range result.Classpath {
		_, _ = fmt.Fprintf(w, "  %s\n", url)
	}

	_, _ = fmt.Fprintln(w, style.Header.Render("Globals"))
	names := make([]string, 0, len(result.Globals))
	for name := range result.Globals {
		names = append(names, name)
	}
	slices.Sort(names)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\n", name, style.Muted.Render(result.Globals[name]))
	}
	return tw.Flush()
}

func renderEntries(w io.Writer, infos []domain.CacheEntryInfo) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, style.Muted.Render("cache is empty"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, style.Header.Render("KEY")+"\tPOPULATED\tLAST ACCESS\tSIZE\tSTATE")
	for _, info := range infos {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			info.Key[:min(len(info.Key), 12)],
			timestamp(info.PopulatedAt, info.Populated),
			timestamp(info.LastAccess, info.Accessed),
			humanSize(info.Size),
			entryState(info))
	}
	return tw.Flush()
}

func renderReport(w io.Writer, report cleanup.Report) error {
	_, err := fmt.Fprintf(w, "%s scanned %d, deleted %d, skipped %d, failed %d\n",
		style.Header.Render("Sweep"), report.Scanned, report.Deleted, report.Skipped, report.Failed)
	return err
}

func timestamp(t time.Time, ok bool) string {
	if !ok {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func entryState(info domain.CacheEntryInfo) string {
	switch {
	case info.WriteLocked:
		return style.Caution.Render(style.Dot + " writing")
	case info.Readers > 0:
		return style.Caution.Render(fmt.Sprintf("%s %d reading", style.Dot, info.Readers))
	case !info.Populated:
		return style.Failure.Render(style.Cross + " incomplete")
	default:
		return style.Success.Render(style.Circle + " idle")
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
