package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/store"
	"git.lost.host/meutraa/judge/internal/theme"
)

type DefaultRenderer struct {
	Theme  theme.Theme
	buffer strings.Builder
}

// Resolution writes one line per judged note
func (r *DefaultRenderer) Resolution(w io.Writer, res game.Resolution) error {
	r.Fill("%8.3fs  p%-3d %-12v %4d  %s", res.Time, res.Page, res.Archetype, res.NoteID, r.Theme.RenderRanking(res.Ranking))
	return r.flush(w)
}

func (r *DefaultRenderer) Report(w io.Writer, c *game.Chart, d *game.PlayData) error {
	r.Fill("      Score:  %7.0f", d.Score)
	r.Fill("         TP:  %7.2f", d.Tp)
	r.Fill("  Max Combo:  %7v", d.MaxCombo)
	r.Fill("      Notes:  %7v / %v", d.NoteCleared, len(c.Notes))
	for rk := game.Perfect; rk > game.Undetermined; rk-- {
		r.Fill("%11s:  %7v", r.Theme.RenderRanking(rk), d.Counts[rk])
	}
	r.Fill("      Clear:  %s", r.Theme.RenderClear(d.Clear(len(c.Notes))))
	return r.flush(w)
}

func (r *DefaultRenderer) History(w io.Writer, records []store.Record) error {
	if len(records) == 0 {
		r.Fill("no records")
		return r.flush(w)
	}
	for _, rec := range records {
		r.Fill("%s  %7.0f  %6.2f  %5v  %-8s %s",
			rec.CreatedAt.Local().Format(time.RFC3339), rec.Score, rec.Tp, rec.MaxCombo, rec.Windows, r.Theme.RenderClear(rec.Clear))
	}
	return r.flush(w)
}

func (r *DefaultRenderer) Fill(format string, args ...interface{}) {
	r.buffer.WriteString(fmt.Sprintf(format, args...))
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) flush(w io.Writer) error {
	_, err := io.WriteString(w, r.buffer.String())
	r.buffer.Reset()
	return err
}
