package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// Layout describes how panels are arranged on the page.
type Layout struct {
	Title string
	// Action is where roll buttons post their form.
	Action string
	// Reload, when non-zero, makes the browser re-fetch ReloadURL on that
	// interval.
	Reload    time.Duration
	ReloadURL string
	Panels    []Panel
}

// Panel groups the indicators and tables of one monitored subsystem.
// When Section is set the panel is shown, titled and given actions
// according to that section's state.
type Panel struct {
	ID         string
	Title      string
	Indicators []IndicatorSpec
	Tables     []TableSpec
	Section    string
}

type IndicatorSpec struct {
	ID    string
	Label string
}

type TableSpec struct {
	ID      string
	Title   string
	Columns []string
}

type pageView struct {
	Title         string
	ReloadSeconds int
	ReloadURL     string
	Taken         time.Time
	Lights        []indicatorView
	Panels        []panelView
}

type panelView struct {
	ID      string
	Title   string
	Hidden  bool
	Fault   *Fault
	Updated time.Time
	Tables  []tableView
	Actions []buttonView
}

type indicatorView struct {
	ID    string
	Label string
	Class Status
	Text  string
}

type tableView struct {
	ID      string
	Title   string
	Columns []string
	Rows    []rowView
}

type rowView struct {
	ID    string
	Cells []cellView
}

type cellView struct {
	Text    string
	Lines   []string
	Class   Status
	Header  bool
	Buttons []buttonView
}

type buttonView struct {
	Action string
	Button
}

// Render writes the HTML page for snapshot s arranged by l.
func Render(w io.Writer, l Layout, s Snapshot) error {
	if err := pageTmpl.Execute(w, buildPage(l, s)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func buildPage(l Layout, s Snapshot) pageView {
	p := pageView{
		Title:         l.Title,
		ReloadSeconds: int(l.Reload / time.Second),
		ReloadURL:     l.ReloadURL,
		Taken:         s.Taken,
	}

	buttons := func(bs []Button) []buttonView {
		out := make([]buttonView, len(bs))
		for i, b := range bs {
			out[i] = buttonView{Action: l.Action, Button: b}
		}
		return out
	}

	for _, panel := range l.Panels {
		for _, spec := range panel.Indicators {
			ind := s.Indicators[spec.ID]
			p.Lights = append(p.Lights, indicatorView{
				ID:    spec.ID,
				Label: spec.Label,
				Class: ind.Status,
				Text:  ind.Text,
			})
		}

		pv := panelView{
			ID:      panel.ID,
			Title:   panel.Title,
			Updated: s.Updated[panel.ID],
		}
		if f, ok := s.Faults[panel.ID]; ok {
			pv.Fault = &f
		}
		if panel.Section != "" {
			sec, ok := s.Sections[panel.Section]
			pv.Hidden = !ok || sec.Hidden
			if sec.Title != "" {
				pv.Title = sec.Title
			}
			pv.Actions = buttons(sec.Actions)
		}

		for _, spec := range panel.Tables {
			tv := tableView{ID: spec.ID, Title: spec.Title, Columns: spec.Columns}
			for _, r := range s.Tables[spec.ID] {
				rv := rowView{ID: r.ID}
				for _, c := range r.Cells {
					rv.Cells = append(rv.Cells, cellView{
						Text:    c.Text,
						Lines:   c.Lines,
						Class:   c.Class,
						Header:  c.Header,
						Buttons: buttons(c.Buttons),
					})
				}
				tv.Rows = append(tv.Rows, rv)
			}
			pv.Tables = append(pv.Tables, tv)
		}
		p.Panels = append(p.Panels, pv)
	}
	return p
}
