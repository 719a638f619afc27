// Package view keeps the dashboard's document model: status indicators,
// table bodies, hideable sections and per-panel faults, all addressed by
// stable IDs. Renderers mutate a Document and the page is produced from a
// Snapshot of it.
package view

import (
	"sync"
	"time"
)

// Status is the class of a status indicator or a flagged cell.
type Status string

const (
	StatusNone Status = ""
	StatusUp   Status = "green"
	StatusWarn Status = "orange"
	StatusDown Status = "red"
)

// Button submits a roll command for Instrument and State.
type Button struct {
	Label      string
	Instrument string
	State      string
	Confirmed  bool
}

// Cell is one table cell. Lines, when set, are rendered one per line in
// place of Text.
type Cell struct {
	Text    string
	Lines   []string
	Class   Status
	Header  bool
	Buttons []Button
}

// Row is a table row. ID is optional and makes the row addressable by
// PatchRow.
type Row struct {
	ID    string
	Cells []Cell
}

// Indicator is a status light with an optional caption.
type Indicator struct {
	Status Status
	Text   string
}

// Section is a region that can be hidden, retitled and given actions.
type Section struct {
	Hidden  bool
	Title   string
	Actions []Button
}

// Fault records the last failed update of a panel.
type Fault struct {
	Err string
	At  time.Time
}

// Document is safe for concurrent use. Each panel is expected to own a
// disjoint set of IDs.
type Document struct {
	mu         sync.RWMutex
	indicators map[string]Indicator
	tables     map[string][]Row
	sections   map[string]Section
	faults     map[string]Fault
	updated    map[string]time.Time
	now        func() time.Time
}

func NewDocument() *Document {
	return &Document{
		indicators: make(map[string]Indicator),
		tables:     make(map[string][]Row),
		sections:   make(map[string]Section),
		faults:     make(map[string]Fault),
		updated:    make(map[string]time.Time),
		now:        time.Now,
	}
}

// SetIndicator replaces the status and caption of indicator id.
func (d *Document) SetIndicator(id string, st Status, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.indicators[id] = Indicator{Status: st, Text: text}
}

func (d *Document) Indicator(id string) (Indicator, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ind, ok := d.indicators[id]
	return ind, ok
}

// SetRows replaces the body of table with rows in one step, so readers
// never see a partly built table.
func (d *Document) SetRows(table string, rows []Row) {
	rows = cloneRows(rows)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[table] = rows
}

// Rows returns a copy of the body of table.
func (d *Document) Rows(table string) []Row {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneRows(d.tables[table])
}

// PatchRow applies fn to the row of table whose ID is rowID. It reports
// false when no such row exists.
func (d *Document) PatchRow(table, rowID string, fn func(*Row)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	rows := d.tables[table]
	for i := range rows {
		if rows[i].ID == rowID {
			fn(&rows[i])
			return true
		}
	}
	return false
}

func (d *Document) SetSection(id string, s Section) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sections[id] = s
}

// HideSection hides section id and keeps its title and actions.
func (d *Document) HideSection(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.sections[id]
	s.Hidden = true
	d.sections[id] = s
}

// Section returns the state of section id. Unknown sections are hidden.
func (d *Document) Section(id string) Section {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.sections[id]
	if !ok {
		return Section{Hidden: true}
	}
	return s
}

// SetFault marks panel as failed.
func (d *Document) SetFault(panel string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults[panel] = Fault{Err: err.Error(), At: d.now()}
}

// MarkUpdated clears any fault on panel and stamps its update time.
func (d *Document) MarkUpdated(panel string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.faults, panel)
	d.updated[panel] = d.now()
}

func (d *Document) Fault(panel string) (Fault, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, ok := d.faults[panel]
	return f, ok
}

// Snapshot is a point-in-time copy of a Document.
type Snapshot struct {
	Indicators map[string]Indicator
	Tables     map[string][]Row
	Sections   map[string]Section
	Faults     map[string]Fault
	Updated    map[string]time.Time
	Taken      time.Time
}

func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := Snapshot{
		Indicators: make(map[string]Indicator, len(d.indicators)),
		Tables:     make(map[string][]Row, len(d.tables)),
		Sections:   make(map[string]Section, len(d.sections)),
		Faults:     make(map[string]Fault, len(d.faults)),
		Updated:    make(map[string]time.Time, len(d.updated)),
		Taken:      d.now(),
	}
	for k, v := range d.indicators {
		s.Indicators[k] = v
	}
	for k, v := range d.tables {
		s.Tables[k] = cloneRows(v)
	}
	for k, v := range d.sections {
		v.Actions = append([]Button(nil), v.Actions...)
		s.Sections[k] = v
	}
	for k, v := range d.faults {
		s.Faults[k] = v
	}
	for k, v := range d.updated {
		s.Updated[k] = v
	}
	return s
}

func cloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		cells := make([]Cell, len(r.Cells))
		for j, c := range r.Cells {
			c.Lines = append([]string(nil), c.Lines...)
			c.Buttons = append([]Button(nil), c.Buttons...)
			cells[j] = c
		}
		out[i] = Row{ID: r.ID, Cells: cells}
	}
	return out
}
