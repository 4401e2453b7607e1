package vault

import (
	"sort"
	"strings"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

// OrderMode selects the active ordering strategy for the projection.
// Exactly one mode is active at a time.
type OrderMode int

const (
	// OrderName sorts by account name ascending, grouped by first letter.
	OrderName OrderMode = iota
	// OrderCategory groups by category with "Other" always last, names
	// ascending within each category.
	OrderCategory
	// OrderDate groups by creation year, most recent first, names
	// ascending within each year.
	OrderDate
)

// categorySentinel replaces models.CategoryOther as the sort key so the
// fallback category lands after every real category name.
const categorySentinel = "\uffff"

// EmptyKind distinguishes why a rendered sequence has no entries.
type EmptyKind int

const (
	// EmptyNone means the sequence has at least one entry.
	EmptyNone EmptyKind = iota
	// EmptyCatalog means no accounts exist at all.
	EmptyCatalog
	// EmptyNoMatches means accounts exist but the filter excluded all of them.
	EmptyNoMatches
)

// Entry is the display-facing projection of exactly one account. It is
// derived on every Render and never a second source of truth.
type Entry struct {
	// Account is a copy of the current record fields.
	Account models.Account
	// Selected marks the single selected record, if any.
	Selected bool
	// GroupLabel is the group key this entry was clustered under.
	GroupLabel string
}

// Row is one element of the rendered sequence: either a separator that
// opens a new group or an account entry.
type Row struct {
	// Separator is true for synthetic group markers.
	Separator bool
	// Label is the separator text; empty for entry rows.
	Label string
	// Entry is the account entry; nil for separator rows.
	Entry *Entry
}

// Sequence is the full rendered output of the projection.
type Sequence struct {
	// Rows is the ordered mix of separators and entries.
	Rows []Row
	// Empty reports why Rows is empty, when it is.
	Empty EmptyKind
}

// Projection derives the ordered, grouped, optionally filtered sequence of
// records for display. It is always recomputed from the store on Render.
type Projection struct {
	store     *Store
	selection *Selection
	mode      OrderMode
	// filter is nil when no search filter is active. A non-nil empty set
	// is a real filter that excludes everything.
	filter map[string]bool
}

// NewProjection constructs a projection over the given store and selection.
func NewProjection(store *Store, selection *Selection) *Projection {
	return &Projection{store: store, selection: selection, mode: OrderName}
}

// SetOrder switches the active ordering mode. The next Render re-derives
// the full sequence from the top.
func (p *Projection) SetOrder(mode OrderMode) {
	p.mode = mode
}

// Order returns the active ordering mode.
func (p *Projection) Order() OrderMode {
	return p.mode
}

// SetFilter narrows the projection to accounts whose name is in names.
// A nil slice clears the filter and shows the whole catalog.
func (p *Projection) SetFilter(names []string) {
	if names == nil {
		p.filter = nil
		return
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	p.filter = set
}

// Render derives the current sequence: filter, sort by the active mode,
// then walk the result emitting a separator before the first entry of each
// new group key.
func (p *Projection) Render() Sequence {
	all := p.store.List()

	records := all
	if p.filter != nil {
		records = make([]models.Account, 0, len(all))
		for _, rec := range all {
			if p.filter[rec.Name] {
				records = append(records, rec)
			}
		}
	}

	if len(records) == 0 {
		if len(all) == 0 {
			return Sequence{Empty: EmptyCatalog}
		}
		return Sequence{Empty: EmptyNoMatches}
	}

	p.sortRecords(records)

	selectedID := ""
	if p.selection != nil {
		if id, ok := p.selection.Current(); ok {
			selectedID = id
		}
	}

	var rows []Row
	lastGroup := ""
	first := true
	for _, rec := range records {
		group := p.groupKey(rec)
		if first || group != lastGroup {
			rows = append(rows, Row{Separator: true, Label: group})
			lastGroup = group
			first = false
		}
		rows = append(rows, Row{Entry: &Entry{
			Account:    rec,
			Selected:   rec.ID == selectedID,
			GroupLabel: group,
		}})
	}
	return Sequence{Rows: rows}
}

func (p *Projection) sortRecords(records []models.Account) {
	switch p.mode {
	case OrderCategory:
		sort.SliceStable(records, func(i, j int) bool {
			ci, cj := orderCategory(records[i].Category), orderCategory(records[j].Category)
			if ci != cj {
				return ci < cj
			}
			return records[i].Name < records[j].Name
		})
	case OrderDate:
		// Years descend so the most recent group comes first.
		sort.SliceStable(records, func(i, j int) bool {
			yi, yj := records[i].Year(), records[j].Year()
			if yi != yj {
				return yi > yj
			}
			return records[i].Name < records[j].Name
		})
	default:
		// Names are unique at any instant, so there are no ties to break.
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Name < records[j].Name
		})
	}
}

func (p *Projection) groupKey(rec models.Account) string {
	switch p.mode {
	case OrderCategory:
		// The sentinel is sort-only; separators show the raw category.
		return rec.Category
	case OrderDate:
		return rec.Year()
	default:
		return firstLetter(rec.Name)
	}
}

// orderCategory returns the category sort key, pushing the fallback
// category behind everything else.
func orderCategory(category string) string {
	if category == models.CategoryOther {
		return categorySentinel
	}
	return category
}

// firstLetter returns the upper-cased first character of name.
func firstLetter(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}
