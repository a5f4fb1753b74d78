// Package location drives the country, state and city cascade shared by the
// place, restaurant and geo forms.
//
// The controller does no I/O. Every method that needs a list returns Fetch
// values; the caller runs them and hands the outcome back through Loaded.
// Each level keeps a generation counter, and a result whose generation is
// no longer current is dropped, so a slow response for an old parent can
// never overwrite the list for the parent now selected.
package location

import (
	"strings"

	"wanderdesk/internal/model"
)

// Level is one tier of the cascade.
type Level int

const (
	Country Level = iota
	State
	City
)

// Levels lists every tier, root first.
var Levels = []Level{Country, State, City}

func (l Level) String() string {
	switch l {
	case Country:
		return "country"
	case State:
		return "state"
	case City:
		return "city"
	default:
		return "unknown"
	}
}

// Status is the load state of one level's reference list.
type Status int

const (
	Empty Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "empty"
	}
}

// Fetch asks the caller to load the list for Level scoped to ParentID.
type Fetch struct {
	Level    Level
	ParentID int64
	Gen      uint64
}

// Result is the outcome of a Fetch.
type Result struct {
	Fetch
	Items []model.LocationRef
	Err   error
}

// Selection is the display names and resolved ids held by a form.
// A zero id means unresolved.
type Selection struct {
	Country   string
	State     string
	City      string
	CountryID int64
	StateID   int64
	CityID    int64
}

// Resolver maps a display name to an id using the latest list loaded for
// level. It returns 0 when nothing matches.
type Resolver interface {
	Lookup(level Level, name string) int64
}

type levelState struct {
	name   string
	id     int64
	status Status
	items  []model.LocationRef
	parent int64
	gen    uint64
	err    error
}

// Controller holds the cascade for one open form.
type Controller struct {
	levels [3]levelState
	depth  Level
}

// New creates a controller whose deepest level is depth. A state form
// stops at Country; place and restaurant forms go to City.
func New(depth Level) *Controller {
	if depth < Country || depth > City {
		depth = City
	}
	return &Controller{depth: depth}
}

// Depth returns the deepest level managed.
func (c *Controller) Depth() Level { return c.depth }

// Start returns the unconditional country fetch.
func (c *Controller) Start() []Fetch {
	return c.reconcile()
}

// Prefill installs names and ids from an existing record. Lists for levels
// whose parent id is already known are requested immediately; the rest
// follow as parent ids are backfilled.
func (c *Controller) Prefill(sel Selection) []Fetch {
	names := [3]string{sel.Country, sel.State, sel.City}
	ids := [3]int64{sel.CountryID, sel.StateID, sel.CityID}
	for _, l := range c.active() {
		c.levels[l].name = strings.TrimSpace(names[l])
		c.levels[l].id = ids[l]
		if c.levels[l].id == 0 {
			c.levels[l].id = lookup(c.levels[l].items, c.levels[l].name)
		}
	}
	return c.reconcile()
}

// Select records a display name for level, resolves its id from the loaded
// list when possible, clears every lower level, and returns the fetch for
// the next level when the id resolved.
func (c *Controller) Select(level Level, name string) []Fetch {
	if !c.valid(level) {
		return nil
	}
	ls := &c.levels[level]
	ls.name = strings.TrimSpace(name)
	ls.id = lookup(ls.items, ls.name)
	c.clearBelow(level)
	return c.reconcile()
}

// Pick is Select with a known reference, as chosen from a dropdown.
func (c *Controller) Pick(level Level, ref model.LocationRef) []Fetch {
	if !c.valid(level) {
		return nil
	}
	ls := &c.levels[level]
	ls.name = strings.TrimSpace(ref.Name)
	ls.id = ref.ID
	c.clearBelow(level)
	return c.reconcile()
}

// Begin marks the fetch as in flight. Fetches returned by the controller
// are already begun; Begin exists for callers that retry a level.
func (c *Controller) Begin(level Level) []Fetch {
	if !c.valid(level) {
		return nil
	}
	var parent int64
	if level > Country {
		parent = c.levels[level-1].id
		if parent == 0 {
			return nil
		}
	}
	return []Fetch{c.issue(level, parent)}
}

// Loaded applies a fetch result. It reports false when the result is stale
// and was discarded. Follow-up fetches unlocked by backfilled ids are
// returned.
func (c *Controller) Loaded(r Result) ([]Fetch, bool) {
	if !c.valid(r.Level) {
		return nil, false
	}
	ls := &c.levels[r.Level]
	if r.Gen != ls.gen || ls.status != Loading {
		return nil, false
	}
	if r.Err != nil {
		ls.status = Failed
		ls.err = r.Err
		ls.items = nil
		return nil, true
	}
	ls.status = Ready
	ls.err = nil
	ls.items = append([]model.LocationRef(nil), r.Items...)

	if ls.id == 0 && ls.name != "" {
		ls.id = lookup(ls.items, ls.name)
	}
	if ls.name == "" && ls.id != 0 {
		for _, item := range ls.items {
			if item.ID == ls.id {
				ls.name = item.Name
				break
			}
		}
	}
	return c.reconcile(), true
}

// Resolve returns the id held for level, or the id of the entry in the
// latest list whose name matches, or 0.
func (c *Controller) Resolve(level Level) int64 {
	if !c.valid(level) {
		return 0
	}
	ls := c.levels[level]
	if ls.id != 0 {
		return ls.id
	}
	return lookup(ls.items, ls.name)
}

// Lookup matches name against the latest list for level, ignoring case
// and surrounding space.
func (c *Controller) Lookup(level Level, name string) int64 {
	if !c.valid(level) {
		return 0
	}
	return lookup(c.levels[level].items, name)
}

// CanSubmit reports whether every listed level resolves to an id.
func (c *Controller) CanSubmit(levels ...Level) bool {
	if len(levels) == 0 {
		levels = c.active()
	}
	for _, l := range levels {
		if c.Resolve(l) == 0 {
			return false
		}
	}
	return true
}

// Selection returns the current names and ids.
func (c *Controller) Selection() Selection {
	return Selection{
		Country:   c.levels[Country].name,
		State:     c.levels[State].name,
		City:      c.levels[City].name,
		CountryID: c.levels[Country].id,
		StateID:   c.levels[State].id,
		CityID:    c.levels[City].id,
	}
}

// Name returns the display name held for level.
func (c *Controller) Name(level Level) string {
	if !c.valid(level) {
		return ""
	}
	return c.levels[level].name
}

// Items returns the loaded reference list for level.
func (c *Controller) Items(level Level) []model.LocationRef {
	if !c.valid(level) {
		return nil
	}
	return c.levels[level].items
}

// Status returns the load state of level and the last load error.
func (c *Controller) Status(level Level) (Status, error) {
	if !c.valid(level) {
		return Empty, nil
	}
	return c.levels[level].status, c.levels[level].err
}

func (c *Controller) valid(level Level) bool {
	return level >= Country && level <= c.depth
}

func (c *Controller) active() []Level {
	return Levels[:c.depth+1]
}

func (c *Controller) clearBelow(level Level) {
	for l := level + 1; l <= c.depth; l++ {
		ls := &c.levels[l]
		ls.name = ""
		ls.id = 0
		ls.status = Empty
		ls.items = nil
		ls.parent = 0
		ls.err = nil
		// in-flight results for the cleared level become stale
		ls.gen++
	}
}

// reconcile issues a fetch for every level whose list is missing or was
// loaded for a different parent than the one now resolved.
func (c *Controller) reconcile() []Fetch {
	var fetches []Fetch
	for _, l := range c.active() {
		ls := &c.levels[l]
		var parent int64
		if l > Country {
			parent = c.Resolve(l - 1)
			if parent == 0 {
				continue
			}
		}
		switch {
		case ls.status == Empty:
		case ls.parent != parent:
		default:
			continue
		}
		fetches = append(fetches, c.issue(l, parent))
	}
	return fetches
}

func (c *Controller) issue(level Level, parent int64) Fetch {
	ls := &c.levels[level]
	ls.gen++
	ls.status = Loading
	ls.parent = parent
	ls.err = nil
	return Fetch{Level: level, ParentID: parent, Gen: ls.gen}
}

func lookup(items []model.LocationRef, name string) int64 {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0
	}
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Name), name) {
			return item.ID
		}
	}
	return 0
}
