package todo

import (
	"log/slog"
	"slices"

	"github.com/vango-dev/vlite/pkg/reconcile"
	"github.com/vango-dev/vlite/pkg/store"
)

// State keys.
const (
	KeyTodos   = "todos"
	KeyNextID  = "nextId"
	KeyEditing = "editing"
	KeyFilter  = "filter"
)

// Item is one todo.
type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Filter selects the visible items.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Match reports whether it passes the filter. Unknown filters pass
// everything.
func (f Filter) Match(it Item) bool {
	switch f {
	case FilterActive:
		return !it.Completed
	case FilterCompleted:
		return it.Completed
	default:
		return true
	}
}

// Path is the router path for the filter.
func (f Filter) Path() string {
	switch f {
	case FilterActive:
		return "/active"
	case FilterCompleted:
		return "/completed"
	default:
		return "/"
	}
}

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Initial returns the starting state with one active item per title.
func Initial(titles ...string) store.State {
	items := make([]Item, 0, len(titles))
	for i, t := range titles {
		items = append(items, Item{ID: i + 1, Title: t})
	}
	return store.State{
		KeyTodos:  items,
		KeyNextID: len(items) + 1,
	}
}

// Items returns the todos held in s.
func Items(s store.State) []Item {
	return store.GetOr[[]Item](s, KeyTodos, nil)
}

// Visible returns the items passing the current filter.
func Visible(s store.State) []Item {
	f := CurrentFilter(s)
	var out []Item
	for _, it := range Items(s) {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// CurrentFilter returns the active filter.
func CurrentFilter(s store.State) Filter {
	return store.GetOr(s, KeyFilter, FilterAll)
}

// Editing returns the id of the item being edited, or 0.
func Editing(s store.State) int {
	return store.GetOr(s, KeyEditing, 0)
}

// NextID returns the id the next added item receives.
func NextID(s store.State) int {
	return store.GetOr(s, KeyNextID, 1)
}

// Counts returns the number of active and completed items.
func Counts(items []Item) (active, completed int) {
	for _, it := range items {
		if it.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

// Model binds the todo actions to a store.
type Model struct {
	store  *store.Store
	config Config
	logger *slog.Logger
}

// Config configures a Model.
type Config struct {
	// ListTag and ListClass must match the reconciler's keyed-list
	// signature, or the list falls back to positional patching.
	ListTag   string
	ListClass string

	// EditingClass marks the item being edited. It should match the
	// reconciler's state class.
	EditingClass string

	Logger *slog.Logger
}

// Option configures a Model.
type Option func(*Config)

// WithKeyedList sets the keyed-list signature of the todo list.
func WithKeyedList(tag, class string) Option {
	return func(c *Config) {
		c.ListTag = tag
		c.ListClass = class
	}
}

// WithEditingClass sets the class carried by the item being edited.
func WithEditingClass(class string) Option {
	return func(c *Config) {
		c.EditingClass = class
	}
}

// WithLogger sets the logger used for failed actions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// New creates a Model on s.
func New(s *store.Store, opts ...Option) *Model {
	config := Config{
		ListTag:      reconcile.DefaultKeyedTag,
		ListClass:    reconcile.DefaultKeyedClass,
		EditingClass: reconcile.DefaultStateClass,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Model{store: s, config: config, logger: config.Logger}
}

// Store returns the backing store.
func (m *Model) Store() *store.Store {
	return m.store
}

// update replaces the todo list through fn. Items are never mutated in
// place; fn receives a private copy.
func (m *Model) update(fn func(items []Item) []Item, extra store.State) error {
	cur := m.store.GetState()
	items := fn(slices.Clone(Items(cur)))
	partial := store.State{KeyTodos: items}
	for k, v := range extra {
		partial[k] = v
	}
	_, err := m.store.SetState(partial)
	return err
}

// report logs err from an event handler, which has nowhere to return it.
func (m *Model) report(action string, err error) {
	if err != nil {
		m.logger.Error("todo action failed", "action", action, "error", err)
	}
}
