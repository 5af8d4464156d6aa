package todo

import (
	"slices"
	"strings"

	"github.com/vango-dev/vlite/pkg/store"
)

// Add appends an active item. Blank titles are ignored.
func (m *Model) Add(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	id := NextID(m.store.GetState())
	return m.update(func(items []Item) []Item {
		return append(items, Item{ID: id, Title: title})
	}, store.State{KeyNextID: id + 1})
}

// Toggle flips the completed state of id.
func (m *Model) Toggle(id int) error {
	return m.update(func(items []Item) []Item {
		for i := range items {
			if items[i].ID == id {
				items[i].Completed = !items[i].Completed
			}
		}
		return items
	}, nil)
}

// ToggleAll marks every item completed or active.
func (m *Model) ToggleAll(completed bool) error {
	return m.update(func(items []Item) []Item {
		for i := range items {
			items[i].Completed = completed
		}
		return items
	}, nil)
}

// Destroy removes id.
func (m *Model) Destroy(id int) error {
	var extra store.State
	if Editing(m.store.GetState()) == id {
		extra = store.State{KeyEditing: 0}
	}
	return m.update(func(items []Item) []Item {
		return slices.DeleteFunc(items, func(it Item) bool { return it.ID == id })
	}, extra)
}

// StartEdit puts id into editing mode. Unknown ids are ignored.
func (m *Model) StartEdit(id int) error {
	if !slices.ContainsFunc(Items(m.store.GetState()), func(it Item) bool { return it.ID == id }) {
		return nil
	}
	_, err := m.store.SetState(store.State{KeyEditing: id})
	return err
}

// CommitEdit saves title for id and leaves editing mode. A blank title
// destroys the item. Commits for an item not being edited are ignored, so
// a blur after Enter does nothing.
func (m *Model) CommitEdit(id int, title string) error {
	if Editing(m.store.GetState()) != id {
		return nil
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return m.Destroy(id)
	}
	return m.update(func(items []Item) []Item {
		for i := range items {
			if items[i].ID == id {
				items[i].Title = title
			}
		}
		return items
	}, store.State{KeyEditing: 0})
}

// CancelEdit leaves editing mode without saving.
func (m *Model) CancelEdit() error {
	if Editing(m.store.GetState()) == 0 {
		return nil
	}
	_, err := m.store.SetState(store.State{KeyEditing: 0})
	return err
}

// ClearCompleted removes every completed item.
func (m *Model) ClearCompleted() error {
	return m.update(func(items []Item) []Item {
		return slices.DeleteFunc(items, func(it Item) bool { return it.Completed })
	}, nil)
}

// SetFilter changes the visible subset.
func (m *Model) SetFilter(f Filter) error {
	_, err := m.store.SetState(store.State{KeyFilter: f})
	return err
}
