package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/grindstone/internal/store"
)

// App is a managed external application the user can spend coins on.
type App struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Library holds the per-category managed application lists. The lists are
// global state, not track-scoped.
type Library struct {
	mu    sync.Mutex
	scope store.Scoped
	lists map[Category][]App
}

func appsKey(c Category) string {
	return fmt.Sprintf("%sApps", c)
}

// NewLibrary loads the app lists from the unscoped store.
func NewLibrary(scope store.Scoped) *Library {
	l := &Library{scope: scope, lists: make(map[Category][]App)}
	for _, c := range AllCategories() {
		l.lists[c] = store.Read(scope, appsKey(c), []App(nil))
	}
	return l
}

// Apps returns a copy of the list for the category.
func (l *Library) Apps(c Category) []App {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]App, len(l.lists[c]))
	copy(out, l.lists[c])
	return out
}

// Add registers a new application under the category and returns it.
func (l *Library) Add(c Category, name, path string) (App, error) {
	if !c.Valid() {
		return App{}, fmt.Errorf("unknown category %q", c)
	}
	if name == "" {
		return App{}, fmt.Errorf("app name is required")
	}

	app := App{ID: uuid.NewString(), Name: name, Path: path}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lists[c] = append(l.lists[c], app)
	store.Write(l.scope, appsKey(c), l.lists[c])
	return app, nil
}

// Remove deletes the application with the given id from the category.
// Removing an unknown id is a no-op.
func (l *Library) Remove(c Category, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := l.lists[c]
	for i, a := range list {
		if a.ID == id {
			l.lists[c] = append(list[:i], list[i+1:]...)
			store.Write(l.scope, appsKey(c), l.lists[c])
			return
		}
	}
}

// Find looks up an app by id in the category. Falls back to the first app
// in the list when id is empty, mirroring the pick-first behavior of the
// session start flow.
func (l *Library) Find(c Category, id string) (App, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := l.lists[c]
	for _, a := range list {
		if a.ID == id {
			return a, true
		}
	}
	if id == "" && len(list) > 0 {
		return list[0], true
	}
	return App{}, false
}

// replaceAll swaps every category list at once. Used by auto-categorization.
func (l *Library) replaceAll(lists map[Category][]App) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range AllCategories() {
		l.lists[c] = lists[c]
		store.Write(l.scope, appsKey(c), l.lists[c])
	}
}

// All returns every managed app across categories.
func (l *Library) All() []App {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []App
	for _, c := range AllCategories() {
		out = append(out, l.lists[c]...)
	}
	return out
}
