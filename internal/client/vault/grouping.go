// Package vault turns the flat password list into the grouped, filtered
// tree the presentation layer renders. Everything here is pure: identical
// inputs always produce identical output, so the rendering code needs no
// tests of its own.
package vault

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/passdoo/desktop-cli/internal/client/models"
)

// Tab selects the ownership view.
type Tab string

const (
	TabAll      Tab = "all"
	TabPersonal Tab = "personal"
	TabShared   Tab = "shared"
)

// TabPredicate selects between the two historical definitions of the
// personal/shared split. The engine takes it as input so product behavior
// can be corrected without touching the algorithm.
type TabPredicate int

const (
	// PredicateOwnership: personal = owned, shared = not owned. This is the
	// current product behavior and the zero-value default.
	PredicateOwnership TabPredicate = iota

	// PredicateSharing: personal = owned and not shared with anyone,
	// shared = marked shared. The earlier behavior, kept selectable.
	PredicateSharing
)

// Filter is the user's current view state.
type Filter struct {
	Tab       Tab
	Search    string
	ClientID  *int64 // single selected client, or nil
	Predicate TabPredicate
}

// CategoryGroup is a leaf grouping of records under one category key.
type CategoryGroup struct {
	Key     string
	Name    string
	Records []models.PasswordRecord
}

// ClientGroup nests category groups under one client.
type ClientGroup struct {
	ID         int64
	Name       string
	Image      string
	Categories []CategoryGroup
	Total      int
}

// Result is the grouped output. When a client filter is active the
// client-grouping level is skipped entirely: Flat holds the category groups
// and ClientGroups/Unfiled are nil. Otherwise Flat is nil.
type Result struct {
	ClientGroups []ClientGroup
	Unfiled      []CategoryGroup
	Flat         []CategoryGroup
	Total        int
}

// GroupAndFilter applies the tab, client and search filters in order, then
// groups what survives. Sibling groups are sorted alphabetically by display
// name with Italian collation, clients likewise by name.
func GroupAndFilter(records []models.PasswordRecord, f Filter) Result {
	filtered := make([]models.PasswordRecord, 0, len(records))
	for _, r := range records {
		if matches(r, f) {
			filtered = append(filtered, r)
		}
	}

	res := Result{Total: len(filtered)}

	cl := collate.New(language.Italian, collate.IgnoreCase)

	if f.ClientID != nil {
		res.Flat = groupByCategory(filtered, cl)
		return res
	}

	byClient := make(map[int64][]models.PasswordRecord)
	clients := make(map[int64]models.PasswordRecord)
	var unfiled []models.PasswordRecord
	for _, r := range filtered {
		if r.PartnerID != nil && r.PartnerName != "" {
			id := *r.PartnerID
			byClient[id] = append(byClient[id], r)
			clients[id] = r
		} else {
			unfiled = append(unfiled, r)
		}
	}

	for id, recs := range byClient {
		sample := clients[id]
		res.ClientGroups = append(res.ClientGroups, ClientGroup{
			ID:         id,
			Name:       sample.PartnerName,
			Image:      sample.PartnerImage,
			Categories: groupByCategory(recs, cl),
			Total:      len(recs),
		})
	}
	sort.SliceStable(res.ClientGroups, func(i, j int) bool {
		if c := cl.CompareString(res.ClientGroups[i].Name, res.ClientGroups[j].Name); c != 0 {
			return c < 0
		}
		// id tie-break keeps identical names deterministic
		return res.ClientGroups[i].ID < res.ClientGroups[j].ID
	})

	res.Unfiled = groupByCategory(unfiled, cl)
	return res
}

func matches(r models.PasswordRecord, f Filter) bool {
	switch f.Tab {
	case TabPersonal:
		if f.Predicate == PredicateSharing {
			if !r.IsOwner || r.IsShared {
				return false
			}
		} else if !r.IsOwner {
			return false
		}
	case TabShared:
		if f.Predicate == PredicateSharing {
			if !r.IsShared {
				return false
			}
		} else if r.IsOwner {
			return false
		}
	}

	if f.ClientID != nil {
		if r.PartnerID == nil || *r.PartnerID != *f.ClientID {
			return false
		}
	}

	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(r.Name), term) &&
			!strings.Contains(strings.ToLower(r.Username), term) &&
			!strings.Contains(strings.ToLower(r.URI), term) &&
			!strings.Contains(strings.ToLower(r.PartnerName), term) {
			return false
		}
	}
	return true
}

func groupByCategory(records []models.PasswordRecord, cl *collate.Collator) []CategoryGroup {
	if len(records) == 0 {
		return nil
	}
	buckets := make(map[string][]models.PasswordRecord)
	for _, r := range records {
		key := r.Category
		if key == "" {
			key = "other"
		}
		buckets[key] = append(buckets[key], r)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for key, recs := range buckets {
		groups = append(groups, CategoryGroup{
			Key:     key,
			Name:    CategoryDisplayName(key),
			Records: recs,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if c := cl.CompareString(groups[i].Name, groups[j].Name); c != 0 {
			return c < 0
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}
