package segment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
)

// Selection is an immutable set of cluster ids.
type Selection struct {
	ids map[model.ClusterID]struct{}
}

// NewSelection builds a selection from ids. Duplicates are ignored.
func NewSelection(ids ...model.ClusterID) Selection {
	s := Selection{ids: make(map[model.ClusterID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// SelectAll selects every cluster present in t.
func SelectAll(t *Table) Selection {
	return NewSelection(t.Clusters()...)
}

// Contains reports whether id is selected.
func (s Selection) Contains(id model.ClusterID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected clusters.
func (s Selection) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the selected ids in ascending order.
func (s Selection) IDs() []model.ClusterID {
	ids := make([]model.ClusterID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Toggle returns a copy of s with id added or removed.
func (s Selection) Toggle(id model.ClusterID) Selection {
	next := NewSelection(s.IDs()...)
	if next.Contains(id) {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// String renders the selection the way ParseSelection accepts it.
func (s Selection) String() string {
	if s.IsEmpty() {
		return "none"
	}
	parts := make([]string, 0, s.Len())
	for _, id := range s.IDs() {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}

// ParseSelection parses a comma separated id list such as "0,2".
// "none" yields the empty selection.
func ParseSelection(raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "none") {
		return NewSelection(), nil
	}
	if raw == "" {
		return Selection{}, fmt.Errorf("%w: empty list, use \"none\" to select nothing", common.ErrInvalidSelection)
	}

	var ids []model.ClusterID
	for _, part := range strings.Split(raw, ",") {
		id, err := model.ParseClusterID(part)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %v", common.ErrInvalidSelection, err)
		}
		ids = append(ids, id)
	}
	return NewSelection(ids...), nil
}
