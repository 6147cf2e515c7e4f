package lastfm

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
)

// TagDiff is the set of calls needed to move a tag set to a desired one.
type TagDiff struct {
	Add    []Tag
	Remove []Tag
}

// Empty reports whether the diff requires no calls.
func (d TagDiff) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

// DiffOption changes how DiffTags compares tags.
type DiffOption func(*diffConfig)

type diffConfig struct {
	key func(Tag) string
}

// WithFoldCase compares tags by Unicode case folding instead of exact
// name equality. The service stores tags lowercased, so a desired "Rock"
// would otherwise be re-added and "rock" removed on every run.
func WithFoldCase() DiffOption {
	return func(c *diffConfig) {
		c.key = func(t Tag) string { return cases.Fold().String(t.Name) }
	}
}

// DiffTags computes the tags to add (desired minus current, in desired
// order) and to remove (current minus desired, in current order).
// Duplicates are dropped. Comparison is by exact name unless an option
// says otherwise.
func DiffTags(desired, current []Tag, opts ...DiffOption) TagDiff {
	cfg := diffConfig{key: func(t Tag) string { return t.Name }}
	for _, opt := range opts {
		opt(&cfg)
	}

	want := make(map[string]bool, len(desired))
	for _, t := range desired {
		want[cfg.key(t)] = true
	}
	have := make(map[string]bool, len(current))
	for _, t := range current {
		have[cfg.key(t)] = true
	}

	var diff TagDiff
	queued := make(map[string]bool)
	for _, t := range desired {
		k := cfg.key(t)
		if !have[k] && !queued[k] {
			diff.Add = append(diff.Add, t)
			queued[k] = true
		}
	}
	queued = make(map[string]bool)
	for _, t := range current {
		k := cfg.key(t)
		if !want[k] && !queued[k] {
			diff.Remove = append(diff.Remove, t)
			queued[k] = true
		}
	}
	return diff
}

// tagging implements the tag operations shared by artists, albums and
// tracks. kind is the method prefix ("artist", "album", "track").
type tagging struct {
	resource
	kind string
}

// getTags returns the tags the session's user applied to e.
func (t tagging) getTags(ctx context.Context, e Entity) ([]Tag, error) {
	doc, err := t.get(ctx, t.kind+".getTags", e)
	if err != nil {
		return nil, err
	}
	names, err := namesOf(doc)
	if err != nil {
		return nil, err
	}
	return tagsFromNames(names), nil
}

// addTags issues one add call per tag and stops at the first failure.
func (t tagging) addTags(ctx context.Context, e Entity, tags []Tag) error {
	if err := t.requireAuth(); err != nil {
		return err
	}
	for _, tag := range tags {
		p := baseParams(e)
		p.Set("tags", tag.Name)
		if _, err := t.call(ctx, t.kind+".addTags", p); err != nil {
			return fmt.Errorf("lastfm: adding tag %q: %w", tag.Name, err)
		}
	}
	return nil
}

// removeTags issues one remove call per tag and stops at the first failure.
func (t tagging) removeTags(ctx context.Context, e Entity, tags []Tag) error {
	if err := t.requireAuth(); err != nil {
		return err
	}
	for _, tag := range tags {
		p := baseParams(e)
		p.Set("tag", tag.Name)
		if _, err := t.call(ctx, t.kind+".removeTag", p); err != nil {
			return fmt.Errorf("lastfm: removing tag %q: %w", tag.Name, err)
		}
	}
	return nil
}

// setTags converges e's remote tags to desired. Current tags are fetched
// fresh; additions are applied before removals. The returned diff is what
// was planned; on error only a prefix of it was applied.
func (t tagging) setTags(ctx context.Context, e Entity, desired []Tag, opts ...DiffOption) (TagDiff, error) {
	if err := t.requireAuth(); err != nil {
		return TagDiff{}, err
	}
	current, err := t.getTags(ctx, e)
	if err != nil {
		return TagDiff{}, err
	}
	diff := DiffTags(desired, current, opts...)
	if len(diff.Add) > 0 {
		if err := t.addTags(ctx, e, diff.Add); err != nil {
			return diff, err
		}
	}
	if len(diff.Remove) > 0 {
		if err := t.removeTags(ctx, e, diff.Remove); err != nil {
			return diff, err
		}
	}
	return diff, nil
}

// clearTags removes every tag currently applied to e.
func (t tagging) clearTags(ctx context.Context, e Entity) ([]Tag, error) {
	diff, err := t.setTags(ctx, e, nil)
	return diff.Remove, err
}
