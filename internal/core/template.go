package core

import (
	"fmt"
	"sort"
	"strings"
)

// TemplateKind classifies message templates.
type TemplateKind int

const (
	// KindCode is a verification code message.
	KindCode TemplateKind = iota

	// KindNotice is a notification message.
	KindNotice

	// KindMarketing is a marketing message.
	KindMarketing
)

// String returns the kind's canonical name.
func (k TemplateKind) String() string {
	switch k {
	case KindCode:
		return "Code"
	case KindNotice:
		return "Notice"
	case KindMarketing:
		return "Marketing"
	default:
		return fmt.Sprintf("TemplateKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler for config binding.
func (k TemplateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Kind names are
// case-insensitive.
func (k *TemplateKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "code":
		*k = KindCode
	case "notice":
		*k = KindNotice
	case "marketing":
		*k = KindMarketing
	default:
		return fmt.Errorf("unknown template kind %q", string(text))
	}
	return nil
}

// TemplateItem describes a message template registered with the gateway.
// Country and Language are nil when the template is unscoped; an item with
// both nil acts as a global fallback. Signature is passed through to the
// gateway and plays no part in matching.
type TemplateItem struct {
	Kind       TemplateKind `json:"kind" yaml:"kind"`
	TemplateID string       `json:"templateId" yaml:"templateId"`
	Endpoint   string       `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Country    *string      `json:"country,omitempty" yaml:"country,omitempty"`
	Language   *string      `json:"language,omitempty" yaml:"language,omitempty"`
	Signature  string       `json:"signature,omitempty" yaml:"signature,omitempty"`
	Default    bool         `json:"default,omitempty" yaml:"default,omitempty"`
}

// TemplateRegistry is an append-only ordered template collection.
// Duplicates are legal; among equally specific matches the earliest added
// wins. Population and resolution are not synchronized: fill the registry
// before sharing it between concurrent senders.
type TemplateRegistry struct {
	items []TemplateItem
}

// Add appends a template.
func (r *TemplateRegistry) Add(item TemplateItem) {
	r.items = append(r.items, item)
}

// AddAll appends templates in order.
func (r *TemplateRegistry) AddAll(items []TemplateItem) {
	r.items = append(r.items, items...)
}

// Len returns the number of registered templates.
func (r *TemplateRegistry) Len() int {
	return len(r.items)
}

// Resolve returns the best-matching template, or nil.
//
// A non-empty templateID is an exact lookup within the kind; country and
// language are ignored. With no id and no scope, the unscoped default wins.
// Otherwise matching is specificity-ranked per scope axis: an exact scope
// beats a wildcard, a default beats a non-default, and insertion order
// breaks remaining ties.
func (r *TemplateRegistry) Resolve(kind TemplateKind, templateID, country, language string) *TemplateItem {
	if templateID != "" {
		for _, t := range r.items {
			if t.Kind == kind && t.TemplateID == templateID {
				item := t
				return &item
			}
		}
		return nil
	}

	if country == "" && language == "" {
		for _, t := range r.items {
			if t.Kind == kind && t.Default && t.Country == nil && t.Language == nil {
				item := t
				return &item
			}
		}
		return nil
	}

	matched := make([]TemplateItem, 0, len(r.items))
	for _, t := range r.items {
		if t.Kind == kind {
			matched = append(matched, t)
		}
	}

	if country != "" {
		matched = rankByScope(matched, country, func(t TemplateItem) *string { return t.Country })
	}
	if language != "" {
		matched = rankByScope(matched, language, func(t TemplateItem) *string { return t.Language })
	}

	if len(matched) == 0 {
		return nil
	}
	item := matched[0]
	return &item
}

// rankByScope keeps items whose scope is unset or equals value, then
// orders exact matches before wildcards and defaults before non-defaults.
// The sort is stable, so the incoming order is the final tie-break.
func rankByScope(items []TemplateItem, value string, scope func(TemplateItem) *string) []TemplateItem {
	kept := make([]TemplateItem, 0, len(items))
	for _, t := range items {
		if s := scope(t); s == nil || *s == value {
			kept = append(kept, t)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		si, sj := scope(kept[i]), scope(kept[j])
		exactI := si != nil && *si == value
		exactJ := sj != nil && *sj == value
		if exactI != exactJ {
			return exactI
		}
		if kept[i].Default != kept[j].Default {
			return kept[i].Default
		}
		return false
	})

	return kept
}
