package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etsoo/sendcloud-go/internal/core"
)

func strptr(s string) *string { return &s }

func TestResolveByTemplateID(t *testing.T) {
	var r core.TemplateRegistry
	r.AddAll([]core.TemplateItem{
		{Kind: core.KindCode, TemplateID: "100"},
		{Kind: core.KindNotice, TemplateID: "200"},
		{Kind: core.KindCode, TemplateID: "200", Country: strptr("CN")},
	})

	item := r.Resolve(core.KindCode, "200", "", "")
	require.NotNil(t, item)
	assert.Equal(t, core.KindCode, item.Kind)
	require.NotNil(t, item.Country)
	assert.Equal(t, "CN", *item.Country)

	// The id lookup is scoped to the kind.
	item = r.Resolve(core.KindMarketing, "100", "", "")
	assert.Nil(t, item)

	// Country and language are ignored when an id is given.
	item = r.Resolve(core.KindCode, "100", "NZ", "en-NZ")
	require.NotNil(t, item)
	assert.Equal(t, "100", item.TemplateID)
}

func TestResolveUnscopedDefault(t *testing.T) {
	var r core.TemplateRegistry
	r.AddAll([]core.TemplateItem{
		{Kind: core.KindCode, TemplateID: "scoped", Country: strptr("CN"), Default: true},
		{Kind: core.KindCode, TemplateID: "global", Default: true},
		{Kind: core.KindCode, TemplateID: "later-global", Default: true},
	})

	// Only an item with no scope at all satisfies the unscoped lookup,
	// and the earliest added wins.
	item := r.Resolve(core.KindCode, "", "", "")
	require.NotNil(t, item)
	assert.Equal(t, "global", item.TemplateID)
}

func TestResolveUnscopedDefaultMissing(t *testing.T) {
	var r core.TemplateRegistry
	r.Add(core.TemplateItem{Kind: core.KindCode, TemplateID: "scoped", Country: strptr("CN"), Default: true})

	assert.Nil(t, r.Resolve(core.KindCode, "", "", ""))
}

func TestResolveCountrySpecificity(t *testing.T) {
	var r core.TemplateRegistry
	r.AddAll([]core.TemplateItem{
		{Kind: core.KindCode, TemplateID: "A", Default: true},
		{Kind: core.KindCode, TemplateID: "B", Country: strptr("CN"), Default: true},
	})

	// Exact scope beats the wildcard.
	item := r.Resolve(core.KindCode, "", "CN", "")
	require.NotNil(t, item)
	assert.Equal(t, "B", item.TemplateID)

	// No exact match falls back to the wildcard.
	item = r.Resolve(core.KindCode, "", "US", "")
	require.NotNil(t, item)
	assert.Equal(t, "A", item.TemplateID)
}

func TestResolveDefaultBeatsNonDefault(t *testing.T) {
	var r core.TemplateRegistry
	r.AddAll([]core.TemplateItem{
		{Kind: core.KindCode, TemplateID: "plain", Country: strptr("CN")},
		{Kind: core.KindCode, TemplateID: "preferred", Country: strptr("CN"), Default: true},
	})

	item := r.Resolve(core.KindCode, "", "CN", "")
	require.NotNil(t, item)
	assert.Equal(t, "preferred", item.TemplateID)
}

func TestResolveInsertionOrderBreaksTies(t *testing.T) {
	var r core.TemplateRegistry
	r.AddAll([]core.TemplateItem{
		{Kind: core.KindCode, TemplateID: "first", Country: strptr("CN"), Default: true},
		{Kind: core.KindCode, TemplateID: "second", Country: strptr("CN"), Default: true},
	})

	item := r.Resolve(core.KindCode, "", "CN", "")
	require.NotNil(t, item)
	assert.Equal(t, "first", item.TemplateID)
}

func TestResolveLanguageSpecificity(t *testing.T) {
	var r core.TemplateRegistry
	r.AddAll([]core.TemplateItem{
		{Kind: core.KindNotice, TemplateID: "any", Default: true},
		{Kind: core.KindNotice, TemplateID: "english", Language: strptr("en-US")},
	})

	item := r.Resolve(core.KindNotice, "", "", "en-US")
	require.NotNil(t, item)
	assert.Equal(t, "english", item.TemplateID)

	// An unmatched language drops the scoped item entirely.
	item = r.Resolve(core.KindNotice, "", "", "zh-CN")
	require.NotNil(t, item)
	assert.Equal(t, "any", item.TemplateID)
}

func TestResolveCountryAndLanguage(t *testing.T) {
	var r core.TemplateRegistry
	r.AddAll([]core.TemplateItem{
		{Kind: core.KindCode, TemplateID: "country-only", Country: strptr("CN")},
		{Kind: core.KindCode, TemplateID: "language-only", Language: strptr("zh-CN")},
	})

	// When both axes are given the language ranking is applied last, so a
	// language-exact item outranks a country-exact one.
	item := r.Resolve(core.KindCode, "", "CN", "zh-CN")
	require.NotNil(t, item)
	assert.Equal(t, "language-only", item.TemplateID)
}

func TestResolveNoMatch(t *testing.T) {
	var r core.TemplateRegistry
	r.Add(core.TemplateItem{Kind: core.KindNotice, TemplateID: "N", Country: strptr("US")})

	assert.Nil(t, r.Resolve(core.KindNotice, "", "CN", ""))
	assert.Nil(t, r.Resolve(core.KindCode, "", "US", ""))
	assert.Nil(t, r.Resolve(core.KindCode, "missing", "", ""))
}

func TestRegistryLen(t *testing.T) {
	var r core.TemplateRegistry
	assert.Equal(t, 0, r.Len())
	r.Add(core.TemplateItem{Kind: core.KindCode, TemplateID: "1"})
	r.Add(core.TemplateItem{Kind: core.KindCode, TemplateID: "1"})
	assert.Equal(t, 2, r.Len())
}

func TestTemplateKindText(t *testing.T) {
	assert.Equal(t, "Code", core.KindCode.String())
	assert.Equal(t, "Notice", core.KindNotice.String())
	assert.Equal(t, "Marketing", core.KindMarketing.String())

	var k core.TemplateKind
	require.NoError(t, k.UnmarshalText([]byte("marketing")))
	assert.Equal(t, core.KindMarketing, k)

	require.NoError(t, k.UnmarshalText([]byte("Code")))
	assert.Equal(t, core.KindCode, k)

	assert.Error(t, k.UnmarshalText([]byte("bogus")))

	text, err := core.KindNotice.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Notice", string(text))
}
