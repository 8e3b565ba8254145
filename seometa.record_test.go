package seometa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type productPage struct {
	Name  string
	Price int
}

func (p *productPage) PageTitle() string { return "Buy " + p.Name }

func TestMapRecord(t *testing.T) {
	rec := NewMapRecord(map[string]string{"title": "T"})
	rec.Site = "example.com"

	v, ok := rec.StoredValue("title")
	assert.True(t, ok)
	assert.Equal(t, "T", v)

	_, ok = rec.Attribute("missing")
	assert.False(t, ok)

	rec.WithAttribute("a", 1).WithAttribute("b", 2)
	a, ok := rec.Attribute("a")
	assert.True(t, ok)
	assert.Equal(t, 1, a)
	assert.Equal(t, "example.com", rec.SiteID())

	var empty MapRecord
	empty.WithAttribute("x", "y")
	_, ok = empty.StoredValue("x")
	assert.False(t, ok)
}

func TestObjectRecord(t *testing.T) {
	rec := &ObjectRecord{
		Object: &productPage{Name: "Gopher", Price: 10},
		Values: map[string]string{"description": "Stored"},
		Site:   "shop.example.com",
	}

	name, ok := rec.Attribute("name")
	assert.True(t, ok)
	assert.Equal(t, "Gopher", name)

	fn, ok := rec.Attribute("page_title")
	assert.True(t, ok)
	assert.IsType(t, func() string { return "" }, fn)

	_, ok = rec.Attribute("missing")
	assert.False(t, ok)

	v, ok := rec.StoredValue("description")
	assert.True(t, ok)
	assert.Equal(t, "Stored", v)
	assert.Equal(t, "shop.example.com", rec.SiteID())
}

func TestHTMLSanitizer(t *testing.T) {
	s := NewHTMLSanitizer(nil)

	out, err := s.Sanitize("<script>x</script>", nil)
	assert.NoError(t, err)
	assert.Equal(t, "<script>x</script>", out)

	out, err = s.Sanitize("<B>bold</B><u>under</u>", []string{"b"})
	assert.NoError(t, err)
	assert.Equal(t, "<b>bold</b>under", out)

	out, err = DefaultSanitizer().Sanitize("<i>x</i>", []string{})
	assert.NoError(t, err)
	assert.Equal(t, "x", out)
}
