package urlparser_test

import (
	. "github.com/pavlik/urlparser"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SearchParams", func() {
	Describe("ParseSearchParams", func() {
		It("splits pairs on & and = and form-decodes both sides", func() {
			p := ParseSearchParams("a=1&b=hello+world&c=x%3Dy")
			v, ok := p.Get("a")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("1"))
			v, ok = p.Get("b")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("hello world"))
			v, ok = p.Get("c")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("x=y"))
		})

		It("treats a bare name with no = as an empty value", func() {
			p := ParseSearchParams("flag")
			v, ok := p.Get("flag")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(""))
		})

		It("returns an empty, non-nil-panicking view for an empty query", func() {
			p := ParseSearchParams("")
			Expect(p.Has("anything")).To(BeFalse())
			Expect(p.String()).To(Equal(""))
		})
	})

	Describe("GetAll, Has, Append, Set, Delete", func() {
		It("collects every value for a repeated name", func() {
			p := ParseSearchParams("a=1&a=2&b=3")
			Expect(p.GetAll("a")).To(Equal([]string{"1", "2"}))
			Expect(p.Has("b")).To(BeTrue())
			Expect(p.Has("z")).To(BeFalse())
		})

		It("appends without disturbing existing pairs", func() {
			p := ParseSearchParams("a=1")
			p.Append("a", "2")
			Expect(p.GetAll("a")).To(Equal([]string{"1", "2"}))
		})

		It("set replaces the first match and removes the rest", func() {
			p := ParseSearchParams("a=1&b=2&a=3")
			p.Set("a", "9")
			Expect(p.GetAll("a")).To(Equal([]string{"9"}))
			Expect(p.String()).To(Equal("a=9&b=2"))
		})

		It("set appends when the name is new", func() {
			p := ParseSearchParams("a=1")
			p.Set("b", "2")
			Expect(p.String()).To(Equal("a=1&b=2"))
		})

		It("deletes every pair with a given name", func() {
			p := ParseSearchParams("a=1&b=2&a=3")
			p.Delete("a")
			Expect(p.Has("a")).To(BeFalse())
			Expect(p.String()).To(Equal("b=2"))
		})
	})

	Describe("Iterate and Sort", func() {
		It("visits pairs in list order and allows in-place value edits", func() {
			p := ParseSearchParams("b=2&a=1")
			var names []string
			p.Iterate(func(pair *NameValuePair) {
				names = append(names, pair.Name)
				pair.Value = pair.Value + "!"
			})
			Expect(names).To(Equal([]string{"b", "a"}))
			v, _ := p.Get("a")
			Expect(v).To(Equal("1!"))
		})

		It("stably reorders pairs by name", func() {
			p := ParseSearchParams("b=2&a=1&a=0")
			p.Sort()
			Expect(p.String()).To(Equal("a=1&a=0&b=2"))
		})
	})

	Describe("String (form-encoding)", func() {
		It("encodes spaces as + and escapes reserved bytes", func() {
			p := ParseSearchParams("")
			p.Append("q", "a b&c")
			Expect(p.String()).To(Equal("q=a+b%26c"))
		})
	})

	Describe("live view over a URL", func() {
		It("writes mutations back to the owning URL's query", func() {
			u, err := Parse("http://example.com/p?a=1", nil)
			Expect(err).NotTo(HaveOccurred())
			sp := u.SearchParams()
			sp.Set("a", "2")
			sp.Append("b", "3")
			q, ok := u.Query()
			Expect(ok).To(BeTrue())
			Expect(q).To(Equal("a=2&b=3"))
			Expect(u.Serialize()).To(Equal("http://example.com/p?a=2&b=3"))
		})

		It("leaves a detached ParseSearchParams view with no owner to sync", func() {
			p := ParseSearchParams("a=1")
			p.Set("a", "2")
			Expect(p.String()).To(Equal("a=2"))
		})
	})
})
