package urlparser_test

import (
	. "github.com/pavlik/urlparser"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Setters", func() {
	Describe("SetScheme", func() {
		It("accepts a same-specialness scheme change", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetScheme("https")).To(BeTrue())
			Expect(u.Scheme()).To(Equal("https"))
			Expect(u.Serialize()).To(Equal("https://example.com/p"))
		})

		It("leaves the receiver untouched when the change is rejected", func() {
			u, _ := Parse("http://example.com/p", nil)
			before := u.Serialize()
			ok := u.SetScheme("not a scheme")
			Expect(ok).To(BeFalse())
			Expect(u.Serialize()).To(Equal(before))
		})
	})

	Describe("SetUsername and SetPassword", func() {
		It("percent-encodes with the userinfo set", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetUsername("a b")).To(BeTrue())
			Expect(u.Username()).To(Equal("a%20b"))
			Expect(u.SetPassword("p/w")).To(BeTrue())
			Expect(u.Password()).To(Equal("p%2Fw"))
		})

		It("rejects credentials when the host is absent or the scheme is file", func() {
			u, _ := Parse("file:///C:/x", nil)
			Expect(u.SetUsername("a")).To(BeFalse())
			Expect(u.Username()).To(Equal(""))
		})
	})

	Describe("SetHost", func() {
		It("re-parses the host through the Host state", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetHost("0x7f.1")).To(BeTrue())
			h, _ := u.Host()
			Expect(h.Kind).To(Equal(HostIPv4))
			Expect(u.Serialize()).To(Equal("http://127.0.0.1/p"))
		})

		It("strips embedded tabs and newlines before parsing, same as a fresh parse", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetHost("ex\tample.com")).To(BeTrue())
			h, _ := u.Host()
			Expect(h.String()).To(Equal("example.com"))
		})

		It("rejects a host change on an opaque-path URL", func() {
			u, _ := Parse("mailto:a@b.com", nil)
			Expect(u.SetHost("example.com")).To(BeFalse())
		})

		It("rejects an invalid host and leaves the record unchanged", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetHost("exa mple.com")).To(BeFalse())
			h, _ := u.Host()
			Expect(h.String()).To(Equal("example.com"))
		})
	})

	Describe("SetPort", func() {
		It("sets a numeric port", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetPort("8080")).To(BeTrue())
			port, ok := u.Port()
			Expect(ok).To(BeTrue())
			Expect(port).To(Equal(uint16(8080)))
		})

		It("clears the port on empty input", func() {
			u, _ := Parse("http://example.com:8080/p", nil)
			Expect(u.SetPort("")).To(BeTrue())
			_, ok := u.Port()
			Expect(ok).To(BeFalse())
		})

		It("rejects an out-of-range port", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetPort("65536")).To(BeFalse())
		})

		It("rejects a port on a URL that cannot have one", func() {
			u, _ := Parse("file:///C:/x", nil)
			Expect(u.SetPort("80")).To(BeFalse())
		})
	})

	Describe("SetPathname", func() {
		It("replaces the path and removes dot segments", func() {
			u, _ := Parse("http://example.com/old", nil)
			Expect(u.SetPathname("/a/./b/../c")).To(BeTrue())
			Expect(u.PathSegments()).To(Equal([]string{"a", "c"}))
		})

		It("treats a literal ? in the input as an ordinary path character", func() {
			u, _ := Parse("http://example.com/old?q", nil)
			Expect(u.SetPathname("/a?not-a-query")).To(BeTrue())
			Expect(u.PathSegments()).To(Equal([]string{"a%3Fnot-a-query"}))
			q, ok := u.Query()
			Expect(ok).To(BeTrue())
			Expect(q).To(Equal("q"))
		})

		It("rejects a pathname change on an opaque-path URL", func() {
			u, _ := Parse("mailto:a@b.com", nil)
			Expect(u.SetPathname("/x")).To(BeFalse())
		})
	})

	Describe("SetSearch", func() {
		It("strips a leading ? and sets the query", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetSearch("?a=1")).To(BeTrue())
			q, ok := u.Query()
			Expect(ok).To(BeTrue())
			Expect(q).To(Equal("a=1"))
		})

		It("clears the query on empty input", func() {
			u, _ := Parse("http://example.com/p?a=1", nil)
			Expect(u.SetSearch("")).To(BeTrue())
			_, ok := u.Query()
			Expect(ok).To(BeFalse())
		})

		It("treats a literal # in the input as an ordinary query character", func() {
			u, _ := Parse("http://example.com/p#frag", nil)
			Expect(u.SetSearch("a=1#not-a-fragment")).To(BeTrue())
			q, _ := u.Query()
			Expect(q).To(Equal("a=1%23not-a-fragment"))
			f, ok := u.Fragment()
			Expect(ok).To(BeTrue())
			Expect(f).To(Equal("frag"))
		})
	})

	Describe("SetHash", func() {
		It("strips a leading # and sets the fragment", func() {
			u, _ := Parse("http://example.com/p", nil)
			Expect(u.SetHash("#top")).To(BeTrue())
			f, ok := u.Fragment()
			Expect(ok).To(BeTrue())
			Expect(f).To(Equal("top"))
		})

		It("clears the fragment on empty input", func() {
			u, _ := Parse("http://example.com/p#top", nil)
			Expect(u.SetHash("")).To(BeTrue())
			_, ok := u.Fragment()
			Expect(ok).To(BeFalse())
		})
	})
})
