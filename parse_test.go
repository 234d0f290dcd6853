package urlparser_test

import (
	. "github.com/pavlik/urlparser"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	Describe("scenario 1: case folding, default port, dot-segment removal", func() {
		It("normalizes HTTP://Example.COM:80/foo/./bar/../baz?q#f", func() {
			u, err := Parse("HTTP://Example.COM:80/foo/./bar/../baz?q#f", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Scheme()).To(Equal("http"))
			h, ok := u.Host()
			Expect(ok).To(BeTrue())
			Expect(h.String()).To(Equal("example.com"))
			_, hasPort := u.Port()
			Expect(hasPort).To(BeFalse())
			Expect(u.PathSegments()).To(Equal([]string{"foo", "baz"}))
			q, _ := u.Query()
			Expect(q).To(Equal("q"))
			f, _ := u.Fragment()
			Expect(f).To(Equal("f"))
			Expect(u.Serialize()).To(Equal("http://example.com/foo/baz?q#f"))
		})
	})

	Describe("scenario 2: file URL with drive letter and dot-segment removal", func() {
		It("normalizes file:///C:/x/../y", func() {
			u, err := Parse("file:///C:/x/../y", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Scheme()).To(Equal("file"))
			Expect(u.PathSegments()).To(Equal([]string{"C:", "y"}))
			Expect(u.Serialize()).To(Equal("file:///C:/y"))
		})
	})

	Describe("scenario 3: userinfo, IPv6 literal host, explicit port", func() {
		It("preserves userinfo and IPv6 exactly", func() {
			u, err := Parse("http://user:pa%20ss@[2001:db8::1]:8080/p", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username()).To(Equal("user"))
			Expect(u.Password()).To(Equal("pa%20ss"))
			h, _ := u.Host()
			Expect(h.Kind).To(Equal(HostIPv6))
			Expect(h.String()).To(Equal("[2001:db8::1]"))
			port, ok := u.Port()
			Expect(ok).To(BeTrue())
			Expect(port).To(Equal(uint16(8080)))
			Expect(u.Serialize()).To(Equal("http://user:pa%20ss@[2001:db8::1]:8080/p"))
		})
	})

	Describe("scenario 4: relative resolution against a base", func() {
		It("resolves a/b against http://h/x/y", func() {
			base, err := Parse("http://h/x/y", nil)
			Expect(err).NotTo(HaveOccurred())
			u, err := Parse("a/b", base)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Serialize()).To(Equal("http://h/x/a/b"))
		})
	})

	Describe("scenario 5: hex-encoded IPv4 host", func() {
		It("parses http://0x7f.1/ as 127.0.0.1", func() {
			u, err := Parse("http://0x7f.1/", nil)
			Expect(err).NotTo(HaveOccurred())
			h, _ := u.Host()
			Expect(h.Kind).To(Equal(HostIPv4))
			Expect(u.Serialize()).To(Equal("http://127.0.0.1/"))
		})
	})

	Describe("scenario 6: forbidden host code point", func() {
		It("rejects a space in the host", func() {
			_, err := Parse("http://exa mple.com/", nil)
			Expect(err).To(HaveOccurred())
			Expect(err).To(MatchError(HostInvalid.AsError()))
		})
	})

	Describe("boundary behavior", func() {
		It("fails on empty input without a base", func() {
			_, err := Parse("", nil)
			Expect(err).To(MatchError(SchemeMissing.AsError()))
		})

		It("treats C0-and-space-only input as empty", func() {
			_, err := Parse("\x01\x02  ", nil)
			Expect(err).To(MatchError(SchemeMissing.AsError()))
		})

		It("accepts port 65535 and rejects 65536", func() {
			u, err := Parse("http://h:65535/", nil)
			Expect(err).NotTo(HaveOccurred())
			port, ok := u.Port()
			Expect(ok).To(BeTrue())
			Expect(port).To(Equal(uint16(65535)))

			_, err = Parse("http://h:65536/", nil)
			Expect(err).To(HaveOccurred())
		})

		It("accepts the maximum IPv4 address and rejects five parts", func() {
			u, err := Parse("http://255.255.255.255/", nil)
			Expect(err).NotTo(HaveOccurred())
			h, _ := u.Host()
			Expect(h.Kind).To(Equal(HostIPv4))

			_, err = Parse("http://1.2.3.4.5/", nil)
			Expect(err).To(HaveOccurred())
		})

		It("serializes :: as [::]", func() {
			u, err := Parse("http://[::]/", nil)
			Expect(err).NotTo(HaveOccurred())
			h, _ := u.Host()
			Expect(h.String()).To(Equal("[::]"))
		})
	})

	Describe("relative resolution reaching end of input", func() {
		It("inherits the whole base when given an empty relative reference", func() {
			base, err := Parse("http://h/x/y?q#f", nil)
			Expect(err).NotTo(HaveOccurred())
			u, err := Parse("", base)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Serialize()).To(Equal("http://h/x/y?q"))
		})
	})

	Describe("relative resolution of a file base with no trailing component", func() {
		It("terminates instead of looping when input is exhausted", func() {
			base, err := Parse("file:///C:/dir/", nil)
			Expect(err).NotTo(HaveOccurred())
			u, err := Parse("file:", base)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Serialize()).To(Equal("file:///C:/dir/"))
		})
	})

	Describe("CanParse", func() {
		It("reports success without building a record", func() {
			Expect(CanParse("http://example.com/", nil)).To(BeTrue())
			Expect(CanParse("http://exa mple.com/", nil)).To(BeFalse())
		})
	})

	Describe("relative without a base", func() {
		It("fails when the input has no scheme and no base is given", func() {
			_, err := Parse("/just/a/path", nil)
			Expect(err).To(MatchError(RelativeWithoutBase.AsError()))
		})
	})
})
