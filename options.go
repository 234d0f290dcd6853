package urlparser

// maxInputLength is the spec.md §5 default input-length guard
// (2^32 - 1 bytes).
const maxInputLength = 1<<32 - 1

// parserConfig holds the configuration a Parser carries, assembled from
// ParserOption values. Modeled on the functional-options pattern found in
// the retrieval pack's other_examples/nlnwa-whatwg-url/url/parseroptions.go,
// a complete Go WHATWG URL implementation.
type parserConfig struct {
	base           *URL
	sink           sink
	maxInputLength int
}

func defaultParserConfig() parserConfig {
	return parserConfig{maxInputLength: maxInputLength}
}

// ParserOption configures a Parser (see NewParser) or a one-shot Parse
// call.
type ParserOption interface {
	apply(*parserConfig)
}

type funcParserOption func(*parserConfig)

func (f funcParserOption) apply(c *parserConfig) { f(c) }

// WithBase sets the base URL relative resolution is performed against.
func WithBase(base *URL) ParserOption {
	return funcParserOption(func(c *parserConfig) { c.base = base })
}

// WithValidationSink registers a callback invoked for every validation
// signal (spec.md §7) encountered during parsing. Signals never cause
// failure; this is purely diagnostic.
func WithValidationSink(f func(Signal)) ParserOption {
	return funcParserOption(func(c *parserConfig) { c.sink = f })
}

// WithMaxInputLength overrides the input-length guard of spec.md §5.
// Inputs longer than n fail with InputTooLong.
func WithMaxInputLength(n int) ParserOption {
	return funcParserOption(func(c *parserConfig) { c.maxInputLength = n })
}

// Parser parses URL strings with a fixed set of options. Constructing one
// up front avoids re-applying the same ParserOption values on every call,
// mirroring the nlnwa-whatwg-url NewParser/Parser split.
type Parser struct {
	cfg parserConfig
}

// NewParser builds a Parser from opts.
func NewParser(opts ...ParserOption) *Parser {
	cfg := defaultParserConfig()
	for _, o := range opts {
		o.apply(&cfg)
	}
	return &Parser{cfg: cfg}
}

// Parse parses input against the Parser's configured base and options.
func (p *Parser) Parse(input string) (*URL, error) {
	return parseURL(input, p.cfg.base, p.cfg)
}

// CanParse reports whether input parses successfully against the Parser's
// configured base, discarding the resulting record (spec.md §6).
func (p *Parser) CanParse(input string) bool {
	_, err := p.Parse(input)
	return err == nil
}

// Parse is the package-level convenience entry point: parse input against
// an optional base URL with default options (spec.md §6).
func Parse(input string, base *URL, opts ...ParserOption) (*URL, error) {
	cfg := defaultParserConfig()
	cfg.base = base
	for _, o := range opts {
		o.apply(&cfg)
	}
	return parseURL(input, cfg.base, cfg)
}

// CanParse is the package-level fast path of spec.md §6: parse input and
// discard the record, reporting only success.
func CanParse(input string, base *URL, opts ...ParserOption) bool {
	_, err := Parse(input, base, opts...)
	return err == nil
}
