package profile

// Builder assembles a Stream programmatically, for callers that
// construct or merge profiles rather than parse them.
type Builder struct {
	lines []Line
}

func NewBuilder() *Builder {
	return &Builder{
		lines: make([]Line, 0, 64),
	}
}

func (b *Builder) add(c Content) *Builder {
	b.lines = append(b.lines, Line{Lineno: -1, Content: c})
	return b
}

func (b *Builder) Blank() *Builder {
	return b.add(Content{Kind: ContentBlank})
}

func (b *Builder) Comment(text string) *Builder {
	return b.add(Content{Kind: ContentComment, Comment: text})
}

func (b *Builder) Command(cmd Command) *Builder {
	return b.add(Content{Kind: ContentCommand, Cmd: cmd})
}

func (b *Builder) Conditional(cond Conditional) *Builder {
	return b.add(Content{Kind: ContentConditional, Cond: cond})
}

// Line appends an existing line, keeping its content as-is.
func (b *Builder) Line(line Line) *Builder {
	b.lines = append(b.lines, line)
	return b
}

// Extend appends every line of another stream.
func (b *Builder) Extend(s Stream) *Builder {
	b.lines = append(b.lines, s...)
	return b
}

// Build returns the assembled stream with line numbers rewritten
// sequentially.
func (b *Builder) Build() Stream {
	s := Stream(b.lines)
	s.RewriteLineno()
	return s
}
