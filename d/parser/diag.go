package parser

import (
	"fmt"
	"io"
)

// maxErrors bounds cascading failures: once this many errors have been
// suppressed in a non-speculative context, list parsing gives up rather
// than keep producing noise from unrecoverable input.
const maxErrors = 10

// DiagnosticSink receives diagnostics as they are found, in source order.
type DiagnosticSink func(file string, line, column int, message string, isError bool)

// writerSink formats diagnostics the way the command line tools print
// them: file(line:column)[Error]: message.
func writerSink(w io.Writer) DiagnosticSink {
	return func(file string, line, column int, message string, isError bool) {
		severity := "Warn"
		if isError {
			severity = "Error"
		}
		fmt.Fprintf(w, "%s(%d:%d)[%s]: %s\n", file, line, column, severity, message)
	}
}

// error reports a syntax error at the cursor and resynchronizes to the
// next statement or scope boundary. Inside a bookmarked region the error
// is counted but not delivered; the count is discarded when the bookmark
// resolves.
func (p *Parser) error(message string) {
	p.errorAt(message, true)
}

// errorNoResync reports a syntax error without moving the cursor.
func (p *Parser) errorNoResync(message string) {
	p.errorAt(message, false)
}

func (p *Parser) errorAt(message string, resync bool) {
	if p.suppressionDepth > 0 {
		p.suppressedCount++
	} else {
		p.errorCount++
		tok := p.peek()
		p.sink(p.file, tok.Span.Start.Line, tok.Span.Start.Column, message, true)
	}
	if resync {
		p.resync()
	}
}

// resync skips ahead to one of the sync tokens or the end of the stream.
// The sync token itself is consumed so the caller sees the element that
// follows the damage.
func (p *Parser) resync() {
	for p.moreTokens() {
		switch p.advance().Kind {
		case TokenSemicolon, TokenRBrace, TokenRParen, TokenRBracket:
			return
		}
	}
}

// warn records a non-fatal diagnostic. Warnings never move the cursor and
// are not suppressed by bookmarks that later commit.
func (p *Parser) warn(message string) {
	if p.suppressionDepth > 0 {
		return
	}
	p.warningCount++
	tok := p.peek()
	p.sink(p.file, tok.Span.Start.Line, tok.Span.Start.Column, message, false)
}

// tooManyErrors reports whether list parsing should short-circuit.
func (p *Parser) tooManyErrors() bool {
	return p.suppressedCount > maxErrors
}
