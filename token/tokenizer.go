package token

// Tokenizer is a streaming, pull-based HTML5 tokenizer. A value holds a
// cursor into a caller-owned byte slice, the current State, a one-slot
// deferred-token buffer for transitions that must emit two tokens, and the
// small amount of mode memory ("return_attrs" and "last start tag name")
// the special text modes need. It is not safe for concurrent use; the
// buffer passed to Next must not be mutated while a Tokenizer is alive.
type Tokenizer struct {
	idx              int
	state            State
	deferred         *Token
	returnAttrs      bool
	lastStartTagName string
}

// New returns a tokenizer positioned at the start of the data state.
func New() *Tokenizer {
	return &Tokenizer{state: sText{mode: modeData, start: 0}}
}

// ReturnAttrs toggles attribute-granularity emission: when enabled, tags
// are never emitted as a whole; instead a TagName token is emitted once
// the tag name is known, followed by one Attr token per attribute. An end
// tag that closes RCDATA, RAWTEXT or script data produces neither a TagName
// nor a Tag token in this mode. It returns z for chaining after New.
func (z *Tokenizer) ReturnAttrs(enabled bool) *Tokenizer {
	z.returnAttrs = enabled
	return z
}

// GotoScriptData switches the tokenizer into script-data mode, as a host
// parser does immediately after consuming a "<script>" start tag.
func (z *Tokenizer) GotoScriptData() {
	z.lastStartTagName = "script"
	z.state = sText{mode: modeScriptData, start: z.idx}
}

// GotoRcData switches into RCDATA mode (e.g. after "<title>"/"<textarea>"),
// recording name as the appropriate-end-tag name.
func (z *Tokenizer) GotoRcData(name string) {
	z.lastStartTagName = name
	z.state = sText{mode: modeRcData, start: z.idx}
}

// GotoRawText switches into RAWTEXT mode (e.g. after "<style>"/"<xmp>"),
// recording name as the appropriate-end-tag name.
func (z *Tokenizer) GotoRawText(name string) {
	z.lastStartTagName = name
	z.state = sText{mode: modeRawText, start: z.idx}
}

// GotoPlainText switches into PLAINTEXT mode (after "<plaintext>"). The
// tokenizer never leaves this mode by itself: no end tag is recognized, and
// the rest of the input becomes one text token at end of input, preceded by
// a deprecated_and_unsupported parse error.
func (z *Tokenizer) GotoPlainText() {
	z.state = sText{mode: modePlainText, start: z.idx}
}

// AtEOF reports whether the tokenizer has reached its absorbing EOF state.
// Once true it remains true across all further calls to Next.
func (z *Tokenizer) AtEOF() bool {
	_, ok := z.state.(sEOF)
	return ok
}

// Next advances the tokenizer against src and returns the next token, or
// reports false once there are no more. src should be the same backing
// buffer on every call; the tokenizer's cursor is an offset into it.
func (z *Tokenizer) Next(src []byte) (Token, bool) {
	if z.deferred != nil {
		t := *z.deferred
		z.deferred = nil
		return t, true
	}
	if _, ok := z.state.(sEOF); ok {
		return Token{}, false
	}
	for {
		tok, emitted, next := z.step(src)
		z.state = next
		if emitted {
			return tok, true
		}
		if _, ok := next.(sEOF); ok {
			return Token{}, false
		}
	}
}

// consume reads src[z.idx] and advances the cursor, reporting ok=false at
// end of input without advancing.
func (z *Tokenizer) consume(src []byte) (byte, bool) {
	if z.idx >= len(src) {
		return 0, false
	}
	c := src[z.idx]
	z.idx++
	return c, true
}

// reconsume implements the WHATWG "reconsume" primitive: a one-byte cursor
// decrement so the next dispatch re-reads the same byte under a new state.
func (z *Tokenizer) reconsume() {
	z.idx--
}

func dataTextState(idx int) State {
	return sText{mode: modeData, start: idx}
}

// trimmedTextSpan trims ASCII whitespace from both ends of [start,end) and
// reports ok=false if nothing is left, per the text-trimming rule shared by
// data/text and every special text mode's flush point.
func trimmedTextSpan(src []byte, start, end int) (Span, bool) {
	for start < end && isASCIIWhitespace(src[start]) {
		start++
	}
	for end > start && isASCIIWhitespace(src[end-1]) {
		end--
	}
	if start == end {
		return Span{}, false
	}
	return span(start, end), true
}

// step runs exactly one state transition and reports whether it produced a
// token. Most transitions only mutate z.idx and return a new state; next2
// (realized as the loop in Next) keeps calling step until one emits.
func (z *Tokenizer) step(src []byte) (Token, bool, State) {
	switch s := z.state.(type) {
	case sText:
		return z.stepText(src, s)
	case sTagOpen:
		return z.stepTagOpen(src)
	case sEndTagOpen:
		return z.stepEndTagOpen(src)
	case sTagName:
		return z.stepTagName(src, s)
	case sBeforeAttrName:
		return z.stepBeforeAttrName(src, s)
	case sAttrName:
		return z.stepAttrName(src, s)
	case sAfterAttrName:
		return z.stepAfterAttrName(src, s)
	case sBeforeAttrValue:
		return z.stepBeforeAttrValue(src, s)
	case sAttrValue:
		return z.stepAttrValue(src, s)
	case sAfterAttrValueQuoted:
		return z.stepAfterAttrValueQuoted(src, s)
	case sSelfClosingStartTag:
		return z.stepSelfClosingStartTag(src, s)
	case sBogusComment:
		return z.stepBogusComment(src, s)
	case sMarkupDeclarationOpen:
		return z.stepMarkupDeclarationOpen(src, s)
	case sComment:
		return z.stepComment(src, s)
	case sDoctype:
		return z.stepDoctype(src, s)
	case sCdata:
		return z.stepCdata(src, s)
	case sSpecialEndTagOpen:
		return z.stepSpecialEndTagOpen(src, s)
	case sSpecialEndTagName:
		return z.stepSpecialEndTagName(src, s)
	case sScriptEsc:
		return z.stepScriptEsc(src, s)
	case sEOF:
		return Token{}, false, s
	default:
		panic("token: unreachable state")
	}
}

// --- data / text -----------------------------------------------------

func (z *Tokenizer) stepText(src []byte, s sText) (Token, bool, State) {
	c, ok := z.consume(src)
	if !ok {
		if s.mode == modePlainText {
			errTok := parseErrorToken(DeprecatedAndUnsupported, span(s.start, z.idx))
			if sp, has := trimmedTextSpan(src, s.start, z.idx); has {
				z.deferred = &Token{}
				*z.deferred = textToken(sp)
			}
			return errTok, true, sEOF{}
		}
		if sp, has := trimmedTextSpan(src, s.start, z.idx); has {
			return textToken(sp), true, sEOF{}
		}
		return Token{}, false, sEOF{}
	}

	if s.mode == modePlainText {
		return Token{}, false, s
	}

	if c == 0 && s.mode == modeData {
		errTok := parseErrorToken(UnexpectedNullCharacter, span(z.idx-1, z.idx))
		next := sText{mode: modeData, start: z.idx}
		if sp, has := trimmedTextSpan(src, s.start, z.idx-1); has {
			z.deferred = &Token{}
			*z.deferred = textToken(sp)
		}
		return errTok, true, next
	}

	if c != '<' {
		return Token{}, false, s
	}

	tagOpenPos := z.idx - 1

	switch s.mode {
	case modeData:
		if sp, has := trimmedTextSpan(src, s.start, tagOpenPos); has {
			return textToken(sp), true, sTagOpen{}
		}
		return Token{}, false, sTagOpen{}

	case modeRcData, modeRawText:
		if nc, has := peekByte(src, z.idx); has && nc == '/' {
			return Token{}, false, sSpecialEndTagOpen{mode: s.mode, dataStart: s.start}
		}
		return Token{}, false, s

	case modeScriptData:
		if nc, has := peekByte(src, z.idx); has {
			if nc == '/' {
				return Token{}, false, sSpecialEndTagOpen{mode: s.mode, dataStart: s.start}
			}
			if nc == '!' && hasPrefixAt(src, z.idx+1, "--") {
				z.idx += 3 // consume '!','-','-'
				return Token{}, false, sScriptEsc{phase: scriptEscaped, dataStart: s.start}
			}
		}
		return Token{}, false, s
	}
	return Token{}, false, s
}

func peekByte(src []byte, idx int) (byte, bool) {
	if idx >= len(src) {
		return 0, false
	}
	return src[idx], true
}

// --- tag open / end-tag open ------------------------------------------

func (z *Tokenizer) stepTagOpen(src []byte) (Token, bool, State) {
	tagOpenPos := z.idx - 1
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofBeforeTagName, span(z.idx, z.idx)), true, sEOF{}
	}
	switch {
	case c == '!':
		return Token{}, false, sMarkupDeclarationOpen{start: tagOpenPos}
	case c == '/':
		return Token{}, false, sEndTagOpen{}
	case c == '?':
		z.reconsume()
		return parseErrorToken(IncorrectlyOpenedComment, span(tagOpenPos, z.idx+1)), true, sBogusComment{start: tagOpenPos}
	case isASCIIAlpha(c):
		return Token{}, false, sTagName{tag: &tagBuilder{start: tagOpenPos, kind: StartTag, nameStart: z.idx - 1, nameEnd: z.idx}}
	default:
		z.reconsume()
		return parseErrorToken(InvalidFirstCharacterOfTagName, span(tagOpenPos, tagOpenPos+1)), true, dataTextState(tagOpenPos)
	}
}

func (z *Tokenizer) stepEndTagOpen(src []byte) (Token, bool, State) {
	endTagOpenPos := z.idx - 2
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofBeforeTagName, span(z.idx, z.idx)), true, sEOF{}
	}
	switch {
	case c == '>':
		return parseErrorToken(MissingEndTagName, span(endTagOpenPos, z.idx)), true, dataTextState(z.idx)
	case isASCIIAlpha(c):
		return Token{}, false, sTagName{tag: &tagBuilder{start: endTagOpenPos, kind: EndTag, nameStart: z.idx - 1, nameEnd: z.idx}}
	default:
		z.reconsume()
		return parseErrorToken(InvalidFirstCharacterOfTagName, span(endTagOpenPos, z.idx+1)), true, sBogusComment{start: endTagOpenPos}
	}
}

// --- tag name -----------------------------------------------------------

func (z *Tokenizer) finishTagName(src []byte, tag *tagBuilder, resume State) (Token, bool, State) {
	if z.returnAttrs {
		return tagNameToken(tag.nameSpan(), tag.kind, src), true, resume
	}
	return Token{}, false, resume
}

func (z *Tokenizer) stepTagName(src []byte, s sTagName) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInTag, span(z.idx, z.idx)), true, sEOF{}
	}
	switch {
	case isASCIIWhitespace(c):
		return z.finishTagName(src, tag, sBeforeAttrName{tag: tag})
	case c == '/':
		return z.finishTagName(src, tag, sSelfClosingStartTag{tag: tag})
	case c == '>':
		if z.returnAttrs {
			return tagNameToken(tag.nameSpan(), tag.kind, src), true, dataTextState(z.idx)
		}
		return tagToken(span(tag.start, z.idx), tag.nameSpan(), tag.kind, src), true, dataTextState(z.idx)
	case c == 0:
		tag.nameEnd = z.idx
		return parseErrorToken(UnexpectedNullCharacter, span(z.idx-1, z.idx)), true, s
	case c == '<':
		tag.nameEnd = z.idx - 1
		tag.markHasAttrs()
		errTok := parseErrorToken(UnexpectedCharacterInAttributeName, span(z.idx-1, z.idx))
		next := sAttrName{tag: tag, nameStart: z.idx - 1}
		if z.returnAttrs {
			z.deferred = &Token{}
			*z.deferred = errTok
			return tagNameToken(tag.nameSpan(), tag.kind, src), true, next
		}
		return errTok, true, next
	default:
		tag.nameEnd = z.idx
		return Token{}, false, s
	}
}

// --- attribute pipeline ---------------------------------------------------

func (z *Tokenizer) finishTag(src []byte, tag *tagBuilder) (Token, bool, State) {
	if z.returnAttrs {
		return Token{}, false, dataTextState(z.idx)
	}
	return tagToken(span(tag.start, z.idx), tag.nameSpan(), tag.kind, src), true, dataTextState(z.idx)
}

func (z *Tokenizer) stepBeforeAttrName(src []byte, s sBeforeAttrName) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInTag, span(z.idx, z.idx)), true, sEOF{}
	}
	switch {
	case isASCIIWhitespace(c):
		return Token{}, false, s
	case c == '/':
		return Token{}, false, sSelfClosingStartTag{tag: tag}
	case c == '>':
		tok, emitted, next := z.finishTag(src, tag)
		return tok, emitted, next
	case c == '=':
		tag.markHasAttrs()
		return parseErrorToken(UnexpectedEqualsSignBeforeAttributeName, span(z.idx-1, z.idx)), true, sAttrName{tag: tag, nameStart: z.idx - 1}
	case c == '"' || c == '\'' || c == '<':
		tag.markHasAttrs()
		return parseErrorToken(UnexpectedCharacterInAttributeName, span(z.idx-1, z.idx)), true, sAttrName{tag: tag, nameStart: z.idx - 1}
	case c == 0:
		tag.markHasAttrs()
		return parseErrorToken(UnexpectedNullCharacter, span(z.idx-1, z.idx)), true, sAttrName{tag: tag, nameStart: z.idx - 1}
	default:
		tag.markHasAttrs()
		return Token{}, false, sAttrName{tag: tag, nameStart: z.idx - 1}
	}
}

func (z *Tokenizer) stepAttrName(src []byte, s sAttrName) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInTag, span(z.idx, z.idx)), true, sEOF{}
	}
	switch {
	case isASCIIWhitespace(c) || c == '/' || c == '>':
		tag.attrNameStart, tag.attrNameEnd = s.nameStart, z.idx-1
		z.reconsume()
		return Token{}, false, sAfterAttrName{tag: tag}
	case c == '=':
		tag.attrNameStart, tag.attrNameEnd = s.nameStart, z.idx-1
		return Token{}, false, sBeforeAttrValue{tag: tag}
	case c == '"' || c == '\'' || c == '<':
		return parseErrorToken(UnexpectedCharacterInAttributeName, span(z.idx-1, z.idx)), true, s
	case c == 0:
		return parseErrorToken(UnexpectedNullCharacter, span(z.idx-1, z.idx)), true, s
	default:
		return Token{}, false, s
	}
}

func (z *Tokenizer) stepAfterAttrName(src []byte, s sAfterAttrName) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInTag, span(z.idx, z.idx)), true, sEOF{}
	}
	nameSpan := span(tag.attrNameStart, tag.attrNameEnd)
	switch {
	case isASCIIWhitespace(c):
		return Token{}, false, s
	case c == '/':
		if z.returnAttrs {
			return attrNameOnlyToken(nameSpan), true, sSelfClosingStartTag{tag: tag}
		}
		return Token{}, false, sSelfClosingStartTag{tag: tag}
	case c == '>':
		if z.returnAttrs {
			return attrNameOnlyToken(nameSpan), true, dataTextState(z.idx)
		}
		return tagToken(span(tag.start, z.idx), tag.nameSpan(), tag.kind, src), true, dataTextState(z.idx)
	case c == '=':
		return Token{}, false, sBeforeAttrValue{tag: tag}
	default:
		z.reconsume()
		if z.returnAttrs {
			return attrNameOnlyToken(nameSpan), true, sBeforeAttrName{tag: tag}
		}
		return Token{}, false, sBeforeAttrName{tag: tag}
	}
}

func (z *Tokenizer) stepBeforeAttrValue(src []byte, s sBeforeAttrValue) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInTag, span(z.idx, z.idx)), true, sEOF{}
	}
	switch {
	case isASCIIWhitespace(c):
		return Token{}, false, s
	case c == '"':
		return Token{}, false, sAttrValue{tag: tag, quote: DoubleQuote, valueStart: z.idx}
	case c == '\'':
		return Token{}, false, sAttrValue{tag: tag, quote: SingleQuote, valueStart: z.idx}
	case c == '>':
		errTok := parseErrorToken(MissingAttributeValue, span(z.idx-1, z.idx))
		nameSpan := span(tag.attrNameStart, tag.attrNameEnd)
		if z.returnAttrs {
			z.deferred = &Token{}
			*z.deferred = attrNameOnlyToken(nameSpan)
		} else {
			z.deferred = &Token{}
			*z.deferred = tagToken(span(tag.start, z.idx), tag.nameSpan(), tag.kind, src)
		}
		return errTok, true, dataTextState(z.idx)
	case c == '"' || c == '\'' || c == '<' || c == '=' || c == '`':
		valueStart := z.idx - 1
		return parseErrorToken(UnexpectedCharacterInUnquotedAttributeValue, span(z.idx-1, z.idx)), true, sAttrValue{tag: tag, quote: NoQuote, valueStart: valueStart}
	default:
		return Token{}, false, sAttrValue{tag: tag, quote: NoQuote, valueStart: z.idx - 1}
	}
}

func (z *Tokenizer) stepAttrValue(src []byte, s sAttrValue) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInAttributeValue, span(z.idx, z.idx)), true, sEOF{}
	}
	nameSpan := span(tag.attrNameStart, tag.attrNameEnd)

	switch s.quote {
	case DoubleQuote, SingleQuote:
		want := byte('"')
		if s.quote == SingleQuote {
			want = '\''
		}
		if c == want {
			valueSpan := span(s.valueStart, z.idx-1)
			full := span(tag.attrNameStart, z.idx)
			if z.returnAttrs {
				return attrToken(full, nameSpan, s.quote, valueSpan), true, sAfterAttrValueQuoted{tag: tag}
			}
			return Token{}, false, sAfterAttrValueQuoted{tag: tag}
		}
		return Token{}, false, s

	default: // unquoted
		switch {
		case isASCIIWhitespace(c):
			valueSpan := span(s.valueStart, z.idx-1)
			full := span(tag.attrNameStart, z.idx-1)
			if z.returnAttrs {
				return attrToken(full, nameSpan, NoQuote, valueSpan), true, sBeforeAttrName{tag: tag}
			}
			return Token{}, false, sBeforeAttrName{tag: tag}
		case c == '>':
			valueSpan := span(s.valueStart, z.idx-1)
			if z.returnAttrs {
				full := span(tag.attrNameStart, z.idx-1)
				return attrToken(full, nameSpan, NoQuote, valueSpan), true, dataTextState(z.idx)
			}
			return tagToken(span(tag.start, z.idx), tag.nameSpan(), tag.kind, src), true, dataTextState(z.idx)
		case c == '"' || c == '\'' || c == '<' || c == '=' || c == '`':
			return parseErrorToken(UnexpectedCharacterInUnquotedAttributeValue, span(z.idx-1, z.idx)), true, s
		default:
			return Token{}, false, s
		}
	}
}

func (z *Tokenizer) stepAfterAttrValueQuoted(src []byte, s sAfterAttrValueQuoted) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInTag, span(z.idx, z.idx)), true, sEOF{}
	}
	switch {
	case isASCIIWhitespace(c):
		return Token{}, false, sBeforeAttrName{tag: tag}
	case c == '/':
		return Token{}, false, sSelfClosingStartTag{tag: tag}
	case c == '>':
		return z.finishTag(src, tag)
	default:
		z.reconsume()
		return parseErrorToken(MissingWhitespaceBetweenAttributes, span(z.idx, z.idx+1)), true, sBeforeAttrName{tag: tag}
	}
}

func (z *Tokenizer) stepSelfClosingStartTag(src []byte, s sSelfClosingStartTag) (Token, bool, State) {
	tag := s.tag
	c, ok := z.consume(src)
	if !ok {
		return parseErrorToken(EofInTag, span(z.idx, z.idx)), true, sEOF{}
	}
	if c == '>' {
		switch tag.kind {
		case StartTag:
			tag.kind = StartSelfTag
		case StartAttrsTag:
			tag.kind = StartAttrsSelfTag
		}
		if z.returnAttrs {
			return Token{}, false, dataTextState(z.idx)
		}
		return tagToken(span(tag.start, z.idx), tag.nameSpan(), tag.kind, src), true, dataTextState(z.idx)
	}
	z.reconsume()
	return parseErrorToken(UnexpectedSolidusInTag, span(z.idx, z.idx+1)), true, sBeforeAttrName{tag: tag}
}

// --- bogus comment / markup declaration open -----------------------------

func (z *Tokenizer) stepBogusComment(src []byte, s sBogusComment) (Token, bool, State) {
	c, ok := z.consume(src)
	if !ok {
		return commentToken(span(s.start, z.idx)), true, sEOF{}
	}
	if c == '>' {
		return commentToken(span(s.start, z.idx)), true, dataTextState(z.idx)
	}
	return Token{}, false, s
}

func (z *Tokenizer) stepMarkupDeclarationOpen(src []byte, s sMarkupDeclarationOpen) (Token, bool, State) {
	switch {
	case hasPrefixAt(src, z.idx, "--"):
		z.idx += 2
		return Token{}, false, sComment{phase: commentStart, start: s.start}
	case hasPrefixFoldASCII(src, z.idx, "DOCTYPE"):
		z.idx += len("DOCTYPE")
		return Token{}, false, sDoctype{phase: doctypeInit, d: &doctypeBuilder{start: s.start}}
	case hasPrefixAt(src, z.idx, "[CDATA["):
		z.idx += len("[CDATA[")
		return Token{}, false, sCdata{phase: cdataBody, start: s.start}
	default:
		return parseErrorToken(IncorrectlyOpenedComment, span(s.start, z.idx)), true, sBogusComment{start: s.start}
	}
}

// --- comment pipeline -----------------------------------------------------

func (z *Tokenizer) eofInComment(start int) (Token, bool, State) {
	errTok := parseErrorToken(EofInComment, span(z.idx, z.idx))
	z.deferred = &Token{}
	*z.deferred = commentToken(span(start, z.idx))
	return errTok, true, sEOF{}
}

func (z *Tokenizer) stepComment(src []byte, s sComment) (Token, bool, State) {
	c, ok := z.consume(src)
	if !ok {
		return z.eofInComment(s.start)
	}
	switch s.phase {
	case commentStart:
		switch c {
		case '-':
			return Token{}, false, sComment{phase: commentStartDash, start: s.start}
		case '>':
			errTok := parseErrorToken(AbruptClosingOfEmptyComment, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = commentToken(span(s.start, z.idx))
			return errTok, true, dataTextState(z.idx)
		default:
			return Token{}, false, sComment{phase: commentBody, start: s.start}
		}
	case commentStartDash:
		switch c {
		case '-':
			return Token{}, false, sComment{phase: commentEnd, start: s.start}
		case '>':
			errTok := parseErrorToken(AbruptClosingOfEmptyComment, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = commentToken(span(s.start, z.idx))
			return errTok, true, dataTextState(z.idx)
		default:
			return Token{}, false, sComment{phase: commentBody, start: s.start}
		}
	case commentBody:
		switch c {
		case '<':
			return Token{}, false, sComment{phase: commentLessThanSign, start: s.start}
		case '-':
			return Token{}, false, sComment{phase: commentEndDash, start: s.start}
		default:
			return Token{}, false, s
		}
	case commentLessThanSign:
		switch c {
		case '!':
			return Token{}, false, sComment{phase: commentLessThanSignBang, start: s.start}
		case '<':
			return Token{}, false, s
		default:
			return Token{}, false, sComment{phase: commentBody, start: s.start}
		}
	case commentLessThanSignBang:
		if c == '-' {
			return Token{}, false, sComment{phase: commentLessThanSignBangDash, start: s.start}
		}
		return Token{}, false, sComment{phase: commentBody, start: s.start}
	case commentLessThanSignBangDash:
		if c == '-' {
			errTok := parseErrorToken(NestedComment, span(z.idx-4, z.idx))
			return errTok, true, sComment{phase: commentBody, start: s.start}
		}
		return Token{}, false, sComment{phase: commentEndDash, start: s.start}
	case commentLessThanSignBangDashDash:
		return Token{}, false, sComment{phase: commentBody, start: s.start}
	case commentEndDash:
		if c == '-' {
			return Token{}, false, sComment{phase: commentEnd, start: s.start}
		}
		return Token{}, false, sComment{phase: commentBody, start: s.start}
	case commentEnd:
		switch c {
		case '>':
			return commentToken(span(s.start, z.idx)), true, dataTextState(z.idx)
		case '!':
			return Token{}, false, sComment{phase: commentEndBang, start: s.start}
		case '-':
			return Token{}, false, s
		default:
			return Token{}, false, sComment{phase: commentBody, start: s.start}
		}
	case commentEndBang:
		switch c {
		case '-':
			return Token{}, false, sComment{phase: commentEndDash, start: s.start}
		case '>':
			errTok := parseErrorToken(IncorrectlyClosedComment, span(z.idx-4, z.idx))
			z.deferred = &Token{}
			*z.deferred = commentToken(span(s.start, z.idx))
			return errTok, true, dataTextState(z.idx)
		default:
			return Token{}, false, sComment{phase: commentBody, start: s.start}
		}
	}
	panic("token: unreachable comment phase")
}

// --- doctype pipeline -----------------------------------------------------

func (d *doctypeBuilder) nameSpan() Span {
	if !d.hasName {
		return Span{}
	}
	return span(d.nameStart, d.nameEnd)
}

func (d *doctypeBuilder) extraSpan() Span {
	if !d.sawPublic && !d.sawSystem {
		return Span{}
	}
	return span(d.extraStart, d.extraEnd)
}

func (z *Tokenizer) eofInDoctype(d *doctypeBuilder) (Token, bool, State) {
	d.forceQuirks = true
	errTok := parseErrorToken(EofInDoctype, span(z.idx, z.idx))
	z.deferred = &Token{}
	*z.deferred = doctypeToken(span(d.start, z.idx), d.hasName, d.nameSpan(), d.extraSpan(), true)
	return errTok, true, sEOF{}
}

func (z *Tokenizer) emitDoctype(d *doctypeBuilder) Token {
	return doctypeToken(span(d.start, z.idx), d.hasName, d.nameSpan(), d.extraSpan(), d.forceQuirks)
}

func (z *Tokenizer) stepDoctype(src []byte, s sDoctype) (Token, bool, State) {
	d := s.d
	c, ok := z.consume(src)
	if !ok {
		return z.eofInDoctype(d)
	}

	switch s.phase {
	case doctypeInit:
		if isASCIIWhitespace(c) {
			return Token{}, false, sDoctype{phase: doctypeBeforeName, d: d}
		}
		z.reconsume()
		return parseErrorToken(MissingWhitespaceBeforeDoctypeName, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBeforeName, d: d}

	case doctypeBeforeName:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, s
		case c == '>':
			d.forceQuirks = true
			errTok := parseErrorToken(MissingDoctypeName, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = z.emitDoctype(d)
			return errTok, true, dataTextState(z.idx)
		default:
			d.hasName = true
			d.nameStart, d.nameEnd = z.idx-1, z.idx
			return Token{}, false, sDoctype{phase: doctypeName, d: d}
		}

	case doctypeName:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, sDoctype{phase: doctypeAfterName, d: d}
		case c == '>':
			return z.emitDoctype(d), true, dataTextState(z.idx)
		default:
			d.nameEnd = z.idx
			return Token{}, false, s
		}

	case doctypeAfterName:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, s
		case c == '>':
			return z.emitDoctype(d), true, dataTextState(z.idx)
		case hasPrefixFoldASCII(src, z.idx-1, "PUBLIC"):
			z.idx = z.idx - 1 + len("PUBLIC")
			return Token{}, false, sDoctype{phase: doctypeAfterPublicKeyword, d: d}
		case hasPrefixFoldASCII(src, z.idx-1, "SYSTEM"):
			z.idx = z.idx - 1 + len("SYSTEM")
			return Token{}, false, sDoctype{phase: doctypeAfterSystemKeyword, d: d}
		default:
			d.forceQuirks = true
			return parseErrorToken(InvalidCharacterSequenceAfterDoctypeName, span(z.idx-1, z.idx)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypeAfterPublicKeyword:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, sDoctype{phase: doctypeBeforePublicID, d: d}
		case c == '"' || c == '\'':
			d.sawPublic = true
			d.extraStart = z.idx
			errTok := parseErrorToken(MissingWhitespaceAfterDoctypePublicKeyword, span(z.idx-2, z.idx-1))
			ph := doctypePublicIDDoubleQuoted
			if c == '\'' {
				ph = doctypePublicIDSingleQuoted
			}
			return errTok, true, sDoctype{phase: ph, d: d}
		case c == '>':
			d.forceQuirks = true
			errTok := parseErrorToken(MissingDoctypePublicIdentifier, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = z.emitDoctype(d)
			return errTok, true, dataTextState(z.idx)
		default:
			d.forceQuirks = true
			z.reconsume()
			return parseErrorToken(MissingQuoteBeforeDoctypePublicIdentifier, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypeBeforePublicID:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, s
		case c == '"' || c == '\'':
			d.sawPublic = true
			d.extraStart = z.idx
			ph := doctypePublicIDDoubleQuoted
			if c == '\'' {
				ph = doctypePublicIDSingleQuoted
			}
			return Token{}, false, sDoctype{phase: ph, d: d}
		case c == '>':
			d.forceQuirks = true
			errTok := parseErrorToken(MissingDoctypePublicIdentifier, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = z.emitDoctype(d)
			return errTok, true, dataTextState(z.idx)
		default:
			d.forceQuirks = true
			z.reconsume()
			return parseErrorToken(MissingQuoteBeforeDoctypePublicIdentifier, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypePublicIDDoubleQuoted, doctypePublicIDSingleQuoted:
		want := byte('"')
		if s.phase == doctypePublicIDSingleQuoted {
			want = '\''
		}
		switch {
		case c == want:
			d.extraEnd = z.idx - 1
			return Token{}, false, sDoctype{phase: doctypeAfterPublicID, d: d}
		case c == '>':
			d.forceQuirks = true
			d.extraEnd = z.idx - 1
			errTok := parseErrorToken(AbruptDoctypePublicIdentifier, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = z.emitDoctype(d)
			return errTok, true, dataTextState(z.idx)
		default:
			return Token{}, false, s
		}

	case doctypeAfterPublicID:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, sDoctype{phase: doctypeBetweenPublicAndSystem, d: d}
		case c == '>':
			return z.emitDoctype(d), true, dataTextState(z.idx)
		case c == '"' || c == '\'':
			d.sawSystem = true
			errTok := parseErrorToken(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers, span(z.idx-1, z.idx))
			ph := doctypeSystemIDDoubleQuoted
			if c == '\'' {
				ph = doctypeSystemIDSingleQuoted
			}
			return errTok, true, sDoctype{phase: ph, d: d}
		default:
			d.forceQuirks = true
			z.reconsume()
			return parseErrorToken(InvalidCharacterSequenceAfterDoctypeName, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypeBetweenPublicAndSystem:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, s
		case c == '>':
			return z.emitDoctype(d), true, dataTextState(z.idx)
		case c == '"' || c == '\'':
			d.sawSystem = true
			ph := doctypeSystemIDDoubleQuoted
			if c == '\'' {
				ph = doctypeSystemIDSingleQuoted
			}
			return Token{}, false, sDoctype{phase: ph, d: d}
		default:
			d.forceQuirks = true
			z.reconsume()
			return parseErrorToken(MissingQuoteBeforeDoctypeSystemIdentifier, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypeAfterSystemKeyword:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, sDoctype{phase: doctypeBeforeSystemID, d: d}
		case c == '"' || c == '\'':
			d.sawSystem = true
			if d.extraStart == 0 && !d.sawPublic {
				d.extraStart = z.idx
			}
			errTok := parseErrorToken(MissingWhitespaceAfterDoctypeSystemKeyword, span(z.idx-2, z.idx-1))
			// The fix mandated for this exact branch: an apostrophe here
			// routes to the SYSTEM single-quoted identifier state, not the
			// public one a copy-pasted handler would reach for.
			ph := doctypeSystemIDDoubleQuoted
			if c == '\'' {
				ph = doctypeSystemIDSingleQuoted
			}
			return errTok, true, sDoctype{phase: ph, d: d}
		case c == '>':
			d.forceQuirks = true
			errTok := parseErrorToken(MissingDoctypeSystemIdentifier, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = z.emitDoctype(d)
			return errTok, true, dataTextState(z.idx)
		default:
			d.forceQuirks = true
			z.reconsume()
			return parseErrorToken(MissingQuoteBeforeDoctypeSystemIdentifier, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypeBeforeSystemID:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, s
		case c == '"' || c == '\'':
			d.sawSystem = true
			if !d.sawPublic {
				d.extraStart = z.idx
			}
			ph := doctypeSystemIDDoubleQuoted
			if c == '\'' {
				ph = doctypeSystemIDSingleQuoted
			}
			return Token{}, false, sDoctype{phase: ph, d: d}
		case c == '>':
			d.forceQuirks = true
			errTok := parseErrorToken(MissingDoctypeSystemIdentifier, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = z.emitDoctype(d)
			return errTok, true, dataTextState(z.idx)
		default:
			d.forceQuirks = true
			z.reconsume()
			return parseErrorToken(MissingQuoteBeforeDoctypeSystemIdentifier, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypeSystemIDDoubleQuoted, doctypeSystemIDSingleQuoted:
		want := byte('"')
		if s.phase == doctypeSystemIDSingleQuoted {
			want = '\''
		}
		switch {
		case c == want:
			d.extraEnd = z.idx - 1
			return Token{}, false, sDoctype{phase: doctypeAfterSystemID, d: d}
		case c == '>':
			d.forceQuirks = true
			d.extraEnd = z.idx - 1
			errTok := parseErrorToken(AbruptDoctypeSystemIdentifier, span(z.idx-1, z.idx))
			z.deferred = &Token{}
			*z.deferred = z.emitDoctype(d)
			return errTok, true, dataTextState(z.idx)
		default:
			return Token{}, false, s
		}

	case doctypeAfterSystemID:
		switch {
		case isASCIIWhitespace(c):
			return Token{}, false, s
		case c == '>':
			return z.emitDoctype(d), true, dataTextState(z.idx)
		default:
			z.reconsume()
			return parseErrorToken(UnexpectedCharacterAfterDoctypeSystemIdentifier, span(z.idx, z.idx+1)), true, sDoctype{phase: doctypeBogus, d: d}
		}

	case doctypeBogus:
		if c == '>' {
			return z.emitDoctype(d), true, dataTextState(z.idx)
		}
		return Token{}, false, s
	}
	panic("token: unreachable doctype phase")
}

// --- CDATA ------------------------------------------------------------

func (z *Tokenizer) eofInCdata(start int) (Token, bool, State) {
	errTok := parseErrorToken(EofInCdata, span(z.idx, z.idx))
	z.deferred = &Token{}
	*z.deferred = commentToken(span(start, z.idx))
	return errTok, true, sEOF{}
}

func (z *Tokenizer) stepCdata(src []byte, s sCdata) (Token, bool, State) {
	c, ok := z.consume(src)
	if !ok {
		return z.eofInCdata(s.start)
	}
	switch s.phase {
	case cdataBody:
		if c == ']' {
			return Token{}, false, sCdata{phase: cdataBracket, start: s.start, brackets: 1}
		}
		return Token{}, false, s
	case cdataBracket:
		if c == ']' {
			return Token{}, false, sCdata{phase: cdataEnd, start: s.start, brackets: s.brackets + 1}
		}
		return Token{}, false, sCdata{phase: cdataBody, start: s.start}
	case cdataEnd:
		switch c {
		case ']':
			return Token{}, false, s
		case '>':
			return commentToken(span(s.start, z.idx)), true, dataTextState(z.idx)
		default:
			return Token{}, false, sCdata{phase: cdataBody, start: s.start}
		}
	}
	panic("token: unreachable cdata phase")
}

// --- special text end-tag recognition (RCDATA/RAWTEXT/plain script) -----

func (z *Tokenizer) stepSpecialEndTagOpen(src []byte, s sSpecialEndTagOpen) (Token, bool, State) {
	tagStart := z.idx - 1
	c, ok := z.consume(src)
	if !ok {
		if sp, has := trimmedTextSpan(src, s.dataStart, z.idx); has {
			return textToken(sp), true, sEOF{}
		}
		return Token{}, false, sEOF{}
	}
	if c != '/' {
		z.reconsume()
		return Token{}, false, sText{mode: s.mode, start: s.dataStart}
	}
	if nc, has := peekByte(src, z.idx); has && isASCIIAlpha(nc) {
		return Token{}, false, sSpecialEndTagName{mode: s.mode, dataStart: s.dataStart, tagStart: tagStart, nameStart: z.idx}
	}
	return Token{}, false, sText{mode: s.mode, start: s.dataStart}
}

// stepSpecialEndTagName consumes a single byte for an in-progress end-tag
// name accumulation and reports the outcome once a terminator is hit.
func (z *Tokenizer) stepSpecialEndTagName(src []byte, s sSpecialEndTagName) (Token, bool, State) {
	c, ok := z.consume(src)
	if !ok {
		if sp, has := trimmedTextSpan(src, s.dataStart, z.idx); has {
			return textToken(sp), true, sEOF{}
		}
		return Token{}, false, sEOF{}
	}
	if isASCIIAlpha(c) {
		return Token{}, false, s
	}
	nameEnd := z.idx - 1
	validTerminator := isASCIIWhitespace(c) || c == '/' || c == '>'
	nameMatches := z.lastStartTagName != "" && equalFoldASCII(src[s.nameStart:nameEnd], []byte(z.lastStartTagName))
	if validTerminator && nameMatches {
		trailingSolidus := c == '/'
		solidusSpan := span(z.idx-1, z.idx)
		z.reconsume()
		tag := &tagBuilder{start: s.tagStart, kind: EndTag, nameStart: s.nameStart, nameEnd: nameEnd}
		textSp, hasText := trimmedTextSpan(src, s.dataStart, s.tagStart)
		if trailingSolidus {
			errTok := parseErrorToken(EndTagWithTrailingSolidus, solidusSpan)
			if hasText {
				z.deferred = &Token{}
				*z.deferred = errTok
				return textToken(textSp), true, sBeforeAttrName{tag: tag}
			}
			return errTok, true, sBeforeAttrName{tag: tag}
		}
		if hasText {
			return textToken(textSp), true, sBeforeAttrName{tag: tag}
		}
		return Token{}, false, sBeforeAttrName{tag: tag}
	}
	z.reconsume()
	return Token{}, false, sText{mode: s.mode, start: s.dataStart}
}

// --- script-data escape / double-escape ladder ---------------------------

func (z *Tokenizer) stepScriptEsc(src []byte, s sScriptEsc) (Token, bool, State) {
	c, ok := z.consume(src)
	if !ok {
		errTok := parseErrorToken(EofInScriptHtmlCommentLikeText, span(z.idx, z.idx))
		if sp, has := trimmedTextSpan(src, s.dataStart, z.idx); has {
			z.deferred = &Token{}
			*z.deferred = textToken(sp)
		}
		return errTok, true, sEOF{}
	}

	switch s.phase {
	case scriptEscaped:
		switch c {
		case '-':
			return Token{}, false, sScriptEsc{phase: scriptEscapedDash, dataStart: s.dataStart}
		case '<':
			return Token{}, false, sScriptEsc{phase: scriptEscapedLessThanSign, dataStart: s.dataStart, tagStart: z.idx - 1}
		default:
			return Token{}, false, s
		}

	case scriptEscapedDash:
		switch c {
		case '-':
			return Token{}, false, sScriptEsc{phase: scriptEscapedDashDash, dataStart: s.dataStart}
		case '<':
			return Token{}, false, sScriptEsc{phase: scriptEscapedLessThanSign, dataStart: s.dataStart, tagStart: z.idx - 1}
		default:
			return Token{}, false, sScriptEsc{phase: scriptEscaped, dataStart: s.dataStart}
		}

	case scriptEscapedDashDash:
		switch c {
		case '-':
			return Token{}, false, s
		case '<':
			return Token{}, false, sScriptEsc{phase: scriptEscapedLessThanSign, dataStart: s.dataStart, tagStart: z.idx - 1}
		case '>':
			return Token{}, false, sText{mode: modeScriptData, start: s.dataStart}
		default:
			return Token{}, false, sScriptEsc{phase: scriptEscaped, dataStart: s.dataStart}
		}

	case scriptEscapedLessThanSign:
		switch {
		case c == '/':
			return Token{}, false, sScriptEsc{phase: scriptEscapedEndTagOpen, dataStart: s.dataStart, tagStart: s.tagStart}
		case isASCIIAlpha(c):
			// Mandated completion: an ASCII letter here begins the
			// double-escape-start ladder, anchored at this letter.
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscapeStart, dataStart: s.dataStart, tagStart: s.tagStart, nameStart: z.idx - 1}
		default:
			return Token{}, false, sScriptEsc{phase: scriptEscaped, dataStart: s.dataStart}
		}

	case scriptEscapedEndTagOpen:
		if isASCIIAlpha(c) {
			return Token{}, false, sScriptEsc{phase: scriptEscapedEndTagName, dataStart: s.dataStart, tagStart: s.tagStart, nameStart: z.idx - 1}
		}
		z.reconsume()
		return Token{}, false, sScriptEsc{phase: scriptEscaped, dataStart: s.dataStart}

	case scriptEscapedEndTagName:
		if isASCIIAlpha(c) {
			return Token{}, false, s
		}
		nameEnd := z.idx - 1
		validTerminator := isASCIIWhitespace(c) || c == '/' || c == '>'
		nameMatches := z.lastStartTagName != "" && equalFoldASCII(src[s.nameStart:nameEnd], []byte(z.lastStartTagName))
		if validTerminator && nameMatches {
			trailingSolidus := c == '/'
			solidusSpan := span(z.idx-1, z.idx)
			z.reconsume()
			tag := &tagBuilder{start: s.tagStart, kind: EndTag, nameStart: s.nameStart, nameEnd: nameEnd}
			textSp, hasText := trimmedTextSpan(src, s.dataStart, s.tagStart)
			if trailingSolidus {
				errTok := parseErrorToken(EndTagWithTrailingSolidus, solidusSpan)
				if hasText {
					z.deferred = &Token{}
					*z.deferred = errTok
					return textToken(textSp), true, sBeforeAttrName{tag: tag}
				}
				return errTok, true, sBeforeAttrName{tag: tag}
			}
			if hasText {
				return textToken(textSp), true, sBeforeAttrName{tag: tag}
			}
			return Token{}, false, sBeforeAttrName{tag: tag}
		}
		z.reconsume()
		return Token{}, false, sScriptEsc{phase: scriptEscaped, dataStart: s.dataStart}

	case scriptDoubleEscapeStart:
		if isASCIIAlpha(c) {
			return Token{}, false, s
		}
		if isASCIIWhitespace(c) || c == '/' || c == '>' {
			next := scriptEscaped
			if equalFoldASCII(src[s.nameStart:z.idx-1], []byte("script")) {
				next = scriptDoubleEscaped
			}
			return Token{}, false, sScriptEsc{phase: next, dataStart: s.dataStart}
		}
		z.reconsume()
		return Token{}, false, sScriptEsc{phase: scriptEscaped, dataStart: s.dataStart}

	case scriptDoubleEscaped:
		switch c {
		case '-':
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscapedDash, dataStart: s.dataStart}
		case '<':
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscapedLessThanSign, dataStart: s.dataStart}
		default:
			return Token{}, false, s
		}

	case scriptDoubleEscapedDash:
		switch c {
		case '-':
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscapedDashDash, dataStart: s.dataStart}
		case '<':
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscapedLessThanSign, dataStart: s.dataStart}
		default:
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscaped, dataStart: s.dataStart}
		}

	case scriptDoubleEscapedDashDash:
		switch c {
		case '-':
			return Token{}, false, s
		case '<':
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscapedLessThanSign, dataStart: s.dataStart}
		case '>':
			return Token{}, false, sText{mode: modeScriptData, start: s.dataStart}
		default:
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscaped, dataStart: s.dataStart}
		}

	case scriptDoubleEscapedLessThanSign:
		if c == '/' {
			return Token{}, false, sScriptEsc{phase: scriptDoubleEscapeEnd, dataStart: s.dataStart, nameStart: z.idx}
		}
		return Token{}, false, sScriptEsc{phase: scriptDoubleEscaped, dataStart: s.dataStart}

	case scriptDoubleEscapeEnd:
		if isASCIIAlpha(c) {
			return Token{}, false, s
		}
		if isASCIIWhitespace(c) || c == '/' || c == '>' {
			next := scriptDoubleEscaped
			if equalFoldASCII(src[s.nameStart:z.idx-1], []byte("script")) {
				next = scriptEscaped
			}
			return Token{}, false, sScriptEsc{phase: next, dataStart: s.dataStart}
		}
		z.reconsume()
		return Token{}, false, sScriptEsc{phase: scriptDoubleEscaped, dataStart: s.dataStart}
	}
	panic("token: unreachable script escape phase")
}
