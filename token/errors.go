package token

import "github.com/iancoleman/strcase"

// ErrorKind is the closed taxonomy of non-fatal tokenization violations.
// The tokenizer never fails outright; every violation becomes a
// ParseErrorToken carrying one of these kinds plus the span of the
// offending bytes, and tokenization continues.
type ErrorKind int

const (
	AbruptClosingOfEmptyComment ErrorKind = iota
	AbruptDoctypePublicIdentifier
	AbruptDoctypeSystemIdentifier
	EndTagWithTrailingSolidus
	EofBeforeTagName
	EofInAttributeValue
	EofInCdata
	EofInComment
	EofInDoctype
	EofInScriptHtmlCommentLikeText
	EofInTag
	IncorrectlyOpenedComment
	IncorrectlyClosedComment
	InvalidCharacterSequenceAfterDoctypeName
	InvalidFirstCharacterOfTagName
	MissingAttributeValue
	MissingDoctypeName
	MissingDoctypePublicIdentifier
	MissingDoctypeSystemIdentifier
	MissingEndTagName
	MissingQuoteBeforeDoctypePublicIdentifier
	MissingQuoteBeforeDoctypeSystemIdentifier
	MissingWhitespaceAfterDoctypePublicKeyword
	MissingWhitespaceAfterDoctypeSystemKeyword
	MissingWhitespaceBeforeDoctypeName
	MissingWhitespaceBetweenAttributes
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers
	NestedComment
	UnexpectedCharacterAfterDoctypeSystemIdentifier
	UnexpectedCharacterInAttributeName
	UnexpectedCharacterInUnquotedAttributeValue
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedNullCharacter
	UnexpectedSolidusInTag
	DeprecatedAndUnsupported

	numErrorKinds
)

var errorKindNames = [numErrorKinds]string{
	AbruptClosingOfEmptyComment:                               "AbruptClosingOfEmptyComment",
	AbruptDoctypePublicIdentifier:                             "AbruptDoctypePublicIdentifier",
	AbruptDoctypeSystemIdentifier:                             "AbruptDoctypeSystemIdentifier",
	EndTagWithTrailingSolidus:                                 "EndTagWithTrailingSolidus",
	EofBeforeTagName:                                          "EofBeforeTagName",
	EofInAttributeValue:                                       "EofInAttributeValue",
	EofInCdata:                                                "EofInCdata",
	EofInComment:                                              "EofInComment",
	EofInDoctype:                                              "EofInDoctype",
	EofInScriptHtmlCommentLikeText:                            "EofInScriptHtmlCommentLikeText",
	EofInTag:                                                  "EofInTag",
	IncorrectlyOpenedComment:                                  "IncorrectlyOpenedComment",
	IncorrectlyClosedComment:                                  "IncorrectlyClosedComment",
	InvalidCharacterSequenceAfterDoctypeName:                  "InvalidCharacterSequenceAfterDoctypeName",
	InvalidFirstCharacterOfTagName:                            "InvalidFirstCharacterOfTagName",
	MissingAttributeValue:                                     "MissingAttributeValue",
	MissingDoctypeName:                                        "MissingDoctypeName",
	MissingDoctypePublicIdentifier:                            "MissingDoctypePublicIdentifier",
	MissingDoctypeSystemIdentifier:                            "MissingDoctypeSystemIdentifier",
	MissingEndTagName:                                         "MissingEndTagName",
	MissingQuoteBeforeDoctypePublicIdentifier:                 "MissingQuoteBeforeDoctypePublicIdentifier",
	MissingQuoteBeforeDoctypeSystemIdentifier:                 "MissingQuoteBeforeDoctypeSystemIdentifier",
	MissingWhitespaceAfterDoctypePublicKeyword:                "MissingWhitespaceAfterDoctypePublicKeyword",
	MissingWhitespaceAfterDoctypeSystemKeyword:                "MissingWhitespaceAfterDoctypeSystemKeyword",
	MissingWhitespaceBeforeDoctypeName:                        "MissingWhitespaceBeforeDoctypeName",
	MissingWhitespaceBetweenAttributes:                        "MissingWhitespaceBetweenAttributes",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers: "MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers",
	NestedComment:                                   "NestedComment",
	UnexpectedCharacterAfterDoctypeSystemIdentifier:  "UnexpectedCharacterAfterDoctypeSystemIdentifier",
	UnexpectedCharacterInAttributeName:               "UnexpectedCharacterInAttributeName",
	UnexpectedCharacterInUnquotedAttributeValue:      "UnexpectedCharacterInUnquotedAttributeValue",
	UnexpectedEqualsSignBeforeAttributeName:          "UnexpectedEqualsSignBeforeAttributeName",
	UnexpectedNullCharacter:                          "UnexpectedNullCharacter",
	UnexpectedSolidusInTag:                           "UnexpectedSolidusInTag",
	DeprecatedAndUnsupported:                         "DeprecatedAndUnsupported",
}

var errorKindWireNames [numErrorKinds]string

func init() {
	for k, name := range errorKindNames {
		errorKindWireNames[k] = strcase.ToSnake(name)
	}
}

// String returns the spec's documented snake_case wire name, e.g.
// "unexpected_null_character".
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= int(numErrorKinds) {
		return "unknown_error"
	}
	return errorKindWireNames[k]
}

// GoName returns the Go identifier the kind is declared under, e.g.
// "UnexpectedNullCharacter".
func (k ErrorKind) GoName() string {
	if k < 0 || int(k) >= int(numErrorKinds) {
		return "Unknown"
	}
	return errorKindNames[k]
}
