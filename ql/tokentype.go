package ql

// TokenType identifies the lexical class of a token produced by the Scanner.
type TokenType int

const (
	WhitespaceToken TokenType = iota + 1

	LeftParenToken
	RightParenToken
	ColonToken
	CommaToken
	DotToken

	EqToken
	NeqToken
	GtToken
	GteToken
	LtToken
	LteToken

	StringToken
	NumberToken

	AndToken
	OrToken
	NotToken
	TrueToken
	FalseToken
	NullToken

	ContainsToken
	StartsWithToken
	EndsWithToken
	AnyToken
	AllToken
	NoneToken

	IdentifierToken

	UnterminatedStringErrorToken
	UnexpectedCharacterErrorToken

	EOFToken
)

func (tt TokenType) GoString() string {
	return tokenToDescription[tt]
}

func (tt TokenType) String() string {
	return tokenToDescription[tt]
}

func init() {
	// make sure we panic if a description isn't declared
	for tt := TokenType(1); tt != EOFToken; tt++ {
		if tokenToDescription[tt] == "" {
			panic("you have not updated tokenToDescription")
		}
	}
}

var tokenToDescription = map[TokenType]string{
	WhitespaceToken: "WhitespaceToken",

	LeftParenToken:  "LeftParenToken",
	RightParenToken: "RightParenToken",
	ColonToken:      "ColonToken",
	CommaToken:      "CommaToken",
	DotToken:        "DotToken",

	EqToken:  "EqToken",
	NeqToken: "NeqToken",
	GtToken:  "GtToken",
	GteToken: "GteToken",
	LtToken:  "LtToken",
	LteToken: "LteToken",

	StringToken: "StringToken",
	NumberToken: "NumberToken",

	AndToken:   "AndToken",
	OrToken:    "OrToken",
	NotToken:   "NotToken",
	TrueToken:  "TrueToken",
	FalseToken: "FalseToken",
	NullToken:  "NullToken",

	ContainsToken:   "ContainsToken",
	StartsWithToken: "StartsWithToken",
	EndsWithToken:   "EndsWithToken",
	AnyToken:        "AnyToken",
	AllToken:        "AllToken",
	NoneToken:       "NoneToken",

	IdentifierToken: "IdentifierToken",

	UnterminatedStringErrorToken: "UnterminatedStringErrorToken",
	UnexpectedCharacterErrorToken: "UnexpectedCharacterErrorToken",

	EOFToken: "EOFToken",
}

// keywords maps the lower-cased spelling of a keyword to its TokenType.
// Matching is case-insensitive with a word-boundary check performed by the
// scanner; identifiers are case-sensitive.
var keywords = map[string]TokenType{
	"and":        AndToken,
	"or":         OrToken,
	"not":        NotToken,
	"true":       TrueToken,
	"false":      FalseToken,
	"null":       NullToken,
	"contains":   ContainsToken,
	"startswith": StartsWithToken,
	"endswith":   EndsWithToken,
	"any":        AnyToken,
	"all":        AllToken,
	"none":       NoneToken,
}
