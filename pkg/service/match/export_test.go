package match

var (
	Tokenize    = tokenize
	TokensMatch = tokensMatch
)
