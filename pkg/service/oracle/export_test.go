package oracle

var (
	BuildAnalyzePrompt = buildAnalyzePrompt
	BuildSuggestPrompt = buildSuggestPrompt
	ClampConfidence    = clampConfidence
)
